package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	cursorlet "github.com/Paranoid-AF/cursorlet"
	"github.com/Paranoid-AF/cursorlet/suggest"
)

// defaultMaxBodyBytes bounds a request line when the config leaves it unset.
const defaultMaxBodyBytes = 1 << 20

// Classifier turns a validated request into a task.
type Classifier interface {
	Select(req *cursorlet.Request) (suggest.Task, error)
}

// Server listens on a Unix domain socket for classification requests.
type Server struct {
	listener   net.Listener
	sockPath   string
	configPath string

	// rebuild creates a classifier for a reloaded config. Nil keeps the
	// current classifier across reloads.
	rebuild func(*cursorlet.Config) Classifier

	mu         sync.RWMutex
	classifier Classifier
	config     *cursorlet.Config
	cache      *ResponseCache
	watcher    *ConfigWatcher
	closed     bool
}

// errServerClosed is returned by reload once Close has run.
var errServerClosed = errors.New("server closed")

// NewServer creates a new IPC server bound to the given socket path, using
// the user's config file.
func NewServer(sockPath string) (*Server, error) {
	cfg, err := cursorlet.LoadConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = cursorlet.DefaultConfig()
	}
	srv, err := NewServerWithClassifier(sockPath, suggest.NewSelector(cfg), cfg)
	if err != nil {
		return nil, err
	}
	srv.rebuild = func(cfg *cursorlet.Config) Classifier {
		return suggest.NewSelector(cfg)
	}
	return srv, nil
}

// NewServerWithClassifier creates a new IPC server with a custom Classifier.
// A nil cfg means the embedded defaults.
func NewServerWithClassifier(sockPath string, classifier Classifier, cfg *cursorlet.Config) (*Server, error) {
	if cfg == nil {
		cfg = cursorlet.DefaultConfig()
	}

	// Remove stale socket file if it exists
	if err := os.Remove(sockPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		listener:   listener,
		sockPath:   sockPath,
		configPath: cursorlet.ConfigPath(),
		classifier: classifier,
		config:     cfg,
		cache:      NewResponseCache(cursorlet.CacheTTL(cfg), cfg.Cache.Capacity),
	}, nil
}

// Serve accepts connections and handles requests.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// WatchConfig reloads the server whenever the config file changes.
func (s *Server) WatchConfig() error {
	w, err := WatchConfig(s.configPath, func() { s.reload() })
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// Close shuts down the listener, cache, and config watcher, and removes the
// socket file.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	w := s.watcher
	s.watcher = nil
	s.cache.Close()
	s.cache = nil
	s.mu.Unlock()

	w.Close()
	s.listener.Close()
	os.Remove(s.sockPath)
}

func (s *Server) snapshot() (Classifier, *cursorlet.Config, *ResponseCache) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier, s.config, s.cache
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	classifier, cfg, cache := s.snapshot()

	limit := cursorlet.ResolveMaxBodyBytes(cfg)
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, min(limit, 64*1024)), limit)
	if !scanner.Scan() {
		if errors.Is(scanner.Err(), bufio.ErrTooLong) {
			slog.Warn("request too large", "limit", limit)
			writeJSON(conn, cursorlet.Response{Error: &cursorlet.Error{
				Code:    "payload_too_large",
				Message: fmt.Sprintf("request exceeds %d bytes", limit),
			}})
		}
		return
	}

	raw := scanner.Bytes()
	slog.Debug("request", "data", string(raw))

	// Check if this is a config request (has "action" field)
	var cfgReq cursorlet.ConfigRequest
	if err := json.Unmarshal(raw, &cfgReq); err == nil && cfgReq.Action != "" {
		s.handleConfigRequest(conn, &cfgReq)
		return
	}

	var req cursorlet.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		slog.Warn("invalid request", "error", err)
		writeJSON(conn, cursorlet.Response{Error: &cursorlet.Error{
			Code:    "invalid_request",
			Message: err.Error(),
		}})
		return
	}

	writeJSON(conn, s.respond(classifier, cache, &req))
}

func (s *Server) respond(classifier Classifier, cache *ResponseCache, req *cursorlet.Request) cursorlet.Response {
	resp := cursorlet.Response{
		RequestID: req.RequestID,
		Stream:    suggest.SupportsStreaming(string(req.Stream)),
	}

	if err := req.Validate(); err != nil {
		slog.Debug("request rejected", "request_id", req.RequestID, "error", err)
		resp.Error = &cursorlet.Error{Code: "invalid_request", Message: err.Error()}
		return resp
	}

	if payload := cache.Get(req); payload != nil {
		slog.Debug("cache hit", "request_id", req.RequestID)
		resp.Task = payload
		return resp
	}

	task, err := classifier.Select(req)
	if err != nil {
		slog.Error("classification failed", "request_id", req.RequestID, "error", err)
		resp.Error = &cursorlet.Error{Code: "internal_error", Message: err.Error()}
		return resp
	}

	resp.Task = task.Payload()
	cache.Set(req, resp.Task)
	return resp
}

func (s *Server) handleConfigRequest(conn net.Conn, req *cursorlet.ConfigRequest) {
	var resp cursorlet.ConfigResponse

	switch req.Action {
	case "get":
		_, cfg, _ := s.snapshot()
		resp.Config = cfg

	case "reload":
		cfg, err := s.reload()
		if err != nil {
			resp.Error = &cursorlet.Error{
				Code:    "config_error",
				Message: err.Error(),
			}
		} else {
			resp.Config = cfg
		}

	case "defaults":
		resp.Config = cursorlet.DefaultConfig()

	case "validate":
		cfg, err := cursorlet.LoadConfigFile(s.configPath)
		if err != nil {
			resp.Error = &cursorlet.Error{
				Code:    "config_error",
				Message: err.Error(),
			}
		} else {
			resp.Warnings = cursorlet.ValidateConfig(cfg)
		}

	default:
		resp.Error = &cursorlet.Error{
			Code:    "unknown_action",
			Message: "unknown config action: " + req.Action,
		}
	}

	writeJSON(conn, resp)
}

// reload re-reads the config file and swaps in a fresh cache and, when the
// server owns its classifier, a fresh classifier. On error the running
// config stays in place. A watcher timer may still fire after Close; such a
// late reload is refused so no cache outlives the server.
func (s *Server) reload() (*cursorlet.Config, error) {
	cfg, err := cursorlet.LoadConfigFile(s.configPath)
	if err != nil {
		slog.Error("config reload failed", "path", s.configPath, "error", err)
		return nil, err
	}
	for _, w := range cursorlet.ValidateConfig(cfg) {
		slog.Warn("config", "warning", w)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errServerClosed
	}
	old := s.cache
	s.config = cfg
	s.cache = NewResponseCache(cursorlet.CacheTTL(cfg), cfg.Cache.Capacity)
	if s.rebuild != nil {
		s.classifier = s.rebuild(cfg)
	}
	s.mu.Unlock()

	old.Close()
	slog.Info("config reloaded", "path", s.configPath)
	return cfg, nil
}

func writeJSON(conn net.Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		return
	}

	slog.Debug("response", "data", string(data))

	conn.Write(append(data, '\n'))
}
