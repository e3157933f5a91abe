package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/jellydator/ttlcache/v3"

	cursorlet "github.com/Paranoid-AF/cursorlet"
)

// ResponseCache is a TTL cache of task payloads keyed by the classification
// inputs of a request. Editors tend to resend identical requests while the
// user pauses; those are answered from the cache. A nil *ResponseCache is a
// disabled cache.
type ResponseCache struct {
	cache *ttlcache.Cache[string, *cursorlet.TaskPayload]
}

// NewResponseCache creates a cache with TTL-based expiration. It returns nil
// (caching disabled) when ttl is not positive.
func NewResponseCache(ttl time.Duration, capacity int) *ResponseCache {
	if ttl <= 0 {
		return nil
	}
	opts := []ttlcache.Option[string, *cursorlet.TaskPayload]{
		ttlcache.WithTTL[string, *cursorlet.TaskPayload](ttl),
		ttlcache.WithDisableTouchOnHit[string, *cursorlet.TaskPayload](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, *cursorlet.TaskPayload](uint64(capacity)))
	}
	c := ttlcache.New[string, *cursorlet.TaskPayload](opts...)
	go c.Start()
	return &ResponseCache{cache: c}
}

// Close stops the cache expiration loop.
func (rc *ResponseCache) Close() {
	if rc == nil {
		return
	}
	rc.cache.Stop()
}

// Get returns the cached payload for an equivalent request, or nil.
func (rc *ResponseCache) Get(req *cursorlet.Request) *cursorlet.TaskPayload {
	if rc == nil {
		return nil
	}
	item := rc.cache.Get(requestKey(req))
	if item == nil {
		return nil
	}
	return item.Value()
}

// Set stores the payload produced for req.
func (rc *ResponseCache) Set(req *cursorlet.Request, payload *cursorlet.TaskPayload) {
	if rc == nil {
		return
	}
	rc.cache.Set(requestKey(req), payload, ttlcache.DefaultTTL)
}

// Len returns the number of live entries.
func (rc *ResponseCache) Len() int {
	if rc == nil {
		return 0
	}
	return rc.cache.Len()
}

// requestKey hashes the fields that influence classification. Request and
// session IDs and the streaming flag are left out.
func requestKey(req *cursorlet.Request) string {
	data, _ := json.Marshal(struct {
		CurrentFile     cursorlet.CurrentFile   `json:"f"`
		Intent          string                  `json:"i"`
		GenerationType  string                  `json:"g"`
		UserInstruction string                  `json:"u"`
		Context         []cursorlet.ContextItem `json:"c"`
	}{req.CurrentFile, req.Intent, req.GenerationType, req.UserInstruction, req.Context})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
