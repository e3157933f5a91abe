// Command cursorlet-inspect classifies a cursor position in a file and prints
// the resulting task as TOML. It runs the same selector as the daemon, without
// a socket, which makes it handy for tuning language tables and examples.
//
// Usage:
//
//	cursorlet-inspect main.go --line 12 --column 5
//	cursorlet-inspect app.py --line 3 --intent generation > task.toml
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	cursorlet "github.com/Paranoid-AF/cursorlet"
	"github.com/Paranoid-AF/cursorlet/suggest"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// errReported means the failure is already part of the printed report.
var errReported = errors.New("classification failed")

type options struct {
	line           int
	column         int
	intent         string
	generationType string
	instruction    string
	contextFiles   []string
	snippets       []string
	verbose        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "cursorlet-inspect FILE",
		Short:         "Classify a cursor position and print the task as TOML",
		Version:       Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.line, "line", "l", 0, "1-based cursor line (required)")
	flags.IntVarP(&opts.column, "column", "c", 0, "1-based cursor column; 0 means end of line")
	flags.StringVar(&opts.intent, "intent", "", `explicit intent: "completion" or "generation"`)
	flags.StringVar(&opts.generationType, "generation-type", "", `force a trigger: "comment", "empty_function", or "small_file"`)
	flags.StringVar(&opts.instruction, "instruction", "", "user instruction for a generation task")
	flags.StringArrayVar(&opts.contextFiles, "context", nil, "file to attach as related context (repeatable)")
	flags.StringArrayVar(&opts.snippets, "snippet", nil, "file to attach as a related snippet (repeatable)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log classification details to stderr")
	cmd.MarkFlagRequired("line")

	return cmd
}

func inspect(cmd *cobra.Command, path string, opts *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	above, below, err := splitAtCursor(string(data), opts.line, opts.column)
	if err != nil {
		return err
	}

	req := &cursorlet.Request{
		CurrentFile: cursorlet.CurrentFile{
			FileName:           filepath.Base(path),
			ContentAboveCursor: above,
			ContentBelowCursor: below,
		},
		Intent:          opts.intent,
		GenerationType:  opts.generationType,
		UserInstruction: opts.instruction,
	}
	if err := attach(req, cursorlet.ContextTypeFile, opts.contextFiles); err != nil {
		return err
	}
	if err := attach(req, cursorlet.ContextTypeSnippet, opts.snippets); err != nil {
		return err
	}

	cfg, err := cursorlet.LoadConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = cursorlet.DefaultConfig()
	}

	rep := newReport(req, opts.line, opts.column)
	if err := req.Validate(); err != nil {
		rep.setError("invalid_request", err)
	} else if task, err := suggest.NewSelector(cfg).Select(req); err != nil {
		rep.setError("internal_error", err)
	} else {
		rep.setTask(task.Payload())
	}

	if err := writeReport(cmd.OutOrStdout(), rep); err != nil {
		return err
	}

	// Brief summary when a person is watching stderr.
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		writeSummary(f, rep)
	}

	if rep.Error != nil {
		return errReported
	}
	return nil
}

func attach(req *cursorlet.Request, typ string, paths []string) error {
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		req.Context = append(req.Context, cursorlet.ContextItem{
			Type:    typ,
			Name:    p,
			Content: string(content),
		})
	}
	return nil
}

func writeSummary(f *os.File, rep *report) {
	switch {
	case rep.Error != nil:
		fmt.Fprintf(f, "error [%s]: %s\n", rep.Error.Code, rep.Error.Message)
	case rep.Instruction != nil:
		fmt.Fprintf(f, "%s task (%s) for %s\n", rep.Task.Kind, rep.Instruction.TriggerType, languageLabel(rep.Task.Language))
	default:
		fmt.Fprintf(f, "%s task for %s\n", rep.Task.Kind, languageLabel(rep.Task.Language))
	}
}

func languageLabel(name string) string {
	if name == "" {
		return "unknown language"
	}
	return name
}
