package main

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"

	cursorlet "github.com/Paranoid-AF/cursorlet"
)

// report is the TOML document printed for one inspected cursor position.
type report struct {
	Request     requestSection      `toml:"request"`
	Task        *taskSection        `toml:"task,omitempty"`
	Instruction *instructionSection `toml:"instruction,omitempty"`
	Context     []contextSection    `toml:"context,omitempty"`
	Examples    []exampleSection    `toml:"examples,omitempty"`
	Error       *errorSection       `toml:"error,omitempty"`
}

type requestSection struct {
	Timestamp       time.Time `toml:"timestamp"`
	FileName        string    `toml:"file_name"`
	Line            int       `toml:"line"`
	Column          int       `toml:"column"`
	Intent          string    `toml:"intent,omitempty"`
	GenerationType  string    `toml:"generation_type,omitempty"`
	UserInstruction string    `toml:"user_instruction,omitempty"`
	ContextItems    int       `toml:"context_items"`
}

type taskSection struct {
	ID           string `toml:"id"`
	Kind         string `toml:"kind"`
	Language     string `toml:"language"`
	TrimmedAbove string `toml:"trimmed_content_above_cursor"`
	TrimmedBelow string `toml:"trimmed_content_below_cursor"`
	RelatedFiles int    `toml:"related_files"`
	Snippets     int    `toml:"related_snippets"`
}

type instructionSection struct {
	TriggerType  string `toml:"trigger_type"`
	Text         string `toml:"text"`
	Comment      string `toml:"comment,omitempty"`
	UserSupplied bool   `toml:"user_supplied"`
}

type contextSection struct {
	Type  string `toml:"type"`
	Name  string `toml:"name"`
	Bytes int    `toml:"bytes"`
}

type exampleSection struct {
	TriggerType string `toml:"trigger_type,omitempty"`
	Example     string `toml:"example"`
	Response    string `toml:"response"`
}

type errorSection struct {
	Code    string `toml:"code"`
	Message string `toml:"message"`
}

func newReport(req *cursorlet.Request, line, column int) *report {
	return &report{Request: requestSection{
		Timestamp:       time.Now().UTC().Truncate(time.Second),
		FileName:        req.CurrentFile.FileName,
		Line:            line,
		Column:          column,
		Intent:          req.Intent,
		GenerationType:  req.GenerationType,
		UserInstruction: req.UserInstruction,
		ContextItems:    len(req.Context),
	}}
}

func (r *report) setTask(p *cursorlet.TaskPayload) {
	r.Task = &taskSection{
		ID:           p.ID,
		Kind:         p.Kind,
		Language:     p.Language,
		TrimmedAbove: p.TrimmedContentAboveCursor,
		TrimmedBelow: p.TrimmedContentBelowCursor,
		RelatedFiles: len(p.RelatedFiles()),
		Snippets:     len(p.RelatedSnippets()),
	}
	if in := p.Instruction; in != nil {
		r.Instruction = &instructionSection{
			TriggerType:  in.TriggerType,
			Text:         in.Text,
			Comment:      in.Comment,
			UserSupplied: in.UserSupplied,
		}
	}
	for _, item := range p.Context {
		r.Context = append(r.Context, contextSection{Type: item.Type, Name: item.Name, Bytes: item.Size()})
	}
	for _, e := range p.Examples {
		r.Examples = append(r.Examples, exampleSection{TriggerType: e.TriggerType, Example: e.Example, Response: e.Response})
	}
}

func (r *report) setError(code string, err error) {
	r.Error = &errorSection{Code: code, Message: err.Error()}
}

func writeReport(w io.Writer, r *report) error {
	return toml.NewEncoder(w).Encode(r)
}
