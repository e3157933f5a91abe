// Package cursorlet defines the request/response types for cursorlet IPC.
// Messages are JSON-encoded and sent over a Unix domain socket, one per line.
package cursorlet

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Intents a client may declare for a request.
const (
	IntentCompletion = "completion"
	IntentGeneration = "generation"
)

// Context item types accepted in Request.Context.
const (
	ContextTypeFile    = "file"
	ContextTypeSnippet = "snippet"
)

// Task kinds reported in TaskPayload.Kind.
const (
	TaskCompletion = "completion"
	TaskGeneration = "generation"
)

// MaxFileNameLength is the longest file name accepted in a request.
const MaxFileNameLength = 255

// Request is sent from the editor client to the daemon.
type Request struct {
	// RequestID is a per-session incrementing identifier assigned by the client.
	// The daemon echoes it back in the response for ordering.
	RequestID int `json:"request_id"`
	// SessionID identifies the editor session.
	SessionID string `json:"session_id,omitempty"`
	// CurrentFile is the file being edited and the text around the cursor.
	CurrentFile CurrentFile `json:"current_file"`
	// Intent is "completion", "generation", or empty to let the daemon decide.
	Intent string `json:"intent,omitempty"`
	// GenerationType forces a generation trigger ("comment", "empty_function", "small_file").
	GenerationType string `json:"generation_type,omitempty"`
	// UserInstruction is free text typed by the user; it overrides every heuristic.
	UserInstruction string `json:"user_instruction,omitempty"`
	// Context holds auxiliary files and snippets, most important first.
	// A present but empty list is rejected by Validate.
	Context []ContextItem `json:"context,omitempty"`
	// Stream is the client's streaming capability flag as sent ("true", "1", ...).
	Stream Flag `json:"stream,omitempty"`
}

// CurrentFile is the cursor payload of a request.
type CurrentFile struct {
	FileName           string `json:"file_name"`
	ContentAboveCursor string `json:"content_above_cursor"`
	ContentBelowCursor string `json:"content_below_cursor"`
}

// ContextItem is one auxiliary file or snippet forwarded with a request.
type ContextItem struct {
	// Type is "file" or "snippet".
	Type string `json:"type"`
	// Name is the file path or snippet identifier.
	Name string `json:"name"`
	// Content is the raw text of the item.
	Content string `json:"content"`
}

// Size returns the byte size of the item's content.
func (c ContextItem) Size() int {
	return len(c.Content)
}

// Flag is a boolean-like value that clients send either as a JSON string,
// a JSON boolean, or a number. It keeps the raw text for later normalization.
type Flag string

// UnmarshalJSON accepts strings, booleans, numbers, and null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flag(s)
		return nil
	}
	*f = Flag(raw)
	return nil
}

// Response is sent from the daemon back to the editor client.
type Response struct {
	// RequestID is echoed from the request for ordering on the client side.
	RequestID int `json:"request_id"`
	// Task is the classified prompt-construction task. Nil when Error is set.
	Task *TaskPayload `json:"task,omitempty"`
	// Stream reports whether the client can receive a streamed model response.
	Stream bool `json:"stream"`
	// Error is set when the daemon cannot fulfill the request.
	Error *Error `json:"error,omitempty"`
}

// TaskPayload is the wire form of a classified task.
type TaskPayload struct {
	// ID correlates the task with the downstream model call.
	ID string `json:"id"`
	// Kind is "completion" or "generation".
	Kind string `json:"kind"`
	// Language is the detected language name, empty when unknown.
	Language string `json:"language_identifier"`

	FileName                  string `json:"file_name"`
	ContentAboveCursor        string `json:"content_above_cursor"`
	ContentBelowCursor        string `json:"content_below_cursor"`
	TrimmedContentAboveCursor string `json:"trimmed_content_above_cursor"`
	TrimmedContentBelowCursor string `json:"trimmed_content_below_cursor"`

	// Context is the prefix of the request context that fits the byte budget.
	Context []ContextItem `json:"context"`
	// Examples are few-shot examples for the detected language and task kind.
	Examples []Example `json:"examples,omitempty"`
	// Instruction is set for generation tasks only.
	Instruction *Instruction `json:"instruction,omitempty"`
}

// RelatedFiles returns the kept context items of type "file".
func (p *TaskPayload) RelatedFiles() []ContextItem {
	return filterContext(p.Context, ContextTypeFile)
}

// RelatedSnippets returns the kept context items of type "snippet".
func (p *TaskPayload) RelatedSnippets() []ContextItem {
	return filterContext(p.Context, ContextTypeSnippet)
}

func filterContext(items []ContextItem, typ string) []ContextItem {
	out := []ContextItem{}
	for _, item := range items {
		if item.Type == typ {
			out = append(out, item)
		}
	}
	return out
}

// Example is a single few-shot example.
type Example struct {
	Example     string `json:"example"`
	Response    string `json:"response"`
	TriggerType string `json:"trigger_type,omitempty"`
}

// Instruction is the wire form of a resolved generation instruction.
type Instruction struct {
	// TriggerType is "comment", "empty_function", or "small_file".
	TriggerType string `json:"trigger_type"`
	// Text is the canned or user-supplied instruction text.
	Text string `json:"instruction"`
	// Comment is the instruction seed extracted from a trailing comment.
	Comment string `json:"comment,omitempty"`
	// UserSupplied is true when Text came from Request.UserInstruction.
	UserSupplied bool `json:"user_supplied,omitempty"`
}

// Error describes a daemon-side error returned to the client.
type Error struct {
	// Code is a machine-readable error identifier (e.g. "invalid_request", "internal_error").
	Code string `json:"code"`
	// Message is a human-readable error description.
	Message string `json:"message"`
}

// ConfigRequest is sent from the client for configuration operations.
type ConfigRequest struct {
	// Action is the config operation: "get", "reload", "defaults", or "validate".
	Action string `json:"action"`
}

// ConfigResponse is sent from the daemon in response to a ConfigRequest.
type ConfigResponse struct {
	// Config is the current configuration (for "get", "reload", and "defaults" actions).
	Config *Config `json:"config,omitempty"`
	// Warnings contains configuration warnings (for "validate" action).
	Warnings []string `json:"warnings,omitempty"`
	// Error is set when the operation fails.
	Error *Error `json:"error,omitempty"`
}

// ValidationError lists every problem found in a request.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// Validate checks the request for structural problems. It returns nil or a
// *ValidationError describing all of them.
func (r *Request) Validate() error {
	var problems []string

	if len(r.CurrentFile.FileName) > MaxFileNameLength {
		problems = append(problems, "current_file[file_name] is too long")
	}

	switch r.Intent {
	case "", IntentCompletion, IntentGeneration:
	default:
		problems = append(problems, "intent does not have a valid value")
	}

	switch r.GenerationType {
	case "", "comment", "empty_function", "small_file":
	default:
		problems = append(problems, "generation_type does not have a valid value")
	}

	if r.Context != nil && len(r.Context) == 0 {
		problems = append(problems, "context is empty")
	}
	for i, item := range r.Context {
		key := fmt.Sprintf("context[%d]", i)
		switch item.Type {
		case "":
			problems = append(problems, key+"[type] is missing")
		case ContextTypeFile, ContextTypeSnippet:
		default:
			problems = append(problems, key+"[type] does not have a valid value")
		}
		if item.Name == "" {
			problems = append(problems, key+"[name] is missing", key+"[name] is empty")
		}
		if item.Content == "" {
			problems = append(problems, key+"[content] is missing", key+"[content] is empty")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
