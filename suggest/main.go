// Package suggest classifies a cursor context into a completion or a
// generation task and shapes the payload forwarded to the model.
package suggest

import (
	"log/slog"

	"github.com/google/uuid"

	cursorlet "github.com/Paranoid-AF/cursorlet"
	"github.com/Paranoid-AF/cursorlet/lang"
)

// Task is a classified request: a *CompletionTask or a *GenerationTask.
type Task interface {
	// Kind returns cursorlet.TaskCompletion or cursorlet.TaskGeneration.
	Kind() string
	// Payload returns the wire form of the task.
	Payload() *cursorlet.TaskPayload
}

// CompletionTask asks the model to complete code at the cursor.
type CompletionTask struct {
	ID       string
	Language *lang.Language
	FileName string

	ContentAboveCursor        string
	ContentBelowCursor        string
	TrimmedContentAboveCursor string
	TrimmedContentBelowCursor string

	// Context is the prefix of the request context that fits the budget.
	Context  []cursorlet.ContextItem
	Examples []lang.Example
}

// Kind implements Task.
func (t *CompletionTask) Kind() string { return cursorlet.TaskCompletion }

// Payload implements Task.
func (t *CompletionTask) Payload() *cursorlet.TaskPayload {
	ctxItems := t.Context
	if ctxItems == nil {
		ctxItems = []cursorlet.ContextItem{}
	}
	return &cursorlet.TaskPayload{
		ID:                        t.ID,
		Kind:                      t.Kind(),
		Language:                  t.Language.Name(),
		FileName:                  t.FileName,
		ContentAboveCursor:        t.ContentAboveCursor,
		ContentBelowCursor:        t.ContentBelowCursor,
		TrimmedContentAboveCursor: t.TrimmedContentAboveCursor,
		TrimmedContentBelowCursor: t.TrimmedContentBelowCursor,
		Context:                   ctxItems,
		Examples:                  wireExamples(t.Examples),
	}
}

// GenerationTask asks the model to write new code following an instruction.
type GenerationTask struct {
	CompletionTask
	Instruction Instruction
}

// Kind implements Task.
func (t *GenerationTask) Kind() string { return cursorlet.TaskGeneration }

// Payload implements Task.
func (t *GenerationTask) Payload() *cursorlet.TaskPayload {
	p := t.CompletionTask.Payload()
	p.Kind = t.Kind()
	p.Instruction = &cursorlet.Instruction{
		TriggerType:  string(t.Instruction.Trigger),
		Text:         t.Instruction.Text,
		Comment:      t.Instruction.Comment,
		UserSupplied: t.Instruction.UserSupplied,
	}
	return p
}

func wireExamples(examples []lang.Example) []cursorlet.Example {
	if len(examples) == 0 {
		return nil
	}
	out := make([]cursorlet.Example, len(examples))
	for i, e := range examples {
		out[i] = cursorlet.Example{Example: e.Example, Response: e.Response, TriggerType: e.TriggerType}
	}
	return out
}

// Selector turns requests into tasks. It holds only read-only settings and is
// safe for concurrent use.
type Selector struct {
	catalog         *lang.Catalog
	contextBudget   int
	contentMaxChars int
	newID           func() string
}

// NewSelector creates a selector from config. A nil config uses the defaults.
func NewSelector(cfg *cursorlet.Config) *Selector {
	if cfg == nil {
		cfg = cursorlet.DefaultConfig()
	}
	budget := cursorlet.ResolveContextMaxBytes(cfg)
	if budget == 0 {
		budget = DefaultContextBudget
	}
	return &Selector{
		catalog:         lang.Default(),
		contextBudget:   budget,
		contentMaxChars: cursorlet.ResolveContentMaxChars(cfg),
		newID:           uuid.NewString,
	}
}

// Select classifies the request and builds its task. The only error is
// ErrUnknownTrigger, returned when the caller forces a generation type that
// does not exist.
func (s *Selector) Select(req *cursorlet.Request) (Task, error) {
	language := s.catalog.Detect(req.CurrentFile.FileName)

	var ctxItems []cursorlet.ContextItem
	if len(req.Context) > 0 {
		ctxItems = TrimContext(req.Context, s.contextBudget)
		if dropped := len(req.Context) - len(ctxItems); dropped > 0 {
			slog.Debug("context trimmed", "kept", len(ctxItems), "dropped", dropped, "budget", s.contextBudget)
		}
	}

	above := req.CurrentFile.ContentAboveCursor
	below := req.CurrentFile.ContentBelowCursor
	content := NewCursorContent(language, above, below)

	verdict := Classify(content, Signals{
		Intent:          req.Intent,
		GenerationType:  req.GenerationType,
		UserInstruction: req.UserInstruction,
	})

	base := CompletionTask{
		ID:                        s.newID(),
		Language:                  language,
		FileName:                  req.CurrentFile.FileName,
		ContentAboveCursor:        above,
		ContentBelowCursor:        below,
		TrimmedContentAboveCursor: TrimAbove(above, s.contentMaxChars),
		TrimmedContentBelowCursor: TrimBelow(below, s.contentMaxChars),
		Context:                   ctxItems,
	}

	slog.Debug("task selected", "language", language.String(), "trigger", string(verdict.Trigger))

	if verdict.Trigger == TriggerNone {
		base.Examples = language.CompletionExamples()
		return &base, nil
	}

	var instruction Instruction
	if verdict.UserInstruction != "" {
		instruction = UserInstruction(verdict.UserInstruction)
	} else {
		var err error
		instruction, err = ResolveInstruction(verdict.Trigger)
		if err != nil {
			return nil, err
		}
		instruction.Comment = verdict.Comment
	}

	base.Examples = language.GenerationExamples()
	return &GenerationTask{CompletionTask: base, Instruction: instruction}, nil
}
