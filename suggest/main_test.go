package suggest

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cursorlet "github.com/Paranoid-AF/cursorlet"
	"github.com/Paranoid-AF/cursorlet/lang"
)

func testSelector(budget, maxChars int) *Selector {
	return &Selector{
		catalog:         lang.Default(),
		contextBudget:   budget,
		contentMaxChars: maxChars,
		newID:           func() string { return "task-1" },
	}
}

func TestSelectSmallFileScenario(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	task, err := s.Select(&cursorlet.Request{
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "foo.py",
			ContentAboveCursor: "def bar():\n    # TODO\n",
		},
	})
	require.NoError(t, err)

	gen, ok := task.(*GenerationTask)
	require.True(t, ok, "expected generation task, got %T", task)
	assert.Equal(t, cursorlet.TaskGeneration, gen.Kind())
	assert.Equal(t, "Python", gen.Language.Name())
	assert.Equal(t, TriggerSmallFile, gen.Instruction.Trigger)
	assert.Equal(t, SmallFileInstruction, gen.Instruction.Text)
	assert.NotEmpty(t, gen.Examples)
}

func TestSelectCompletion(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	task, err := s.Select(&cursorlet.Request{
		Intent: cursorlet.IntentCompletion,
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "main.go",
			ContentAboveCursor: "// Generate a helper that does X here\n",
		},
	})
	require.NoError(t, err)

	comp, ok := task.(*CompletionTask)
	require.True(t, ok, "expected completion task, got %T", task)
	assert.Equal(t, cursorlet.TaskCompletion, comp.Kind())
	assert.Equal(t, "Go", comp.Language.Name())
	assert.Equal(t, "task-1", comp.ID)

	p := comp.Payload()
	assert.Nil(t, p.Instruction)
	assert.Equal(t, []cursorlet.ContextItem{}, p.Context)
}

func TestSelectCommentTrigger(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	task, err := s.Select(&cursorlet.Request{
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "main.go",
			ContentAboveCursor: goPrelude + "// Generate a helper that does X here\n",
		},
	})
	require.NoError(t, err)

	gen, ok := task.(*GenerationTask)
	require.True(t, ok)
	assert.Equal(t, TriggerComment, gen.Instruction.Trigger)
	assert.Empty(t, gen.Instruction.Text)
	assert.Equal(t, "Generate a helper that does X here", gen.Instruction.Comment)
}

func TestSelectUserInstructionVerbatim(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	text := "Generate tests for this file\n  with table-driven cases"
	task, err := s.Select(&cursorlet.Request{
		UserInstruction: text,
		GenerationType:  "bogus",
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "foo.py",
			ContentAboveCursor: pyPrelude + "def foo():\n",
		},
	})
	require.NoError(t, err)

	gen, ok := task.(*GenerationTask)
	require.True(t, ok)
	assert.Equal(t, text, gen.Instruction.Text)
	assert.True(t, gen.Instruction.UserSupplied)
	assert.Equal(t, TriggerComment, gen.Instruction.Trigger)
}

func TestSelectUnknownGenerationType(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	task, err := s.Select(&cursorlet.Request{
		GenerationType: "bogus",
		CurrentFile:    cursorlet.CurrentFile{FileName: "foo.py"},
	})
	assert.Nil(t, task)
	assert.True(t, errors.Is(err, ErrUnknownTrigger))
}

func TestSelectUnknownLanguage(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	task, err := s.Select(&cursorlet.Request{
		CurrentFile: cursorlet.CurrentFile{FileName: "README"},
	})
	require.NoError(t, err)

	gen, ok := task.(*GenerationTask)
	require.True(t, ok)
	assert.True(t, gen.Language.IsUnknown())
	assert.Equal(t, TriggerSmallFile, gen.Instruction.Trigger)
	assert.Empty(t, gen.Examples)
	assert.Equal(t, "", gen.Payload().Language)
}

func TestSelectTrimsContext(t *testing.T) {
	s := testSelector(10, 0)
	ctxItems := []cursorlet.ContextItem{
		{Type: cursorlet.ContextTypeFile, Name: "a.go", Content: "12345"},
		{Type: cursorlet.ContextTypeSnippet, Name: "b", Content: "12345"},
		{Type: cursorlet.ContextTypeFile, Name: "c.go", Content: "1"},
	}

	for _, intent := range []string{cursorlet.IntentCompletion, cursorlet.IntentGeneration} {
		task, err := s.Select(&cursorlet.Request{
			Intent:      intent,
			Context:     ctxItems,
			CurrentFile: cursorlet.CurrentFile{FileName: "main.go"},
		})
		require.NoError(t, err)
		p := task.Payload()
		assert.Equal(t, ctxItems[:2], p.Context, intent)
		assert.Equal(t, ctxItems[:1], p.RelatedFiles(), intent)
		assert.Equal(t, ctxItems[1:2], p.RelatedSnippets(), intent)
	}
}

func TestSelectTrimsCursorContent(t *testing.T) {
	s := testSelector(DefaultContextBudget, 3)
	task, err := s.Select(&cursorlet.Request{
		Intent: cursorlet.IntentCompletion,
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "test.py",
			ContentAboveCursor: "some content_above_cursor",
			ContentBelowCursor: "some content_below_cursor",
		},
	})
	require.NoError(t, err)

	p := task.Payload()
	assert.Equal(t, "sor", p.TrimmedContentAboveCursor)
	assert.Equal(t, "som", p.TrimmedContentBelowCursor)
	assert.Equal(t, "some content_above_cursor", p.ContentAboveCursor)
}

func TestGenerationPayloadJSON(t *testing.T) {
	s := testSelector(DefaultContextBudget, 0)
	task, err := s.Select(&cursorlet.Request{
		GenerationType: "empty_function",
		CurrentFile: cursorlet.CurrentFile{
			FileName:           "test.py",
			ContentAboveCursor: "def add(a, b):\n",
		},
	})
	require.NoError(t, err)

	data, err := json.Marshal(task.Payload())
	require.NoError(t, err)
	raw := string(data)

	assert.Contains(t, raw, `"kind":"generation"`)
	assert.Contains(t, raw, `"language_identifier":"Python"`)
	assert.Contains(t, raw, `"trigger_type":"empty_function"`)
	assert.Contains(t, raw, `"context":[]`)
	assert.True(t, strings.Contains(raw, `"examples":[`))
}

func TestNewSelectorFromConfig(t *testing.T) {
	cfg := cursorlet.DefaultConfig()
	cfg.Context.MaxBytes = 42
	cfg.Content.MaxChars = 7

	s := NewSelector(cfg)
	assert.Equal(t, 42, s.contextBudget)
	assert.Equal(t, 7, s.contentMaxChars)

	s = NewSelector(nil)
	assert.Equal(t, DefaultContextBudget, s.contextBudget)

	task, err := s.Select(&cursorlet.Request{CurrentFile: cursorlet.CurrentFile{FileName: "a.go"}})
	require.NoError(t, err)
	assert.NotEmpty(t, task.Payload().ID)
}

func TestNewSelectorZeroBudgetUsesEmbeddedDefault(t *testing.T) {
	assert.Equal(t, cursorlet.DefaultConfig().Context.MaxBytes, DefaultContextBudget)
	assert.Equal(t, 500_000, DefaultContextBudget)

	cfg := cursorlet.DefaultConfig()
	cfg.Context.MaxBytes = 0
	s := NewSelector(cfg)
	assert.Equal(t, cursorlet.DefaultConfig().Context.MaxBytes, s.contextBudget)
}
