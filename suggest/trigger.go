package suggest

import (
	"regexp"
	"strings"

	cursorlet "github.com/Paranoid-AF/cursorlet"
	"github.com/Paranoid-AF/cursorlet/lang"
)

// Trigger is the outcome of classifying a cursor context.
type Trigger string

const (
	// TriggerNone means the request is served as a completion.
	TriggerNone          Trigger = "none"
	TriggerComment       Trigger = "comment"
	TriggerEmptyFunction Trigger = "empty_function"
	TriggerSmallFile     Trigger = "small_file"
)

// maxTrailingBlankLines is how many blank lines may separate an instruction
// comment from the cursor.
const maxTrailingBlankLines = 1

// Verdict is the result of classification.
type Verdict struct {
	Trigger Trigger
	// Comment is the instruction seed extracted from the trailing comment block.
	Comment string
	// UserInstruction is the caller's free text, carried verbatim.
	UserInstruction string
}

// Signals are the caller-declared inputs to classification.
type Signals struct {
	Intent          string
	GenerationType  string
	UserInstruction string
}

// rule returns a verdict and true when it applies.
type rule func(c *CursorContent, s Signals) (Verdict, bool)

// rules are evaluated in order; the first that applies wins. The last rule
// always applies.
var rules = []rule{
	completionIntentRule,
	userInstructionRule,
	generationTypeRule,
	generationIntentRule,
	heuristicRule,
}

// Classify decides which trigger applies to the cursor context.
func Classify(c *CursorContent, s Signals) Verdict {
	for _, r := range rules {
		if v, ok := r(c, s); ok {
			return v
		}
	}
	return Verdict{Trigger: TriggerNone}
}

func completionIntentRule(_ *CursorContent, s Signals) (Verdict, bool) {
	if s.Intent != cursorlet.IntentCompletion {
		return Verdict{}, false
	}
	return Verdict{Trigger: TriggerNone}, true
}

func userInstructionRule(_ *CursorContent, s Signals) (Verdict, bool) {
	if s.UserInstruction == "" {
		return Verdict{}, false
	}
	return Verdict{Trigger: TriggerComment, UserInstruction: s.UserInstruction}, true
}

func generationTypeRule(_ *CursorContent, s Signals) (Verdict, bool) {
	if s.GenerationType == "" {
		return Verdict{}, false
	}
	return Verdict{Trigger: Trigger(s.GenerationType)}, true
}

// generationIntentRule accepts the whole trailing comment block, however
// short, when the caller explicitly asked for generation.
func generationIntentRule(c *CursorContent, s Signals) (Verdict, bool) {
	if s.Intent != cursorlet.IntentGeneration {
		return Verdict{}, false
	}
	block := trailingCommentBlock(c)
	seed, _ := matchInstruction(strings.Join(trimAll(block), "\n"), lang.AlwaysMatch)
	return Verdict{Trigger: TriggerComment, Comment: seed}, true
}

func heuristicRule(c *CursorContent, _ Signals) (Verdict, bool) {
	if block := trailingCommentBlock(c); len(block) > 0 {
		if seed, ok := matchInstruction(block[0], c.Language().InstructionPattern()); ok {
			return Verdict{Trigger: TriggerComment, Comment: seed}, true
		}
	}
	if c.IsSmall() {
		return Verdict{Trigger: TriggerSmallFile}, true
	}
	if c.Language().CursorInsideEmptyFunction(c.Above(), c.Below()) {
		return Verdict{Trigger: TriggerEmptyFunction}, true
	}
	return Verdict{Trigger: TriggerNone}, true
}

// trailingCommentBlock returns the run of single-line comments ending right
// above the cursor. At most maxTrailingBlankLines blank lines may sit between
// the block and the cursor.
func trailingCommentBlock(c *CursorContent) []string {
	lines := c.LinesAbove()
	end := len(lines)
	for skipped := 0; end > 0 && skipped < maxTrailingBlankLines; skipped++ {
		if strings.TrimSpace(lines[end-1]) != "" {
			break
		}
		end--
	}

	start := end
	for start > 0 && c.Language().IsSingleLineComment(lines[start-1]) {
		start--
	}
	return lines[start:end]
}

func matchInstruction(text string, pattern *regexp.Regexp) (string, bool) {
	if pattern == nil {
		return "", false
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if i := pattern.SubexpIndex("instruction"); i >= 0 {
		return strings.TrimSpace(m[i]), true
	}
	return "", true
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(line)
	}
	return out
}
