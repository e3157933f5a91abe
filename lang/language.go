package lang

import (
	"regexp"
	"slices"
	"strings"
)

// Language is one entry of the language table. Values are never mutated
// after the catalog is loaded.
type Language struct {
	name       string
	extensions []string
	comment    *Comment

	emptyFunction    *regexp.Regexp
	functionBoundary *regexp.Regexp
	instruction      *regexp.Regexp

	completionExamples []Example
	generationExamples []Example
}

// Name returns the language identifier, or "" for Unknown.
func (l *Language) Name() string {
	return l.name
}

// Extensions returns the file extensions mapped to the language.
func (l *Language) Extensions() []string {
	return slices.Clone(l.extensions)
}

// IsUnknown reports whether l is the unknown-language sentinel.
func (l *Language) IsUnknown() bool {
	return l == nil || l.name == ""
}

// CommentDescriptor returns the single-line comment syntax, or nil when the
// language has none (only the Unknown sentinel).
func (l *Language) CommentDescriptor() *Comment {
	if l == nil {
		return nil
	}
	return l.comment
}

// IsSingleLineComment reports whether line, stripped of surrounding
// whitespace, starts with the language's single-line comment marker.
func (l *Language) IsSingleLineComment(line string) bool {
	return l.CommentDescriptor().Matches(line)
}

// HasFunctionPatterns reports whether empty-function detection is available.
func (l *Language) HasFunctionPatterns() bool {
	return l != nil && l.emptyFunction != nil && l.functionBoundary != nil
}

// CursorInsideEmptyFunction reports whether the cursor sits right after a
// function signature whose body is still empty. The last line of the stripped
// text above must match the empty-function pattern, and the text below must be
// blank or start with a function boundary.
func (l *Language) CursorInsideEmptyFunction(above, below string) bool {
	if !l.HasFunctionPatterns() {
		return false
	}

	above = strings.TrimSpace(above)
	if above == "" {
		return false
	}
	last := above[strings.LastIndexByte(above, '\n')+1:]
	if !l.emptyFunction.MatchString(strings.TrimRight(last, "\r")) {
		return false
	}

	below = strings.TrimSpace(below)
	if below == "" {
		return true
	}
	first := below
	if i := strings.IndexByte(below, '\n'); i >= 0 {
		first = below[:i]
	}
	return l.functionBoundary.MatchString(strings.TrimSpace(first))
}

// InstructionPattern returns the pattern that recognizes an instructional
// comment: the comment marker followed by at least ten characters, captured
// in the "instruction" group. It is nil when the language has no comment syntax.
func (l *Language) InstructionPattern() *regexp.Regexp {
	if l == nil {
		return nil
	}
	return l.instruction
}

// CompletionExamples returns the few-shot examples for code completion.
func (l *Language) CompletionExamples() []Example {
	if l == nil {
		return nil
	}
	return slices.Clone(l.completionExamples)
}

// GenerationExamples returns the few-shot examples for code generation.
func (l *Language) GenerationExamples() []Example {
	if l == nil {
		return nil
	}
	return slices.Clone(l.generationExamples)
}

func (l *Language) String() string {
	if l.IsUnknown() {
		return "unknown"
	}
	return l.name
}
