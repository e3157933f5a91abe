package lang

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MinInstructionLength is the shortest comment payload treated as an
// instruction. Every character after the marker counts, whitespace included.
const MinInstructionLength = 10

// AlwaysMatch accepts any text; the whole input is captured as the instruction.
var AlwaysMatch = regexp.MustCompile(`(?s)^(?P<instruction>.*)$`)

// Comment describes single-line comment syntax: either a literal prefix or a
// pattern anchored at the start of the stripped line.
type Comment struct {
	Prefix  string
	Pattern *regexp.Regexp

	marker string
}

func newComment(prefix, pattern string) (*Comment, error) {
	switch {
	case prefix != "" && pattern != "":
		return nil, errors.New("comment has both prefix and pattern")
	case prefix != "":
		return &Comment{Prefix: prefix, marker: regexp.QuoteMeta(prefix)}, nil
	case pattern != "":
		re, err := regexp.Compile(`^(?:` + pattern + `)`)
		if err != nil {
			return nil, err
		}
		return &Comment{Pattern: re, marker: pattern}, nil
	default:
		return nil, errors.New("comment has neither prefix nor pattern")
	}
}

// Matches reports whether line is a single-line comment. A nil Comment never matches.
func (c *Comment) Matches(line string) bool {
	if c == nil {
		return false
	}
	line = strings.TrimSpace(line)
	if c.Pattern != nil {
		return c.Pattern.MatchString(line)
	}
	return strings.HasPrefix(line, c.Prefix)
}

func instructionPattern(c *Comment) *regexp.Regexp {
	if c == nil {
		return nil
	}
	return regexp.MustCompile(fmt.Sprintf(`(?i)^\s*(?:%s)(?P<instruction>[^\r\n]{%d,})`, c.marker, MinInstructionLength))
}
