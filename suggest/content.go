package suggest

import (
	"strings"

	"github.com/Paranoid-AF/cursorlet/lang"
)

// SmallFileThreshold is the number of code lines (not blank, not comments)
// a file needs around the cursor to stop counting as small.
const SmallFileThreshold = 5

// CursorContent is the text around the cursor for one request. Derived values
// are computed on first use and cached; a CursorContent is not shared between
// goroutines.
type CursorContent struct {
	language *lang.Language
	above    string
	below    string

	linesAbove []string
	linesBelow []string
	split      bool

	small         bool
	smallComputed bool
}

// NewCursorContent wraps the text above and below the cursor. A nil language
// is treated as lang.Unknown.
func NewCursorContent(language *lang.Language, above, below string) *CursorContent {
	if language == nil {
		language = lang.Unknown
	}
	return &CursorContent{language: language, above: above, below: below}
}

// Language returns the language of the file.
func (c *CursorContent) Language() *lang.Language { return c.language }

// Above returns the raw text above the cursor.
func (c *CursorContent) Above() string { return c.above }

// Below returns the raw text below the cursor.
func (c *CursorContent) Below() string { return c.below }

// LinesAbove returns the lines above the cursor, top to bottom.
func (c *CursorContent) LinesAbove() []string {
	c.splitLines()
	return c.linesAbove
}

// LinesBelow returns the lines below the cursor, top to bottom.
func (c *CursorContent) LinesBelow() []string {
	c.splitLines()
	return c.linesBelow
}

func (c *CursorContent) splitLines() {
	if c.split {
		return
	}
	c.linesAbove = splitLines(c.above)
	c.linesBelow = splitLines(c.below)
	c.split = true
}

// IsSmall reports whether the file has fewer than SmallFileThreshold code
// lines around the cursor. Lines above are counted first; the text below is
// only scanned when the count above stays under the threshold.
func (c *CursorContent) IsSmall() bool {
	if c.smallComputed {
		return c.small
	}
	n := c.countCode(c.LinesAbove(), SmallFileThreshold)
	if n < SmallFileThreshold {
		n += c.countCode(c.LinesBelow(), SmallFileThreshold-n)
	}
	c.small = n < SmallFileThreshold
	c.smallComputed = true
	return c.small
}

// countCode counts code lines scanning backward from the end of lines and
// stops once limit is reached.
func (c *CursorContent) countCode(lines []string, limit int) int {
	n := 0
	for i := len(lines) - 1; i >= 0 && n < limit; i-- {
		line := lines[i]
		if strings.TrimSpace(line) == "" || c.language.IsSingleLineComment(line) {
			continue
		}
		n++
	}
	return n
}

// splitLines splits text on newlines. A final newline does not start a new
// line and carriage returns are dropped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
