package main

import (
	"fmt"
	"strings"
)

// splitAtCursor splits text at a 1-based line and column. The column counts
// characters, and the cursor sits before the character it names; column 0
// places the cursor at the end of the line.
func splitAtCursor(text string, line, column int) (above, below string, err error) {
	if line < 1 {
		return "", "", fmt.Errorf("line must be at least 1, got %d", line)
	}
	if column < 0 {
		return "", "", fmt.Errorf("column must not be negative, got %d", column)
	}

	offset := 0
	for i := 1; i < line; i++ {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return "", "", fmt.Errorf("line %d is past the end of the file", line)
		}
		offset += nl + 1
	}

	lineText := text[offset:]
	if end := strings.IndexByte(lineText, '\n'); end >= 0 {
		lineText = lineText[:end]
	}

	col := len(lineText)
	if column > 0 {
		col = -1
		n := 0
		for i := range lineText {
			if n == column-1 {
				col = i
				break
			}
			n++
		}
		if col < 0 {
			if n != column-1 {
				return "", "", fmt.Errorf("column %d is past the end of line %d", column, line)
			}
			col = len(lineText)
		}
	}

	return text[:offset+col], text[offset+col:], nil
}
