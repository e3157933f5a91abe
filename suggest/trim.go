package suggest

import "unicode/utf8"

// TrimAbove keeps the last limit characters of the text above the cursor.
// A non-positive limit disables trimming.
func TrimAbove(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	cut := len(text)
	for n := 0; n < limit; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:cut])
		cut -= size
	}
	return text[cut:]
}

// TrimBelow keeps the first limit characters of the text below the cursor.
// A non-positive limit disables trimming.
func TrimBelow(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	cut := 0
	for n := 0; n < limit; n++ {
		_, size := utf8.DecodeRuneInString(text[cut:])
		cut += size
	}
	return text[:cut]
}
