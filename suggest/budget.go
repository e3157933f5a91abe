package suggest

import cursorlet "github.com/Paranoid-AF/cursorlet"

// DefaultContextBudget is the byte budget for auxiliary context when the
// config leaves context.max_bytes at zero. It is read from the embedded
// default config so the two cannot disagree.
var DefaultContextBudget = cursorlet.DefaultConfig().Context.MaxBytes

// TrimContext returns the longest prefix of items whose cumulative content
// size stays within budget. Items are never reordered or skipped: the first
// item that overflows the budget drops itself and everything after it.
func TrimContext(items []cursorlet.ContextItem, budget int) []cursorlet.ContextItem {
	total := 0
	for i, item := range items {
		total += item.Size()
		if total > budget {
			return items[:i]
		}
	}
	return items
}
