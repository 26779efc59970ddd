package palette

import (
	"slices"
	"sync"
)

// History tracks recently launched actions, most recent first.
type History struct {
	mu       sync.Mutex
	items    []string
	maxItems int
}

// NewHistory creates a history holding at most maxItems actions.
func NewHistory(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = 50
	}
	return &History{maxItems: maxItems}
}

// Add records an action, moving it to the front if already present.
func (h *History) Add(action string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.items, action); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = slices.Insert(h.items, 0, action)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Position returns the recency rank of action (0 = most recent), or -1.
func (h *History) Position(action string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Index(h.items, action)
}

// Recent returns up to limit actions, most recent first. A limit <= 0
// returns all of them.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	return slices.Clone(h.items[:limit])
}

// Len returns the number of recorded actions.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}
