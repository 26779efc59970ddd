package palette

import (
	"slices"
	"sync"

	"github.com/dshills/layerkeys/internal/input/keymap"
)

// Entry is one launchable action.
type Entry struct {
	Action   string
	Label    string
	Category string
	Chord    string
}

// Match is a search hit. Higher scores rank first.
type Match struct {
	Entry Entry
	Score int
}

// field weights added to a term's score depending on where it matched
const (
	labelWeight    = 50
	actionWeight   = 25
	categoryWeight = 0
	recentWeight   = 100
)

// Palette searches the action menu.
type Palette struct {
	mu      sync.RWMutex
	entries []Entry
	history *History
}

// New creates a palette over menu, remembering up to historySize launches.
func New(menu []keymap.MenuCategory, historySize int) *Palette {
	p := &Palette{history: NewHistory(historySize)}
	p.SetMenu(menu)
	return p
}

// SetMenu replaces the entries, e.g. after a keymap reload. History is kept.
func (p *Palette) SetMenu(menu []keymap.MenuCategory) {
	var entries []Entry
	for _, cat := range menu {
		for _, e := range cat.Entries {
			entries = append(entries, Entry{
				Action:   e.Action,
				Label:    e.Label,
				Category: cat.Name,
				Chord:    e.Chord,
			})
		}
	}
	p.mu.Lock()
	p.entries = entries
	p.mu.Unlock()
}

// Entries returns every entry in menu order.
func (p *Palette) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.entries)
}

// Record notes that action was launched.
func (p *Palette) Record(action string) {
	p.history.Add(action)
}

// History returns the launch history.
func (p *Palette) History() *History {
	return p.history
}

// Search returns up to limit entries matching query, best first. An empty
// query returns recently launched actions first, then the menu order.
// A limit <= 0 means no limit.
func (p *Palette) Search(query string, limit int) []Match {
	entries := p.Entries()
	terms := queryTerms(query)

	results := make([]Match, 0, len(entries))
	for _, e := range entries {
		total, ok := matchEntry(terms, e)
		if !ok {
			continue
		}
		if pos := p.history.Position(e.Action); pos >= 0 {
			total += max(recentWeight-pos, 1)
		}
		results = append(results, Match{Entry: e, Score: total})
	}

	// Stable keeps menu order among equal scores.
	slices.SortStableFunc(results, func(a, b Match) int {
		return b.Score - a.Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// matchEntry scores every term against the entry's fields and sums the
// best field score per term. Any unmatched term rejects the entry.
func matchEntry(terms [][]rune, e Entry) (int, bool) {
	total := 0
	for _, term := range terms {
		best := 0
		if s, _ := fuzzyMatch(term, e.Label); s > 0 {
			best = s + labelWeight
		}
		if s, _ := fuzzyMatch(term, e.Action); s > 0 {
			best = max(best, s+actionWeight)
		}
		if s, _ := fuzzyMatch(term, e.Category); s > 0 {
			best = max(best, s+categoryWeight)
		}
		if best == 0 {
			return 0, false
		}
		total += best
	}
	return total, true
}
