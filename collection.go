package enpassreaderlib

import (
	"fmt"
	"iter"

	"github.com/costastf/enpassreaderlib/internal/search"
)

// collection is the in-memory, read-only entry set built at open time.
// Entries keep the order the load query returned them in.
type collection struct {
	entries []Entry
	titles  []string
	byTitle map[string]int // exact title -> first index in load order
}

func newCollection(entries []Entry) *collection {
	c := &collection{
		entries: entries,
		titles:  make([]string, len(entries)),
		byTitle: make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		c.titles[i] = e.Title
		// first one wins on duplicate titles
		if _, ok := c.byTitle[e.Title]; !ok {
			c.byTitle[e.Title] = i
		}
	}
	return c
}

func (c *collection) len() int { return len(c.entries) }

func (c *collection) get(title string) (Entry, error) {
	i, ok := c.byTitle[title]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	return c.entries[i], nil
}

// all yields every entry in load order.
func (c *collection) all() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range c.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// search yields entries whose title matches fragment, best score first, ties
// in load order. The ranking is recomputed on every iteration; since the
// collection is immutable it comes out identical each time.
func (c *collection) search(fragment string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, m := range search.Rank(fragment, c.titles) {
			if !yield(c.entries[m.Index]) {
				return
			}
		}
	}
}
