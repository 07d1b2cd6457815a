package poker

import (
	"fmt"
	"slices"
	"sync"

	"github.com/opencoff/go-chd"
	"golang.org/x/sync/errgroup"
)

// chdLoad is the load factor handed to the CHD builder.
const chdLoad = 0.9

// Table maps every five card combination to its HandRank under one rule set.
// A Table is immutable once built and safe for concurrent use without locks.
type Table struct {
	rules Rules
	size  int

	// flush is indexed by the OR of the five rank bits.
	flush [1 << 13]HandRank

	// index maps a prime product to a slot in keys/ranks. Slots keep their
	// key so lookups of foreign keys are detected.
	index *chd.Chd
	keys  []uint32
	ranks []HandRank

	categories []Category // by rank
}

// NewTable generates the table for rules.
func NewTable(rules Rules) (*Table, error) {
	entries, err := generateEntries(rules)
	if err != nil {
		return nil, err
	}
	return newTableFromEntries(rules, entries)
}

func newTableFromEntries(rules Rules, entries []tableEntry) (*Table, error) {
	t := &Table{rules: rules}
	for i := range t.flush {
		t.flush[i] = noRank
	}

	for _, e := range entries {
		if int(e.rank)+1 > t.size {
			t.size = int(e.rank) + 1
		}
	}
	t.categories = make([]Category, t.size)

	builder, err := chd.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableUnavailable, err)
	}
	plain := make([]tableEntry, 0, len(entries))
	for _, e := range entries {
		t.categories[e.rank] = e.category
		if e.flush {
			if e.key >= uint32(len(t.flush)) {
				return nil, fmt.Errorf("%w: flush mask %#x out of range", ErrTableUnavailable, e.key)
			}
			t.flush[e.key] = e.rank
			continue
		}
		if err := builder.Add(uint64(e.key)); err != nil {
			return nil, fmt.Errorf("%w: add key %d: %v", ErrTableUnavailable, e.key, err)
		}
		plain = append(plain, e)
	}

	t.index, err = builder.Freeze(chdLoad)
	if err != nil {
		return nil, fmt.Errorf("%w: freeze index: %v", ErrTableUnavailable, err)
	}

	var slots uint64
	for _, e := range plain {
		if s := t.index.Find(uint64(e.key)) + 1; s > slots {
			slots = s
		}
	}
	t.keys = make([]uint32, slots)
	t.ranks = make([]HandRank, slots)
	for _, e := range plain {
		slot := t.index.Find(uint64(e.key))
		if t.keys[slot] != 0 {
			return nil, fmt.Errorf("%w: keys %d and %d share slot %d", ErrTableUnavailable, t.keys[slot], e.key, slot)
		}
		t.keys[slot] = e.key
		t.ranks[slot] = e.rank
	}
	return t, nil
}

// Rules returns the rule set the table was generated for.
func (t *Table) Rules() Rules { return t.rules }

// Size returns the number of distinct ranks in the table.
func (t *Table) Size() int { return t.size }

// Category returns the category of rank r, or UnknownCategory when r is
// outside the table. Ranks are only meaningful against the table that
// produced them.
func (t *Table) Category(r HandRank) Category {
	if int(r) >= len(t.categories) {
		return UnknownCategory
	}
	return t.categories[r]
}

// lookup resolves a key. For flushes key is the OR of rank bits, otherwise
// it is the product of rank primes.
func (t *Table) lookup(key uint32, flush bool) (HandRank, error) {
	if flush {
		if key < uint32(len(t.flush)) {
			if r := t.flush[key]; r != noRank {
				return r, nil
			}
		}
		return 0, fmt.Errorf("%w: flush mask %#x in %s table", ErrUnknownCombination, key, t.rules)
	}
	slot := t.index.Find(uint64(key))
	if slot < uint64(len(t.keys)) && t.keys[slot] == key {
		return t.ranks[slot], nil
	}
	return 0, fmt.Errorf("%w: key %d in %s table", ErrUnknownCombination, key, t.rules)
}

// entries lists the table contents ordered by (flush, key). Two tables with
// equal entries evaluate every hand identically.
func (t *Table) entries() []tableEntry {
	out := make([]tableEntry, 0, rankMultisets+flushRankSets)
	for slot, key := range t.keys {
		if key == 0 {
			continue
		}
		r := t.ranks[slot]
		out = append(out, tableEntry{key: key, rank: r, category: t.categories[r]})
	}
	for mask, r := range t.flush {
		if r != noRank {
			out = append(out, tableEntry{key: uint32(mask), flush: true, rank: r, category: t.categories[r]})
		}
	}
	slices.SortFunc(out, func(a, b tableEntry) int {
		if a.flush != b.flush {
			if a.flush {
				return 1
			}
			return -1
		}
		switch {
		case a.key < b.key:
			return -1
		case a.key > b.key:
			return 1
		}
		return 0
	})
	return out
}

// Equal reports whether both tables map every key to the same rank.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.rules != o.rules || t.size != o.size || t.flush != o.flush {
		return false
	}
	a, b := t.entries(), o.entries()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].key != b[i].key || a[i].flush != b[i].flush || a[i].rank != b[i].rank || a[i].category != b[i].category {
			return false
		}
	}
	return true
}

// Tables bundles the lookup tables every variant needs. Build it once with
// NewTables or UnmarshalTables and share it.
type Tables struct {
	High         *Table
	DeuceToSeven *Table
	AceToFive    *Table
}

// NewTables generates all three tables concurrently.
func NewTables() (*Tables, error) {
	var (
		t Tables
		g errgroup.Group
	)
	for _, target := range []struct {
		rules Rules
		dst   **Table
	}{
		{HighRules, &t.High},
		{DeuceToSevenRules, &t.DeuceToSeven},
		{AceToFiveRules, &t.AceToFive},
	} {
		g.Go(func() error {
			table, err := NewTable(target.rules)
			if err != nil {
				return err
			}
			*target.dst = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Table returns the table for rules.
func (t *Tables) Table(rules Rules) (*Table, error) {
	var table *Table
	if t != nil {
		switch rules {
		case HighRules:
			table = t.High
		case DeuceToSevenRules:
			table = t.DeuceToSeven
		case AceToFiveRules:
			table = t.AceToFive
		}
	}
	if table == nil {
		return nil, fmt.Errorf("%w: no %s table", ErrTableUnavailable, rules)
	}
	return table, nil
}

// Equal reports whether both sets hold identical mappings.
func (t *Tables) Equal(o *Tables) bool {
	return t.High.Equal(o.High) && t.DeuceToSeven.Equal(o.DeuceToSeven) && t.AceToFive.Equal(o.AceToFive)
}

var defaultTables = sync.OnceValues(NewTables)

// DefaultTables builds the process-wide tables on first use. Concurrent first
// callers wait for the single build.
func DefaultTables() (*Tables, error) {
	return defaultTables()
}
