package build

import (
	"slices"

	"github.com/google/uuid"
)

// Tally reduces counted relations to per-kind totals while remembering which
// components contributed to each kind.
type Tally struct {
	counts map[string]int
	owners map[string][]uuid.UUID
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		counts: make(map[string]int),
		owners: make(map[string][]uuid.UUID),
	}
}

// Add records n units of kind contributed by owner. Empty kinds and
// non-positive counts are ignored.
func (t *Tally) Add(owner uuid.UUID, kind string, n int) {
	if kind == "" || n <= 0 {
		return
	}
	t.counts[kind] += n
	if !slices.Contains(t.owners[kind], owner) {
		t.owners[kind] = append(t.owners[kind], owner)
	}
}

// AddAll records every quantity in qs, each multiplied by units.
func (t *Tally) AddAll(owner uuid.UUID, qs []Quantity, units int) {
	for _, q := range qs {
		t.Add(owner, q.Kind, q.Count*units)
	}
}

// Count returns the total recorded for kind.
func (t *Tally) Count(kind string) int {
	return t.counts[kind]
}

// Owners returns the contributors to kind in the order they were added.
func (t *Tally) Owners(kind string) []uuid.UUID {
	return t.owners[kind]
}

// Kinds returns every recorded kind, sorted.
func (t *Tally) Kinds() []string {
	kinds := make([]string, 0, len(t.counts))
	for k := range t.counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Total sums the counts of every kind.
func (t *Tally) Total() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}
