package reduction

import (
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
)

// Set is the per-state container described in §4.4: "Reductions are
// stored in per-state sets during RNGLR table construction. A set
// insertion succeeds iff no equal reduction already exists." Reduction is
// a plain comparable struct, so the generic hash-set collaborator from §6
// ("hash set keyed by user-supplied equality and hash functions") can use
// it as a map key directly; gods/hashset is that collaborator.
type Set struct {
	inner *hashset.Set
}

// NewSet creates an empty per-state reduction set.
func NewSet() *Set {
	return &Set{inner: hashset.New()}
}

// Add inserts r, reporting whether it was newly added (true) or was
// already present (false) — the "no duplicate actions per state"
// invariant.
func (s *Set) Add(r Reduction) bool {
	if s.inner.Contains(r) {
		return false
	}
	s.inner.Add(r)
	return true
}

// Contains reports whether r is already a member.
func (s *Set) Contains(r Reduction) bool {
	return s.inner.Contains(r)
}

// Len returns the number of distinct reductions held.
func (s *Set) Len() int {
	return s.inner.Size()
}

// Reductions returns the set's members in a deterministic order (sorted
// by head index then length), suitable for stable table dumps.
func (s *Set) Reductions() []Reduction {
	values := s.inner.Values()
	out := make([]Reduction, 0, len(values))
	for _, v := range values {
		out = append(out, v.(Reduction))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HeadIdx != out[j].HeadIdx {
			return out[i].HeadIdx < out[j].HeadIdx
		}
		return out[i].Length < out[j].Length
	})
	return out
}
