package charset

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// Codepoint is a single value in the domain a Set ranges over: the Unicode
// scalar range 0..0x10FFFF, plus the reserved Augment sentinel.
type Codepoint int32

const (
	// MaxCodepoint is the highest ordinary Unicode scalar value.
	MaxCodepoint Codepoint = 0x10FFFF
	// Augment is the reserved end-of-rule sentinel codepoint, outside the
	// normal Unicode scalar range so it can never collide with real input.
	Augment Codepoint = 0x200000
)

// Range is an inclusive codepoint range [Lo, Hi].
type Range struct {
	Lo, Hi Codepoint
}

func (r Range) String() string {
	if r.Lo == r.Hi {
		return fmt.Sprintf("%#x", int32(r.Lo))
	}
	return fmt.Sprintf("%#x-%#x", int32(r.Lo), int32(r.Hi))
}

// Set is the character-set algebra the meta-grammar core consumes as a
// collaborator (§6). A concrete Set is always fully normalized: ranges are
// sorted and non-overlapping (§3 "charset always owns a fully normalized
// set value").
type Set interface {
	Union(other Set) Set
	Intersect(other Set) Set
	Diff(other Set) Set
	Complement() Set
	Contains(cp Codepoint) bool
	Equals(other Set) bool
	Hash() uint64
	Clone() Set
	Ranges() []Range
	IsEmpty() bool
}

// RangeSet is the concrete, in-memory Set implementation: an ordered list
// of inclusive codepoint ranges. It is the reference implementation used
// when no other character-set library is plugged into the pipeline.
type RangeSet struct {
	ranges []Range
}

var _ Set = (*RangeSet)(nil)

// universal is the domain complement is computed against: the plain
// Unicode scalar range, explicitly excluding Augment (§3: "complement
// (relative to the universal set plus augment excluded)").
var universal = []Range{{0, MaxCodepoint}}

// Empty returns the empty character set.
func Empty() *RangeSet {
	return &RangeSet{}
}

// Universal returns the set containing every ordinary Unicode scalar value
// (but not Augment).
func Universal() *RangeSet {
	return &RangeSet{ranges: append([]Range(nil), universal...)}
}

// Single returns the singleton set {cp}.
func Single(cp Codepoint) *RangeSet {
	return &RangeSet{ranges: []Range{{cp, cp}}}
}

// FromRange returns the set containing every codepoint in [lo, hi].
func FromRange(lo, hi Codepoint) *RangeSet {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &RangeSet{ranges: []Range{{lo, hi}}}
}

// New builds a normalized RangeSet from arbitrary (possibly overlapping,
// unsorted) ranges.
func New(ranges ...Range) *RangeSet {
	rs := &RangeSet{ranges: append([]Range(nil), ranges...)}
	rs.normalize()
	return rs
}

func (s *RangeSet) normalize() {
	if len(s.ranges) < 2 {
		return
	}
	slices.SortFunc(s.ranges, func(a, b Range) int {
		if a.Lo != b.Lo {
			if a.Lo < b.Lo {
				return -1
			}
			return 1
		}
		return int(a.Hi) - int(b.Hi)
	})
	merged := s.ranges[:1]
	for _, r := range s.ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	s.ranges = merged
}

// Ranges returns the normalized ranges backing this set. Callers must not
// mutate the returned slice.
func (s *RangeSet) Ranges() []Range {
	return s.ranges
}

// IsEmpty reports whether the set contains no codepoints.
func (s *RangeSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Contains reports whether cp is a member of the set.
func (s *RangeSet) Contains(cp Codepoint) bool {
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Hi >= cp })
	return i < len(s.ranges) && s.ranges[i].Lo <= cp
}

// Clone returns a deep copy of the set.
func (s *RangeSet) Clone() Set {
	return &RangeSet{ranges: append([]Range(nil), s.ranges...)}
}

// Union returns the set-theoretic union of s and other.
func (s *RangeSet) Union(other Set) Set {
	o := asRanges(other)
	out := New(append(append([]Range(nil), s.ranges...), o...)...)
	return out
}

// Intersect returns the set-theoretic intersection of s and other.
func (s *RangeSet) Intersect(other Set) Set {
	o := asRanges(other)
	var out []Range
	i, j := 0, 0
	for i < len(s.ranges) && j < len(o) {
		lo := max(s.ranges[i].Lo, o[j].Lo)
		hi := min(s.ranges[i].Hi, o[j].Hi)
		if lo <= hi {
			out = append(out, Range{lo, hi})
		}
		if s.ranges[i].Hi < o[j].Hi {
			i++
		} else {
			j++
		}
	}
	return New(out...)
}

// Diff returns the set-theoretic difference s - other.
func (s *RangeSet) Diff(other Set) Set {
	o := asRanges(other)
	var out []Range
	for _, r := range s.ranges {
		cur := []Range{r}
		for _, sub := range o {
			var next []Range
			for _, c := range cur {
				if sub.Hi < c.Lo || sub.Lo > c.Hi {
					next = append(next, c)
					continue
				}
				if sub.Lo > c.Lo {
					next = append(next, Range{c.Lo, sub.Lo - 1})
				}
				if sub.Hi < c.Hi {
					next = append(next, Range{sub.Hi + 1, c.Hi})
				}
			}
			cur = next
		}
		out = append(out, cur...)
	}
	return New(out...)
}

// Complement returns the complement of s relative to the universal set
// (Unicode scalar range, Augment excluded).
func (s *RangeSet) Complement() Set {
	return Universal().Diff(s)
}

// Equals reports whether s and other denote the same set of codepoints.
func (s *RangeSet) Equals(other Set) bool {
	o := asRanges(other)
	if len(o) != len(s.ranges) {
		return false
	}
	for i, r := range s.ranges {
		if r != o[i] {
			return false
		}
	}
	return true
}

// Hash returns an order-independent-by-construction digest (ranges are
// always stored normalized, so equal sets always hash equal; see §3).
func (s *RangeSet) Hash() uint64 {
	h := xxhash.New()
	buf := make([]byte, 8)
	for _, r := range s.ranges {
		binary.LittleEndian.PutUint64(buf, uint64(uint32(r.Lo)))
		h.Write(buf)
		binary.LittleEndian.PutUint64(buf, uint64(uint32(r.Hi)))
		h.Write(buf)
	}
	return h.Sum64()
}

func (s *RangeSet) String() string {
	out := "["
	for i, r := range s.ranges {
		if i > 0 {
			out += " "
		}
		out += r.String()
	}
	return out + "]"
}

func asRanges(s Set) []Range {
	if rs, ok := s.(*RangeSet); ok {
		return rs.ranges
	}
	return s.Ranges()
}

func max(a, b Codepoint) Codepoint {
	if a > b {
		return a
	}
	return b
}

func min(a, b Codepoint) Codepoint {
	if a < b {
		return a
	}
	return b
}
