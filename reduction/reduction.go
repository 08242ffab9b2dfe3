package reduction

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Reduction is the RNGLR reduction-action primitive (§4.4): popping
// Length items off the graph-structured stack and pushing a node labeled
// HeadIdx. It is an immutable value type once constructed (§3
// "Lifecycles": "Reductions are immutable once constructed").
type Reduction struct {
	HeadIdx uint64
	Length  uint64
}

// New builds a Reduction.
func New(headIdx, length uint64) Reduction {
	return Reduction{HeadIdx: headIdx, Length: length}
}

// Equals reports whether two reductions denote the same action: both
// fields equal (§4.4).
func (r Reduction) Equals(other Reduction) bool {
	return r.HeadIdx == other.HeadIdx && r.Length == other.Length
}

// Hash computes an order-sensitive 64-bit digest of (length, head_idx),
// matching §4.4's `hash(r) = H([r.length, r.head_idx])`. xxHash is the
// implementation choice named in §4.4 ("FNV-1a or xxHash").
func (r Reduction) Hash() uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], r.Length)
	binary.LittleEndian.PutUint64(buf[8:16], r.HeadIdx)
	return xxhash.Sum64(buf[:])
}

// String renders the structural form `R(<head>, <length>)`.
func (r Reduction) String() string {
	return "R(" + strconv.FormatUint(r.HeadIdx, 10) + ", " + strconv.FormatUint(r.Length, 10) + ")"
}

// PrintWidth computes the rendered width of String() without
// materializing it (§4.4: "a structural printer ... whose width is
// computable without materializing the string").
func (r Reduction) PrintWidth() int {
	// "R(" + head digits + ", " + length digits + ")"
	return 2 + digitWidth(r.HeadIdx) + 2 + digitWidth(r.Length) + 1
}

func digitWidth(v uint64) int {
	if v == 0 {
		return 1
	}
	n := 0
	for v > 0 {
		n++
		v /= 10
	}
	return n
}
