package symtab

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dewy-lang/metagrammar/charset"
)

func tracer() tracing.Trace {
	return gtrace.SyntaxTracer
}

// Kind distinguishes what a Symbol's value denotes.
type Kind int8

const (
	// Identifier is a reference to another rule by name.
	Identifier Kind = iota
	// StringLiteral is an interned quoted-string terminal.
	StringLiteral
	// Charset is an interned, normalized character-set value.
	Charset
	// Anonymous is a synthesized non-terminal with no surface name
	// (introduced by the CFG lowerer for anonymous sub-expressions).
	Anonymous
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case StringLiteral:
		return "string"
	case Charset:
		return "charset"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Symbol is one entry in the store: a kind tag plus the interned value.
// Value is a string for Identifier/StringLiteral, a charset.Set for
// Charset, and for Anonymous a generated "#n" name string, n counting
// anonymous symbols in mint order (not the symbol's Index).
type Symbol struct {
	Kind  Kind
	Value interface{}
}

// Index is a stable, dense integer identity for a Symbol. Indices are
// never recycled (§4.3).
type Index int

// Store is an append-only interning table. The zero value is not usable;
// construct with New.
//
// Store is not safe for concurrent use (§5): callers serialize access,
// e.g. by owning one Store per compilation.
type Store struct {
	// dense is the append-only symbol array backing every Index. It uses
	// the dynamic-array collaborator named in §6 ("dynamic array of
	// pointers with amortized O(1) append and indexed access") rather
	// than a bare slice.
	dense   *arraylist.List
	byIdent map[string]Index
	byStr   map[string]Index
	// byCharset buckets candidate indices by hash, since two distinct
	// charset.Set values may collide on Hash(); equality is the final
	// arbiter (mirrors how a hash-set collaborator, §6, is expected to
	// behave).
	byCharset map[uint64][]Index
	anonSeq   int
}

// New creates an empty Symbol Store.
func New() *Store {
	return &Store{
		dense:     arraylist.New(),
		byIdent:   make(map[string]Index),
		byStr:     make(map[string]Index),
		byCharset: make(map[uint64][]Index),
	}
}

// InternIdentifier interns a rule-reference name, returning its stable index.
func (s *Store) InternIdentifier(name string) Index {
	if idx, ok := s.byIdent[name]; ok {
		return idx
	}
	idx := s.append(Symbol{Kind: Identifier, Value: name})
	s.byIdent[name] = idx
	tracer().Debugf("symtab: interned identifier %q at #%d", name, idx)
	return idx
}

// InternString interns a literal terminal string, returning its stable index.
func (s *Store) InternString(lit string) Index {
	if idx, ok := s.byStr[lit]; ok {
		return idx
	}
	idx := s.append(Symbol{Kind: StringLiteral, Value: lit})
	s.byStr[lit] = idx
	tracer().Debugf("symtab: interned string %q at #%d", lit, idx)
	return idx
}

// InternCharset interns a normalized character-set value, returning its
// stable index. Two calls with equal (by Set.Equals) values yield the same
// index, per §4.3's determinism guarantee.
func (s *Store) InternCharset(set charset.Set) Index {
	h := set.Hash()
	for _, cand := range s.byCharset[h] {
		sym, _ := s.Get(cand)
		if existing, ok := sym.Value.(charset.Set); ok && existing.Equals(set) {
			return cand
		}
	}
	idx := s.append(Symbol{Kind: Charset, Value: set})
	s.byCharset[h] = append(s.byCharset[h], idx)
	tracer().Debugf("symtab: interned charset %v at #%d", set, idx)
	return idx
}

// NewAnonymous allocates a fresh anonymous non-terminal symbol. Unlike the
// other Intern* calls, this never returns an existing index: every call
// mints a new synthesized symbol (used by cfg lowering for sub-expressions
// that need their own grammar symbol but have no surface name).
func (s *Store) NewAnonymous() Index {
	s.anonSeq++
	name := fmt.Sprintf("#%d", s.anonSeq)
	idx := s.append(Symbol{Kind: Anonymous, Value: name})
	tracer().Debugf("symtab: minted anonymous symbol %v at #%d", name, idx)
	return idx
}

func (s *Store) append(sym Symbol) Index {
	idx := Index(s.dense.Size())
	s.dense.Add(sym)
	return idx
}

// Get performs the constant-time reverse lookup: index -> (kind, value).
// The second return value is false if idx is out of range.
func (s *Store) Get(idx Index) (Symbol, bool) {
	v, ok := s.dense.Get(int(idx))
	if !ok {
		return Symbol{}, false
	}
	return v.(Symbol), true
}

// Len returns the number of interned symbols.
func (s *Store) Len() int {
	return s.dense.Size()
}

// Ordered iterates every symbol in first-seen (allocation) order, calling
// fn for each. Iteration order is a pure function of intern call order
// (§8 invariant 4), making this suitable for deterministic output such as
// a CFG dump.
func (s *Store) Ordered(fn func(idx Index, sym Symbol)) {
	s.dense.Each(func(i int, v interface{}) {
		fn(Index(i), v.(Symbol))
	})
}
