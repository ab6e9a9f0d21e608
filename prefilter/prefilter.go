// Package prefilter provides fast candidate filtering for regex search using
// extracted literal sequences.
//
// A prefilter is used to quickly reject start offsets in the haystack where no
// match can begin. The search loop asks the prefilter for the next candidate
// offset and runs the interpreter only there.
//
// The package selects the prefilter strategy based on the extracted literals:
//   - Single byte → memchr (bytes.IndexByte)
//   - Several single bytes → 256-entry byte set scan
//   - Single substring, or a long common prefix → memmem (bytes.Index)
//   - Several substrings → Aho-Corasick automaton
//
// Example usage:
//
//	re, _ := syntax.Parse("(hello|world)")
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(re)
//
//	pf := prefilter.NewBuilder(prefixes).Build()
//	pos := pf.Find([]byte("foo hello bar world baz"), 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"

	"github.com/coregx/relog/literal"
)

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
//
// Key methods:
//   - Find: returns the next candidate position
//   - IsComplete: indicates if prefilter match is sufficient (no verification needed)
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or after
	// 'start', or -1 if no candidate is found.
	//
	// A candidate means one of the prefilter literals begins there. It does
	// NOT guarantee a full match; the caller verifies with the interpreter.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a prefilter match guarantees a full match.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete()
	// is true, 0 otherwise.
	LiteralLen() int
}

// minMemmemPrefix is the shortest common prefix worth searching with memmem
// instead of a multi-literal automaton.
const minMemmemPrefix = 3

// Builder constructs the optimal prefilter from extracted literals.
//
// Selection strategy (in order of preference):
//  1. Single byte literal → memchr
//  2. Single substring literal → memmem
//  3. All literals one byte long → byte set
//  4. Common prefix of at least 3 bytes → memmem on the prefix
//  5. Several literals → Aho-Corasick
//  6. No literals → nil (no prefilter)
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a new prefilter builder from prefix literals, as
// returned by literal.Extractor.ExtractPrefixes.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{
		prefixes: prefixes,
	}
}

// Build constructs the best prefilter for the given literals.
//
// Returns nil if no effective prefilter can be built.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes)
}

// selectPrefilter chooses the best prefilter strategy based on the literal sequence.
func selectPrefilter(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	if maxLen(seq) == 1 {
		return newByteSetPrefilter(seq)
	}

	if lcp := seq.LongestCommonPrefix(); len(lcp) >= minMemmemPrefix {
		return newMemmemPrefilter(lcp, false)
	}

	return newAhoCorasickPrefilter(seq)
}

// maxLen returns the maximum literal length in the sequence.
func maxLen(seq *literal.Seq) int {
	n := 0
	for i := 0; i < seq.Len(); i++ {
		n = max(n, seq.Get(i).Len())
	}
	return n
}

// memchrPrefilter searches for a single byte.
//
// Example patterns:
//
//	/a.*/         → search for 'a'
//	/x\d+/        → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.IndexByte.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// memmemPrefilter searches for a single substring.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/prefix.*/    → search for "prefix"
//	/error(A|B)/  → search for the common prefix "error"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle to prevent aliasing.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.Index.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// byteSetPrefilter scans for any byte of a small set, as produced by
// /[abc]x/, /\d+/ or case-insensitive single letters.
type byteSetPrefilter struct {
	set      [256]bool
	complete bool
}

func newByteSetPrefilter(seq *literal.Seq) Prefilter {
	p := &byteSetPrefilter{complete: true}
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		p.set[lit.Bytes[0]] = true
		p.complete = p.complete && lit.Complete
	}
	return p
}

// Find implements Prefilter.Find with a table lookup per byte.
func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	for i := start; i < len(haystack); i++ {
		if p.set[haystack[i]] {
			return i
		}
	}
	return -1
}

// IsComplete implements Prefilter.IsComplete.
func (p *byteSetPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *byteSetPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}
