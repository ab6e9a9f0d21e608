// Package literal provides types and operations for representing and manipulating
// literal byte sequences extracted from syntax trees.
//
// The primary use case is prefilter optimization: if every match of a pattern
// must begin with one of a few literals (e.g., "error" or "fatal" for
// /(error|fatal): .*/), the search loop can jump straight to the positions
// where those literals occur instead of trying every start offset.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that every match (or one branch of
//     the match) begins with
//   - A Seq is a set of alternative literals (e.g., from alternations like /foo|bar/)
//   - Operations like Minimize and LongestCommonPrefix shrink a Seq without
//     losing the guarantee that every match begins with one of its members
package literal

import (
	"bytes"
	"sort"
)

// Literal represents a literal byte sequence extracted from a pattern.
// The Complete flag indicates whether this literal represents a complete match
// (true) or just a prefix of potential matches (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*world/ → Literal{[]byte("hello"), false} (prefix only)
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
//
// Example:
//
//	lit := literal.NewLiteral([]byte("test"), true)
//	fmt.Println(lit.String()) // Output: literal{test, complete=true}
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals.
//
// A nil *Seq and an empty Seq both mean "no usable literals": the extractor
// could not prove that matches begin with any finite set of byte strings.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("bar"), true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// HasEmpty reports whether any literal has zero length. An empty literal
// imposes no constraint on where a match may begin.
func (s *Seq) HasEmpty() bool {
	if s == nil {
		return false
	}
	for _, lit := range s.literals {
		if len(lit.Bytes) == 0 {
			return true
		}
	}
	return false
}

// Union appends the literals of other that are not already present.
// Equal byte strings are merged; the merged literal is complete only if both were.
func (s *Seq) Union(other *Seq) {
	if other == nil {
		return
	}
	for _, lit := range other.literals {
		s.add(lit)
	}
}

func (s *Seq) add(lit Literal) {
	for i := range s.literals {
		if bytes.Equal(s.literals[i].Bytes, lit.Bytes) {
			s.literals[i].Complete = s.literals[i].Complete && lit.Complete
			return
		}
	}
	s.literals = append(s.literals, lit)
}

// Cross returns the concatenation product of s and other: every complete
// literal of s is extended by every literal of other. Incomplete literals of s
// are carried over unchanged, since nothing is known about what follows them.
//
// Example:
//
//	a := literal.NewSeq(literal.NewLiteral([]byte("a"), true), literal.NewLiteral([]byte("b"), true))
//	b := literal.NewSeq(literal.NewLiteral([]byte("x"), true))
//	a.Cross(b) // ["ax", "bx"]
func (s *Seq) Cross(other *Seq) *Seq {
	out := NewSeq()
	for _, lit := range s.literals {
		if !lit.Complete {
			out.add(lit)
			continue
		}
		for _, next := range other.literals {
			b := make([]byte, 0, len(lit.Bytes)+len(next.Bytes))
			b = append(b, lit.Bytes...)
			b = append(b, next.Bytes...)
			out.add(NewLiteral(b, next.Complete))
		}
	}
	return out
}

// Truncate shortens every literal to at most n bytes. Shortened literals
// become incomplete.
func (s *Seq) Truncate(n int) {
	if s == nil {
		return
	}
	lits := s.literals
	s.literals = s.literals[:0:0]
	for _, lit := range lits {
		if len(lit.Bytes) > n {
			lit = NewLiteral(lit.Bytes[:n:n], false)
		}
		s.add(lit)
	}
}

// MakeInexact marks every literal as incomplete.
func (s *Seq) MakeInexact() {
	if s == nil {
		return
	}
	for i := range s.literals {
		s.literals[i].Complete = false
	}
}

// Minimize removes redundant literals from the sequence.
//
// For prefix matching, a literal L is redundant if there exists a shorter literal S
// that is a prefix of L. For example, in ["foo", "foobar"], "foo" makes "foobar"
// redundant because any position where "foobar" starts also starts with "foo".
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1 (only "foo" remains)
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(current.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
// If the sequence is empty or has no common prefix, returns an empty slice.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("hello"), true),
//	    literal.NewLiteral([]byte("help"), true),
//	    literal.NewLiteral([]byte("hero"), true),
//	)
//	prefix := seq.LongestCommonPrefix()
//	fmt.Println(string(prefix)) // Output: he
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	prefix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}

	result := make([]byte, len(prefix))
	copy(result, prefix)
	return result
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
