package literal

import (
	"github.com/coregx/relog/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Character classes like [abc] are expanded to ["a", "b", "c"].
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// maxDepth bounds recursion into nested groups.
const maxDepth = 100

// Extractor extracts literal sequences from syntax trees.
//
// Example:
//
//	re, _ := syntax.Parse("(hello|world)")
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(re)
//	// prefixes = ["hello", "world"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// ExtractPrefixes returns literals such that every match of re, wherever it
// starts, begins with at least one of them.
//
// The result is empty when no such finite set is known: patterns that can
// match the empty string, patterns starting with '.', or with classes larger
// than MaxClassSize.
//
// Examples:
//
//	"hello"         → ["hello"]
//	"(foo|bar)"     → ["foo", "bar"]
//	"[abc]test"     → ["atest", "btest", "ctest"]
//	"hello.*world"  → ["hello"]
//	"^abc"          → ["abc"]
//	".*foo"         → []
//	"a?"            → []
func (e *Extractor) ExtractPrefixes(re *syntax.Node) *Seq {
	seq, ok := e.prefixes(re, 0)
	if !ok || seq.IsEmpty() || seq.HasEmpty() {
		return NewSeq()
	}
	seq.Minimize()
	return seq
}

// prefixes returns the prefix literals of n. ok is false when n's matches
// cannot be described by a bounded set of prefixes.
func (e *Extractor) prefixes(n *syntax.Node, depth int) (*Seq, bool) {
	if depth > maxDepth {
		return nil, false
	}

	switch n.Op {
	case syntax.OpChar:
		if n.IsEpsilon() {
			return NewSeq(NewLiteral([]byte{}, true)), true
		}
		return NewSeq(NewLiteral([]byte{n.Char}, true)), true

	case syntax.OpCharClass:
		members := n.Class.Members()
		if len(members) > e.config.MaxClassSize {
			return nil, false
		}
		seq := NewSeq()
		for _, c := range members {
			seq.add(NewLiteral([]byte{c}, true))
		}
		return seq, true

	case syntax.OpStartAnchor, syntax.OpEndAnchor:
		// Zero width: contributes nothing to the matched text.
		return NewSeq(NewLiteral([]byte{}, true)), true

	case syntax.OpAlternate:
		return e.alternatePrefixes(n, depth)

	case syntax.OpConcat:
		return e.concatPrefixes(n, depth)

	case syntax.OpPlus:
		seq, ok := e.prefixes(n.Sub, depth+1)
		if ok {
			seq.MakeInexact()
		}
		return seq, ok

	case syntax.OpRepeat:
		if n.Min == 0 {
			return nil, false
		}
		seq, ok := e.prefixes(n.Sub, depth+1)
		if ok && !(n.Min == 1 && n.Max == 1) {
			seq.MakeInexact()
		}
		return seq, ok

	case syntax.OpGroup:
		return e.prefixes(n.Sub, depth+1)
	}

	// OpAny, OpStar, OpQuest: unbounded or possibly empty.
	return nil, false
}

// alternatePrefixes unions the prefixes of every branch of a left-leaning
// alternation chain.
func (e *Extractor) alternatePrefixes(n *syntax.Node, depth int) (*Seq, bool) {
	var branches []*syntax.Node
	for ; n.Op == syntax.OpAlternate; n = n.Left {
		branches = append(branches, n.Right)
	}
	branches = append(branches, n)

	out := NewSeq()
	for i := len(branches) - 1; i >= 0; i-- {
		seq, ok := e.prefixes(branches[i], depth+1)
		if !ok {
			return nil, false
		}
		out.Union(seq)
		if out.Len() > e.config.MaxLiterals {
			return nil, false
		}
	}
	return out, true
}

// concatPrefixes extends prefixes operand by operand along a left-leaning
// concatenation chain, stopping once no literal can grow further.
func (e *Extractor) concatPrefixes(n *syntax.Node, depth int) (*Seq, bool) {
	var operands []*syntax.Node
	for ; n.Op == syntax.OpConcat; n = n.Left {
		operands = append(operands, n.Right)
	}
	operands = append(operands, n)

	out, ok := e.prefixes(operands[len(operands)-1], depth+1)
	if !ok {
		return nil, false
	}
	for i := len(operands) - 2; i >= 0; i-- {
		if !anyComplete(out) {
			break
		}
		next, ok := e.prefixes(operands[i], depth+1)
		if !ok {
			out.MakeInexact()
			break
		}
		crossed := out.Cross(next)
		if crossed.Len() > e.config.MaxLiterals {
			out.MakeInexact()
			break
		}
		out = crossed
		out.Truncate(e.config.MaxLiteralLen)
	}
	return out, true
}

func anyComplete(s *Seq) bool {
	for _, lit := range s.literals {
		if lit.Complete {
			return true
		}
	}
	return false
}
