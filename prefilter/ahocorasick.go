package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/relog/literal"
)

// ahoCorasickPrefilter finds the leftmost occurrence of any of several
// literals in one pass, e.g. for /error|fatal|panic/ or case-insensitive words.
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	complete  bool
	litLen    int
	maxLen    int // Longest literal.
}

// newAhoCorasickPrefilter builds an automaton over every literal in seq.
// Returns nil if the automaton cannot be built; the caller then searches
// without a prefilter.
func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	complete := true
	litLen := -1
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		complete = complete && lit.Complete
		switch {
		case litLen == -1:
			litLen = lit.Len()
		case litLen != lit.Len():
			litLen = 0
		}
	}

	automaton, err := builder.Build()
	if err != nil {
		return nil
	}
	if litLen < 0 {
		litLen = 0
	}
	return &ahoCorasickPrefilter{
		automaton: automaton,
		complete:  complete,
		litLen:    litLen,
		maxLen:    maxLen(seq),
	}
}

// Find implements Prefilter.Find.
//
// The automaton reports the literal that ends first, which need not be the one
// that starts first: for {error, rr} in "error" it reports "rr" at 1. A literal
// starting before m.Start ends at or after m.End, so it starts no earlier than
// m.End-maxLen. Those offsets are checked with anchored lookups.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	for pos := max(start, m.End-p.maxLen); pos < m.Start; pos++ {
		if p.automaton.FindAt(haystack, pos) != nil {
			return pos
		}
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen. Literals of differing lengths
// report 0.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	if p.complete {
		return p.litLen
	}
	return 0
}
