package meta

import (
	"github.com/coregx/relog/literal"
	"github.com/coregx/relog/prefilter"
	"github.com/coregx/relog/syntax"
)

// Strategy represents the execution strategy for regex matching.
type Strategy int

const (
	// UseBacktrack runs the interpreter at every start offset in ascending
	// order. Selected when Optimize is off or no sound prefilter exists:
	//   - the pattern can match the empty string
	//   - a match may begin with '.', a large class or a quantifier that
	//     allows zero repetitions
	UseBacktrack Strategy = iota

	// UsePrefilter runs the interpreter only at offsets where one of the
	// pattern's required prefix literals begins.
	UsePrefilter
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseBacktrack:
		return "UseBacktrack"
	case UsePrefilter:
		return "UsePrefilter"
	default:
		return "Unknown"
	}
}

// selectStrategy analyzes the tree and returns the strategy together with
// the prefilter it needs, if any.
func selectStrategy(re *syntax.Node, config Config) (Strategy, prefilter.Prefilter) {
	if !config.Optimize {
		return UseBacktrack, nil
	}

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: config.MaxLiteralLen,
		MaxClassSize:  config.MaxClassSize,
	})
	pf := prefilter.NewBuilder(extractor.ExtractPrefixes(re)).Build()
	if pf == nil {
		return UseBacktrack, nil
	}
	return UsePrefilter, pf
}
