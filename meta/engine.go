package meta

import (
	"sync/atomic"

	"github.com/coregx/relog/backtrack"
	"github.com/coregx/relog/prefilter"
	"github.com/coregx/relog/syntax"
)

// Engine is a compiled pattern together with its selected search strategy.
//
// The Engine:
//  1. Parses the pattern into a syntax tree
//  2. Selects the strategy (plain backtracking or prefiltered)
//  3. Coordinates the search between the prefilter and the interpreter
//
// Thread safety: the tree and the prefilter are immutable after compilation
// and statistics are updated atomically, so one Engine may be shared by any
// number of goroutines.
//
// Example:
//
//	engine, err := meta.Compile(`(foo|bar)\d+`, meta.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	if m, ok := engine.Find([]byte("test foo123 end")); ok {
//	    println(m.String()) // "foo123"
//	}
type Engine struct {
	// stats MUST be first for 8-byte alignment of its atomics on 32-bit platforms.
	stats Stats

	pattern   string
	ast       *syntax.Node
	prefilter prefilter.Prefilter
	strategy  Strategy
	config    Config
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts calls to IsMatch, Find and FindAt.
	Searches uint64

	// PrefilterHits counts prefilter candidates confirmed by the interpreter.
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates rejected by the interpreter.
	PrefilterMisses uint64
}

// Compile parses pattern and builds an Engine.
//
// Returns a *syntax.Error if the pattern is malformed, or a *ConfigError if
// config is out of range.
func Compile(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	re, err := syntax.ParseWithFlags(pattern, syntax.Flags{
		FoldCase: config.CaseInsensitive,
		MaxDepth: config.MaxNestingDepth,
	})
	if err != nil {
		return nil, err
	}

	strategy, pf := selectStrategy(re, config)
	return &Engine{
		pattern:   pattern,
		ast:       re,
		prefilter: pf,
		strategy:  strategy,
		config:    config,
	}, nil
}

// Pattern returns the source text the engine was compiled from.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Syntax returns the parsed tree. It must not be modified.
func (e *Engine) Syntax() *syntax.Node {
	return e.ast
}

// Strategy returns the execution strategy selected for this engine.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Config returns the configuration the engine was compiled with.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns a snapshot of execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:        atomic.LoadUint64(&e.stats.Searches),
		PrefilterHits:   atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses: atomic.LoadUint64(&e.stats.PrefilterMisses),
	}
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
}

// IsMatch reports whether the pattern matches anywhere in haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	_, _, ok := e.find(haystack)
	return ok
}

// Find returns the first match in haystack: the lowest start offset at which
// the interpreter succeeds, and the end it reports there.
//
// Example:
//
//	m, ok := engine.Find([]byte("say hello"))
//	if ok {
//	    println(m.Start(), m.End())
//	}
func (e *Engine) Find(haystack []byte) (Match, bool) {
	start, end, ok := e.find(haystack)
	if !ok {
		return Match{}, false
	}
	return Match{start: start, end: end, haystack: haystack}, true
}

// FindIndices returns the bounds of the first match without allocating.
func (e *Engine) FindIndices(haystack []byte) (start, end int, found bool) {
	return e.find(haystack)
}

// FindAt returns the first match starting at or after offset at. Anchors are
// still evaluated against the whole haystack, so "^a" never matches for at > 0.
func (e *Engine) FindAt(haystack []byte, at int) (start, end int, found bool) {
	return e.findAt(haystack, at)
}

func (e *Engine) find(haystack []byte) (start, end int, ok bool) {
	return e.findAt(haystack, 0)
}

func (e *Engine) findAt(haystack []byte, at int) (start, end int, ok bool) {
	atomic.AddUint64(&e.stats.Searches, 1)
	if at < 0 {
		at = 0
	}
	if at > len(haystack) {
		return -1, -1, false
	}

	switch e.strategy {
	case UsePrefilter:
		return e.findPrefilter(haystack, at)
	default:
		return backtrack.Search(e.ast, haystack, at)
	}
}

// findPrefilter visits candidate offsets in ascending order, so the first
// verified candidate is the same match the plain offset loop would report.
// Every match begins with a non-empty required literal, so no match can start
// at len(haystack).
func (e *Engine) findPrefilter(haystack []byte, at int) (start, end int, ok bool) {
	for at < len(haystack) {
		pos := e.prefilter.Find(haystack, at)
		if pos < 0 {
			break
		}
		if matched, matchEnd := backtrack.MatchAt(e.ast, haystack, pos); matched {
			atomic.AddUint64(&e.stats.PrefilterHits, 1)
			return pos, matchEnd, true
		}
		atomic.AddUint64(&e.stats.PrefilterMisses, 1)
		at = pos + 1
	}
	return -1, -1, false
}
