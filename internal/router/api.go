// Package router classifies newline-delimited log lines into categories.
//
// Each line is written to the first category whose pattern matches it. Lines
// matching no pattern go to the default category, if one is configured, and
// are dropped otherwise. A line is never written to more than one category.
package router

import (
	"context"
	"io"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"golang.org/x/sys/cpu"

	"github.com/coregx/relog"
)

// DefaultBatchSize is the number of lines classified together when Options
// leaves BatchSize unset.
const DefaultBatchSize = 256

// Category is a routing target. A nil Regex never matches; such a category
// only receives lines as the default category.
type Category struct {
	Name   string
	Regex  *relog.Regex
	Output io.Writer
}

// Options tune a Router. The zero value drops unmatched lines and classifies
// on the calling goroutine.
type Options struct {
	DefaultCategory string // Receives unmatched lines. Empty: drop them.
	Workers         int    // Goroutines classifying a batch. Default: 1.
	BatchSize       int    // Lines per batch. Default: DefaultBatchSize.
}

// Stats summarises one call to Run.
type Stats struct {
	Lines     uint64
	Unmatched uint64 // Lines matching no pattern.
	Dropped   uint64 // Unmatched lines with no default category.
	Counts    map[string]uint64
}

// counter is padded so that workers bumping the counters of neighbouring
// categories do not contend for one cache line.
type counter struct {
	_     cpu.CacheLinePad
	value uint64
}

// Router writes each input line to the first category that matches it.
type Router struct {
	categories   []Category
	defaultIndex int
	workers      int
	batchSize    int
	logger       log.DebugLogger
	lines        []counter // Indexed like categories.
	unmatched    counter
	dropped      counter
}

// New creates a Router. Categories are tried in order. It returns an error if
// a name is empty or repeated, an Output is nil, or the default category is
// not one of the categories.
func New(categories []Category, opts Options,
	logger log.DebugLogger) (*Router, error) {
	return newRouter(categories, opts, logger)
}

// Classify returns the index of the category line belongs to, or -1 if the
// line is dropped.
func (r *Router) Classify(line string) int {
	return r.classify(line)
}

// Run reads lines from input until EOF and writes each one, followed by a
// newline, to the Output of its category. A final line without a newline is
// still routed. Lines are written in input order. Run stops between batches
// when ctx is cancelled, returning ctx.Err().
func (r *Router) Run(ctx context.Context, input io.Reader) (Stats, error) {
	return r.run(ctx, input)
}

// Counts returns the number of lines classified into each category since the
// Router was created. Counters are updated by the classifying goroutines, so
// Counts may be read while Run is in progress.
func (r *Router) Counts() map[string]uint64 {
	return r.counts()
}

// Unmatched returns the number of lines classified since the Router was
// created that matched no pattern.
func (r *Router) Unmatched() uint64 {
	return r.loadUnmatched()
}

// RegisterMetrics publishes a "lines" counter for each category under
// dir/<category>, and "unmatched" and "dropped" counters under dir.
func (r *Router) RegisterMetrics(dir *tricorder.DirectorySpec) error {
	return r.registerMetrics(dir)
}

// OpenOutputs creates dir/<name>.log for each name, buffered. The returned
// function flushes and closes every file and returns the first error.
func OpenOutputs(dir string, names []string) (map[string]io.Writer, func() error, error) {
	return openOutputs(dir, names)
}
