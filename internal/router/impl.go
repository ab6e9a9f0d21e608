package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/Cloud-Foundations/Dominator/lib/concurrent"
	"github.com/Cloud-Foundations/Dominator/lib/log"
)

func newRouter(categories []Category, opts Options,
	logger log.DebugLogger) (*Router, error) {
	names := make(map[string]struct{}, len(categories))
	defaultIndex := -1
	for index, category := range categories {
		if category.Name == "" {
			return nil, fmt.Errorf("category %d has no name", index)
		}
		if _, ok := names[category.Name]; ok {
			return nil, fmt.Errorf("duplicate category: %s", category.Name)
		}
		names[category.Name] = struct{}{}
		if category.Output == nil {
			return nil, fmt.Errorf("category %s has no output", category.Name)
		}
		if category.Name == opts.DefaultCategory {
			defaultIndex = index
		}
	}
	if opts.DefaultCategory != "" && defaultIndex < 0 {
		return nil, fmt.Errorf("unknown default category: %s",
			opts.DefaultCategory)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Router{
		categories:   categories,
		defaultIndex: defaultIndex,
		workers:      opts.Workers,
		batchSize:    opts.BatchSize,
		logger:       logger,
		lines:        make([]counter, len(categories)),
	}, nil
}

// match returns the first category whose pattern matches line, or -1.
func (r *Router) match(line string) int {
	for index, category := range r.categories {
		if category.Regex != nil && category.Regex.MatchString(line) {
			return index
		}
	}
	return -1
}

func (r *Router) classify(line string) int {
	if index := r.match(line); index >= 0 {
		return index
	}
	return r.defaultIndex
}

type batch struct {
	lines   []string
	targets []int // -1: unmatched.
}

func (r *Router) run(ctx context.Context, input io.Reader) (Stats, error) {
	stats := Stats{Counts: make(map[string]uint64, len(r.categories))}
	reader := bufio.NewReader(input)
	b := &batch{
		lines:   make([]string, 0, r.batchSize),
		targets: make([]int, r.batchSize),
	}
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		eof, err := b.fill(reader, r.batchSize)
		if err != nil {
			return stats, err
		}
		if len(b.lines) > 0 {
			if err := r.classifyBatch(b); err != nil {
				return stats, err
			}
			if err := r.writeBatch(b, &stats); err != nil {
				return stats, err
			}
		}
		if eof {
			break
		}
	}
	r.logger.Debugf(1, "routed %d lines, %d unmatched, %d dropped\n",
		stats.Lines, stats.Unmatched, stats.Dropped)
	return stats, nil
}

// fill reads up to size lines into b, stripping the line terminator. It
// reports whether input is exhausted.
func (b *batch) fill(reader *bufio.Reader, size int) (bool, error) {
	b.lines = b.lines[:0]
	for len(b.lines) < size {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}
			b.lines = append(b.lines, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return true, nil
			}
			return false, err
		}
	}
	return false, nil
}

// classifyBatch fills b.targets. With several workers the batch is split into
// contiguous chunks classified concurrently; positions are fixed so output
// order does not depend on scheduling.
func (r *Router) classifyBatch(b *batch) error {
	targets := b.targets[:len(b.lines)]
	if r.workers < 2 || len(b.lines) < 2 {
		r.classifyChunk(b.lines, targets)
		return nil
	}
	state := concurrent.NewState(uint(r.workers))
	chunk := (len(b.lines) + r.workers - 1) / r.workers
	for start := 0; start < len(b.lines); start += chunk {
		lines := b.lines[start:min(start+chunk, len(b.lines))]
		out := targets[start : start+len(lines)]
		err := state.GoRun(func() error {
			r.classifyChunk(lines, out)
			return nil
		})
		if err != nil {
			state.Reap()
			return err
		}
	}
	return state.Reap()
}

// classifyChunk stores the matching category of each line in targets and
// bumps the shared counters. It runs on several goroutines at once.
func (r *Router) classifyChunk(lines []string, targets []int) {
	for i, line := range lines {
		index := r.match(line)
		targets[i] = index
		if index < 0 {
			atomic.AddUint64(&r.unmatched.value, 1)
			index = r.defaultIndex
		}
		if index < 0 {
			atomic.AddUint64(&r.dropped.value, 1)
			continue
		}
		atomic.AddUint64(&r.lines[index].value, 1)
	}
}

func (r *Router) writeBatch(b *batch, stats *Stats) error {
	for i, line := range b.lines {
		stats.Lines++
		index := b.targets[i]
		if index < 0 {
			stats.Unmatched++
			index = r.defaultIndex
		}
		if index < 0 {
			stats.Dropped++
			r.logger.Debugf(2, "dropped: %s\n", line)
			continue
		}
		category := r.categories[index]
		if _, err := io.WriteString(category.Output, line+"\n"); err != nil {
			return fmt.Errorf("error writing to %s: %w", category.Name, err)
		}
		stats.Counts[category.Name]++
	}
	return nil
}

func (r *Router) counts() map[string]uint64 {
	counts := make(map[string]uint64, len(r.categories))
	for index, category := range r.categories {
		counts[category.Name] = atomic.LoadUint64(&r.lines[index].value)
	}
	return counts
}

func (r *Router) loadUnmatched() uint64 {
	return atomic.LoadUint64(&r.unmatched.value)
}
