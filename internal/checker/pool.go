// Package checker parses and validates many style files concurrently.
package checker

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/NissesSenap/plotstyle/internal/logging"
	"github.com/NissesSenap/plotstyle/internal/schema"
	"github.com/NissesSenap/plotstyle/internal/style"
)

// Report holds the schema problems found in one file
type Report struct {
	Path     string
	Problems []schema.Problem
}

// HasErrors reports whether any problem in the report is an error
func (r Report) HasErrors() bool {
	return schema.HasErrors(r.Problems)
}

// Pool checks a set of style files with bounded concurrency
type Pool struct {
	paths     []string
	semaphore chan struct{}
	logger    *log.Logger
	opts      []style.ParseOption
	errors    map[string]error
	mu        sync.Mutex
}

// Option configures a Pool
type Option func(*Pool)

// WithLogger sets the logger used for per-file failures
func WithLogger(logger *log.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithParseOptions passes options through to style.ParseFile
func WithParseOptions(opts ...style.ParseOption) Option {
	return func(p *Pool) {
		p.opts = append(p.opts, opts...)
	}
}

// NewPool creates a Pool that checks at most maxConcurrent files at once
func NewPool(paths []string, maxConcurrent int, opts ...Option) *Pool {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	p := &Pool{
		paths:     paths,
		semaphore: make(chan struct{}, maxConcurrent),
		logger:    logging.Discard(),
		errors:    make(map[string]error),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckAll parses every file and runs it through the schema.
//
// Files that cannot be read or parsed are recorded in Errors and do not
// stop the others. Reports come back sorted by path, one per file that
// parsed.
func (p *Pool) CheckAll(ctx context.Context, s *schema.Schema) ([]Report, error) {
	var (
		wg      sync.WaitGroup
		reports []Report
	)

	for _, path := range p.paths {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			select {
			case p.semaphore <- struct{}{}:
			case <-ctx.Done():
				p.fail(path, ctx.Err())
				return
			}
			defer func() { <-p.semaphore }()

			if err := ctx.Err(); err != nil {
				p.fail(path, err)
				return
			}

			table, err := style.ParseFile(path, p.opts...)
			if err != nil {
				p.fail(path, err)
				return
			}

			report := Report{Path: path, Problems: s.Check(table)}
			p.logger.Debug("checked style file", "path", path, "problems", len(report.Problems))

			p.mu.Lock()
			reports = append(reports, report)
			p.mu.Unlock()
		}(path)
	}

	wg.Wait()

	sort.Slice(reports, func(i, j int) bool { return reports[i].Path < reports[j].Path })

	p.mu.Lock()
	failed := len(p.errors)
	p.mu.Unlock()
	if failed > 0 {
		return reports, fmt.Errorf("failed to check %d files", failed)
	}
	return reports, nil
}

func (p *Pool) fail(path string, err error) {
	p.mu.Lock()
	p.errors[path] = err
	p.mu.Unlock()
	p.logger.Error("failed to check style file", "path", path, "err", err)
}

// Errors returns a copy of the per-file errors
func (p *Pool) Errors() map[string]error {
	p.mu.Lock()
	defer p.mu.Unlock()

	errorsCopy := make(map[string]error, len(p.errors))
	for k, v := range p.errors {
		errorsCopy[k] = v
	}
	return errorsCopy
}
