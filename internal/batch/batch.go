// Package batch runs the extraction pipeline over many files with a
// bounded worker pool. Cancellation is cooperative: an aborted run returns
// the partial result accumulated so far.
package batch

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/seunghyuoffice-design/hwp2yaml/internal/diag"
	"github.com/seunghyuoffice-design/hwp2yaml/internal/document"
)

// DefaultTimeout bounds how long one file may take before its extraction
// is abandoned.
const DefaultTimeout = 60 * time.Second

// ExtractFunc is the per-file pipeline the pool dispatches to.
type ExtractFunc func(ctx context.Context, path string) (*document.Document, string, error)

// Outcome is the result of one file.
type Outcome struct {
	Path     string
	Method   string
	Doc      *document.Document
	External map[string]any
	Err      error
}

// Result aggregates one batch run.
type Result struct {
	Total      int
	Success    int
	Failed     int
	Outcomes   []Outcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// Processor fans files out over a bounded worker pool.
type Processor struct {
	Workers  int
	Timeout  time.Duration
	Extract  ExtractFunc
	Metadata *MetadataMapper
	Log      *diag.Logger
}

func (p *Processor) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return max(1, runtime.NumCPU()/2)
}

func (p *Processor) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

func (p *Processor) extract() ExtractFunc {
	if p.Extract != nil {
		return p.Extract
	}
	return ExtractFile
}

// ProcessFiles runs every file through the pipeline. Outcomes are appended
// in completion order. When ctx is canceled, files not yet started are
// skipped and the partial result is returned.
func (p *Processor) ProcessFiles(ctx context.Context, files []string) Result {
	result := Result{Total: len(files), StartedAt: time.Now()}

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	done := 0
	record := func(o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Outcomes = append(result.Outcomes, o)
		if o.Err == nil {
			result.Success++
		} else {
			result.Failed++
		}
		done++
		if p.Log != nil {
			if o.Err == nil {
				p.Log.Infof("extracted %d/%d %s (%s)", done, result.Total, o.Path, o.Method)
			} else {
				p.Log.Warnf("failed %d/%d %s: %v", done, result.Total, o.Path, o.Err)
			}
		}
	}

	for i := 0; i < p.workers(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				record(p.processOne(ctx, path))
			}
		}()
	}

feed:
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- path:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	result.FinishedAt = time.Now()
	return result
}

func (p *Processor) processOne(ctx context.Context, path string) Outcome {
	fileCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	doc, method, err := p.extract()(fileCtx, path)
	outcome := Outcome{Path: path, Method: method, Doc: doc, Err: err}
	if err == nil && p.Metadata != nil {
		outcome.External = p.Metadata.Get(path)
	}
	return outcome
}

// ProcessDirectory walks a directory for .hwp/.hwpx files and processes
// them. The walk order is deterministic (fs.WalkDir is lexical).
func (p *Processor) ProcessDirectory(ctx context.Context, dir string, recursive bool) (Result, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hwp", ".hwpx":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return p.ProcessFiles(ctx, files), nil
}
