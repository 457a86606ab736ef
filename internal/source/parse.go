package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/mgpai22/srtcue/internal/subtitle"
)

// outcome of parsing one document
type FileResult struct {
	Name    string
	Charset string
	Result  *subtitle.Result
	Err     error
}

// cue skipped under the lenient policy, tagged with its document
type SkippedCue struct {
	Name string
	Err  error
}

func (e *SkippedCue) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *SkippedCue) Unwrap() error {
	return e.Err
}

// ParseDocument runs the ingestion pipeline over one loaded document.
// OnSkip receives a *SkippedCue naming the document.
func ParseDocument(doc Document, opts subtitle.ParseOptions) FileResult {
	if onSkip := opts.OnSkip; onSkip != nil {
		opts.OnSkip = func(err error) {
			onSkip(&SkippedCue{Name: doc.Name, Err: err})
		}
	}

	result, err := subtitle.ParseWithOptions(doc.Content, opts)
	if err != nil {
		err = fmt.Errorf("%s: %w", doc.Name, err)
	}
	return FileResult{
		Name:    doc.Name,
		Charset: doc.Charset,
		Result:  result,
		Err:     err,
	}
}

// ParseFiles reads and parses paths with up to workers goroutines. Results
// keep input order; archives expand in place. A file that cannot be read
// produces a FileResult carrying the error rather than stopping the others.
func ParseFiles(
	ctx context.Context,
	paths []string,
	workers int,
	readOpts ReadOptions,
	parseOpts subtitle.ParseOptions,
) []FileResult {
	if len(paths) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}

	perPath := make([][]FileResult, len(paths))

	workChan := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers && i < len(paths); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workChan {
				perPath[idx] = parsePath(ctx, paths[idx], readOpts, parseOpts)
			}
		}()
	}

	go func() {
		defer close(workChan)
		for i := range paths {
			select {
			case <-ctx.Done():
				return
			case workChan <- i:
			}
		}
	}()

	wg.Wait()

	var results []FileResult
	for i, r := range perPath {
		if r == nil {
			// never dispatched because ctx was cancelled
			r = []FileResult{{Name: paths[i], Err: ctx.Err()}}
		}
		results = append(results, r...)
	}
	return results
}

func parsePath(
	ctx context.Context,
	path string,
	readOpts ReadOptions,
	parseOpts subtitle.ParseOptions,
) []FileResult {
	docs, err := ReadFile(ctx, path, readOpts)
	if err != nil {
		return []FileResult{{Name: path, Err: err}}
	}

	results := make([]FileResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, ParseDocument(doc, parseOpts))
	}
	return results
}
