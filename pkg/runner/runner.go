package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/spanrender/internal/logging"
	"github.com/yaklabco/spanrender/pkg/engine"
	"github.com/yaklabco/spanrender/pkg/fsutil"
	"github.com/yaklabco/spanrender/pkg/wire"
)

// Runner processes message files with a shared Engine.
type Runner struct {
	Engine *engine.Engine
}

// New creates a new Runner. The engine must be safe for concurrent use,
// which every *engine.Engine is.
func New(eng *engine.Engine) *Runner {
	return &Runner{Engine: eng}
}

// Run discovers files under opts.Paths and processes them with a worker
// pool. Outcomes are returned in path order whatever order the workers
// finish in. A failing file is recorded in its outcome and does not stop
// the run; cancellation does.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("starting batch run", "files", len(files), "jobs", jobs)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, opts Options, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, opts, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile reads, decodes and processes a single message file.
func (r *Runner) ProcessFile(ctx context.Context, opts Options, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	data, err := fsutil.ReadMessage(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Format = string(opts.Input)
	if outcome.Format == "" {
		outcome.Format = wire.DetectFormat(path, data)
	}

	msg, err := wire.Decode(outcome.Format, data)
	if err != nil {
		outcome.Error = fmt.Errorf("decode %s: %w", path, err)
		return outcome
	}

	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	outcome.Result = r.Engine.Process(ctx, msg, opts.Reveal)
	return outcome
}
