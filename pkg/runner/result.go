package runner

import "github.com/yaklabco/spanrender/pkg/engine"

// FileOutcome is the result of processing one message file.
type FileOutcome struct {
	// Path is the file that was processed.
	Path string

	// Format is the input format the file was decoded with.
	Format string

	// Result is the pipeline result. Nil when Error is set.
	Result *engine.Result

	// Error is set if the file could not be read or decoded.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesWithDrops counts files with at least one dropped annotation.
	FilesWithDrops int

	Nodes   int
	Links   int
	Dropped int

	// DroppedByReason counts dropped annotations per reason.
	DroppedByReason map[engine.Reason]int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	Stats Stats
}

// HasDrops reports whether any annotation was dropped in any file.
func (r *Result) HasDrops() bool {
	return r != nil && r.Stats.Dropped > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{DroppedByReason: make(map[engine.Reason]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil || outcome.Result == nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Nodes += len(outcome.Result.Nodes)
	r.Stats.Links += len(outcome.Result.Links)
	r.Stats.Dropped += len(outcome.Result.Dropped)
	if len(outcome.Result.Dropped) > 0 {
		r.Stats.FilesWithDrops++
	}
	for _, d := range outcome.Result.Dropped {
		r.Stats.DroppedByReason[d.Reason]++
	}
}
