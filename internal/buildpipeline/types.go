package buildpipeline

import "time"

// Stage describes a high-level pipeline phase of a check run.
type Stage string

const (
	StageLoad   Stage = "load"   // read sources, consult the disk cache
	StageParse  Stage = "parse"  // lex + parse, one task per file
	StageBind   Stage = "bind"   // declarations, types, hierarchy
	StageRefine Stage = "refine" // refinement checks, one task per file
	StageReport Stage = "report" // filters and rendering
)

// Stages lists the stages of a check run in execution order.
var Stages = []Stage{StageLoad, StageParse, StageBind, StageRefine, StageReport}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached" // served from the disk cache
	StatusError   Status = "error"  // the file has error diagnostics
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings records one duration per stage. The zero value is ready to use.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores dur for stage, replacing an earlier value.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration, len(Stages))
	}
	t.stages[stage] = dur
}

// Has reports whether stage ran; cached runs skip parse, bind and refine.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
