package main

import (
	"fmt"
	"io"
	"time"

	"refcheck/internal/buildpipeline"
)

// printStageTimings prints one line per recorded stage, then the total.
func printStageTimings(out io.Writer, timings buildpipeline.Timings) {
	if out == nil {
		return
	}
	labels := map[buildpipeline.Stage]string{
		buildpipeline.StageLoad:   "loaded",
		buildpipeline.StageParse:  "parsed",
		buildpipeline.StageBind:   "bound",
		buildpipeline.StageRefine: "refined",
	}
	for _, stage := range buildpipeline.Stages {
		label, ok := labels[stage]
		if !ok || !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", label, toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "total %.1f ms\n", toMillis(timings.Sum(buildpipeline.Stages...)))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
