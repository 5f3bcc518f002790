// Package trace records what a refcheck run is doing: the check span, its
// passes (load, parse, bind, refine), per-file work and, at debug level,
// every refined link written by the refinement pass.
//
// Enable it from the command line:
//
//	refcheck --trace=run.ndjson --trace-level=detail check src/
//
// Tracers:
//
//   - Nop discards everything and is what FromContext returns by default
//   - StreamTracer writes each event as it arrives (text, ndjson or chrome)
//   - RingTracer keeps the newest events in memory and dumps them at exit
//   - MultiTracer feeds both for --trace-mode both
//
// The Level filters by Scope: phase keeps driver and pass events, detail
// adds per-file events, debug adds declaration points. Heartbeats pass
// every filter.
//
// Propagation goes through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
