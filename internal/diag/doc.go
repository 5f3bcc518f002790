// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Priority – optional rank (500, 600, 700) consulted only when surfacing.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages, e.g. "refined declaration is here".
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. Producers
// either call Reporter.Report directly or chain ReportError(...).WithNote(...)
// .WithPriority(...).Emit(). BagReporter aggregates into a Bag, which supports
// filtering and transformation; DedupReporter drops repeats of one
// diagnostic at one span. Every file owns its Bag, so parallel passes never
// share a sink.
//
// Package diag does not perform IO; rendering lives in internal/diagfmt.
package diag
