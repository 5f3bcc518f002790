package sema

import (
	"strconv"

	"refcheck/internal/diag"
	"refcheck/internal/source"
	"refcheck/internal/symbols"
	"refcheck/internal/trace"
	"refcheck/internal/types"
)

// Hierarchy answers which same-named members a class or interface inherits.
type Hierarchy interface {
	// InheritedMembers returns every candidate, possibly several in diamond situations.
	InheritedMembers(decl symbols.DeclID, name string) []symbols.DeclID
	// RefinedMember is the canonical single choice recorded as the refined link.
	RefinedMember(decl symbols.DeclID, name string) symbols.DeclID
}

// Options configure a refinement pass.
type Options struct {
	Reporter  diag.Reporter
	Table     *symbols.Table
	Types     *types.Interner
	Hierarchy Hierarchy
	Tracer    trace.Tracer
	// ParentSpan is the trace span the pass reports under.
	ParentSpan uint64
}

// Result summarises one pass.
type Result struct {
	// Visited counts declarations checked, packages excluded.
	Visited int
	// Linked counts refined links written by this pass; links set by an
	// earlier pass are kept and not counted.
	Linked int
}

// CheckRefinement validates modifiers and refinement of every declaration
// owned by roots. Each declaration is visited once, after everything it owns.
// The pass only reports diagnostics and records refined links; it never fails.
//
// Roots may be processed by concurrent calls as long as no declaration is
// reachable from two of them.
func CheckRefinement(roots []symbols.DeclID, opts Options) Result {
	var res Result
	if opts.Table == nil || opts.Types == nil || opts.Hierarchy == nil {
		return res
	}
	rc := refineChecker{
		reporter:  opts.Reporter,
		table:     opts.Table,
		types:     opts.Types,
		hierarchy: opts.Hierarchy,
		tracer:    opts.Tracer,
		result:    &res,
	}
	span := trace.Begin(rc.tracer, trace.ScopeModule, "refine", opts.ParentSpan)
	rc.span = span.ID()
	for _, root := range roots {
		rc.table.Walk(root, rc.checkDecl)
	}
	span.WithExtra("visited", strconv.Itoa(res.Visited)).WithExtra("linked", strconv.Itoa(res.Linked)).End("")
	return res
}

type refineChecker struct {
	reporter  diag.Reporter
	table     *symbols.Table
	types     *types.Interner
	hierarchy Hierarchy
	tracer    trace.Tracer
	span      uint64
	result    *Result
}

func (rc *refineChecker) checkDecl(id symbols.DeclID) {
	d := rc.table.Get(id)
	if d == nil || d.Kind == symbols.KindPackage {
		return
	}
	rc.result.Visited++

	ctx := rc.classify(d)
	rc.checkContext(d, ctx)
	rc.checkModifiers(d, ctx)
	if ctx.member {
		rc.checkMember(id, d)
		rc.link(id, d)
	}
}

// link records the canonical refined member. An existing link is kept.
func (rc *refineChecker) link(id symbols.DeclID, d *symbols.Decl) {
	refined := rc.hierarchy.RefinedMember(d.Container, d.Name)
	if !refined.IsValid() || !rc.table.SetRefined(id, refined) {
		return
	}
	rc.result.Linked++
	if rc.tracer != nil && rc.tracer.Level().ShouldEmit(trace.ScopeNode) {
		trace.Point(rc.tracer, trace.ScopeNode, "refined_link", rc.span,
			rc.table.QualifiedName(id)+" -> "+rc.table.QualifiedName(refined))
	}
}

func (rc *refineChecker) report(code diag.Code, prio diag.Priority, span source.Span, msg string) *diag.ReportBuilder {
	if rc.reporter == nil {
		return nil
	}
	return diag.ReportError(rc.reporter, code, span, msg).WithPriority(prio)
}

// reportAgainst attaches a note pointing at the refined declaration.
func (rc *refineChecker) reportAgainst(code diag.Code, prio diag.Priority, span source.Span, refined *symbols.Decl, msg string) {
	b := rc.report(code, prio, span, msg)
	if b == nil {
		return
	}
	if !refined.NameSpan.Empty() {
		b.WithNote(refined.NameSpan, "refined declaration is here")
	}
	b.Emit()
}
