package sema

import (
	"slices"
	"testing"

	"refcheck/internal/diag"
	"refcheck/internal/symbols"
	"refcheck/internal/testkit"
	"refcheck/internal/trace"
)

func TestRefinedLinkIsRecorded(t *testing.T) {
	m, bag := refine(t, `
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { shared actual default Integer size() => 1; }
`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(bag))
	}
	size := m.Table.Get(m.MustLookup("C.size"))
	if size.Refined != m.MustLookup("I.size") {
		t.Fatalf("C.size refines %q, want I.size", m.Table.QualifiedName(size.Refined))
	}
	if m.Table.Get(m.MustLookup("I.size")).Refined.IsValid() {
		t.Fatalf("I.size must not be linked")
	}
}

func TestLinkOnlyForTypeMembers(t *testing.T) {
	m, _ := refine(t, `
shared interface I { shared formal void run(Integer n); }
shared class C() satisfies I {
    shared actual void run(Integer n) {
        Integer run = n;
    }
}
`)
	if got := m.Table.Get(m.MustLookup("C.run.n")).Refined; got.IsValid() {
		t.Fatalf("parameter linked to %q", m.Table.QualifiedName(got))
	}
	if got := m.Table.Get(m.MustLookup("C.run.run")).Refined; got.IsValid() {
		t.Fatalf("local linked to %q", m.Table.QualifiedName(got))
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	m := testkit.BuildOne(`
shared interface I { shared formal void run(Integer n); }
shared class B() { shared Integer size() => 0; }
shared class C() extends B() satisfies I {
    shared actual void run(String n) {}
    Integer size() => 1;
}
`)
	first, res1 := runRefine(m, m.Roots, nil)
	links := map[symbols.DeclID]symbols.DeclID{}
	for _, path := range []string{"C.run", "C.size"} {
		id := m.MustLookup(path)
		links[id] = m.Table.Get(id).Refined
	}
	second, res2 := runRefine(m, m.Roots, nil)

	if !slices.Equal(testkit.Messages(first), testkit.Messages(second)) {
		t.Fatalf("diagnostics differ between runs:\n%s\n%s", testkit.Summary(first), testkit.Summary(second))
	}
	for id, want := range links {
		if got := m.Table.Get(id).Refined; got != want {
			t.Fatalf("link of %s changed: %d -> %d", m.Table.QualifiedName(id), want, got)
		}
	}
	if res1.Linked != 2 || res2.Linked != 0 {
		t.Fatalf("linked = %d then %d, want 2 then 0", res1.Linked, res2.Linked)
	}
	if res1.Visited != res2.Visited {
		t.Fatalf("visited %d then %d", res1.Visited, res2.Visited)
	}
}

func TestExistingLinkIsKept(t *testing.T) {
	m := testkit.BuildOne(`
shared interface A { shared formal Integer size(); }
shared interface B { shared formal Integer size(); }
shared class C() satisfies A & B { shared actual Integer size() => 1; }
`)
	size := m.MustLookup("C.size")
	preset := m.MustLookup("B.size")
	m.Table.SetRefined(size, preset)
	runRefine(m, m.Roots, nil)
	if got := m.Table.Get(size).Refined; got != preset {
		t.Fatalf("link overwritten with %s", m.Table.QualifiedName(got))
	}
}

func TestPriorities(t *testing.T) {
	_, bag := refine(t, `
shared class B() { shared Integer size() => 0; }
shared class C() extends B() { default Integer size() => 1; }
`)
	want := []struct {
		code diag.Code
		prio diag.Priority
	}{
		{diag.SemaModifierNotShared, diag.PriorityUnshared},
		{diag.SemaRefinesWithoutActual, diag.PriorityMissingActual},
		{diag.SemaRefinesClosedMember, diag.PriorityClosedMember},
	}
	items := bag.Items()
	if len(items) != len(want) {
		t.Fatalf("got %s", testkit.Summary(bag))
	}
	for i, w := range want {
		if items[i].Code != w.code || items[i].Priority != w.prio {
			t.Fatalf("diag %d = [%s] prio %d, want [%s] prio %d", i, items[i].Code.ID(), items[i].Priority, w.code.ID(), w.prio)
		}
		if items[i].Severity != diag.SevError {
			t.Fatalf("diag %d severity = %v", i, items[i].Severity)
		}
	}
}

func TestDiamondValidatesEveryCandidate(t *testing.T) {
	m, bag := refine(t, `
shared interface A { shared formal Integer size(); }
shared interface B { shared default Integer size() => 0; }
shared class C() satisfies A & B { shared actual Integer size(Integer x) => x; }
`)
	expectMessages(t, bag,
		"member does not have the same number of parameters as the member it refines",
		"member does not have the same number of parameters as the member it refines",
	)
	for i, refined := range []string{"A.size", "B.size"} {
		d := bag.Items()[i]
		if len(d.Notes) != 1 || d.Notes[0].Span != m.Table.Get(m.MustLookup(refined)).NameSpan {
			t.Fatalf("diag %d should point at %s", i, refined)
		}
	}
	if got := m.Table.Get(m.MustLookup("C.size")).Refined; got != m.MustLookup("A.size") {
		t.Fatalf("C.size linked to %s, want A.size", m.Table.QualifiedName(got))
	}
}

// stubHierarchy returns fixed candidates regardless of the type walked.
type stubHierarchy struct {
	candidates map[string][]symbols.DeclID
}

func (s stubHierarchy) InheritedMembers(_ symbols.DeclID, name string) []symbols.DeclID {
	return s.candidates[name]
}

func (s stubHierarchy) RefinedMember(_ symbols.DeclID, name string) symbols.DeclID {
	if c := s.candidates[name]; len(c) > 0 {
		return c[len(c)-1]
	}
	return symbols.NoDeclID
}

func TestCanonicalRefinedMemberComesFromHierarchy(t *testing.T) {
	m := testkit.BuildOne(`
shared interface A { shared formal Integer size(); }
shared interface B { shared formal Integer size(); }
shared class C() satisfies A & B { shared actual Integer size() => 1; }
`)
	a, b := m.MustLookup("A.size"), m.MustLookup("B.size")
	bag := diag.NewBag(0)
	CheckRefinement([]symbols.DeclID{m.MustLookup("C")}, Options{
		Reporter:  diag.BagReporter{Bag: bag},
		Table:     m.Table,
		Types:     m.Types,
		Hierarchy: stubHierarchy{candidates: map[string][]symbols.DeclID{"size": {a, b}}},
	})
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(bag))
	}
	if got := m.Table.Get(m.MustLookup("C.size")).Refined; got != b {
		t.Fatalf("C.size linked to %s, want B.size", m.Table.QualifiedName(got))
	}
}

func TestUnknownParameterType(t *testing.T) {
	m := testkit.BuildOne(`
shared interface I { shared formal void run(Integer n); }
shared class C() satisfies I { shared actual void run(Missing n) {} }
`)
	if m.Bag.Len() != 1 || m.Bag.Items()[0].Code != diag.SemaUnresolvedType {
		t.Fatalf("model diagnostics: %s", testkit.Summary(m.Bag))
	}
	bag, _ := runRefine(m, m.Roots, nil)
	expectMessages(t, bag, "could not determine if parameter type is the same as the corresponding parameter of refined member")
	d := bag.Items()[0]
	if d.Code != diag.SemaParamTypeUnknown {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if d.Primary != m.Table.Get(m.MustLookup("C.run.n")).TypeSpan {
		t.Fatalf("primary span should cover the parameter type")
	}
}

func TestUnknownMemberTypeIsSkipped(t *testing.T) {
	m := testkit.BuildOne(`
shared interface I { shared formal Integer size; }
shared class C() satisfies I { shared actual Missing size => 1; }
`)
	bag, _ := runRefine(m, m.Roots, nil)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(bag))
	}
}

func TestParameterWithoutTypeNodeIsSkipped(t *testing.T) {
	m := testkit.BuildOne(`
shared interface I { shared formal void run(Integer n); }
shared class C() satisfies I { shared actual void run(n) {} }
`)
	if m.Bag.Len() == 0 {
		t.Fatalf("expected a syntax error for the untyped parameter")
	}
	bag, _ := runRefine(m, m.Roots, nil)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", testkit.Summary(bag))
	}
}

func TestParameterMismatchPointsAtType(t *testing.T) {
	m, bag := refine(t, `
shared interface I { shared formal void run(Integer n); }
shared class C() satisfies I { actual shared void run(String n) {} }
`)
	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %s", testkit.Summary(bag))
	}
	n := m.Table.Get(m.MustLookup("C.run.n"))
	if items[0].Primary != n.TypeSpan {
		t.Fatalf("primary = %v, want %v", items[0].Primary, n.TypeSpan)
	}
	sf := m.Files.Get(n.TypeSpan.File)
	if got := sf.Text(n.TypeSpan); got != "String" {
		t.Fatalf("primary text = %q", got)
	}
	if len(items[0].Notes) != 2 || items[0].Notes[0].Msg != "'String' is not exactly 'Integer'" {
		t.Fatalf("notes = %+v", items[0].Notes)
	}
}

func TestRefinedLinksAreTraced(t *testing.T) {
	m := testkit.BuildOne(`
shared interface I { shared formal Integer size(); }
shared class C() satisfies I { shared actual Integer size() => 1; }
`)
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	runRefine(m, m.Roots, ring)
	var details []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint && ev.Name == "refined_link" {
			details = append(details, ev.Detail)
		}
	}
	if !slices.Equal(details, []string{"C.size -> I.size"}) {
		t.Fatalf("trace points = %q", details)
	}
}

func TestNilCollaboratorsAreIgnored(t *testing.T) {
	res := CheckRefinement([]symbols.DeclID{1}, Options{})
	if res.Visited != 0 {
		t.Fatalf("visited = %d", res.Visited)
	}
}
