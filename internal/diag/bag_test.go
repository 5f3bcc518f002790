package diag

import (
	"testing"

	"refcheck/internal/source"
)

func TestBagLimitAndMerge(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 0, Start: 1, End: 2}
	if !b.Add(NewError(SemaError, sp, "a")) || !b.Add(NewError(SemaError, sp, "b")) {
		t.Fatal("expected first two adds to succeed")
	}
	if b.Add(NewError(SemaError, sp, "c")) {
		t.Fatal("expected limit to reject third diagnostic")
	}

	other := NewBag(0)
	other.Add(NewError(SemaError, sp, "d"))
	b.Merge(other)
	if b.Len() != 3 || b.Cap() != 3 {
		t.Fatalf("after merge len=%d cap=%d", b.Len(), b.Cap())
	}
}

func TestReportBuilderCarriesPriorityAndNotes(t *testing.T) {
	b := NewBag(0)
	r := BagReporter{Bag: b}
	note := source.Span{Start: 10, End: 12}
	rb := ReportError(r, SemaRefinesClosedMember, source.Span{Start: 1, End: 3}, "closed").
		WithPriority(PriorityClosedMember).
		WithNote(note, "refined declaration is here")
	rb.Emit()
	rb.Emit()

	if b.Len() != 1 {
		t.Fatalf("Emit twice produced %d diagnostics", b.Len())
	}
	d := b.Items()[0]
	if d.Priority != PriorityClosedMember || len(d.Notes) != 1 || d.Notes[0].Span != note {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: b})
	sp := source.Span{Start: 1, End: 2}
	r.Report(SemaParamCount, SevError, PriorityDefault, sp, "m", nil)
	r.Report(SemaParamCount, SevError, PriorityDefault, sp, "m", nil)
	r.Report(SemaParamCount, SevError, PriorityDefault, sp, "other", nil)
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}
