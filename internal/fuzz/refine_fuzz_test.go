package fuzztests

import (
	"testing"

	"refcheck/internal/diag"
	"refcheck/internal/sema"
	"refcheck/internal/testkit"
)

// FuzzRefinementNeverPanics binds arbitrary input against the language package
// and runs the refinement pass twice: the second pass must not add diagnostics.
func FuzzRefinementNeverPanics(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		m := testkit.BuildOne(string(clampInput(input)))
		run := func() *diag.Bag {
			bag := diag.NewBag(0)
			sema.CheckRefinement(m.Roots, sema.Options{
				Reporter:  diag.BagReporter{Bag: bag},
				Table:     m.Table,
				Types:     m.Types,
				Hierarchy: m.Hierarchy,
			})
			return bag
		}
		first := run()
		second := run()
		if first.Len() != second.Len() {
			t.Fatalf("refinement is not idempotent: %d then %d diagnostics", first.Len(), second.Len())
		}
		for _, d := range first.Items() {
			if d.Severity != diag.SevError {
				t.Fatalf("refinement diagnostics are errors, got %v", d.Severity)
			}
		}
	})
}
