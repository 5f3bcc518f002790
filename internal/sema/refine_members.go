package sema

import (
	"refcheck/internal/diag"
	"refcheck/internal/symbols"
)

func (rc *refineChecker) checkMember(id symbols.DeclID, d *symbols.Decl) {
	container := rc.table.Get(d.Container)
	if d.IsFormal() && container.Kind == symbols.KindClass && !container.IsAbstract() && !container.IsFormal() {
		rc.report(diag.SemaFormalInConcreteClass, diag.PriorityDefault, d.NameSpan,
			"formal member belongs to non-abstract, non-formal class").Emit()
	}

	candidates := rc.hierarchy.InheritedMembers(d.Container, d.Name)
	if len(candidates) == 0 {
		if d.IsActual() {
			rc.report(diag.SemaActualRefinesNothing, diag.PriorityDefault, d.NameSpan,
				"actual member does not refine any inherited member").Emit()
		}
		return
	}
	// every candidate is validated, only the canonical one gets linked
	for _, refinedID := range candidates {
		rc.checkRefinement(id, d, refinedID)
	}
}

// checkRefinement validates d against one inherited member.
func (rc *refineChecker) checkRefinement(id symbols.DeclID, d *symbols.Decl, refinedID symbols.DeclID) {
	refined := rc.table.Get(refinedID)
	if refined == nil {
		return
	}
	kindOK := rc.checkKind(d, refined)

	if !d.IsActual() {
		rc.reportAgainst(diag.SemaRefinesWithoutActual, diag.PriorityMissingActual, d.NameSpan, refined,
			"non-actual member refines an inherited member")
	}
	if !refined.IsDefault() && !refined.IsFormal() {
		rc.reportAgainst(diag.SemaRefinesClosedMember, diag.PriorityClosedMember, d.NameSpan, refined,
			"member refines a non-default, non-formal member")
	}
	if kindOK {
		rc.checkTypes(id, d, refinedID, refined)
	}
}

// checkKind reports an incompatible pair of kinds and, for attributes,
// narrowed mutability. It reports whether the kinds are compatible.
func (rc *refineChecker) checkKind(d, refined *symbols.Decl) bool {
	var want string
	switch d.Kind {
	case symbols.KindMethod:
		if refined.Kind != symbols.KindMethod {
			want = "a method"
		}
	case symbols.KindClass:
		if refined.Kind != symbols.KindClass {
			want = "a class"
		}
	case symbols.KindValue, symbols.KindGetter:
		switch refined.Kind {
		case symbols.KindMethod, symbols.KindClass:
			want = "an attribute"
		case symbols.KindValue, symbols.KindGetter, symbols.KindParameter:
			if refined.IsVariable() && !d.IsVariable() {
				rc.reportAgainst(diag.SemaRefinedVariable, diag.PriorityDefault, d.NameSpan, refined,
					"non-variable attribute refines a variable attribute")
			}
		case symbols.KindInvalid, symbols.KindPackage, symbols.KindInterface, symbols.KindTypeParameter:
		}
	case symbols.KindInvalid, symbols.KindPackage, symbols.KindInterface, symbols.KindParameter, symbols.KindTypeParameter:
	}
	if want == "" {
		return true
	}
	rc.reportAgainst(diag.SemaRefinedKindMismatch, diag.PriorityDefault, d.NameSpan, refined,
		"refined declaration is not "+want)
	return false
}
