package sema

import (
	"refcheck/internal/diag"
	"refcheck/internal/symbols"
)

// declContext tells where a declaration sits.
type declContext struct {
	// toplevel: owned by a package.
	toplevel bool
	// member: owned by a class or interface and not part of a signature.
	member bool
}

func (rc *refineChecker) classify(d *symbols.Decl) declContext {
	container := rc.table.Get(d.Container)
	if container == nil {
		return declContext{}
	}
	signature := d.Kind == symbols.KindParameter || d.Kind == symbols.KindTypeParameter
	return declContext{
		toplevel: container.Kind == symbols.KindPackage,
		member:   container.Kind.IsClassOrInterface() && !signature,
	}
}

// mayBeShared: kinds that can be visible outside their scope.
func mayBeShared(k symbols.Kind) bool {
	switch k {
	case symbols.KindMethod, symbols.KindValue, symbols.KindGetter, symbols.KindClass, symbols.KindInterface:
		return true
	case symbols.KindInvalid, symbols.KindPackage, symbols.KindParameter, symbols.KindTypeParameter:
		return false
	default:
		return false
	}
}

// mayBeRefined: kinds that can refine or be refined.
func mayBeRefined(k symbols.Kind) bool {
	switch k {
	case symbols.KindMethod, symbols.KindValue, symbols.KindGetter, symbols.KindClass:
		return true
	case symbols.KindInvalid, symbols.KindPackage, symbols.KindInterface, symbols.KindParameter, symbols.KindTypeParameter:
		return false
	default:
		return false
	}
}

func (rc *refineChecker) checkContext(d *symbols.Decl, ctx declContext) {
	if !d.IsShared() {
		return
	}
	if !ctx.toplevel && !ctx.member {
		rc.report(diag.SemaSharedNotMember, diag.PriorityDefault, d.NameSpan,
			"shared declaration is not a member of a class, interface, or package").Emit()
	}
	if !mayBeShared(d.Kind) {
		rc.report(diag.SemaSharedBadKind, diag.PriorityDefault, d.NameSpan,
			"shared member is not a method, attribute, class, or interface").Emit()
	}
}

// refinementFlags are checked in this order by every modifier rule.
var refinementFlags = [...]struct {
	flag symbols.Flags
	name string
}{
	{symbols.FlagActual, "actual"},
	{symbols.FlagFormal, "formal"},
	{symbols.FlagDefault, "default"},
}

// checkModifiers applies the unrefinable-kind, non-member and unshared rules.
// They are independent: one declaration may collect diagnostics from all three.
func (rc *refineChecker) checkModifiers(d *symbols.Decl, ctx declContext) {
	if !mayBeRefined(d.Kind) {
		for _, f := range refinementFlags {
			if d.Flags.Has(f.flag) {
				rc.report(diag.SemaModifierUnrefinable, diag.PriorityDefault, d.NameSpan,
					f.name+" declaration is not a getter, simple attribute, method, or class").Emit()
			}
		}
	}
	if !ctx.member {
		for _, f := range refinementFlags {
			if d.Flags.Has(f.flag) {
				rc.report(diag.SemaModifierNotMember, diag.PriorityDefault, d.NameSpan,
					f.name+" declaration is not a member of a class or interface").Emit()
			}
		}
	}
	if !d.IsShared() {
		for _, f := range refinementFlags {
			if d.Flags.Has(f.flag) {
				rc.report(diag.SemaModifierNotShared, diag.PriorityUnshared, d.NameSpan,
					f.name+" member is not shared").Emit()
			}
		}
	}
}
