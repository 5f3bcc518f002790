package sema

import (
	"refcheck/internal/diag"
	"refcheck/internal/symbols"
	"refcheck/internal/types"
)

// checkTypes compares the receiver-bound types of d and refined: type
// parameters first, then the member type, then parameters of callables.
func (rc *refineChecker) checkTypes(id symbols.DeclID, d *symbols.Decl, refinedID symbols.DeclID, refined *symbols.Decl) {
	receiver := rc.types.DeclType(d.Container)
	var typeArgs []types.TypeID
	if d.Kind.IsGeneric() && refined.Kind.IsGeneric() {
		typeArgs = rc.checkTypeParams(d, refined, rc.types.TypedReference(receiver, refinedID, nil).Subst)
	}

	refinedRef := rc.types.TypedReference(receiver, refinedID, typeArgs)
	refiningRef := rc.types.TypedReference(receiver, id, typeArgs)

	// unknown types were reported by the binder
	if refiningRef.Type != types.NoTypeID && refinedRef.Type != types.NoTypeID &&
		!rc.types.Assignable(refiningRef.Type, refinedRef.Type) {
		span := d.NameSpan
		if d.HasTypeNode {
			span = d.TypeSpan
		}
		if b := rc.report(diag.SemaRefinedTypeMismatch, diag.PriorityDefault, span,
			"member type must be assignable to refined member type"); b != nil {
			b.WithNote(span, "'"+rc.types.String(refiningRef.Type)+"' is not assignable to '"+rc.types.String(refinedRef.Type)+"'")
			if !refined.NameSpan.Empty() {
				b.WithNote(refined.NameSpan, "refined declaration is here")
			}
			b.Emit()
		}
	}

	if d.Kind.IsFunctional() && refined.Kind.IsFunctional() {
		rc.checkParams(d, refined, refiningRef, refinedRef)
	}
}

// checkTypeParams aligns the type parameters of d and refined. Constraints of
// d's parameters must be satisfied by the corresponding refined parameter,
// whose own bounds are seen through outer, the receiver's arguments for the
// refined member's container. It returns the refined parameters' types, used
// as type arguments for both members.
func (rc *refineChecker) checkTypeParams(d, refined *symbols.Decl, outer types.Substitution) []types.TypeID {
	refining, original := d.TypeParams, refined.TypeParams
	if len(refining) != len(original) {
		rc.reportAgainst(diag.SemaTypeParamCount, diag.PriorityDefault, d.NameSpan, refined,
			"member does not have the same number of type parameters as refined member")
	}
	n := min(len(refining), len(original))

	// bounds of d's parameters mention d's parameters; rename them first
	rename := make(types.Substitution, n)
	typeArgs := make([]types.TypeID, 0, n)
	for i := range n {
		t := rc.types.TypeParam(original[i])
		rename[refining[i]] = t
		typeArgs = append(typeArgs, t)
	}

	for i := range n {
		tp := rc.table.Get(refining[i])
		refinedTP := rc.table.Get(original[i])
		refinedType := typeArgs[i]
		for _, bound := range rc.types.Bounds(refining[i]) {
			want := rc.types.Substitute(bound, rename)
			if want == types.NoTypeID || rc.types.Assignable(refinedType, want) || rc.boundsSatisfy(original[i], outer, want) {
				continue
			}
			rc.reportAgainst(diag.SemaTypeParamConstraint, diag.PriorityDefault, tp.NameSpan, refinedTP,
				"member type parameter "+tp.Name+" has constraint which refined member type parameter "+
					refinedTP.Name+" does not satisfy")
		}
	}
	return typeArgs
}

// boundsSatisfy reports whether a bound of tp, with outer applied, is
// assignable to want.
func (rc *refineChecker) boundsSatisfy(tp symbols.DeclID, outer types.Substitution, want types.TypeID) bool {
	if len(outer) == 0 {
		return false
	}
	for _, bound := range rc.types.Bounds(tp) {
		if bt := rc.types.Substitute(bound, outer); bt != types.NoTypeID && rc.types.Assignable(bt, want) {
			return true
		}
	}
	return false
}

// checkParams requires the same arity and exactly equal parameter types.
func (rc *refineChecker) checkParams(d, refined *symbols.Decl, refiningRef, refinedRef types.Reference) {
	if len(d.Params) != len(refined.Params) {
		rc.reportAgainst(diag.SemaParamCount, diag.PriorityDefault, d.NameSpan, refined,
			"member does not have the same number of parameters as the member it refines")
		return
	}
	for i, paramID := range d.Params {
		param := rc.table.Get(paramID)
		if !param.HasTypeNode {
			// syntax error, already reported by the parser
			continue
		}
		refinedParamID := refined.Params[i]
		refinedParam := rc.table.Get(refinedParamID)
		paramType := rc.types.TypedParameter(refiningRef, paramID)
		refinedType := rc.types.TypedParameter(refinedRef, refinedParamID)
		if paramType == types.NoTypeID || refinedType == types.NoTypeID {
			rc.reportAgainst(diag.SemaParamTypeUnknown, diag.PriorityDefault, param.TypeSpan, refinedParam,
				"could not determine if parameter type is the same as the corresponding parameter of refined member")
			continue
		}
		if rc.types.Exactly(paramType, refinedType) {
			continue
		}
		if b := rc.report(diag.SemaParamTypeMismatch, diag.PriorityDefault, param.TypeSpan,
			"type of parameter "+param.Name+" is different to type of corresponding parameter "+
				refinedParam.Name+" of refined member"); b != nil {
			b.WithNote(param.TypeSpan, "'"+rc.types.String(paramType)+"' is not exactly '"+rc.types.String(refinedType)+"'")
			if !refinedParam.NameSpan.Empty() {
				b.WithNote(refinedParam.NameSpan, "refined parameter is here")
			}
			b.Emit()
		}
	}
}
