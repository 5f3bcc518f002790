package binder

import (
	"strconv"

	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/source"
	"refcheck/internal/symbols"
	"refcheck/internal/types"
)

// lookupType finds a class, interface or type parameter visible from scope:
// type parameters of enclosing declarations, innermost first, then member
// types of enclosing classes and the package, then the language package.
func (b *binder) lookupType(scope symbols.DeclID, name string) symbols.DeclID {
	for cur := scope; cur.IsValid(); {
		d := b.table.Get(cur)
		if d == nil {
			break
		}
		for _, tp := range d.TypeParams {
			if b.table.Get(tp).Name == name {
				return tp
			}
		}
		if d.Kind.IsClassOrInterface() || d.Kind == symbols.KindPackage {
			for _, m := range d.Body {
				md := b.table.Get(m)
				if md.Name == name && md.Kind.IsClassOrInterface() {
					return m
				}
			}
		}
		cur = d.Container
	}
	if b.lang.IsValid() {
		if m := b.table.DirectMember(b.lang, name); m.IsValid() && b.table.Get(m).Kind.IsClassOrInterface() {
			return m
		}
	}
	return symbols.NoDeclID
}

// resolveType turns a type expression into an interned type. Errors are
// reported and yield NoTypeID.
func (b *binder) resolveType(u *Unit, scope symbols.DeclID, id ast.TypeID) types.TypeID {
	t := u.AST.Types.Get(id)
	if t == nil {
		return types.NoTypeID
	}
	decl, ok := b.typeDecl(u, scope, t)
	if !ok {
		return types.NoTypeID
	}
	d := b.table.Get(decl)
	if len(t.Args) != len(d.TypeParams) {
		b.report(diag.SemaTypeArgCount, t.Span, typeArgCountMessage(d.Name, len(d.TypeParams), len(t.Args)))
		return types.NoTypeID
	}
	if d.Kind == symbols.KindTypeParameter {
		return b.types.TypeParam(decl)
	}
	args := make([]types.TypeID, len(t.Args))
	for i, a := range t.Args {
		args[i] = b.resolveType(u, scope, a)
	}
	return b.types.Nominal(decl, args...)
}

// typeDecl finds the declaration a type expression names. Errors are
// reported here; false means nothing more should be said about t.
func (b *binder) typeDecl(u *Unit, scope symbols.DeclID, t *ast.TypeExpr) (symbols.DeclID, bool) {
	if !t.Qualifier.IsValid() {
		decl := b.lookupType(scope, t.Name)
		if !decl.IsValid() {
			b.report(diag.SemaUnresolvedType, t.NameSpan, "cannot find type '"+t.Name+"'")
			return symbols.NoDeclID, false
		}
		return decl, true
	}
	// аргументы квалификатора проверяются, но в тип члена не входят
	qt, ok := b.types.Lookup(b.resolveType(u, scope, t.Qualifier))
	if !ok {
		return symbols.NoDeclID, false
	}
	qual := u.AST.Types.Get(t.Qualifier).Name
	if qt.Kind != types.KindNominal {
		b.report(diag.SemaUnresolvedType, t.NameSpan, "type '"+qual+"' has no member types")
		return symbols.NoDeclID, false
	}
	for _, m := range b.table.Get(qt.Decl).Body {
		if md := b.table.Get(m); md.Name == t.Name && md.Kind.IsClassOrInterface() {
			return m, true
		}
	}
	b.report(diag.SemaUnresolvedType, t.NameSpan, "type '"+qual+"' has no member type '"+t.Name+"'")
	return symbols.NoDeclID, false
}

func typeArgCountMessage(name string, want, got int) string {
	if want == 0 {
		return "type '" + name + "' is not generic"
	}
	return "type '" + name + "' expects " + strconv.Itoa(want) + " type argument(s), got " + strconv.Itoa(got)
}

func (b *binder) resolveSupertypes(p pending) {
	d := b.table.Get(p.id)
	if !d.Kind.IsClassOrInterface() {
		return
	}
	n := p.unit.AST.Decls.Get(p.node)

	if d.Kind == symbols.KindClass {
		switch {
		case n.Extends.IsValid():
			st := b.resolveType(p.unit, p.id, n.Extends)
			b.addSupertype(p.id, st, symbols.KindClass, p.unit.AST.Types.Get(n.Extends).Span)
		case !b.isAnything(p.id):
			if basic := b.languageType("Basic"); basic.IsValid() && basic != p.id {
				b.addSupertype(p.id, b.types.Nominal(basic), symbols.KindClass, d.NameSpan)
			}
		}
	}
	for _, s := range n.Satisfies {
		st := b.resolveType(p.unit, p.id, s)
		b.addSupertype(p.id, st, symbols.KindInterface, p.unit.AST.Types.Get(s).Span)
	}
}

func (b *binder) isAnything(id symbols.DeclID) bool {
	return b.lang.IsValid() && b.table.DirectMember(b.lang, "Anything") == id
}

func (b *binder) languageType(name string) symbols.DeclID {
	if !b.lang.IsValid() {
		return symbols.NoDeclID
	}
	return b.table.DirectMember(b.lang, name)
}

// addSupertype records st as a direct supertype of decl unless it has the
// wrong kind or closes an inheritance cycle.
func (b *binder) addSupertype(decl symbols.DeclID, st types.TypeID, want symbols.Kind, span source.Span) {
	t, ok := b.types.Lookup(st)
	if !ok {
		return
	}
	d := b.table.Get(decl)
	if t.Kind != types.KindNominal || b.table.Get(t.Decl).Kind != want {
		what := "extend a class"
		if want == symbols.KindInterface {
			what = "satisfy an interface"
		}
		b.report(diag.SemaBadSupertype, span, "'"+d.Name+"' must "+what+", '"+b.types.String(st)+"' is not one")
		return
	}
	if t.Decl == decl || b.types.IsSubDecl(t.Decl, decl) {
		b.report(diag.SemaInheritanceCycle, span, "'"+d.Name+"' inherits from itself through '"+b.types.String(st)+"'")
		return
	}
	b.types.AddSupertype(decl, st)
}

// resolveSignature records the declared type of typed declarations and the
// bounds from given clauses.
func (b *binder) resolveSignature(p pending) {
	d := b.table.Get(p.id)
	n := p.unit.AST.Decls.Get(p.node)

	for _, c := range n.Constraints {
		tp := symbols.NoDeclID
		for _, cand := range d.TypeParams {
			if b.table.Get(cand).Name == c.Name {
				tp = cand
				break
			}
		}
		if !tp.IsValid() {
			b.report(diag.SemaUnresolvedType, c.NameSpan, "'"+c.Name+"' is not a type parameter of '"+d.Name+"'")
			continue
		}
		for _, bound := range c.Bounds {
			if bt := b.resolveType(p.unit, p.id, bound); bt != types.NoTypeID {
				b.types.AddBound(tp, bt)
			}
		}
	}

	if !d.Kind.IsTyped() {
		return
	}
	switch {
	case n.Void:
		if anything := b.types.Anything(); anything.IsValid() {
			b.types.SetDeclared(p.id, b.types.Nominal(anything))
		}
	case n.Type.IsValid():
		b.types.SetDeclared(p.id, b.resolveType(p.unit, p.id, n.Type))
	}
}

func (b *binder) resolveParam(p pendingParam) {
	d := b.table.Get(p.id)
	n := p.unit.AST.Params.Get(p.node)
	if !n.Type.IsValid() {
		return
	}
	b.types.SetDeclared(p.id, b.resolveType(p.unit, d.Container, n.Type))
}
