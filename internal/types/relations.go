package types

import (
	"refcheck/internal/symbols"
)

// maxSupertypeDepth bounds supertype walks on malformed hierarchies.
const maxSupertypeDepth = 64

// Substitution maps type parameter declarations to the types replacing them.
type Substitution map[symbols.DeclID]TypeID

// Substitute replaces every type parameter of t found in subst.
func (in *Interner) Substitute(t TypeID, subst Substitution) TypeID {
	if len(subst) == 0 {
		return t
	}
	tt, ok := in.Lookup(t)
	if !ok {
		return NoTypeID
	}
	switch tt.Kind {
	case KindTypeParam:
		if repl, ok := subst[tt.Decl]; ok {
			return repl
		}
		return t
	case KindNominal:
		if len(tt.Args) == 0 {
			return t
		}
		args := make([]TypeID, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = in.Substitute(a, subst)
		}
		return in.Nominal(tt.Decl, args...)
	default:
		return t
	}
}

// bindArgs maps the type parameters of decl to args position by position.
func (in *Interner) bindArgs(decl symbols.DeclID, args []TypeID, into Substitution) Substitution {
	d := in.table.Get(decl)
	if d == nil {
		return into
	}
	if into == nil {
		into = make(Substitution, len(d.TypeParams))
	}
	for i, tp := range d.TypeParams {
		if i < len(args) {
			into[tp] = args[i]
		}
	}
	return into
}

// SupertypeOf finds the instantiation of target among the supertypes of t,
// t itself included. Type parameters are searched through their bounds.
func (in *Interner) SupertypeOf(t TypeID, target symbols.DeclID) (TypeID, bool) {
	return in.supertypeOf(t, target, 0)
}

func (in *Interner) supertypeOf(t TypeID, target symbols.DeclID, depth int) (TypeID, bool) {
	if depth > maxSupertypeDepth {
		return NoTypeID, false
	}
	tt, ok := in.Lookup(t)
	if !ok {
		return NoTypeID, false
	}
	switch tt.Kind {
	case KindNominal:
		if tt.Decl == target {
			return t, true
		}
		subst := in.bindArgs(tt.Decl, tt.Args, nil)
		for _, s := range in.supers[tt.Decl] {
			if found, ok := in.supertypeOf(in.Substitute(s, subst), target, depth+1); ok {
				return found, true
			}
		}
	case KindTypeParam:
		for _, b := range in.bounds[tt.Decl] {
			if found, ok := in.supertypeOf(b, target, depth+1); ok {
				return found, true
			}
		}
	}
	return NoTypeID, false
}

// Assignable reports whether a value of type src may be used where dst is expected.
// Generic types are invariant in their arguments. Unknown types are never assignable.
func (in *Interner) Assignable(src, dst TypeID) bool {
	return in.assignable(src, dst, 0)
}

func (in *Interner) assignable(src, dst TypeID, depth int) bool {
	if src == NoTypeID || dst == NoTypeID || depth > maxSupertypeDepth {
		return false
	}
	if src == dst || src == in.nothing {
		return true
	}
	dt, ok := in.Lookup(dst)
	if !ok {
		return false
	}
	if dt.Kind == KindNominal && dt.Decl == in.anything && in.anything.IsValid() {
		return true
	}
	st, ok := in.Lookup(src)
	if !ok {
		return false
	}
	switch st.Kind {
	case KindTypeParam:
		for _, b := range in.bounds[st.Decl] {
			if in.assignable(b, dst, depth+1) {
				return true
			}
		}
		return false
	case KindNominal:
		if dt.Kind != KindNominal {
			return false
		}
		inst, ok := in.SupertypeOf(src, dt.Decl)
		return ok && inst == dst
	default:
		return false
	}
}

// Exactly reports structural identity; interning makes it an ID comparison.
func (in *Interner) Exactly(a, b TypeID) bool {
	return a != NoTypeID && a == b
}

// IsSubDecl reports whether decl reaches super through recorded supertype edges.
func (in *Interner) IsSubDecl(decl, super symbols.DeclID) bool {
	seen := make(map[symbols.DeclID]bool)
	var walk func(symbols.DeclID) bool
	walk = func(cur symbols.DeclID) bool {
		if cur == super {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		for _, s := range in.supers[cur] {
			if st, ok := in.Lookup(s); ok && st.Kind == KindNominal && walk(st.Decl) {
				return true
			}
		}
		return false
	}
	return walk(decl)
}
