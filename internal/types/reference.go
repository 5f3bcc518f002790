package types

import (
	"refcheck/internal/symbols"
)

// Reference is a member bound to a receiver type with all substitutions applied.
type Reference struct {
	Receiver TypeID
	Member   symbols.DeclID
	Subst    Substitution
	// Type is the receiver-bound member type: the result type of a method, the
	// type of a value or getter, the class type of a member class.
	Type TypeID
}

// TypedReference binds member to receiver. The member's container is located
// among the receiver's supertypes and its type parameters are mapped to that
// instantiation's arguments; the member's own type parameters are mapped to
// typeArgs position by position.
func (in *Interner) TypedReference(receiver TypeID, member symbols.DeclID, typeArgs []TypeID) Reference {
	ref := Reference{Receiver: receiver, Member: member, Subst: make(Substitution)}
	m := in.table.Get(member)
	if m == nil {
		return ref
	}
	if inst, ok := in.SupertypeOf(receiver, m.Container); ok {
		tt := in.MustLookup(inst)
		in.bindArgs(m.Container, tt.Args, ref.Subst)
	}
	in.bindArgs(member, typeArgs, ref.Subst)

	switch m.Kind {
	case symbols.KindClass, symbols.KindInterface:
		ref.Type = in.Substitute(in.DeclType(member), ref.Subst)
	default:
		ref.Type = in.Substitute(in.declared[member], ref.Subst)
	}
	return ref
}

// TypedParameter returns the type of param with the reference's substitution applied.
func (in *Interner) TypedParameter(ref Reference, param symbols.DeclID) TypeID {
	return in.Substitute(in.declared[param], ref.Subst)
}
