// Package hierarchy answers which members a class or interface inherits under a name.
package hierarchy

import (
	"refcheck/internal/symbols"
	"refcheck/internal/types"
)

// Resolver walks supertype edges recorded in the type interner.
type Resolver struct {
	table *symbols.Table
	types *types.Interner
}

func New(table *symbols.Table, in *types.Interner) *Resolver {
	return &Resolver{table: table, types: in}
}

// InheritedMembers returns the members named name declared by supertypes of
// decl. The walk is depth-first over direct supertypes in declaration order;
// a supertype declaring name contributes that member and ends its branch.
// The result is ordered and free of duplicates; decl's own members are excluded.
func (r *Resolver) InheritedMembers(decl symbols.DeclID, name string) []symbols.DeclID {
	var out []symbols.DeclID
	seenMember := make(map[symbols.DeclID]bool)
	seenType := map[symbols.DeclID]bool{decl: true}

	var walk func(symbols.DeclID)
	walk = func(cur symbols.DeclID) {
		for _, st := range r.types.Supertypes(cur) {
			t, ok := r.types.Lookup(st)
			if !ok || t.Kind != types.KindNominal || seenType[t.Decl] {
				continue
			}
			seenType[t.Decl] = true
			if m := r.table.DirectMember(t.Decl, name); m.IsValid() {
				if !seenMember[m] {
					seenMember[m] = true
					out = append(out, m)
				}
				continue
			}
			walk(t.Decl)
		}
	}
	walk(decl)
	return out
}

// RefinedMember is the canonical single choice used for linking: the first
// inherited member, or NoDeclID.
func (r *Resolver) RefinedMember(decl symbols.DeclID, name string) symbols.DeclID {
	if ms := r.InheritedMembers(decl, name); len(ms) > 0 {
		return ms[0]
	}
	return symbols.NoDeclID
}
