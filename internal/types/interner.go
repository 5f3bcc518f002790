package types

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fortio.org/safecast"

	"refcheck/internal/symbols"
)

// Interner provides stable TypeIDs for structurally equal types and keeps the
// side tables the model builder fills in: declared types, supertypes and bounds.
// Interning is safe for concurrent use; the side tables are written only
// while binding and are read-only afterwards.
type Interner struct {
	table   *symbols.Table
	mu      sync.RWMutex
	types   []Type
	index   map[string]TypeID
	nothing TypeID

	anything symbols.DeclID
	declared map[symbols.DeclID]TypeID
	supers   map[symbols.DeclID][]TypeID
	bounds   map[symbols.DeclID][]TypeID
}

// NewInterner constructs an interner bound to the declaration table.
func NewInterner(table *symbols.Table) *Interner {
	in := &Interner{
		table:    table,
		types:    make([]Type, 1, 64), // 0 reserved for NoTypeID
		index:    make(map[string]TypeID, 64),
		declared: make(map[symbols.DeclID]TypeID),
		supers:   make(map[symbols.DeclID][]TypeID),
		bounds:   make(map[symbols.DeclID][]TypeID),
	}
	in.nothing = in.intern(Type{Kind: KindNothing})
	return in
}

func (in *Interner) Table() *symbols.Table { return in.table }

// Nothing returns the bottom type.
func (in *Interner) Nothing() TypeID { return in.nothing }

// Nominal interns decl applied to args. Any unknown argument makes the whole type unknown.
func (in *Interner) Nominal(decl symbols.DeclID, args ...TypeID) TypeID {
	for _, a := range args {
		if a == NoTypeID {
			return NoTypeID
		}
	}
	return in.intern(Type{Kind: KindNominal, Decl: decl, Args: args})
}

// TypeParam interns the type that refers to a type parameter declaration.
func (in *Interner) TypeParam(decl symbols.DeclID) TypeID {
	return in.intern(Type{Kind: KindTypeParam, Decl: decl})
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

func (in *Interner) intern(t Type) TypeID {
	key := typeKey(t)
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[key]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	if len(t.Args) > 0 {
		t.Args = append([]TypeID(nil), t.Args...)
	}
	in.types = append(in.types, t)
	in.index[key] = id
	return id
}

func typeKey(t Type) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(t.Kind)))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(t.Decl), 10))
	for _, a := range t.Args {
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(uint64(a), 10))
	}
	return b.String()
}

// SetAnything registers the root class every type is assignable to.
func (in *Interner) SetAnything(decl symbols.DeclID) { in.anything = decl }

func (in *Interner) Anything() symbols.DeclID { return in.anything }

// SetDeclared records the declared type of a method, value, getter or parameter.
func (in *Interner) SetDeclared(decl symbols.DeclID, t TypeID) { in.declared[decl] = t }

// Declared returns the recorded declared type or NoTypeID.
func (in *Interner) Declared(decl symbols.DeclID) TypeID { return in.declared[decl] }

// AddSupertype appends a direct supertype of a class or interface.
func (in *Interner) AddSupertype(decl symbols.DeclID, t TypeID) {
	in.supers[decl] = append(in.supers[decl], t)
}

// Supertypes returns the direct supertypes in declaration order: extends, then satisfies.
func (in *Interner) Supertypes(decl symbols.DeclID) []TypeID { return in.supers[decl] }

// AddBound appends a satisfied-type constraint of a type parameter.
func (in *Interner) AddBound(tp symbols.DeclID, t TypeID) {
	in.bounds[tp] = append(in.bounds[tp], t)
}

// Bounds returns the satisfied types of a type parameter.
func (in *Interner) Bounds(tp symbols.DeclID) []TypeID { return in.bounds[tp] }

// DeclType returns the type a declaration introduces: C<T...> for classes and
// interfaces, the parameter type for type parameters.
func (in *Interner) DeclType(decl symbols.DeclID) TypeID {
	d := in.table.Get(decl)
	if d == nil {
		return NoTypeID
	}
	switch d.Kind {
	case symbols.KindTypeParameter:
		return in.TypeParam(decl)
	case symbols.KindClass, symbols.KindInterface:
		args := make([]TypeID, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			args[i] = in.TypeParam(tp)
		}
		return in.Nominal(decl, args...)
	default:
		return NoTypeID
	}
}

// String renders a type in source form.
func (in *Interner) String(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<unknown>"
	}
	switch t.Kind {
	case KindNothing:
		return "Nothing"
	case KindTypeParam:
		if d := in.table.Get(t.Decl); d != nil {
			return d.Name
		}
	case KindNominal:
		name := "?"
		if d := in.table.Get(t.Decl); d != nil {
			name = d.Name
		}
		if len(t.Args) == 0 {
			return name
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = in.String(a)
		}
		return name + "<" + strings.Join(parts, ", ") + ">"
	}
	return "<invalid>"
}
