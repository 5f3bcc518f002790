package symbols

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Table stores declarations in a compact arena; index 0 is the NoDeclID sentinel.
type Table struct {
	data     []Decl
	packages map[string]DeclID
	order    []DeclID
}

// NewTable creates a declaration table with optional capacity hint.
func NewTable(capacity uint32) *Table {
	if capacity == 0 {
		capacity = 64
	}
	return &Table{
		data:     make([]Decl, 1, capacity+1),
		packages: make(map[string]DeclID),
	}
}

// New allocates a declaration and appends it to its container's body,
// parameter or type-parameter list according to its kind.
func (t *Table) New(d *Decl) DeclID {
	if d == nil {
		panic("symbols.New: nil decl")
	}
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	id := DeclID(value)
	t.data = append(t.data, *d)
	if parent := t.Get(d.Container); parent != nil {
		switch d.Kind {
		case KindParameter:
			parent.Params = append(parent.Params, id)
		case KindTypeParameter:
			parent.TypeParams = append(parent.TypeParams, id)
		default:
			parent.Body = append(parent.Body, id)
		}
	}
	return id
}

// Package returns the package declaration for name, creating it on first use.
func (t *Table) Package(name string, flags Flags) DeclID {
	if id, ok := t.packages[name]; ok {
		return id
	}
	id := t.New(&Decl{Name: name, Kind: KindPackage, Flags: flags})
	t.packages[name] = id
	t.order = append(t.order, id)
	return id
}

// LookupPackage finds an existing package declaration.
func (t *Table) LookupPackage(name string) (DeclID, bool) {
	id, ok := t.packages[name]
	return id, ok
}

// Packages returns package declarations in creation order.
func (t *Table) Packages() []DeclID {
	return t.order
}

// Get returns a declaration pointer or nil for invalid ID.
func (t *Table) Get(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Len reports number of stored declarations excluding sentinel.
func (t *Table) Len() int { return len(t.data) - 1 }

// DirectMember returns the first member of container named name, or NoDeclID.
func (t *Table) DirectMember(container DeclID, name string) DeclID {
	c := t.Get(container)
	if c == nil {
		return NoDeclID
	}
	for _, id := range c.Body {
		if t.data[id].Name == name {
			return id
		}
	}
	return NoDeclID
}

// SetRefined records the refined declaration link once. It reports whether
// the link was written; an existing link is never overwritten.
func (t *Table) SetRefined(id, refined DeclID) bool {
	d := t.Get(id)
	if d == nil || !refined.IsValid() || d.Refined.IsValid() {
		return false
	}
	d.Refined = refined
	return true
}

// QualifiedName renders Pkg.Outer.Member for diagnostics and link listings.
// Parameters and type parameters are rendered relative to their owner.
func (t *Table) QualifiedName(id DeclID) string {
	var parts []string
	for cur := id; cur.IsValid(); {
		d := t.Get(cur)
		if d == nil {
			break
		}
		if d.Kind == KindPackage {
			if d.Name != "" {
				parts = append(parts, d.Name)
			}
			break
		}
		parts = append(parts, d.Name)
		cur = d.Container
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Walk visits id and everything it owns in post-order: type parameters,
// parameters and body first, then the declaration itself.
func (t *Table) Walk(id DeclID, visit func(DeclID)) {
	d := t.Get(id)
	if d == nil {
		return
	}
	for _, child := range d.TypeParams {
		t.Walk(child, visit)
	}
	for _, child := range d.Params {
		t.Walk(child, visit)
	}
	for _, child := range d.Body {
		t.Walk(child, visit)
	}
	visit(id)
}
