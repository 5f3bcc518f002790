package hierarchy

import (
	"slices"
	"testing"

	"refcheck/internal/symbols"
	"refcheck/internal/types"
)

type world struct {
	tbl *symbols.Table
	in  *types.Interner
	pkg symbols.DeclID
}

func newWorld() *world {
	tbl := symbols.NewTable(0)
	return &world{tbl: tbl, in: types.NewInterner(tbl), pkg: tbl.Package("", 0)}
}

func (w *world) typeDecl(name string, kind symbols.Kind, supers ...symbols.DeclID) symbols.DeclID {
	id := w.tbl.New(&symbols.Decl{Name: name, Kind: kind, Container: w.pkg})
	for _, s := range supers {
		w.in.AddSupertype(id, w.in.Nominal(s))
	}
	return id
}

func (w *world) member(owner symbols.DeclID, name string) symbols.DeclID {
	return w.tbl.New(&symbols.Decl{Name: name, Kind: symbols.KindMethod, Container: owner})
}

func TestInheritedMembersStopsAtFirstDeclaringSupertype(t *testing.T) {
	w := newWorld()
	top := w.typeDecl("Top", symbols.KindInterface)
	topRun := w.member(top, "run")
	mid := w.typeDecl("Mid", symbols.KindInterface, top)
	midRun := w.member(mid, "run")
	leaf := w.typeDecl("Leaf", symbols.KindClass, mid)
	w.member(leaf, "run")

	got := w.newResolver().InheritedMembers(leaf, "run")
	if !slices.Equal(got, []symbols.DeclID{midRun}) {
		t.Fatalf("InheritedMembers = %v, want [%d] (top is %d)", got, midRun, topRun)
	}
}

func TestInheritedMembersDiamond(t *testing.T) {
	w := newWorld()
	base := w.typeDecl("Base", symbols.KindInterface)
	baseSize := w.member(base, "size")
	left := w.typeDecl("Left", symbols.KindInterface, base)
	leftSize := w.member(left, "size")
	right := w.typeDecl("Right", symbols.KindInterface, base)
	both := w.typeDecl("Both", symbols.KindClass, left, right)

	r := w.newResolver()
	got := r.InheritedMembers(both, "size")
	want := []symbols.DeclID{leftSize, baseSize}
	if !slices.Equal(got, want) {
		t.Fatalf("InheritedMembers = %v, want %v", got, want)
	}
	if r.RefinedMember(both, "size") != leftSize {
		t.Fatal("RefinedMember must be the first inherited member")
	}
}

func TestInheritedMembersDeduplicates(t *testing.T) {
	w := newWorld()
	base := w.typeDecl("Base", symbols.KindInterface)
	baseSize := w.member(base, "size")
	left := w.typeDecl("Left", symbols.KindInterface, base)
	right := w.typeDecl("Right", symbols.KindInterface, base)
	both := w.typeDecl("Both", symbols.KindClass, left, right)

	got := w.newResolver().InheritedMembers(both, "size")
	if !slices.Equal(got, []symbols.DeclID{baseSize}) {
		t.Fatalf("InheritedMembers = %v", got)
	}
}

func TestInheritedMembersEmpty(t *testing.T) {
	w := newWorld()
	base := w.typeDecl("Base", symbols.KindInterface)
	leaf := w.typeDecl("Leaf", symbols.KindClass, base)
	r := w.newResolver()
	if got := r.InheritedMembers(leaf, "missing"); len(got) != 0 {
		t.Fatalf("InheritedMembers = %v", got)
	}
	if r.RefinedMember(leaf, "missing").IsValid() {
		t.Fatal("RefinedMember must be NoDeclID")
	}
}

func (w *world) newResolver() *Resolver { return New(w.tbl, w.in) }
