package symbols

import (
	"slices"
	"testing"
)

func TestNewAttachesToContainer(t *testing.T) {
	tbl := NewTable(0)
	pkg := tbl.Package("demo", 0)
	if again := tbl.Package("demo", 0); again != pkg {
		t.Fatalf("Package must be shared: %d vs %d", pkg, again)
	}
	cls := tbl.New(&Decl{Name: "C", Kind: KindClass, Container: pkg})
	tp := tbl.New(&Decl{Name: "T", Kind: KindTypeParameter, Container: cls})
	param := tbl.New(&Decl{Name: "x", Kind: KindParameter, Container: cls})
	member := tbl.New(&Decl{Name: "size", Kind: KindMethod, Container: cls})

	c := tbl.Get(cls)
	if !slices.Equal(c.TypeParams, []DeclID{tp}) || !slices.Equal(c.Params, []DeclID{param}) || !slices.Equal(c.Body, []DeclID{member}) {
		t.Fatalf("unexpected ownership %+v", c)
	}
	if tbl.DirectMember(cls, "size") != member || tbl.DirectMember(cls, "x").IsValid() {
		t.Fatal("DirectMember must only see body declarations")
	}
	if got := tbl.QualifiedName(member); got != "demo.C.size" {
		t.Fatalf("QualifiedName = %q", got)
	}
}

func TestSetRefinedIsWriteOnce(t *testing.T) {
	tbl := NewTable(0)
	a := tbl.New(&Decl{Name: "a", Kind: KindMethod})
	b := tbl.New(&Decl{Name: "b", Kind: KindMethod})
	c := tbl.New(&Decl{Name: "c", Kind: KindMethod})
	if !tbl.SetRefined(a, b) {
		t.Fatal("first SetRefined must write")
	}
	if tbl.SetRefined(a, c) || tbl.Get(a).Refined != b {
		t.Fatal("SetRefined must never overwrite")
	}
	if tbl.SetRefined(c, NoDeclID) {
		t.Fatal("SetRefined with NoDeclID must be a no-op")
	}
}

func TestWalkIsPostOrder(t *testing.T) {
	tbl := NewTable(0)
	pkg := tbl.Package("", 0)
	cls := tbl.New(&Decl{Name: "C", Kind: KindClass, Container: pkg})
	m := tbl.New(&Decl{Name: "m", Kind: KindMethod, Container: cls})
	p := tbl.New(&Decl{Name: "p", Kind: KindParameter, Container: m})

	var order []DeclID
	tbl.Walk(pkg, func(id DeclID) { order = append(order, id) })
	want := []DeclID{p, m, cls, pkg}
	if !slices.Equal(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestFlagsStrings(t *testing.T) {
	f := FlagShared | FlagActual | FlagBuiltin
	if got := f.Strings(); !slices.Equal(got, []string{"shared", "actual", "builtin"}) {
		t.Fatalf("Strings = %v", got)
	}
}
