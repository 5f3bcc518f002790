package ast

import (
	"testing"

	"refcheck/internal/source"
)

func TestArenaReservesZero(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("allocate returned %d", id)
	}
}

func TestTypeString(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	inner := b.Types.New("T", sp, nil, sp)
	seq := b.Types.New("Sequence", sp, []TypeID{inner}, sp)
	str := b.Types.New("String", sp, nil, sp)
	m := b.Types.New("Map", sp, []TypeID{str, seq}, sp)
	if got := b.TypeString(m); got != "Map<String, Sequence<T>>" {
		t.Fatalf("TypeString = %q", got)
	}
	outer := b.Types.New("Outer", sp, []TypeID{str}, sp)
	node := b.Types.NewMember(outer, "Node", sp, []TypeID{inner}, sp)
	if got := b.TypeString(node); got != "Outer<String>.Node<T>" {
		t.Fatalf("TypeString(member) = %q", got)
	}
	if got := b.TypeString(NoTypeID); got != "<unknown>" {
		t.Fatalf("TypeString(NoTypeID) = %q", got)
	}
}

func TestAnnotationsString(t *testing.T) {
	a := AnnShared | AnnActual | AnnDefault
	if got := a.String(); got != "shared default actual" {
		t.Fatalf("String = %q", got)
	}
	if !a.Has(AnnActual) || a.Has(AnnFormal) {
		t.Fatal("Has mismatch")
	}
}
