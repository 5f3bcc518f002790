package ast

import (
	"refcheck/internal/source"
)

// TypeExpr is a possibly generic type reference: Name<Args...>, or a member
// type Qualifier.Name<Args...>.
type TypeExpr struct {
	Qualifier TypeID
	Name      string
	NameSpan  source.Span
	Args      []TypeID
	Span      source.Span
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{Arena: NewArena[TypeExpr](capHint)}
}

func (t *TypeExprs) New(name string, nameSpan source.Span, args []TypeID, span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{
		Name:     name,
		NameSpan: nameSpan,
		Args:     args,
		Span:     span,
	}))
}

// NewMember allocates Qualifier.Name<Args...>.
func (t *TypeExprs) NewMember(qualifier TypeID, name string, nameSpan source.Span, args []TypeID, span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{
		Qualifier: qualifier,
		Name:      name,
		NameSpan:  nameSpan,
		Args:      args,
		Span:      span,
	}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}
