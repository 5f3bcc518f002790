package ast

import (
	"refcheck/internal/source"
)

// Param is a value parameter of a method or class.
type Param struct {
	Name        string
	NameSpan    source.Span
	Type        TypeID // NoTypeID after a syntax error
	Annotations AnnotationList
	Span        source.Span
}

// TypeParam is a generic type parameter; bounds come from given clauses.
type TypeParam struct {
	Name        string
	NameSpan    source.Span
	Annotations AnnotationList
}

// Constraint is a `given T satisfies A & B` clause.
type Constraint struct {
	Name     string
	NameSpan source.Span
	Bounds   []TypeID
}

type Params struct {
	Arena *Arena[Param]
}

func NewParams(capHint uint) *Params {
	return &Params{Arena: NewArena[Param](capHint)}
}

func (p *Params) New(param Param) ParamID {
	return ParamID(p.Arena.Allocate(param))
}

func (p *Params) Get(id ParamID) *Param {
	return p.Arena.Get(uint32(id))
}

type TypeParams struct {
	Arena *Arena[TypeParam]
}

func NewTypeParams(capHint uint) *TypeParams {
	return &TypeParams{Arena: NewArena[TypeParam](capHint)}
}

func (p *TypeParams) New(tp TypeParam) TypeParamID {
	return TypeParamID(p.Arena.Allocate(tp))
}

func (p *TypeParams) Get(id TypeParamID) *TypeParam {
	return p.Arena.Get(uint32(id))
}
