package ast

import (
	"refcheck/internal/source"
)

type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclClass
	DeclInterface
	// DeclMethod has a parameter list; its return type may be void.
	DeclMethod
	// DeclGetter is a typed declaration with a block body and no parameters.
	DeclGetter
	// DeclValue is a simple attribute, optionally initialised.
	DeclValue
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclMethod:
		return "method"
	case DeclGetter:
		return "getter"
	case DeclValue:
		return "value"
	default:
		return "invalid"
	}
}

type Decl struct {
	Kind        DeclKind
	Name        string
	NameSpan    source.Span
	Span        source.Span
	Annotations AnnotationList

	// Type is the declared type of methods, getters and values.
	// A void method leaves it NoTypeID and sets Void.
	Type TypeID
	Void bool

	TypeParams []TypeParamID
	// HasParams distinguishes `class C()` from `class C`.
	HasParams bool
	Params    []ParamID

	Extends     TypeID
	Satisfies   []TypeID
	Constraints []Constraint

	// Body holds nested declarations: members for classes and interfaces,
	// locals for methods and getters.
	Body    []DeclID
	HasBody bool
}

type Decls struct {
	Arena *Arena[Decl]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{Arena: NewArena[Decl](capHint)}
}

func (d *Decls) New(decl Decl) DeclID {
	return DeclID(d.Arena.Allocate(decl))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}
