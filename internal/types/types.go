package types

import (
	"fmt"

	"refcheck/internal/symbols"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks an unknown type, usually left behind by an unresolved name.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindNothing is the bottom type, assignable to everything.
	KindNothing
	// KindNominal is a class or interface applied to type arguments.
	KindNominal
	// KindTypeParam refers to a type parameter declaration.
	KindTypeParam
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNothing:
		return "nothing"
	case KindNominal:
		return "nominal"
	case KindTypeParam:
		return "typeparam"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Decl symbols.DeclID
	Args []TypeID
}
