package symbols

import (
	"refcheck/internal/source"
)

// Kind is the closed set of declaration kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPackage
	KindClass
	KindInterface
	KindMethod
	KindValue
	KindGetter
	KindParameter
	KindTypeParameter
)

func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindMethod:
		return "method"
	case KindValue:
		return "value"
	case KindGetter:
		return "getter"
	case KindParameter:
		return "parameter"
	case KindTypeParameter:
		return "type parameter"
	default:
		return "invalid"
	}
}

// IsClassOrInterface reports whether declarations of this kind own type members.
func (k Kind) IsClassOrInterface() bool {
	return k == KindClass || k == KindInterface
}

// IsTyped reports whether the declaration has a declared type of its own.
func (k Kind) IsTyped() bool {
	switch k {
	case KindMethod, KindValue, KindGetter, KindParameter:
		return true
	default:
		return false
	}
}

// IsFunctional reports whether the declaration owns a parameter list.
func (k Kind) IsFunctional() bool {
	return k == KindMethod || k == KindClass
}

// IsGeneric reports whether the declaration may own type parameters.
func (k Kind) IsGeneric() bool {
	switch k {
	case KindClass, KindInterface, KindMethod:
		return true
	default:
		return false
	}
}

// Flags are the annotations fixed by the model builder.
type Flags uint16

const (
	FlagShared Flags = 1 << iota
	FlagFormal
	FlagDefault
	FlagActual
	FlagVariable
	FlagAbstract
	// FlagBuiltin marks declarations of the language package.
	FlagBuiltin
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

// Strings returns a slice of textual flag labels.
func (f Flags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	for _, l := range []struct {
		flag Flags
		name string
	}{
		{FlagShared, "shared"},
		{FlagFormal, "formal"},
		{FlagDefault, "default"},
		{FlagActual, "actual"},
		{FlagVariable, "variable"},
		{FlagAbstract, "abstract"},
		{FlagBuiltin, "builtin"},
	} {
		if f.Has(l.flag) {
			labels = append(labels, l.name)
		}
	}
	return labels
}

// Decl is one named program element of the model.
type Decl struct {
	Name      string
	Kind      Kind
	Container DeclID
	Flags     Flags

	// NameSpan is where diagnostics about the declaration point.
	NameSpan source.Span
	Span     source.Span
	// TypeSpan covers the declared type node. HasTypeNode is false when the
	// parser lost it after a syntax error.
	TypeSpan    source.Span
	HasTypeNode bool

	TypeParams []DeclID
	Params     []DeclID
	// Body holds members of classes/interfaces, locals of methods/getters/values
	// and top-level declarations of packages.
	Body []DeclID

	// Refined is the member this declaration refines; set at most once.
	Refined DeclID
}

func (d *Decl) IsShared() bool   { return d.Flags.Has(FlagShared) }
func (d *Decl) IsFormal() bool   { return d.Flags.Has(FlagFormal) }
func (d *Decl) IsDefault() bool  { return d.Flags.Has(FlagDefault) }
func (d *Decl) IsActual() bool   { return d.Flags.Has(FlagActual) }
func (d *Decl) IsVariable() bool { return d.Flags.Has(FlagVariable) }
func (d *Decl) IsAbstract() bool { return d.Flags.Has(FlagAbstract) }
