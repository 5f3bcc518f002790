package token

import (
	"refcheck/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, string, or character literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsAnnotation reports whether the token is one of the declaration annotations.
func (t Token) IsAnnotation() bool {
	return t.Kind.IsAnnotation()
}

func (k Kind) IsAnnotation() bool {
	switch k {
	case KwShared, KwFormal, KwDefault, KwActual, KwVariable, KwAbstract:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwPackage && t.Kind <= KwAbstract
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
