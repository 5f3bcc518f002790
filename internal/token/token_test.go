package token_test

import (
	"testing"

	"refcheck/internal/source"
	"refcheck/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestAnnotations(t *testing.T) {
	for _, word := range []string{"shared", "formal", "default", "actual", "variable", "abstract"} {
		k, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("%q is not a keyword", word)
		}
		if !tok(k).IsAnnotation() || !tok(k).IsKeyword() {
			t.Fatalf("%q should be an annotation keyword", word)
		}
	}
	for _, k := range []token.Kind{token.KwClass, token.KwVoid, token.Ident, token.Lt} {
		if tok(k).IsAnnotation() {
			t.Fatalf("%v must NOT be an annotation", k)
		}
	}
}

func TestLookupKeywordCaseSensitive(t *testing.T) {
	if _, ok := token.LookupKeyword("Class"); ok {
		t.Fatal("keywords must be lowercase only")
	}
	if k, ok := token.LookupKeyword("satisfies"); !ok || k != token.KwSatisfies {
		t.Fatalf("satisfies -> %v %v", k, ok)
	}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.StringLit, token.CharLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if tok(token.Ident).IsLiteral() {
		t.Fatal("ident is not a literal")
	}
}

func TestKindString(t *testing.T) {
	if got := token.FatArrow.String(); got != "=>" {
		t.Fatalf("FatArrow.String() = %q", got)
	}
	if got := token.KwInterface.String(); got != "interface" {
		t.Fatalf("KwInterface.String() = %q", got)
	}
}
