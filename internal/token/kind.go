package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	KwPackage   // package
	KwClass     // class
	KwInterface // interface
	KwVoid      // void
	KwExtends   // extends
	KwSatisfies // satisfies
	KwGiven     // given
	KwReturn    // return

	KwShared   // shared
	KwFormal   // formal
	KwDefault  // default
	KwActual   // actual
	KwVariable // variable
	KwAbstract // abstract

	IntLit
	FloatLit
	StringLit
	CharLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Amp       // &
	Pipe      // |
	AndAnd    // &&
	OrOr      // ||
	Question  // ?
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	FatArrow  // =>
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwPackage:   "package",
	KwClass:     "class",
	KwInterface: "interface",
	KwVoid:      "void",
	KwExtends:   "extends",
	KwSatisfies: "satisfies",
	KwGiven:     "given",
	KwReturn:    "return",
	KwShared:    "shared",
	KwFormal:    "formal",
	KwDefault:   "default",
	KwActual:    "actual",
	KwVariable:  "variable",
	KwAbstract:  "abstract",
	IntLit:      "IntLit",
	FloatLit:    "FloatLit",
	StringLit:   "StringLit",
	CharLit:     "CharLit",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Assign:      "=",
	EqEq:        "==",
	Bang:        "!",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	Amp:         "&",
	Pipe:        "|",
	AndAnd:      "&&",
	OrOr:        "||",
	Question:    "?",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	FatArrow:    "=>",
	Arrow:       "->",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
