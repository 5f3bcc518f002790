package ast

import (
	"strings"

	"refcheck/internal/source"
)

type Hints struct{ Files, Decls, Types uint }

// Builder owns every AST arena. One builder may hold several files, the prelude included.
type Builder struct {
	Files      *Files
	Decls      *Decls
	Types      *TypeExprs
	Params     *Params
	TypeParams *TypeParams
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 7
	}
	if hints.Types == 0 {
		hints.Types = 1 << 8
	}
	return &Builder{
		Files:      NewFiles(hints.Files),
		Decls:      NewDecls(hints.Decls),
		Types:      NewTypeExprs(hints.Types),
		Params:     NewParams(hints.Decls),
		TypeParams: NewTypeParams(hints.Decls / 4),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushDecl(file FileID, decl DeclID) {
	f := b.Files.Get(file)
	f.Decls = append(f.Decls, decl)
}

// PackageName returns the dotted package name of file, or "" for the default package.
func (b *Builder) PackageName(file FileID) string {
	f := b.Files.Get(file)
	if f == nil {
		return ""
	}
	return strings.Join(f.Package, ".")
}

// TypeString renders a type expression back to source form.
func (b *Builder) TypeString(id TypeID) string {
	t := b.Types.Get(id)
	if t == nil {
		return "<unknown>"
	}
	var sb strings.Builder
	if t.Qualifier.IsValid() {
		sb.WriteString(b.TypeString(t.Qualifier))
		sb.WriteByte('.')
	}
	sb.WriteString(t.Name)
	if len(t.Args) == 0 {
		return sb.String()
	}
	sb.WriteByte('<')
	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.TypeString(arg))
	}
	sb.WriteByte('>')
	return sb.String()
}
