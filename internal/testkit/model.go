package testkit

import (
	"fmt"
	"strings"

	"refcheck/internal/ast"
	"refcheck/internal/binder"
	"refcheck/internal/diag"
	"refcheck/internal/lexer"
	"refcheck/internal/parser"
	"refcheck/internal/source"
	"refcheck/internal/symbols"
)

// Source is one in-memory input file.
type Source struct {
	Path string
	Text string
}

// Model is a bound program built from in-memory sources plus the language package.
type Model struct {
	*binder.Result
	Files *source.FileSet
	AST   *ast.Builder
	// Bag holds lexer, parser and binder diagnostics.
	Bag *diag.Bag
	// Units[0] is the language package; Units[i] belongs to source file i.
	Units []binder.Unit
	// Roots are the top-level declarations of the given sources, in order.
	Roots []symbols.DeclID
}

// Build parses and binds srcs together with the language package.
func Build(srcs ...Source) *Model {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})

	parse := func(id source.FileID) ast.FileID {
		lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
		return parser.ParseFile(lx, b, parser.Options{Reporter: rep}).File
	}

	prelude := fs.Add(binder.LanguagePath, []byte(binder.LanguageSource), source.FileVirtual|source.FileBuiltin)
	units := []binder.Unit{{AST: b, File: parse(prelude), Builtin: true}}
	for _, s := range srcs {
		id := fs.AddVirtual(s.Path, []byte(s.Text))
		units = append(units, binder.Unit{AST: b, File: parse(id)})
	}

	res := binder.Bind(units, binder.Options{Reporter: rep})
	m := &Model{Result: res, Files: fs, AST: b, Bag: bag, Units: units}
	for _, decls := range res.UnitDecls[1:] {
		m.Roots = append(m.Roots, decls...)
	}
	return m
}

// BuildOne builds a model from a single source named test.cy.
func BuildOne(text string) *Model {
	return Build(Source{Path: "test.cy", Text: text})
}

// Lookup resolves a dotted path such as "C.size" or "C.size.n" starting from
// the top-level declarations; the last path element may name a parameter or
// a type parameter. It returns NoDeclID when nothing matches.
func (m *Model) Lookup(path string) symbols.DeclID {
	parts := strings.Split(path, ".")
	var cur symbols.DeclID
	for _, r := range m.Roots {
		if m.Table.Get(r).Name == parts[0] {
			cur = r
			break
		}
	}
	for _, name := range parts[1:] {
		if !cur.IsValid() {
			return symbols.NoDeclID
		}
		d := m.Table.Get(cur)
		next := symbols.NoDeclID
		for _, list := range [][]symbols.DeclID{d.Body, d.Params, d.TypeParams} {
			for _, id := range list {
				if m.Table.Get(id).Name == name {
					next = id
					break
				}
			}
			if next.IsValid() {
				break
			}
		}
		cur = next
	}
	return cur
}

// MustLookup is Lookup that panics on a missing declaration.
func (m *Model) MustLookup(path string) symbols.DeclID {
	id := m.Lookup(path)
	if !id.IsValid() {
		panic(fmt.Sprintf("testkit: no declaration %q", path))
	}
	return id
}

// Summary renders diagnostics as "[CODE] message; ..." or "<none>".
func Summary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// Messages returns the diagnostic messages in report order.
func Messages(bag *diag.Bag) []string {
	diags := bag.Items()
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}
