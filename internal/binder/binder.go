// Package binder builds the declaration model from parsed files: it creates
// declarations, resolves type names, records supertypes and constraints, and
// rejects inheritance cycles. It runs before the refinement checker.
package binder

import (
	"strings"

	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/hierarchy"
	"refcheck/internal/source"
	"refcheck/internal/symbols"
	"refcheck/internal/types"
)

// Unit is one parsed file. Several units may share a builder.
type Unit struct {
	AST     *ast.Builder
	File    ast.FileID
	Builtin bool
}

type Options struct {
	Reporter diag.Reporter
}

// Result is the resolved model shared by the later phases.
type Result struct {
	Table     *symbols.Table
	Types     *types.Interner
	Hierarchy *hierarchy.Resolver
	Language  symbols.DeclID
	// UnitDecls lists the top-level declarations of every unit, in unit order.
	UnitDecls [][]symbols.DeclID
}

type pending struct {
	unit *Unit
	node ast.DeclID
	id   symbols.DeclID
}

type pendingParam struct {
	unit *Unit
	node ast.ParamID
	id   symbols.DeclID
}

type binder struct {
	opts   Options
	table  *symbols.Table
	types  *types.Interner
	lang   symbols.DeclID
	decls  []pending
	params []pendingParam
}

// Bind declares every unit first, then resolves types, so declarations may
// refer to each other regardless of file or source order.
func Bind(units []Unit, opts Options) *Result {
	b := &binder{
		opts:  opts,
		table: symbols.NewTable(0),
	}
	b.types = types.NewInterner(b.table)

	res := &Result{
		Table:     b.table,
		Types:     b.types,
		UnitDecls: make([][]symbols.DeclID, len(units)),
	}
	for i := range units {
		res.UnitDecls[i] = b.declareUnit(&units[i])
	}

	if lang, ok := b.table.LookupPackage(LanguagePackage); ok {
		b.lang = lang
		res.Language = lang
		if anything := b.table.DirectMember(lang, "Anything"); anything.IsValid() {
			b.types.SetAnything(anything)
		}
	}

	for _, p := range b.decls {
		b.resolveSupertypes(p)
	}
	for _, p := range b.decls {
		b.resolveSignature(p)
	}
	for _, p := range b.params {
		b.resolveParam(p)
	}

	res.Hierarchy = hierarchy.New(b.table, b.types)
	return res
}

func (b *binder) packageFor(u *Unit) symbols.DeclID {
	if u.Builtin {
		return b.table.Package(LanguagePackage, symbols.FlagBuiltin)
	}
	f := u.AST.Files.Get(u.File)
	return b.table.Package(strings.Join(f.Package, "."), 0)
}

func (b *binder) report(code diag.Code, span source.Span, msg string) {
	if b.opts.Reporter == nil {
		return
	}
	b.opts.Reporter.Report(code, diag.SevError, diag.PriorityDefault, span, msg, nil)
}
