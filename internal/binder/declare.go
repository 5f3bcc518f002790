package binder

import (
	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/source"
	"refcheck/internal/symbols"
)

var kindOf = map[ast.DeclKind]symbols.Kind{
	ast.DeclClass:     symbols.KindClass,
	ast.DeclInterface: symbols.KindInterface,
	ast.DeclMethod:    symbols.KindMethod,
	ast.DeclGetter:    symbols.KindGetter,
	ast.DeclValue:     symbols.KindValue,
}

func flagsOf(a ast.Annotations, builtin bool) symbols.Flags {
	var f symbols.Flags
	for _, m := range []struct {
		ann  ast.Annotations
		flag symbols.Flags
	}{
		{ast.AnnShared, symbols.FlagShared},
		{ast.AnnFormal, symbols.FlagFormal},
		{ast.AnnDefault, symbols.FlagDefault},
		{ast.AnnActual, symbols.FlagActual},
		{ast.AnnVariable, symbols.FlagVariable},
		{ast.AnnAbstract, symbols.FlagAbstract},
	} {
		if a.Has(m.ann) {
			f |= m.flag
		}
	}
	if builtin {
		f |= symbols.FlagBuiltin
	}
	return f
}

func (b *binder) declareUnit(u *Unit) []symbols.DeclID {
	pkg := b.packageFor(u)
	f := u.AST.Files.Get(u.File)
	out := make([]symbols.DeclID, 0, len(f.Decls))
	for _, node := range f.Decls {
		out = append(out, b.declare(u, pkg, node))
	}
	return out
}

// declare creates the declaration for node and everything it owns.
func (b *binder) declare(u *Unit, container symbols.DeclID, node ast.DeclID) symbols.DeclID {
	n := u.AST.Decls.Get(node)
	b.checkDuplicate(container, n.Name, n.NameSpan, false)

	d := &symbols.Decl{
		Name:      n.Name,
		Kind:      kindOf[n.Kind],
		Container: container,
		Flags:     flagsOf(n.Annotations.Set, u.Builtin),
		NameSpan:  n.NameSpan,
		Span:      n.Span,
	}
	if t := u.AST.Types.Get(n.Type); t != nil {
		d.TypeSpan = t.Span
		d.HasTypeNode = true
	}
	id := b.table.New(d)
	b.decls = append(b.decls, pending{unit: u, node: node, id: id})

	for _, tpNode := range n.TypeParams {
		tp := u.AST.TypeParams.Get(tpNode)
		b.checkDuplicate(id, tp.Name, tp.NameSpan, true)
		b.table.New(&symbols.Decl{
			Name:      tp.Name,
			Kind:      symbols.KindTypeParameter,
			Container: id,
			Flags:     flagsOf(tp.Annotations.Set, u.Builtin),
			NameSpan:  tp.NameSpan,
			Span:      tp.NameSpan,
		})
	}
	for _, pNode := range n.Params {
		p := u.AST.Params.Get(pNode)
		b.checkDuplicateParam(id, p)
		pd := &symbols.Decl{
			Name:      p.Name,
			Kind:      symbols.KindParameter,
			Container: id,
			Flags:     flagsOf(p.Annotations.Set, u.Builtin),
			NameSpan:  p.NameSpan,
			Span:      p.Span,
		}
		if t := u.AST.Types.Get(p.Type); t != nil {
			pd.TypeSpan = t.Span
			pd.HasTypeNode = true
		}
		pID := b.table.New(pd)
		b.params = append(b.params, pendingParam{unit: u, node: pNode, id: pID})
	}
	for _, child := range n.Body {
		b.declare(u, id, child)
	}
	return id
}

// checkDuplicate reports a second declaration of name in the same scope.
// The later declaration is still modelled.
func (b *binder) checkDuplicate(container symbols.DeclID, name string, span source.Span, typeParam bool) {
	c := b.table.Get(container)
	if c == nil || name == "" {
		return
	}
	list := c.Body
	if typeParam {
		list = c.TypeParams
	}
	for _, other := range list {
		prev := b.table.Get(other)
		if prev.Name != name {
			continue
		}
		if b.opts.Reporter != nil {
			b.opts.Reporter.Report(diag.SemaDuplicateDecl, diag.SevError, diag.PriorityDefault, span,
				"duplicate declaration '"+name+"'", []diag.Note{{Span: prev.NameSpan, Msg: "previous declaration is here"}})
		}
		return
	}
}

func (b *binder) checkDuplicateParam(container symbols.DeclID, p *ast.Param) {
	c := b.table.Get(container)
	for _, other := range c.Params {
		prev := b.table.Get(other)
		if prev.Name == p.Name && b.opts.Reporter != nil {
			b.opts.Reporter.Report(diag.SemaDuplicateDecl, diag.SevError, diag.PriorityDefault, p.NameSpan,
				"duplicate parameter '"+p.Name+"'", []diag.Note{{Span: prev.NameSpan, Msg: "previous declaration is here"}})
			return
		}
	}
}
