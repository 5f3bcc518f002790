package driver

import (
	"refcheck/internal/source"
	"refcheck/internal/symbols"
)

// Link is one refined-declaration link recorded by the refinement pass.
type Link struct {
	Member  string      `json:"member" yaml:"member" msgpack:"member"`
	Refined string      `json:"refined" yaml:"refined" msgpack:"refined"`
	Span    source.Span `json:"-" yaml:"-" msgpack:"span"`
}

// collectLinks lists every linked member owned by roots, in declaration order.
func collectLinks(table *symbols.Table, roots []symbols.DeclID) []Link {
	var out []Link
	var visit func(id symbols.DeclID)
	visit = func(id symbols.DeclID) {
		d := table.Get(id)
		if d == nil {
			return
		}
		if d.Refined.IsValid() {
			out = append(out, Link{
				Member:  table.QualifiedName(id),
				Refined: table.QualifiedName(d.Refined),
				Span:    d.NameSpan,
			})
		}
		for _, child := range d.Body {
			visit(child)
		}
	}
	for _, root := range roots {
		visit(root)
	}
	return out
}
