package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"refcheck/internal/ast"
	"refcheck/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within file content bounds
// 2) every declaration span is non-empty and contained in its parent's span
// 3) file.Span covers the union of top-level declaration spans (if any exist)
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	// 2) declarations nest; 3) file covers union
	var union source.Span
	for i, id := range f.Decls {
		sp, err := checkDecl(b, id, f.Span, sf.ID)
		if err != nil {
			return err
		}
		if i == 0 {
			union = sp
		} else {
			union = union.Cover(sp)
		}
	}
	if len(f.Decls) > 0 && (union.Start < f.Span.Start || union.End > f.Span.End) {
		return fmt.Errorf("file span %v does not cover union of declarations %v", f.Span, union)
	}
	return nil
}

func checkDecl(b *ast.Builder, id ast.DeclID, parent source.Span, file source.FileID) (source.Span, error) {
	d := b.Decls.Get(id)
	if d == nil {
		return source.Span{}, fmt.Errorf("nil declaration for id=%d", id)
	}
	sp := d.Span
	if sp.End <= sp.Start {
		return sp, fmt.Errorf("empty span for declaration %q: %v", d.Name, sp)
	}
	if sp.File != file {
		return sp, fmt.Errorf("declaration %q span file mismatch: got=%d want=%d", d.Name, sp.File, file)
	}
	if !parent.Contains(sp) {
		return sp, fmt.Errorf("declaration %q span %v is outside parent span %v", d.Name, sp, parent)
	}
	if !sp.Contains(d.NameSpan) {
		return sp, fmt.Errorf("declaration %q name span %v is outside its span %v", d.Name, d.NameSpan, sp)
	}
	for _, child := range d.Body {
		if _, err := checkDecl(b, child, sp, file); err != nil {
			return sp, err
		}
	}
	return sp, nil
}
