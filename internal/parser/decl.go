package parser

import (
	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/token"
)

var annotationFlags = map[token.Kind]ast.Annotations{
	token.KwShared:   ast.AnnShared,
	token.KwFormal:   ast.AnnFormal,
	token.KwDefault:  ast.AnnDefault,
	token.KwActual:   ast.AnnActual,
	token.KwVariable: ast.AnnVariable,
	token.KwAbstract: ast.AnnAbstract,
}

// isDeclStart: аннотация, class/interface/void или `Type Name`.
func (p *Parser) isDeclStart() bool {
	tok := p.peek()
	switch {
	case tok.IsAnnotation():
		return true
	case tok.Kind == token.KwClass, tok.Kind == token.KwInterface, tok.Kind == token.KwVoid:
		return true
	case tok.Kind == token.Ident:
		end := p.typeEndsAt(0)
		return end > 0 && p.peekAt(end).Kind == token.Ident
	default:
		return false
	}
}

func (p *Parser) parseAnnotations() ast.AnnotationList {
	var list ast.AnnotationList
	for p.peek().IsAnnotation() {
		tok := p.advance()
		flag := annotationFlags[tok.Kind]
		if list.Set.Has(flag) {
			p.report(diag.SynDuplicateAnnotation, diag.SevWarning, tok.Span, "duplicate annotation '"+tok.Text+"'")
		}
		if list.Set == 0 {
			list.Span = tok.Span
		} else {
			list.Span = list.Span.Cover(tok.Span)
		}
		list.Set |= flag
	}
	return list
}

// parseDecl: decl := annotation* (classDecl | interfaceDecl | typedDecl | voidDecl)
func (p *Parser) parseDecl() (ast.DeclID, bool) {
	start := p.peek().Span
	anns := p.parseAnnotations()

	var decl ast.Decl
	var ok bool
	switch {
	case p.at(token.KwClass):
		decl, ok = p.parseClass()
	case p.at(token.KwInterface):
		decl, ok = p.parseInterface()
	case p.at(token.KwVoid):
		decl, ok = p.parseVoid()
	case p.at(token.Ident):
		decl, ok = p.parseTyped()
	default:
		p.report(diag.SynDanglingAnnotation, diag.SevError, anns.Span, "annotations must be followed by a declaration")
		p.resyncTop()
		return ast.NoDeclID, false
	}
	if !ok {
		p.resyncTop()
		return ast.NoDeclID, false
	}
	decl.Annotations = anns
	decl.Span = start.Cover(p.lastSpan)
	return p.arenas.Decls.New(decl), true
}

func (p *Parser) parseName(what string) (token.Token, bool) {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what+" name, got \""+p.peek().Text+"\"")
}

// classDecl := "class" Ident typeParams? params? ("extends" type args?)?
//
//	("satisfies" type ("&" type)*)? constraint* (body | ";")
func (p *Parser) parseClass() (ast.Decl, bool) {
	p.advance()
	name, ok := p.parseName("class")
	if !ok {
		return ast.Decl{}, false
	}
	decl := ast.Decl{Kind: ast.DeclClass, Name: name.Text, NameSpan: name.Span}
	if p.at(token.Lt) {
		decl.TypeParams = p.parseTypeParams()
	}
	if p.at(token.LParen) {
		decl.HasParams = true
		decl.Params = p.parseParams()
	}
	if p.at(token.KwExtends) {
		p.advance()
		decl.Extends, _ = p.parseType()
		if p.at(token.LParen) {
			p.skipBalanced()
		}
	}
	if p.at(token.KwSatisfies) {
		p.advance()
		decl.Satisfies = p.parseTypeList()
	}
	decl.Constraints = p.parseConstraints()
	return decl, p.parseTypeBody(&decl)
}

// interfaceDecl := "interface" Ident typeParams? ("satisfies" type ("&" type)*)? constraint* (body | ";")
func (p *Parser) parseInterface() (ast.Decl, bool) {
	p.advance()
	name, ok := p.parseName("interface")
	if !ok {
		return ast.Decl{}, false
	}
	decl := ast.Decl{Kind: ast.DeclInterface, Name: name.Text, NameSpan: name.Span}
	if p.at(token.Lt) {
		decl.TypeParams = p.parseTypeParams()
	}
	if p.at(token.KwSatisfies) {
		p.advance()
		decl.Satisfies = p.parseTypeList()
	}
	decl.Constraints = p.parseConstraints()
	return decl, p.parseTypeBody(&decl)
}

func (p *Parser) parseTypeBody(decl *ast.Decl) bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' or ';' after "+decl.Kind.String()+" header")
		return false
	}
	decl.HasBody = true
	decl.Body = p.parseBlock()
	return true
}

// voidDecl := "void" Ident typeParams? params constraint* (block | "=>" skip ";" | ";")
func (p *Parser) parseVoid() (ast.Decl, bool) {
	p.advance()
	name, ok := p.parseName("method")
	if !ok {
		return ast.Decl{}, false
	}
	decl := ast.Decl{Kind: ast.DeclMethod, Name: name.Text, NameSpan: name.Span, Void: true}
	if p.at(token.Lt) {
		decl.TypeParams = p.parseTypeParams()
	}
	if !p.at(token.LParen) {
		p.err(diag.SynExpectParameterList, "expected parameter list after method name")
		return ast.Decl{}, false
	}
	return decl, p.parseMethodRest(&decl)
}

// typedDecl := type Ident ( typeParams? params constraint* (block | "=>" skip ";" | ";")
//
//	| block | "=>" skip ";"
//	| ("=" skip)? ";" )
func (p *Parser) parseTyped() (ast.Decl, bool) {
	typ, ok := p.parseType()
	if !ok {
		return ast.Decl{}, false
	}
	name, ok := p.parseName("declaration")
	if !ok {
		return ast.Decl{}, false
	}
	decl := ast.Decl{Name: name.Text, NameSpan: name.Span, Type: typ}

	switch {
	case p.at(token.Lt):
		decl.Kind = ast.DeclMethod
		decl.TypeParams = p.parseTypeParams()
		if !p.at(token.LParen) {
			p.err(diag.SynExpectParameterList, "expected parameter list after type parameters")
			return ast.Decl{}, false
		}
		return decl, p.parseMethodRest(&decl)
	case p.at(token.LParen):
		decl.Kind = ast.DeclMethod
		return decl, p.parseMethodRest(&decl)
	case p.at(token.LBrace):
		decl.Kind = ast.DeclGetter
		decl.HasBody = true
		decl.Body = p.parseBlock()
		return decl, true
	case p.at(token.FatArrow):
		decl.Kind = ast.DeclGetter
		decl.HasBody = true
		p.advance()
		p.skipExpression()
		_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after getter expression")
		return decl, ok
	case p.at(token.Assign):
		decl.Kind = ast.DeclValue
		p.advance()
		p.skipExpression()
		_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after value initializer")
		return decl, ok
	case p.at(token.Semicolon):
		decl.Kind = ast.DeclValue
		p.advance()
		return decl, true
	default:
		p.err(diag.SynExpectSemicolon, "expected ';', '=', '=>', '(' or '{' after declaration name")
		return ast.Decl{}, false
	}
}

func (p *Parser) parseMethodRest(decl *ast.Decl) bool {
	decl.HasParams = true
	decl.Params = p.parseParams()
	decl.Constraints = p.parseConstraints()
	switch {
	case p.at(token.LBrace):
		decl.HasBody = true
		decl.Body = p.parseBlock()
		return true
	case p.at(token.FatArrow):
		p.advance()
		decl.HasBody = true
		p.skipExpression()
		_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after method expression")
		return ok
	case p.at(token.Semicolon):
		p.advance()
		return true
	default:
		p.err(diag.SynExpectSemicolon, "expected '{', '=>' or ';' after method signature")
		return false
	}
}

// parseBlock: "{" (decl | statement)* "}". Вложенные декларации возвращаются, операторы пропускаются.
func (p *Parser) parseBlock() []ast.DeclID {
	open := p.advance() // '{'
	var body []ast.DeclID
	for !p.atOr(token.RBrace, token.EOF) {
		if p.isDeclStart() {
			if id, ok := p.parseDecl(); ok {
				body = append(body, id)
			}
			continue
		}
		p.skipStatement()
	}
	if !p.at(token.RBrace) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '{'")
		return body
	}
	p.advance()
	return body
}
