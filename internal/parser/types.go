package parser

import (
	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/token"
)

// parseType разбирает Ident typeArgs? ("." Ident typeArgs?)*
func (p *Parser) parseType() (ast.TypeID, bool) {
	id := ast.NoTypeID
	for {
		name, ok := p.expect(token.Ident, diag.SynExpectType, "expected type, got \""+p.peek().Text+"\"")
		if !ok {
			return ast.NoTypeID, false
		}
		args, ok := p.parseTypeArgs()
		if !ok {
			return ast.NoTypeID, false
		}
		span := name.Span.Cover(p.lastSpan)
		if id.IsValid() {
			span = p.arenas.Types.Get(id).Span.Cover(p.lastSpan)
		}
		id = p.arenas.Types.NewMember(id, name.Text, name.Span, args, span)
		if !p.at(token.Dot) {
			return id, true
		}
		p.advance()
	}
}

// parseTypeArgs разбирает ("<" type ("," type)* ">")?
func (p *Parser) parseTypeArgs() ([]ast.TypeID, bool) {
	if !p.at(token.Lt) {
		return nil, true
	}
	p.advance()
	var args []ast.TypeID
	for {
		arg, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type arguments"); !ok {
		return nil, false
	}
	return args, true
}

// parseTypeList разбирает type ("&" type)*
func (p *Parser) parseTypeList() []ast.TypeID {
	var out []ast.TypeID
	for {
		t, ok := p.parseType()
		if !ok {
			return out
		}
		out = append(out, t)
		if !p.at(token.Amp) {
			return out
		}
		p.advance()
	}
}

// typeEndsAt возвращает смещение токена сразу за типом, начинающимся с peekAt(n),
// или -1, если там нет синтаксически корректного типа. Ничего не съедает.
func (p *Parser) typeEndsAt(n int) int {
	for {
		if p.peekAt(n).Kind != token.Ident {
			return -1
		}
		n++
		if p.peekAt(n).Kind == token.Lt {
			if n = p.typeArgsEndAt(n + 1); n < 0 {
				return -1
			}
		}
		if p.peekAt(n).Kind != token.Dot {
			return n
		}
		n++
	}
}

func (p *Parser) typeArgsEndAt(n int) int {
	for {
		n = p.typeEndsAt(n)
		if n < 0 {
			return -1
		}
		switch p.peekAt(n).Kind {
		case token.Comma:
			n++
		case token.Gt:
			return n + 1
		default:
			return -1
		}
	}
}

// parseTypeParams разбирает "<" annotation* Ident ("," annotation* Ident)* ">"
func (p *Parser) parseTypeParams() []ast.TypeParamID {
	p.advance() // '<'
	var out []ast.TypeParamID
	for {
		anns := p.parseAnnotations()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name")
		if !ok {
			break
		}
		out = append(out, p.arenas.TypeParams.New(ast.TypeParam{
			Name:        name.Text,
			NameSpan:    name.Span,
			Annotations: anns,
		}))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close type parameters"); !ok {
		for !p.atOr(token.Gt, token.LParen, token.LBrace, token.Semicolon, token.EOF) {
			p.advance()
		}
		if p.at(token.Gt) {
			p.advance()
		}
	}
	return out
}

// parseParams разбирает "(" (annotation* type Ident ("," ...)*)? ")"
func (p *Parser) parseParams() []ast.ParamID {
	open := p.advance() // '('
	var out []ast.ParamID
	for !p.atOr(token.RParen, token.EOF) {
		start := p.peek().Span
		anns := p.parseAnnotations()
		if anns.Set != 0 {
			start = anns.Span
		}
		param := ast.Param{Annotations: anns}
		if p.at(token.Ident) && p.typeEndsAt(0) > 0 && p.peekAt(p.typeEndsAt(0)).Kind == token.Ident {
			param.Type, _ = p.parseType()
		} else {
			// тип потерян: имя есть, узла типа нет
			p.err(diag.SynExpectType, "expected parameter type")
		}
		if name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name"); ok {
			param.Name = name.Text
			param.NameSpan = name.Span
		}
		param.Span = start.Cover(p.lastSpan)
		if param.Name != "" {
			out = append(out, p.arenas.Params.New(param))
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "expected ',' or ')' in parameter list")
			for !p.atOr(token.Comma, token.RParen, token.LBrace, token.Semicolon, token.EOF) {
				p.advance()
			}
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.at(token.RParen) {
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '('")
		return out
	}
	p.advance()
	return out
}

// parseConstraints разбирает ("given" Ident "satisfies" type ("&" type)*)*
func (p *Parser) parseConstraints() []ast.Constraint {
	var out []ast.Constraint
	for p.at(token.KwGiven) {
		p.advance()
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name after 'given'")
		if !ok {
			return out
		}
		if _, ok := p.expect(token.KwSatisfies, diag.SynUnexpectedToken, "expected 'satisfies' in given clause"); !ok {
			return out
		}
		out = append(out, ast.Constraint{
			Name:     name.Text,
			NameSpan: name.Span,
			Bounds:   p.parseTypeList(),
		})
	}
	return out
}
