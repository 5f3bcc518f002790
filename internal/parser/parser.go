package parser

import (
	"slices"

	"refcheck/internal/ast"
	"refcheck/internal/diag"
	"refcheck/internal/lexer"
	"refcheck/internal/source"
	"refcheck/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
}

// Parser: состояние парсера на один файл.
// Токены читаются заранее: распознавание `Type Name` требует произвольного lookahead.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	toks := lx.All()
	p := Parser{
		toks:   toks,
		arenas: arenas,
		opts:   opts,
	}
	p.file = arenas.NewFile(toks[0].Span)
	p.parseFile()
	return Result{File: p.file}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) parseFile() {
	startSpan := p.peek().Span
	if p.at(token.KwPackage) {
		p.parsePackageClause()
	}
	for !p.at(token.EOF) {
		if p.at(token.KwPackage) {
			p.err(diag.SynMultiplePackageDecls, "package clause must be the first item of the file")
			p.parsePackageClause()
			continue
		}
		if !p.isDeclStart() {
			p.err(diag.SynUnexpectedTopLevel, "expected declaration, got \""+p.peek().Text+"\"")
			before := p.pos
			p.resyncTop()
			if p.pos == before {
				p.advance()
			}
			continue
		}
		if id, ok := p.parseDecl(); ok {
			p.arenas.PushDecl(p.file, id)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.peek().Span)
}

// package a.b.c;
func (p *Parser) parsePackageClause() {
	kw := p.advance()
	f := p.arenas.Files.Get(p.file)
	var segs []string
	for {
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected package name segment")
		if !ok {
			p.resyncTop()
			return
		}
		segs = append(segs, tok.Text)
		if !p.at(token.Dot) {
			break
		}
		p.advance()
	}
	f.Package = segs
	f.PackageSpan = kw.Span.Cover(p.lastSpan)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after package clause")
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' (съедаем), до начала следующей декларации или до '}' блока.
func (p *Parser) resyncTop() {
	for !p.atOr(token.EOF, token.RBrace) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.at(token.LBrace) {
			p.skipBalanced()
			return
		}
		if p.atOr(token.KwClass, token.KwInterface, token.KwVoid) || p.peek().IsAnnotation() {
			return
		}
		p.advance()
	}
}
