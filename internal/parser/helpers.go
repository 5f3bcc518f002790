package parser

import (
	"refcheck/internal/diag"
	"refcheck/internal/source"
	"refcheck/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: на EOF указываем сразу за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, diag.PriorityDefault, sp, msg, nil)
	return true
}

// skipBalanced съедает группу, начинающуюся с текущей открывающей скобки.
func (p *Parser) skipBalanced() {
	open := p.advance()
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF:
			p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed '"+open.Text+"'")
			return
		case token.LParen, token.LBrace, token.LBracket:
			depth++
		case token.RParen, token.RBrace, token.RBracket:
			depth--
		}
		p.advance()
	}
}

// skipStatement пропускает оператор тела: до ';' включительно или до конца
// сбалансированного блока. Закрывающую '}' тела не трогает.
func (p *Parser) skipStatement() {
	for {
		switch p.peek().Kind {
		case token.EOF, token.RBrace:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.LBrace:
			p.skipBalanced()
			return
		case token.LParen, token.LBracket:
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

// skipExpression пропускает выражение до ';' верхнего уровня, не съедая её.
func (p *Parser) skipExpression() {
	for {
		switch p.peek().Kind {
		case token.EOF, token.Semicolon, token.RBrace:
			return
		case token.LParen, token.LBrace, token.LBracket:
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}
