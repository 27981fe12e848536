package main

import (
	"github.com/shopspring/decimal"
)

// Scanner turns source text into a token stream. It never aborts on a bad
// character or unterminated string; it reports through errs and keeps going,
// so the parser always gets a best-effort token stream (spec.md §4.1).
type Scanner struct {
	src  []byte
	errs *ErrorReporter

	start int
	idx   int
	line  int
}

func NewScanner(src string, errs *ErrorReporter) *Scanner {
	return &Scanner{src: []byte(src), errs: errs, line: 1}
}

func (s *Scanner) ScanTokens() []Token {
	toks := make([]Token, 0, len(s.src)/4+1)
	for !s.atEnd() {
		s.start = s.idx
		if tok, ok := s.scanToken(); ok {
			toks = append(toks, tok)
		}
	}
	toks = append(toks, Token{Type: EOF, Line: s.line})
	return toks
}

func (s *Scanner) atEnd() bool { return s.idx >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.idx]
	s.idx++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.idx]
}

func (s *Scanner) peekNext() byte {
	if s.idx+1 >= len(s.src) {
		return 0
	}
	return s.src[s.idx+1]
}

// match consumes the current character if it equals want.
func (s *Scanner) match(want byte) bool {
	if s.peek() != want {
		return false
	}
	s.idx++
	return true
}

func (s *Scanner) lexeme() string { return string(s.src[s.start:s.idx]) }

func (s *Scanner) token(typ TokenType) Token {
	return Token{Type: typ, Lexeme: s.lexeme(), Line: s.line}
}

func (s *Scanner) scanToken() (Token, bool) {
	c := s.advance()

	switch c {
	case ' ', '\t', '\r':
		return Token{}, false
	case '\n':
		s.line++
		return Token{}, false
	case '(':
		return s.token(LEFT_PAREN), true
	case ')':
		return s.token(RIGHT_PAREN), true
	case '{':
		return s.token(LEFT_BRACE), true
	case '}':
		return s.token(RIGHT_BRACE), true
	case ',':
		return s.token(COMMA), true
	case '.':
		return s.token(DOT), true
	case '-':
		return s.token(MINUS), true
	case '+':
		return s.token(PLUS), true
	case ';':
		return s.token(SEMICOLON), true
	case '*':
		return s.token(STAR), true
	case '!':
		if s.match('=') {
			return s.token(BANG_EQUAL), true
		}
		return s.token(BANG), true
	case '=':
		if s.match('=') {
			return s.token(EQUAL_EQUAL), true
		}
		return s.token(EQUAL), true
	case '<':
		if s.match('=') {
			return s.token(LESS_EQUAL), true
		}
		return s.token(LESS), true
	case '>':
		if s.match('=') {
			return s.token(GREATER_EQUAL), true
		}
		return s.token(GREATER), true
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
			return Token{}, false
		}
		return s.token(SLASH), true
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(c):
			return s.scanNumber(), true
		case isAlpha(c):
			return s.scanIdentifier(), true
		default:
			s.errs.ScanError(s.line, "Unexpected character.")
			return Token{}, false
		}
	}
}

func (s *Scanner) scanString() (Token, bool) {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.errs.ScanError(startLine, "Unterminated string.")
		return Token{}, false
	}
	s.advance() // closing quote
	value := string(s.src[s.start+1 : s.idx-1])
	return Token{Type: STRING, Lexeme: s.lexeme(), Literal: value, Line: startLine}, true
}

func (s *Scanner) scanNumber() Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return Token{Type: NUMBER, Lexeme: s.lexeme(), Literal: s.lexeme(), Line: s.line}
}

func (s *Scanner) scanIdentifier() Token {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.lexeme()
	if typ, ok := keywords[text]; ok {
		return Token{Type: typ, Lexeme: text, Line: s.line}
	}
	return Token{Type: IDENTIFIER, Lexeme: text, Line: s.line}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

// parseNumberLiteral turns a NUMBER token's literal text into a Decimal,
// preserving the scale it was written with (so "1.0" keeps one decimal
// place rather than collapsing to "1").
func parseNumberLiteral(text string) decimal.Decimal {
	d, err := decimal.NewFromString(text)
	if err != nil {
		// The scanner only ever produces digit[.digit+] text here.
		panic("unreachable: malformed number literal " + text)
	}
	return d
}
