// Package lexer turns 9608 pseudocode source text into a token stream.
//
// The scanner is hand-written and single-pass, in the style of the
// teacher's DWScript lexer: a small struct tracking a read cursor plus
// line/column counters, and a big switch in NextToken. Unlike DWScript,
// this language is case-sensitive and has no comment syntax, which keeps
// the state machine considerably smaller.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	cerrors "github.com/nyjc-computing/pseudo9608/internal/errors"
	"github.com/nyjc-computing/pseudo9608/internal/token"
)

// Lexer scans one source string into tokens.
type Lexer struct {
	input        string
	position     int  // start of ch
	readPosition int  // just past ch
	ch           rune // current rune, 0 at EOF
	line         int
	column       int
}

// New creates a Lexer over src. Line endings are normalized to "\n"
// before scanning, per spec.md §6 ("\r\n or \n, \r stripped").
func New(src string) *Lexer {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "")
	l := &Lexer{input: src, line: 1, column: 0}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += size
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.column++
	l.ch = r
}

func (l *Lexer) peek() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// state is a saved cursor, used to backtrack when collapsing blank lines.
type state struct {
	position, readPosition int
	line, column           int
	ch                      rune
}

func (l *Lexer) checkpoint() state {
	return state{l.position, l.readPosition, l.line, l.column, l.ch}
}

func (l *Lexer) restore(s state) {
	l.position, l.readPosition, l.line, l.column, l.ch = s.position, s.readPosition, s.line, s.column, s.ch
}

// Tokenize scans the entire input and returns its tokens terminated by a
// single EOF token, or the first scan error encountered.
func Tokenize(src string) ([]token.Token, *cerrors.Diagnostic) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// NextToken scans and returns the next token, or a scan error.
func (l *Lexer) NextToken() (token.Token, *cerrors.Diagnostic) {
	l.skipSpacesAndTabs()

	pos := l.pos()

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EOF, Pos: pos}, nil
	case l.ch == '\n':
		l.advance()
		// Blank lines collapse to a single NEWLINE token.
		for {
			save := l.checkpoint()
			l.skipSpacesAndTabs()
			if l.ch != '\n' {
				l.restore(save)
				break
			}
			l.advance()
		}
		return token.Token{Kind: token.NEWLINE, Lexeme: "\n", Pos: pos}, nil
	case l.ch == '"':
		return l.scanString(pos)
	case unicode.IsDigit(l.ch):
		return l.scanNumber(pos)
	case l.ch == '.' && unicode.IsDigit(l.peek()):
		// A leading '.' with no integer part, e.g. ".5", is a malformed
		// real literal per spec.md §4.1, not a DOT token.
		start := l.position
		l.advance()
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
		return token.Token{}, cerrors.New(cerrors.Scan, pos, "malformed real literal %q", l.input[start:l.position])
	case isIdentStart(l.ch):
		return l.scanIdentOrKeyword(pos)
	default:
		return l.scanOperator(pos)
	}
}

func (l *Lexer) skipSpacesAndTabs() {
	for l.ch == ' ' || l.ch == '\t' {
		l.advance()
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) && r <= unicode.MaxASCII
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdentOrKeyword(pos token.Position) (token.Token, *cerrors.Diagnostic) {
	start := l.position
	for isIdentPart(l.ch) {
		l.advance()
	}
	lexeme := l.input[start:l.position]
	kind := token.LookupIdent(lexeme)
	tok := token.Token{Kind: kind, Lexeme: lexeme, Pos: pos}
	switch kind {
	case token.TRUE:
		tok.Literal = true
	case token.FALSE:
		tok.Literal = false
	}
	return tok, nil
}

func (l *Lexer) scanNumber(pos token.Position) (token.Token, *cerrors.Diagnostic) {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.advance()
	}
	if l.ch == '.' {
		if !unicode.IsDigit(l.peek()) {
			// "3." with no trailing digits: malformed real literal.
			l.advance()
			return token.Token{}, cerrors.New(cerrors.Scan, pos, "malformed real literal %q", l.input[start:l.position])
		}
		l.advance() // consume '.'
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
		lexeme := l.input[start:l.position]
		val, perr := parseFloat(lexeme)
		if perr != nil {
			return token.Token{}, cerrors.New(cerrors.Scan, pos, "malformed real literal %q", lexeme)
		}
		return token.Token{Kind: token.REAL, Lexeme: lexeme, Literal: val, Pos: pos}, nil
	}
	lexeme := l.input[start:l.position]
	val, perr := parseInt(lexeme)
	if perr != nil {
		return token.Token{}, cerrors.New(cerrors.Scan, pos, "malformed integer literal %q", lexeme)
	}
	return token.Token{Kind: token.INT, Lexeme: lexeme, Literal: val, Pos: pos}, nil
}

func (l *Lexer) scanString(pos token.Position) (token.Token, *cerrors.Diagnostic) {
	l.advance() // consume opening quote
	start := l.position
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{}, cerrors.New(cerrors.Scan, pos, "unterminated string literal")
		}
		l.advance()
	}
	value := l.input[start:l.position]
	l.advance() // consume closing quote
	return token.Token{Kind: token.STRING, Lexeme: `"` + value + `"`, Literal: value, Pos: pos}, nil
}

func (l *Lexer) scanOperator(pos token.Position) (token.Token, *cerrors.Diagnostic) {
	ch := l.ch
	two := string(ch) + string(l.peek())
	switch two {
	case "<-":
		l.advance()
		l.advance()
		return token.Token{Kind: token.ASSIGN, Lexeme: "<-", Pos: pos}, nil
	case "<=":
		l.advance()
		l.advance()
		return token.Token{Kind: token.LE, Lexeme: "<=", Pos: pos}, nil
	case ">=":
		l.advance()
		l.advance()
		return token.Token{Kind: token.GE, Lexeme: ">=", Pos: pos}, nil
	case "<>":
		l.advance()
		l.advance()
		return token.Token{Kind: token.NE, Lexeme: "<>", Pos: pos}, nil
	}

	single := map[rune]token.Kind{
		'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH,
		'=': token.EQ, '<': token.LT, '>': token.GT,
		'(': token.LPAREN, ')': token.RPAREN, '[': token.LBRACKET, ']': token.RBRACKET,
		',': token.COMMA, ':': token.COLON, '.': token.DOT,
	}
	if kind, ok := single[ch]; ok {
		l.advance()
		return token.Token{Kind: kind, Lexeme: string(ch), Pos: pos}, nil
	}

	l.advance()
	return token.Token{}, cerrors.New(cerrors.Scan, pos, "unexpected character %q", ch)
}
