package pattern

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokEllipsis
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of pattern"
	case tokIdent:
		return "name"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokLParen:
		return `"("`
	case tokRParen:
		return `")"`
	case tokComma:
		return `","`
	case tokDot:
		return `"."`
	case tokEllipsis:
		return `"..."`
	default:
		return "token"
	}
}

type token struct {
	kind tokenKind
	text string // identifier name, decoded string value, or number literal
	pos  int    // byte offset of the first character
	end  int    // byte offset just past the token
}

// lexer produces tokens on demand so that the where clause, which uses a
// different grammar, can be taken verbatim from the remaining input.
type lexer struct {
	src string
	pos int
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) next() (token, *SyntaxError) {
	l.skipSpace()
	start := l.pos

	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start, end: start}, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, pos: start, end: l.pos}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, pos: start, end: l.pos}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, pos: start, end: l.pos}, nil
	case strings.HasPrefix(l.src[l.pos:], "..."):
		l.pos += 3
		return token{kind: tokEllipsis, pos: start, end: l.pos}, nil
	case c == '.':
		l.pos++
		return token{kind: tokDot, pos: start, end: l.pos}, nil
	case c == '"' || c == '\'':
		return l.lexString(c)
	case c >= '0' && c <= '9':
		return l.lexNumber(), nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	if isIdentStart(r) {
		return l.lexIdent(), nil
	}

	return token{}, &SyntaxError{Pos: start, Msg: "unexpected character " + quoteRune(r)}
}

func (l *lexer) lexIdent() token {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	return token{kind: tokIdent, text: l.src[start:l.pos], pos: start, end: l.pos}
}

func (l *lexer) lexNumber() token {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		isExpSign := (c == '+' || c == '-') && l.pos > start &&
			(l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E') &&
			!strings.HasPrefix(strings.ToLower(l.src[start:]), "0x")
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') &&
			c != '_' && c != '.' && !isExpSign {
			break
		}
		l.pos++
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], pos: start, end: l.pos}
}

func (l *lexer) lexString(quote byte) (token, *SyntaxError) {
	start := l.pos
	l.pos++

	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.pos++
			return token{kind: tokString, text: b.String(), pos: start, end: l.pos}, nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return token{}, &SyntaxError{Pos: l.pos, Msg: "unterminated escape"}
			}
			b.WriteByte(unescape(l.src[l.pos+1]))
			l.pos += 2
		default:
			b.WriteByte(c)
			l.pos++
		}
	}

	return token{}, &SyntaxError{Pos: start, Msg: "unterminated string"}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	default:
		return c
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

func quoteRune(r rune) string {
	return "'" + string(r) + "'"
}
