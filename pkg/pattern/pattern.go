// Package pattern compiles query patterns and matches them against
// JavaScript syntax nodes.
//
// Grammar:
//
//	pattern  := head [ "where" expression ]
//	head     := "new" [ callee [ args ] ]
//	          | callee args
//	          | kind
//	          | string | number | identifier
//	callee   := name | ( name | "_" ) "." name
//	args     := "(" [ "..." | "_" { "," "_" } [ "," "..." ] ] ")"
//
// Examples:
//
//	if                          every if statement
//	console.log(...)            calls of log on console
//	_.then(_)                   then called on anything, with one argument
//	new Promise                 every new Promise
//	"use strict"                string literals with that value
//	call where name == "eval"   calls whose callee name is eval
//
// The where clause is an expr-lang boolean expression. It sees kind, name,
// text, value, args, line, column and path for the node under test, plus
// every entry of the options map passed to Compile.
package pattern

import (
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Source gives a matcher access to the text behind node positions.
type Source interface {
	Path() string
	Slice(from, to file.Idx) string
	Position(idx file.Idx) (line, column int)
}

// Pattern is a compiled query. It is immutable and safe for concurrent use.
type Pattern struct {
	text    string
	head    matcher
	where   *vm.Program
	options map[string]interface{}
}

// String returns the pattern text as given to Compile.
func (p *Pattern) String() string {
	return p.text
}

// Compile parses a pattern.
//
// Parameters:
//   - text: Pattern source
//   - options: Extra names visible to the where clause; may be nil
//
// Returns a *SyntaxError, wrapped with a stack trace, when the pattern is
// invalid.
func Compile(text string, options map[string]interface{}) (*Pattern, error) {
	p := &parser{lex: lexer{src: text}}

	head, whereSrc, whereAt, serr := p.parse()
	if serr != nil {
		serr.Pattern = text
		return nil, errors.WithStack(serr)
	}

	opts := make(map[string]interface{}, len(options))
	for k, v := range options {
		opts[k] = v
	}

	compiled := &Pattern{text: text, head: head, options: opts}

	if whereAt >= 0 {
		if strings.TrimSpace(whereSrc) == "" {
			return nil, errors.WithStack(&SyntaxError{
				Pattern: text,
				Pos:     whereAt,
				Msg:     "where clause is empty",
			})
		}

		program, err := expr.Compile(whereSrc, expr.Env(compiled.env(nil, nil)), expr.AsBool())
		if err != nil {
			return nil, errors.WithStack(&SyntaxError{
				Pattern: text,
				Pos:     whereAt,
				Msg:     "where clause: " + err.Error(),
				Err:     err,
			})
		}
		compiled.where = program
	}

	return compiled, nil
}

// Match reports whether node n, taken from src, satisfies the pattern.
//
// An error is returned only when the where clause fails to evaluate.
func (p *Pattern) Match(n ast.Node, src Source) (bool, error) {
	if !p.head.match(n) {
		return false, nil
	}
	if p.where == nil {
		return true, nil
	}

	out, err := expr.Run(p.where, p.env(n, src))
	if err != nil {
		return false, errors.Wrapf(err, "evaluating where clause of %q", p.text)
	}

	ok, _ := out.(bool)
	return ok, nil
}

// env builds the where clause environment for one node. With a nil node
// it returns the zero-valued template used for type checking.
func (p *Pattern) env(n ast.Node, src Source) map[string]interface{} {
	env := make(map[string]interface{}, len(p.options)+8)
	for k, v := range p.options {
		env[k] = v
	}

	env["kind"] = ""
	env["name"] = ""
	env["text"] = ""
	env["value"] = ""
	env["args"] = 0
	env["line"] = 0
	env["column"] = 0
	env["path"] = ""

	if n == nil || src == nil {
		return env
	}

	line, column := src.Position(n.Idx0())
	env["kind"] = KindOf(n)
	env["name"] = NameOf(n)
	env["text"] = src.Slice(n.Idx0(), n.Idx1())
	env["value"] = ValueOf(n)
	env["args"] = ArgCount(n)
	env["line"] = line
	env["column"] = column
	env["path"] = src.Path()
	return env
}

// parser turns pattern tokens into a matcher.
type parser struct {
	lex    lexer
	peeked *token
}

func (p *parser) next() (token, *SyntaxError) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.lex.next()
}

func (p *parser) peek() (token, *SyntaxError) {
	if p.peeked != nil {
		return *p.peeked, nil
	}
	t, err := p.lex.next()
	if err != nil {
		return token{}, err
	}
	p.peeked = &t
	return t, nil
}

func (p *parser) expect(kind tokenKind) (token, *SyntaxError) {
	t, err := p.next()
	if err != nil {
		return token{}, err
	}
	if t.kind != kind {
		return token{}, unexpected(t, "expected "+kind.String())
	}
	return t, nil
}

// parse returns the head matcher and, when present, the raw where clause
// and its position. whereAt is -1 without a where clause.
func (p *parser) parse() (head matcher, whereSrc string, whereAt int, err *SyntaxError) {
	head, err = p.parseHead()
	if err != nil {
		return nil, "", -1, err
	}

	t, err := p.next()
	if err != nil {
		return nil, "", -1, err
	}

	switch {
	case t.kind == tokEOF:
		return head, "", -1, nil
	case t.kind == tokIdent && t.text == "where":
		return head, p.lex.src[t.end:], t.pos, nil
	default:
		return nil, "", -1, unexpected(t, "expected where or end of pattern")
	}
}

func (p *parser) parseHead() (matcher, *SyntaxError) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}

	switch t.kind {
	case tokString:
		return stringMatcher{value: t.text}, nil
	case tokNumber:
		return numberMatcher{literal: t.text}, nil
	case tokIdent:
	default:
		return nil, unexpected(t, "expected a pattern")
	}

	if t.text == KindNew {
		return p.parseNew()
	}

	nt, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch nt.kind {
	case tokDot:
		return p.parseMethodCall(t)
	case tokLParen:
		if t.text == "_" {
			return nil, unexpected(t, "a callee name is required")
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return callMatcher{name: t.text, mode: receiverOptional, args: args}, nil
	}

	if t.text == "_" {
		return nil, unexpected(t, "_ is only allowed as a receiver or argument")
	}
	if t.text == "where" {
		return nil, unexpected(t, "expected a pattern before where")
	}
	if kindKeywords[t.text] {
		return kindMatcher{kind: t.text}, nil
	}
	return identMatcher{name: t.text}, nil
}

// parseNew parses what follows the new keyword.
func (p *parser) parseNew() (matcher, *SyntaxError) {
	m := callMatcher{isNew: true, mode: receiverOptional, args: anyArgs}

	nt, err := p.peek()
	if err != nil {
		return nil, err
	}
	if nt.kind != tokIdent || nt.text == "where" {
		return m, nil
	}

	first, _ := p.next()

	nt, err = p.peek()
	if err != nil {
		return nil, err
	}

	if nt.kind == tokDot {
		p.peeked = nil
		name, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		m.name = name.text
		m.mode, m.receiver = receiverFor(first.text)
	} else {
		if first.text == "_" {
			return nil, unexpected(first, "a constructor name is required")
		}
		m.name = first.text
	}

	nt, err = p.peek()
	if err != nil {
		return nil, err
	}
	if nt.kind == tokLParen {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		m.args = args
	}

	return m, nil
}

// parseMethodCall parses recv.name(args) after recv has been read.
func (p *parser) parseMethodCall(recv token) (matcher, *SyntaxError) {
	if _, err := p.expect(tokDot); err != nil {
		return nil, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if name.text == "_" {
		return nil, unexpected(name, "a method name is required")
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	mode, receiver := receiverFor(recv.text)
	return callMatcher{name: name.text, mode: mode, receiver: receiver, args: args}, nil
}

func receiverFor(name string) (receiverMode, string) {
	if name == "_" {
		return receiverAny, ""
	}
	return receiverNamed, name
}

// parseArgs parses an argument list, including the parentheses.
func (p *parser) parseArgs() (argSpec, *SyntaxError) {
	if _, err := p.expect(tokLParen); err != nil {
		return argSpec{}, err
	}

	t, err := p.next()
	if err != nil {
		return argSpec{}, err
	}

	switch {
	case t.kind == tokRParen:
		return argSpec{min: 0, max: 0}, nil
	case t.kind == tokEllipsis:
		if _, err := p.expect(tokRParen); err != nil {
			return argSpec{}, err
		}
		return anyArgs, nil
	case t.kind == tokIdent && t.text == "_":
	default:
		return argSpec{}, unexpected(t, `expected "_", "..." or ")"`)
	}

	count := 1
	for {
		t, err := p.next()
		if err != nil {
			return argSpec{}, err
		}
		if t.kind == tokRParen {
			return argSpec{min: count, max: count}, nil
		}
		if t.kind != tokComma {
			return argSpec{}, unexpected(t, `expected "," or ")"`)
		}

		t, err = p.next()
		if err != nil {
			return argSpec{}, err
		}
		switch {
		case t.kind == tokEllipsis:
			if _, err := p.expect(tokRParen); err != nil {
				return argSpec{}, err
			}
			return argSpec{min: count, max: -1}, nil
		case t.kind == tokIdent && t.text == "_":
			count++
		default:
			return argSpec{}, unexpected(t, `expected "_" or "..."`)
		}
	}
}

func unexpected(t token, msg string) *SyntaxError {
	found := t.kind.String()
	if t.kind == tokIdent || t.kind == tokNumber {
		found = "'" + t.text + "'"
	}
	return &SyntaxError{Pos: t.pos, Msg: "unexpected " + found + ", " + msg}
}
