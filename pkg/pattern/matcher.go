package pattern

import (
	"github.com/dop251/goja/ast"
)

// Node kinds reported by KindOf and accepted as bare pattern keywords.
const (
	KindIf         = "if"
	KindFor        = "for"
	KindWhile      = "while"
	KindReturn     = "return"
	KindThrow      = "throw"
	KindTry        = "try"
	KindSwitch     = "switch"
	KindFunction   = "function"
	KindClass      = "class"
	KindVar        = "var"
	KindCall       = "call"
	KindNew        = "new"
	KindString     = "string"
	KindNumber     = "number"
	KindRegExp     = "regexp"
	KindThis       = "this"
	KindIdentifier = "identifier"
)

// kindKeywords are the bare words that select every node of a kind.
// "new" is handled by the parser because it may take a callee.
var kindKeywords = map[string]bool{
	KindIf:       true,
	KindFor:      true,
	KindWhile:    true,
	KindReturn:   true,
	KindThrow:    true,
	KindTry:      true,
	KindSwitch:   true,
	KindFunction: true,
	KindClass:    true,
	KindVar:      true,
	KindCall:     true,
	KindString:   true,
	KindNumber:   true,
	KindRegExp:   true,
	KindThis:     true,
}

// KindOf returns the kind of a syntax node, or "" for nodes no pattern
// can select.
func KindOf(n ast.Node) string {
	switch n.(type) {
	case *ast.IfStatement:
		return KindIf
	case *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement:
		return KindFor
	case *ast.WhileStatement, *ast.DoWhileStatement:
		return KindWhile
	case *ast.ReturnStatement:
		return KindReturn
	case *ast.ThrowStatement:
		return KindThrow
	case *ast.TryStatement:
		return KindTry
	case *ast.SwitchStatement:
		return KindSwitch
	case *ast.FunctionLiteral, *ast.ArrowFunctionLiteral:
		return KindFunction
	case *ast.ClassLiteral:
		return KindClass
	case *ast.VariableStatement, *ast.LexicalDeclaration:
		return KindVar
	case *ast.CallExpression:
		return KindCall
	case *ast.NewExpression:
		return KindNew
	case *ast.StringLiteral:
		return KindString
	case *ast.NumberLiteral:
		return KindNumber
	case *ast.RegExpLiteral:
		return KindRegExp
	case *ast.ThisExpression:
		return KindThis
	case *ast.Identifier:
		return KindIdentifier
	default:
		return ""
	}
}

// NameOf returns the name most closely associated with a node: the called
// name of a call, the declared name of a function, class or variable, or
// an identifier's own name.
func NameOf(n ast.Node) string {
	switch n := n.(type) {
	case *ast.CallExpression:
		return calleeName(n.Callee)
	case *ast.NewExpression:
		return calleeName(n.Callee)
	case *ast.FunctionLiteral:
		if n.Name != nil {
			return n.Name.Name.String()
		}
	case *ast.ClassLiteral:
		if n.Name != nil {
			return n.Name.Name.String()
		}
	case *ast.VariableStatement:
		return firstBindingName(n.List)
	case *ast.LexicalDeclaration:
		return firstBindingName(n.List)
	case *ast.Identifier:
		return n.Name.String()
	}
	return ""
}

// ValueOf returns the literal value of string, number and regexp nodes.
func ValueOf(n ast.Node) string {
	switch n := n.(type) {
	case *ast.StringLiteral:
		return n.Value.String()
	case *ast.NumberLiteral:
		return n.Literal
	case *ast.RegExpLiteral:
		return n.Literal
	}
	return ""
}

// ArgCount returns the number of arguments of a call or new expression.
func ArgCount(n ast.Node) int {
	switch n := n.(type) {
	case *ast.CallExpression:
		return len(n.ArgumentList)
	case *ast.NewExpression:
		return len(n.ArgumentList)
	}
	return 0
}

func firstBindingName(list []*ast.Binding) string {
	if len(list) == 0 || list[0] == nil {
		return ""
	}
	if id, ok := list[0].Target.(*ast.Identifier); ok && id != nil {
		return id.Name.String()
	}
	return ""
}

func calleeName(callee ast.Expression) string {
	switch c := callee.(type) {
	case *ast.Identifier:
		return c.Name.String()
	case *ast.DotExpression:
		return c.Identifier.Name.String()
	}
	return ""
}

// matcher tests the structural part of a pattern against one node.
type matcher interface {
	match(n ast.Node) bool
}

type kindMatcher struct {
	kind string
}

func (m kindMatcher) match(n ast.Node) bool {
	return KindOf(n) == m.kind
}

type stringMatcher struct {
	value string
}

func (m stringMatcher) match(n ast.Node) bool {
	lit, ok := n.(*ast.StringLiteral)
	return ok && lit.Value.String() == m.value
}

type numberMatcher struct {
	literal string
}

func (m numberMatcher) match(n ast.Node) bool {
	lit, ok := n.(*ast.NumberLiteral)
	return ok && lit.Literal == m.literal
}

type identMatcher struct {
	name string
}

func (m identMatcher) match(n ast.Node) bool {
	id, ok := n.(*ast.Identifier)
	return ok && id.Name.String() == m.name
}

// receiverMode says what a call pattern requires left of the dot.
type receiverMode int

const (
	receiverOptional receiverMode = iota // foo(...)
	receiverAny                          // _.foo(...)
	receiverNamed                        // recv.foo(...)
)

// argSpec bounds the number of arguments. max < 0 means unbounded.
type argSpec struct {
	min, max int
}

var anyArgs = argSpec{min: 0, max: -1}

func (a argSpec) accepts(n int) bool {
	return n >= a.min && (a.max < 0 || n <= a.max)
}

type callMatcher struct {
	isNew    bool
	name     string // "" accepts any callee
	mode     receiverMode
	receiver string
	args     argSpec
}

func (m callMatcher) match(n ast.Node) bool {
	var callee ast.Expression
	var argc int

	switch n := n.(type) {
	case *ast.CallExpression:
		if m.isNew {
			return false
		}
		callee, argc = n.Callee, len(n.ArgumentList)
	case *ast.NewExpression:
		if !m.isNew {
			return false
		}
		callee, argc = n.Callee, len(n.ArgumentList)
	default:
		return false
	}

	return m.matchCallee(callee) && m.args.accepts(argc)
}

func (m callMatcher) matchCallee(callee ast.Expression) bool {
	if m.name == "" {
		return true
	}

	switch c := callee.(type) {
	case *ast.Identifier:
		return m.mode == receiverOptional && c.Name.String() == m.name
	case *ast.DotExpression:
		if c.Identifier.Name.String() != m.name {
			return false
		}
		switch m.mode {
		case receiverNamed:
			return receiverIs(c.Left, m.receiver)
		default:
			return true
		}
	}
	return false
}

func receiverIs(left ast.Expression, name string) bool {
	switch l := left.(type) {
	case *ast.Identifier:
		return l.Name.String() == name
	case *ast.ThisExpression:
		return name == KindThis
	}
	return false
}
