package analyzer

import (
	"reflect"
	"sort"

	"github.com/dop251/goja/ast"
)

var (
	nodeType   = reflect.TypeOf((*ast.Node)(nil)).Elem()
	astPkgPath = reflect.TypeOf(ast.Program{}).PkgPath()
)

// skippedFields hold copies of bindings already reachable from the
// statements themselves.
var skippedFields = map[string]bool{
	"DeclarationList": true,
}

// collectNodes returns every syntax node below program in source order:
// start offset ascending, enclosing node first when two nodes start at
// the same offset.
func collectNodes(program *ast.Program) []ast.Node {
	c := &collector{seen: make(map[uintptr]bool)}
	c.walk(reflect.ValueOf(program), true)

	sort.SliceStable(c.nodes, func(i, j int) bool {
		a, b := c.nodes[i], c.nodes[j]
		if a.Idx0() != b.Idx0() {
			return a.Idx0() < b.Idx0()
		}
		return a.Idx1() > b.Idx1()
	})
	return c.nodes
}

type collector struct {
	nodes []ast.Node
	seen  map[uintptr]bool
}

func (c *collector) walk(v reflect.Value, root bool) {
	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			c.walk(v.Elem(), false)
		}

	case reflect.Ptr:
		if v.IsNil() || v.Type().Elem().PkgPath() != astPkgPath {
			return
		}
		ptr := v.Pointer()
		if c.seen[ptr] {
			return
		}
		c.seen[ptr] = true

		if !root && v.Type().Implements(nodeType) {
			c.nodes = append(c.nodes, v.Interface().(ast.Node))
		}
		c.walk(v.Elem(), false)

	case reflect.Struct:
		if v.Type().PkgPath() != astPkgPath {
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() || skippedFields[f.Name] {
				continue
			}
			c.walk(v.Field(i), false)
		}

	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			c.walk(v.Index(i), false)
		}
	}
}
