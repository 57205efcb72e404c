// Package walker implements the AST Walker: a recursive visitor over a
// tree-sitter tree that dispatches on node shape, tracks lexical scopes
// introduced by translation hooks, and drives the call-site and JSX
// handlers that produce collect.Key values.
package walker

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/i18nscan/i18nscan/pkg/collect"
	"github.com/i18nscan/i18nscan/pkg/resolve"
	"github.com/i18nscan/i18nscan/pkg/scope"
)

// functionLikeKinds are the node shapes that push a new scope frame.
var functionLikeKinds = map[string]bool{
	"function_declaration": true,
	"function_expression":  true,
	"arrow_function":       true,
	"method_definition":    true,
	"function":             true,
	"generator_function":   true,
}

// Walker drives one file's traversal. A Walker instance is reusable across
// files — WalkFile resets the per-file resolver symbol table and scope
// stack each time, so nothing leaks between files (§3 Lifecycles, §5
// "scope isolation").
type Walker struct {
	Opts      Options
	Resolver  *resolve.Resolver
	Collector *collect.Collector

	scopes   *scope.Stack
	filePath string
}

// New returns a Walker that feeds extracted keys into collector.
func New(opts Options, collector *collect.Collector) *Walker {
	return &Walker{
		Opts:      opts,
		Resolver:  resolve.New(),
		Collector: collector,
	}
}

// WalkFile walks root, the parse tree of filePath's source.
func (w *Walker) WalkFile(root *ts.Node, source []byte, filePath string) {
	w.Resolver.Symbols.Reset()
	w.scopes = scope.New()
	w.scopes.Push() // root (file) frame
	w.filePath = filePath

	w.walk(root, source)

	w.scopes.Pop()
}

func (w *Walker) walk(node *ts.Node, source []byte) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "variable_declarator":
		w.Resolver.CaptureDeclarator(node, source)
		w.detectHookBinding(node, source)

	case "enum_declaration":
		w.Resolver.CaptureEnum(node, source)

	case "call_expression", "new_expression":
		w.handleCallExpression(node, source)

	case "jsx_element", "jsx_self_closing_element":
		w.handleJSXElement(node, source)
	}

	if functionLikeKinds[node.Kind()] {
		w.scopes.Push()
		w.bindTypedParams(node, source)
		w.walkChildren(node, source)
		w.scopes.Pop()
		return
	}

	w.walkChildren(node, source)
}

func (w *Walker) walkChildren(node *ts.Node, source []byte) {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		w.walk(node.Child(i), source)
	}
}
