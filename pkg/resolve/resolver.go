// Package resolve statically evaluates a tree-sitter expression node to a
// finite set of possible string values — the Expression Resolver.
package resolve

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Mode selects which empty-string rule applies. In ModeContext, an empty
// string is filtered out (an empty context means "no context" in i18next).
type Mode int

const (
	ModeValue Mode = iota
	ModeContext
)

// Hook lets external collaborators (plugins) contribute additional
// candidate strings for an expression; its result is unioned with the
// resolver's own. A Resolver holds a single Hooks list, consulted for
// every Resolve call in either mode; there is no separate list for
// context resolution.
type Hook interface {
	Resolve(exprText string) []string
}

// Resolver statically evaluates expressions against a per-file SymbolTable.
type Resolver struct {
	Symbols *SymbolTable
	Hooks   []Hook
}

// New returns a Resolver with a fresh symbol table.
func New() *Resolver {
	return &Resolver{Symbols: NewSymbolTable()}
}

// Resolve evaluates node to a Set of possible string values, per the rules
// in the engine's Expression Resolver contract. An empty Set means
// unresolvable.
func (r *Resolver) Resolve(node *ts.Node, source []byte, mode Mode) Set {
	result := r.resolveNode(node, source, mode)
	if len(r.Hooks) > 0 {
		text := ""
		if node != nil {
			text = node.Utf8Text(source)
		}
		var extra []string
		for _, h := range r.Hooks {
			extra = append(extra, h.Resolve(text)...)
		}
		result = Union(result, NewSet(extra...))
	}
	if mode == ModeContext {
		result = FilterEmptyString(result)
	}
	return result
}

func (r *Resolver) resolveNode(node *ts.Node, source []byte, mode Mode) Set {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case "string":
		return NewSet(stringLiteralValue(node, source))

	case "number":
		return NewSet(node.Utf8Text(source))

	case "true", "false":
		return NewSet(node.Kind())

	case "identifier":
		name := node.Utf8Text(source)
		if name == "undefined" {
			return nil
		}
		return r.resolveIdentifier(name)

	case "ternary_expression":
		cons := node.ChildByFieldName("consequence")
		alt := node.ChildByFieldName("alternative")
		return Union(r.resolveNode(cons, source, mode), r.resolveNode(alt, source, mode))

	case "template_string":
		return r.resolveTemplateString(node, source, mode)

	case "binary_expression":
		op := node.ChildByFieldName("operator")
		if op != nil && op.Utf8Text(source) != "+" {
			return nil
		}
		left := r.resolveNode(node.ChildByFieldName("left"), source, mode)
		right := r.resolveNode(node.ChildByFieldName("right"), source, mode)
		return Concat(Vals(left), Vals(right))

	case "member_expression":
		return r.resolveMemberExpression(node, source)

	case "subscript_expression":
		return r.resolveSubscriptExpression(node, source)

	case "satisfies_expression", "as_expression":
		typeNode := node.ChildByFieldName("type")
		if typeNode == nil {
			// Fall back to scanning children for the type operand.
			for i := uint(0); i < uint(node.ChildCount()); i++ {
				c := node.Child(i)
				if isTypeNodeKind(c.Kind()) {
					typeNode = c
					break
				}
			}
		}
		return r.resolveTypeNode(typeNode, source, mode)

	case "parenthesized_expression":
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			c := node.Child(i)
			if c.Kind() != "(" && c.Kind() != ")" {
				return r.resolveNode(c, source, mode)
			}
		}
		return nil

	default:
		return nil
	}
}

// resolveIdentifier looks up name in the symbol table. A map binding alone
// (without member access) is unresolvable — only `obj.prop` resolves
// through a captured map.
func (r *Resolver) resolveIdentifier(name string) Set {
	b, ok := r.Symbols.Lookup(name)
	if !ok || b.Kind != BindingSet {
		return nil
	}
	return b.Values
}

func (r *Resolver) resolveTemplateString(node *ts.Node, source []byte, mode Mode) Set {
	var parts []part
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string_fragment":
			parts = append(parts, Lit(child.Utf8Text(source)))
		case "template_substitution":
			expr := innerExpression(child)
			parts = append(parts, Vals(r.resolveNode(expr, source, mode)))
		}
	}
	return Concat(parts...)
}

// resolveMemberExpression handles obj.prop where obj is an identifier
// captured as an object map.
func (r *Resolver) resolveMemberExpression(node *ts.Node, source []byte) Set {
	obj := node.ChildByFieldName("object")
	prop := node.ChildByFieldName("property")
	if obj == nil || prop == nil || obj.Kind() != "identifier" {
		return nil
	}
	b, ok := r.Symbols.Lookup(obj.Utf8Text(source))
	if !ok || b.Kind != BindingMap {
		return nil
	}
	if v, ok := b.Map[prop.Utf8Text(source)]; ok {
		return NewSet(v)
	}
	return nil
}

// resolveSubscriptExpression handles obj["prop"] the same way as obj.prop.
func (r *Resolver) resolveSubscriptExpression(node *ts.Node, source []byte) Set {
	obj := node.ChildByFieldName("object")
	idx := node.ChildByFieldName("index")
	if obj == nil || idx == nil || obj.Kind() != "identifier" {
		return nil
	}
	b, ok := r.Symbols.Lookup(obj.Utf8Text(source))
	if !ok || b.Kind != BindingMap {
		return nil
	}
	key := stringLiteralValue(idx, source)
	if idx.Kind() != "string" {
		return nil
	}
	if v, ok := b.Map[key]; ok {
		return NewSet(v)
	}
	return nil
}

// resolveTypeNode handles the TypeScript type side of satisfies/as
// expressions and template-literal types.
func (r *Resolver) resolveTypeNode(node *ts.Node, source []byte, mode Mode) Set {
	if node == nil {
		return nil
	}
	switch node.Kind() {
	case "literal_type":
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			return r.resolveNode(node.Child(i), source, mode)
		}
		return nil
	case "union_type":
		var sets []Set
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			c := node.Child(i)
			if isTypeNodeKind(c.Kind()) {
				sets = append(sets, r.resolveTypeNode(c, source, mode))
			}
		}
		return Union(sets...)
	case "template_literal_type":
		var parts []part
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "string_fragment":
				parts = append(parts, Lit(child.Utf8Text(source)))
			case "template_type":
				expr := innerExpression(child)
				parts = append(parts, Vals(r.resolveTypeNode(expr, source, mode)))
			}
		}
		return Concat(parts...)
	default:
		return nil
	}
}

func isTypeNodeKind(kind string) bool {
	switch kind {
	case "literal_type", "union_type", "template_literal_type", "type_identifier", "generic_type":
		return true
	default:
		return false
	}
}

// innerExpression returns the single meaningful child of a substitution
// wrapper node (template_substitution / template_type), skipping the
// ${ and } delimiter tokens.
func innerExpression(wrapper *ts.Node) *ts.Node {
	for i := uint(0); i < uint(wrapper.ChildCount()); i++ {
		c := wrapper.Child(i)
		kind := c.Kind()
		if kind == "${" || kind == "}" {
			continue
		}
		return c
	}
	return nil
}

// stringLiteralValue strips the surrounding quote characters from a
// `string` node's raw text. Tree-sitter's JS/TS grammars represent escape
// sequences as separate child nodes inside the string; for our purposes
// (recovering literal translation keys) the raw unescaped text is what
// i18next itself would show, so no escape processing is attempted beyond
// quote stripping.
func stringLiteralValue(node *ts.Node, source []byte) string {
	text := node.Utf8Text(source)
	if len(text) >= 2 {
		first := text[0]
		if first == '"' || first == '\'' || first == '`' {
			return strings.TrimSuffix(strings.TrimPrefix(text, text[:1]), text[:1])
		}
	}
	return text
}
