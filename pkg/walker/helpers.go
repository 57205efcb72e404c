package walker

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/i18nscan/i18nscan/pkg/resolve"
)

// nthArg returns the nth positional argument of an `arguments` node,
// skipping punctuation tokens ("(", ",", ")") and comments.
func nthArg(args *ts.Node, n int) *ts.Node {
	if n < 0 || args == nil {
		return nil
	}
	idx := 0
	for i := uint(0); i < uint(args.ChildCount()); i++ {
		c := args.Child(i)
		if !c.IsNamed() {
			continue
		}
		if idx == n {
			return c
		}
		idx++
	}
	return nil
}

// objectProperty finds the pair whose key text equals name inside an
// `object` node, returning its value node.
func objectProperty(obj *ts.Node, source []byte, name string) *ts.Node {
	if obj == nil {
		return nil
	}
	for i := uint(0); i < uint(obj.ChildCount()); i++ {
		child := obj.Child(i)
		switch child.Kind() {
		case "pair":
			key := child.ChildByFieldName("key")
			if key == nil {
				continue
			}
			if propertyKeyMatches(key, source, name) {
				return child.ChildByFieldName("value")
			}
		case "shorthand_property_identifier":
			if child.Utf8Text(source) == name {
				return child
			}
		}
	}
	return nil
}

func propertyKeyMatches(key *ts.Node, source []byte, name string) bool {
	text := key.Utf8Text(source)
	if key.Kind() == "string" && len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return text == name
}

// objectStringProp resolves the named property of an object literal to a
// single string value via r, returning "" if absent or not resolvable to
// exactly one candidate.
func objectStringProp(r *resolve.Resolver, obj *ts.Node, source []byte, name string) string {
	val := objectProperty(obj, source, name)
	if val == nil {
		return ""
	}
	set := r.Resolve(val, source, resolve.ModeValue)
	if len(set) == 0 {
		return ""
	}
	return set[0]
}

// objectBoolProp reports whether the named property of an object literal is
// the literal `true`.
func objectBoolProp(obj *ts.Node, source []byte, name string) bool {
	val := objectProperty(obj, source, name)
	return val != nil && val.Kind() == "true"
}

// objectHasProp reports whether name is present at all in obj, regardless
// of its value — used for options like `count` where presence (not value)
// decides whether a plural expansion applies.
func objectHasProp(obj *ts.Node, source []byte, name string) bool {
	return objectProperty(obj, source, name) != nil
}
