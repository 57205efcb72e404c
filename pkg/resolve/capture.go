package resolve

import (
	"strconv"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// CaptureDeclarator is called on every variable_declarator seen during a
// file walk. Object-expression initializers whose properties are all
// statically resolvable become a BindingMap; other resolvable initializers
// become a BindingSet. Declarators that don't statically resolve are
// simply not captured (a later obj.prop or identifier lookup then misses,
// which is the documented "unresolvable" behavior).
func (r *Resolver) CaptureDeclarator(node *ts.Node, source []byte) {
	name := node.ChildByFieldName("name")
	value := node.ChildByFieldName("value")
	if name == nil || value == nil || name.Kind() != "identifier" {
		return
	}

	if value.Kind() == "object" {
		if m, ok := r.captureObjectMap(value, source); ok {
			r.Symbols.Bind(name.Utf8Text(source), Binding{Kind: BindingMap, Map: m})
		}
		return
	}

	if set := r.resolveNode(value, source, ModeValue); !set.Empty() {
		r.Symbols.Bind(name.Utf8Text(source), Binding{Kind: BindingSet, Values: set})
	}
}

// captureObjectMap converts an object_expression into a name -> string map
// provided every property has a plain identifier/string key and a
// singleton resolvable value. Properties that don't fit this shape make
// the whole object uncapturable — a partial map would give wrong answers
// for callers that don't check which keys survived.
func (r *Resolver) captureObjectMap(obj *ts.Node, source []byte) (map[string]string, bool) {
	out := make(map[string]string)
	for i := uint(0); i < uint(obj.ChildCount()); i++ {
		child := obj.Child(i)
		if !child.IsNamed() || child.Kind() == "comment" {
			continue
		}
		if child.Kind() != "pair" {
			return nil, false
		}
		key := child.ChildByFieldName("key")
		val := child.ChildByFieldName("value")
		if key == nil || val == nil {
			return nil, false
		}
		keyName := propertyKeyText(key, source)
		if keyName == "" {
			return nil, false
		}
		set := r.resolveNode(val, source, ModeValue)
		if len(set) != 1 {
			return nil, false
		}
		out[keyName] = set[0]
	}
	return out, true
}

func propertyKeyText(key *ts.Node, source []byte) string {
	switch key.Kind() {
	case "property_identifier", "identifier":
		return key.Utf8Text(source)
	case "string":
		return stringLiteralValue(key, source)
	default:
		return ""
	}
}

// CaptureEnum captures a TypeScript enum_declaration whose members all have
// string or numeric initializers as a BindingMap (member name -> value).
func (r *Resolver) CaptureEnum(node *ts.Node, source []byte) {
	name := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if name == nil || body == nil {
		return
	}

	out := make(map[string]string)
	implicit := 0
	for i := uint(0); i < uint(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Kind() {
		case "property_identifier":
			// Bare member with no initializer: implicit numeric value.
			out[member.Utf8Text(source)] = strconv.Itoa(implicit)
			implicit++
		case "enum_assignment":
			memberName := member.ChildByFieldName("name")
			value := member.ChildByFieldName("value")
			if memberName == nil || value == nil {
				return
			}
			set := r.resolveNode(value, source, ModeValue)
			if len(set) != 1 {
				return
			}
			out[memberName.Utf8Text(source)] = set[0]
			implicit++
		}
	}
	r.Symbols.Bind(name.Utf8Text(source), Binding{Kind: BindingMap, Map: out})
}
