package walker

import (
	"fmt"
	"regexp"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/i18nscan/i18nscan/pkg/collect"
	"github.com/i18nscan/i18nscan/pkg/resolve"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// collapseWhitespace folds a run of JSX whitespace (spaces, tabs, newlines,
// indentation) into a single space, preserving a meaningful separator
// between text and an adjacent inline element instead of deleting it.
func collapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// handleJSXElement recognizes a configured Trans-style component and emits
// a collect.Key derived from its i18nKey/ns attributes and, absent a
// `defaults` attribute, its serialized children (§4.4).
func (w *Walker) handleJSXElement(node *ts.Node, source []byte) {
	opening := node
	if node.Kind() == "jsx_element" {
		opening = node.ChildByFieldName("open_tag")
		if opening == nil {
			return
		}
	}

	name := jsxName(opening, source)
	if !w.isTransComponent(name) {
		return
	}

	var (
		keyAttr     string
		nsAttr      string
		defaultAttr string
		hasDefault  bool
		count       bool
	)

	for i := uint(0); i < uint(opening.ChildCount()); i++ {
		attr := opening.Child(i)
		if attr.Kind() != "jsx_attribute" {
			continue
		}
		attrName := jsxAttrName(attr, source)
		val := jsxAttrStringValue(w.Resolver, attr, source)
		switch attrName {
		case "i18nKey":
			keyAttr = val
		case "ns":
			nsAttr = val
		case "defaults":
			defaultAttr, hasDefault = val, true
		case "count":
			count = true
		}
	}

	if keyAttr == "" {
		return
	}

	namespace := nsAttr
	if namespace == "" {
		namespace = collect.ImplicitNamespace
	}

	defaultValue := defaultAttr
	if !hasDefault && node.Kind() == "jsx_element" {
		defaultValue = w.serializeChildren(node, source)
		hasDefault = defaultValue != ""
	}

	w.Collector.Add(collect.Key{
		Key:             keyAttr,
		Namespace:       namespace,
		DefaultValue:    firstNonEmpty(defaultValue, keyAttr),
		ExplicitDefault: hasDefault,
		HasCount:        count,
		SourceFile:      w.filePath,
		SourceLine:      uint32(node.StartPosition().Row) + 1,
	})
}

func (w *Walker) isTransComponent(name string) bool {
	for _, c := range w.Opts.TransComponents {
		if c == name {
			return true
		}
	}
	return false
}

func jsxName(opening *ts.Node, source []byte) string {
	n := opening.ChildByFieldName("name")
	if n == nil {
		return ""
	}
	return n.Utf8Text(source)
}

func jsxAttrName(attr *ts.Node, source []byte) string {
	n := attr.ChildByFieldName("name")
	if n == nil {
		return ""
	}
	return n.Utf8Text(source)
}

// jsxAttrStringValue resolves a `name="literal"` or `name={expr}` attribute
// value to a single string, preferring the Resolver for the expression form.
func jsxAttrStringValue(r *resolve.Resolver, attr *ts.Node, source []byte) string {
	val := attr.ChildByFieldName("value")
	if val == nil {
		return ""
	}
	switch val.Kind() {
	case "string":
		text := val.Utf8Text(source)
		if len(text) >= 2 {
			return text[1 : len(text)-1]
		}
		return text
	case "jsx_expression":
		for i := uint(0); i < uint(val.ChildCount()); i++ {
			c := val.Child(i)
			if c.Kind() == "{" || c.Kind() == "}" {
				continue
			}
			set := r.Resolve(c, source, resolve.ModeValue)
			if !set.Empty() {
				return set[0]
			}
		}
	}
	return ""
}

// serializeChildren renders a Trans element's children into the default
// value i18next itself would derive: a whitelisted inline tag is kept
// verbatim, any other element becomes a numbered placeholder (`<0>…</0>`),
// and text nodes are concatenated (§4.4).
func (w *Walker) serializeChildren(node *ts.Node, source []byte) string {
	var b strings.Builder
	placeholderIdx := 0

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "jsx_text":
			b.WriteString(collapseWhitespace(child.Utf8Text(source)))

		case "jsx_expression":
			for j := uint(0); j < uint(child.ChildCount()); j++ {
				c := child.Child(j)
				if c.Kind() == "{" || c.Kind() == "}" {
					continue
				}
				set := w.Resolver.Resolve(c, source, resolve.ModeValue)
				if !set.Empty() {
					b.WriteString(set[0])
				}
			}

		case "jsx_element", "jsx_self_closing_element":
			tag := jsxChildTag(child, source)
			if w.isKeptTag(tag) {
				b.WriteString(child.Utf8Text(source))
				continue
			}
			fmt.Fprintf(&b, "<%d>", placeholderIdx)
			if child.Kind() == "jsx_element" {
				b.WriteString(w.serializeChildren(child, source))
			}
			fmt.Fprintf(&b, "</%d>", placeholderIdx)
			placeholderIdx++
		}
	}
	return strings.TrimSpace(b.String())
}

func jsxChildTag(node *ts.Node, source []byte) string {
	opening := node
	if node.Kind() == "jsx_element" {
		opening = node.ChildByFieldName("open_tag")
		if opening == nil {
			return ""
		}
	}
	return strings.ToLower(jsxName(opening, source))
}

func (w *Walker) isKeptTag(tag string) bool {
	for _, t := range w.Opts.KeptHTMLTags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}
