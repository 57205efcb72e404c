package walker

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/i18nscan/i18nscan/pkg/resolve"
	"github.com/i18nscan/i18nscan/pkg/scope"
)

// detectHookBinding recognizes `const { t } = useTranslation('common')` and
// its variants, binding the destructured/aliased translation-function
// identifier in the current scope frame.
func (w *Walker) detectHookBinding(node *ts.Node, source []byte) {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil || valueNode == nil || valueNode.Kind() != "call_expression" {
		return
	}

	callee := valueNode.ChildByFieldName("function")
	if callee == nil {
		return
	}
	hook := w.Opts.hookSpec(callee.Utf8Text(source))
	if hook == nil {
		return
	}

	info := scope.Info{}
	if args := valueNode.ChildByFieldName("arguments"); args != nil {
		if nsArg := nthArg(args, hook.NsArg); nsArg != nil {
			info.DefaultNs = w.Resolver.Resolve(nsArg, source, resolve.ModeValue)
		}
		if optArg := nthArg(args, hook.KeyPrefixArg); optArg != nil && optArg.Kind() == "object" {
			info.KeyPrefix = objectStringProp(w.Resolver, optArg, source, "keyPrefix")
		}
	}

	bindPattern(nameNode, source, info, w.scopes)
}

// bindPattern binds info under every identifier a (possibly destructured,
// possibly aliased) left-hand side introduces.
//
//	t = ...                    -> binds "t"
//	{ t } = ...                -> binds "t"
//	{ t: translate } = ...     -> binds "translate"
func bindPattern(name *ts.Node, source []byte, info scope.Info, scopes *scope.Stack) {
	switch name.Kind() {
	case "identifier":
		scopes.Bind(name.Utf8Text(source), info)

	case "object_pattern":
		for i := uint(0); i < uint(name.ChildCount()); i++ {
			child := name.Child(i)
			switch child.Kind() {
			case "shorthand_property_identifier_pattern":
				scopes.Bind(child.Utf8Text(source), info)
			case "pair_pattern":
				key := child.ChildByFieldName("key")
				value := child.ChildByFieldName("value")
				if key != nil && key.Utf8Text(source) == "t" && value != nil {
					bindPattern(value, source, info, scopes)
				} else if value != nil && value.Kind() == "identifier" {
					// { t: translate } shape when "t" isn't the literal
					// key we're matching on — still bind whatever name
					// is destructured, since any alias of the hook's
					// return is a plausible translation function.
					scopes.Bind(value.Utf8Text(source), info)
				}
			}
		}
	}
}

// bindTypedParams scans a function-like node's parameter list for the
// `(t: TFunction<"common">) => ...` pattern, binding each match in the
// frame that was just pushed for this function.
func (w *Walker) bindTypedParams(fn *ts.Node, source []byte) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		return
	}
	for i := uint(0); i < uint(params.ChildCount()); i++ {
		p := params.Child(i)
		if !p.IsNamed() {
			continue
		}
		if name, info, ok := w.extractTypedParamNamespace(p, source); ok {
			w.scopes.Bind(name, info)
		}
	}
}

// extractTypedParamNamespace recognizes a function parameter typed as the
// i18next translation-function type with a single string-literal type
// argument, e.g. `(t: TFunction<"common">) => ...`, binding the parameter
// identifier with defaultNs = "common" in the new function's scope.
//
// Several AST shapes carry the type argument depending on how the
// generic was written; all are walked the same way as
// extractForwardRefPropsType walks type_arguments in the teacher.
func (w *Walker) extractTypedParamNamespace(param *ts.Node, source []byte) (name string, info scope.Info, ok bool) {
	ident := paramIdentifier(param)
	typeAnno := param.ChildByFieldName("type")
	if ident == nil || typeAnno == nil {
		return "", scope.Info{}, false
	}

	generic := findChildKind(typeAnno, "generic_type")
	if generic == nil {
		return "", scope.Info{}, false
	}
	typeArgs := findChildKind(generic, "type_arguments")
	if typeArgs == nil {
		return "", scope.Info{}, false
	}

	var nsCandidates []string
	for i := uint(0); i < uint(typeArgs.ChildCount()); i++ {
		arg := typeArgs.Child(i)
		if arg.Kind() == "literal_type" {
			set := w.Resolver.Resolve(arg, source, resolve.ModeValue)
			nsCandidates = append(nsCandidates, set...)
		}
	}
	if len(nsCandidates) == 0 {
		return "", scope.Info{}, false
	}
	return ident.Utf8Text(source), scope.Info{DefaultNs: nsCandidates}, true
}

func paramIdentifier(param *ts.Node) *ts.Node {
	switch param.Kind() {
	case "required_parameter", "optional_parameter":
		p := param.ChildByFieldName("pattern")
		if p != nil && p.Kind() == "identifier" {
			return p
		}
		return nil
	case "identifier":
		return param
	default:
		return nil
	}
}

func findChildKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if c := node.Child(i); c.Kind() == kind {
			return c
		}
	}
	return nil
}
