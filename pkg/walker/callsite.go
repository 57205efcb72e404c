package walker

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/i18nscan/i18nscan/pkg/collect"
	"github.com/i18nscan/i18nscan/pkg/resolve"
	"github.com/i18nscan/i18nscan/pkg/scope"
)

// handleCallExpression recognizes a translation call site, resolves its
// key/namespace/context/option candidates, and emits one collect.Key per
// candidate combination (§4.4 Key assembly).
func (w *Walker) handleCallExpression(node *ts.Node, source []byte) {
	callee := node.ChildByFieldName("function")
	if callee == nil {
		return
	}
	calleeText := callee.Utf8Text(source)

	scoped, isScoped := w.lookupCalleeScope(callee, source)
	if !w.matchesFunctionList(calleeText) && !isScoped {
		return
	}

	args := node.ChildByFieldName("arguments")
	keyArg := nthArg(args, 0)
	if keyArg == nil {
		return
	}

	baseKeys := w.resolveKeyArg(keyArg, source)
	if baseKeys.Empty() {
		return
	}

	var (
		defaultValue    string
		explicitDefault bool
		hasCount        bool
		isOrdinal       bool
		returnObjects   bool
		callKeyPrefix   string
		namespaces      resolve.Set
		contexts        resolve.Set
	)

	// Arg 1 is either the options object directly (`t(key, options)`) or a
	// literal default value, in which case arg 2, if present, is the
	// options object instead (`t(key, defaultValue, options)`).
	optArg := nthArg(args, 1)
	var optionsArg *ts.Node
	if optArg != nil {
		switch optArg.Kind() {
		case "string", "template_string":
			if v := w.Resolver.Resolve(optArg, source, resolve.ModeValue); !v.Empty() {
				defaultValue, explicitDefault = v[0], true
			}
			optionsArg = nthArg(args, 2)
		case "object":
			optionsArg = optArg
		}
	}

	if optionsArg != nil && optionsArg.Kind() == "object" {
		if v := objectStringProp(w.Resolver, optionsArg, source, "defaultValue"); v != "" {
			defaultValue, explicitDefault = v, true
		}
		hasCount = objectHasProp(optionsArg, source, "count")
		isOrdinal = objectBoolProp(optionsArg, source, "ordinal")
		returnObjects = objectBoolProp(optionsArg, source, "returnObjects")
		callKeyPrefix = objectStringProp(w.Resolver, optionsArg, source, "keyPrefix")
		if nsNode := objectProperty(optionsArg, source, "ns"); nsNode != nil {
			namespaces = w.Resolver.Resolve(nsNode, source, resolve.ModeValue)
		}
		if ctxNode := objectProperty(optionsArg, source, "context"); ctxNode != nil {
			contexts = w.Resolver.Resolve(ctxNode, source, resolve.ModeContext)
		}
	}

	keyPrefix := callKeyPrefix
	if isScoped && scoped.KeyPrefix != "" {
		keyPrefix = scoped.KeyPrefix + keyPrefix
	}

	explicitNs := !namespaces.Empty()
	if namespaces.Empty() && isScoped {
		namespaces = resolve.Set(scoped.DefaultNs)
	}
	if namespaces.Empty() {
		namespaces = resolve.NewSet(collect.ImplicitNamespace)
	}

	// A resolved context produces the context variant alongside the
	// context-less base (both get written); the reconciler's
	// DisableBasePluralWhenContext flag later drops the context-less
	// *plural* variant of the base when both apply (§4.4).
	if contexts.Empty() {
		contexts = resolve.NewSet("")
	} else {
		contexts = resolve.Union(resolve.NewSet(""), contexts)
	}

	line := uint32(node.StartPosition().Row) + 1

	for _, ns := range namespaces {
		for _, base := range baseKeys {
			keyNs := ns
			if sep := w.Opts.NsSeparator; sep != "" && !explicitNs {
				if i := strings.Index(base, sep); i > 0 {
					keyNs, base = base[:i], base[i+len(sep):]
				}
			}
			full := keyPrefix + base
			for _, ctx := range contexts {
				key := full
				if ctx != "" {
					key += w.Opts.ContextSeparator + ctx
				}
				w.Collector.Add(collect.Key{
					Key:             key,
					Namespace:       keyNs,
					DefaultValue:    firstNonEmpty(defaultValue, full),
					ExplicitDefault: explicitDefault,
					HasCount:        hasCount,
					IsOrdinal:       isOrdinal,
					ReturnObjects:   returnObjects,
					ContextExpr:     ctx,
					SourceFile:      w.filePath,
					SourceLine:      line,
				})
			}
		}
	}
}

// resolveKeyArg resolves arg 0, including the selector-function form
// `$ => $.path.to.key`, which the engine converts into a dot-joined key by
// walking the member-expression chain of the arrow body.
func (w *Walker) resolveKeyArg(node *ts.Node, source []byte) resolve.Set {
	if node.Kind() == "arrow_function" {
		if key, ok := selectorKey(node, source); ok {
			return resolve.NewSet(key)
		}
		return nil
	}
	return w.Resolver.Resolve(node, source, resolve.ModeValue)
}

// selectorKey converts `$ => $.some.key` into "some.key". ok is false if
// the arrow's body isn't a plain member-expression chain rooted at its own
// (single) parameter.
func selectorKey(arrow *ts.Node, source []byte) (string, bool) {
	params := arrow.ChildByFieldName("parameters")
	var paramName string
	if params != nil {
		if p := nthArg(params, 0); p != nil {
			paramName = p.Utf8Text(source)
		}
	} else if p := arrow.ChildByFieldName("parameter"); p != nil {
		paramName = p.Utf8Text(source)
	}
	if paramName == "" {
		return "", false
	}

	body := arrow.ChildByFieldName("body")
	if body == nil {
		return "", false
	}

	var segments []string
	cur := body
	for cur.Kind() == "member_expression" {
		prop := cur.ChildByFieldName("property")
		if prop == nil {
			return "", false
		}
		segments = append([]string{prop.Utf8Text(source)}, segments...)
		cur = cur.ChildByFieldName("object")
		if cur == nil {
			return "", false
		}
	}
	if cur.Kind() != "identifier" || cur.Utf8Text(source) != paramName {
		return "", false
	}
	if len(segments) == 0 {
		return "", false
	}
	return strings.Join(segments, "."), true
}

// matchesFunctionList reports whether calleeText matches one of the
// configured callee patterns: exact name, dotted member, or wildcard
// prefix ("*.t" matches any "<ident>.t").
func (w *Walker) matchesFunctionList(calleeText string) bool {
	for _, pat := range w.Opts.Functions {
		if pat == calleeText {
			return true
		}
		if strings.HasPrefix(pat, "*.") {
			suffix := pat[1:] // ".t"
			if strings.HasSuffix(calleeText, suffix) && !strings.Contains(strings.TrimSuffix(calleeText, suffix), ".") {
				return true
			}
		}
	}
	return false
}

// lookupCalleeScope checks whether the callee identifier (or the object of
// a simple `obj.t` member access) is bound in the current scope stack.
func (w *Walker) lookupCalleeScope(callee *ts.Node, source []byte) (scope.Info, bool) {
	name := callee.Utf8Text(source)
	if callee.Kind() == "member_expression" {
		obj := callee.ChildByFieldName("object")
		prop := callee.ChildByFieldName("property")
		if obj != nil && obj.Kind() == "identifier" && prop != nil && prop.Utf8Text(source) == "t" {
			name = obj.Utf8Text(source)
		}
	}
	return w.scopes.Lookup(name)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
