// Package reconcile implements the Reconciler: merging collected keys into
// existing translation files per locale/namespace, expanding plurals by
// CLDR category, and preserving user content under the rules in §4.7.
package reconcile

import "strings"

// Tree is the recursive mapping a translation file deserializes to: string
// segments to either a string leaf or another Tree. Two addressing modes
// coexist: nested access via a key separator, and flat keys with the
// separator embedded in one string (the nested-write conflict rule below
// is what produces the latter).
type Tree map[string]any

// DeepCopy returns a fully independent copy of t.
func DeepCopy(t Tree) Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for k, v := range t {
		if sub, ok := asTree(v); ok {
			out[k] = DeepCopy(sub)
			continue
		}
		out[k] = v
	}
	return out
}

func asTree(v any) (Tree, bool) {
	switch m := v.(type) {
	case Tree:
		return m, true
	case map[string]any:
		return Tree(m), true
	default:
		return nil, false
	}
}

func splitPath(path, sep string) []string {
	if sep == "" {
		return []string{path}
	}
	return strings.Split(path, sep)
}

// Lookup resolves path (using sep to split nested segments) against t.
func Lookup(t Tree, sep, path string) (any, bool) {
	segs := splitPath(path, sep)
	var cur any = t
	for _, seg := range segs {
		m, ok := asTree(cur)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Set writes value at path under t, applying the nested-write conflict
// rule: if an ancestor segment already holds a non-object scalar, the
// write is redirected to a flat key (path, separators embedded verbatim)
// at the tree root rather than clobbering the scalar.
func Set(t Tree, sep, path string, value any) {
	segs := splitPath(path, sep)
	if len(segs) == 1 {
		t[path] = value
		return
	}

	cur := t
	for _, seg := range segs[:len(segs)-1] {
		next, exists := cur[seg]
		if !exists {
			nt := make(Tree)
			cur[seg] = nt
			cur = nt
			continue
		}
		nt, ok := asTree(next)
		if !ok {
			t[path] = value
			return
		}
		cur[seg] = nt
		cur = nt
	}
	cur[segs[len(segs)-1]] = value
}

// Delete removes path from t, applying the same traversal as Set; a
// missing intermediate segment is a no-op.
func Delete(t Tree, sep, path string) {
	segs := splitPath(path, sep)
	cur := t
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg]
		if !ok {
			return
		}
		nt, ok := asTree(next)
		if !ok {
			return
		}
		cur = nt
	}
	delete(cur, segs[len(segs)-1])
}

// flatEntry is one leaf discovered while walking a Tree, with its full
// dotted path from the root.
type flatEntry struct {
	path  string
	value any
}

// flatten walks t depth-first, returning every leaf path/value pair. It
// always recurses into nested objects (including returnObjects subtrees),
// so an object is never reported as a value of its own.
func flatten(t Tree, sep, prefix string) []flatEntry {
	var out []flatEntry
	for k, v := range t {
		path := k
		if prefix != "" {
			path = prefix + sep + k
		}
		if sub, ok := asTree(v); ok {
			out = append(out, flatten(sub, sep, path)...)
			continue
		}
		out = append(out, flatEntry{path: path, value: v})
	}
	return out
}

// Flatten returns every leaf's dotted path (joined with sep) in t, for
// callers that only need key coverage, not the values.
func Flatten(t Tree, sep string) []string {
	entries := flatten(t, sep, "")
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.path
	}
	return out
}
