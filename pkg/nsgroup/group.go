// Package nsgroup partitions collected keys by namespace — the Namespace
// Grouper.
package nsgroup

import "github.com/i18nscan/i18nscan/pkg/collect"

// Group partitions keys by their Namespace field, preserving each
// namespace's first-seen key order.
func Group(keys []collect.Key) map[string][]collect.Key {
	out := make(map[string][]collect.Key)
	var order []string
	seen := make(map[string]bool)
	for _, k := range keys {
		if !seen[k.Namespace] {
			seen[k.Namespace] = true
			order = append(order, k.Namespace)
		}
		out[k.Namespace] = append(out[k.Namespace], k)
	}
	return out
}

// NoneNamespace is the configuration sentinel meaning "implicit-namespace
// keys live at the top level of their file, un-namespaced" (Invariant 2).
const NoneNamespace = "none"

// Normalize maps the implicit-namespace sentinel to defaultNS, unless
// defaultNS is the "none" sentinel — in which case implicit keys are left
// as collect.ImplicitNamespace so the reconciler's merged-namespace mode
// can flatten them to the top level instead of nesting them.
func Normalize(keys []collect.Key, defaultNS string) []collect.Key {
	if defaultNS == NoneNamespace {
		return keys
	}
	out := make([]collect.Key, len(keys))
	for i, k := range keys {
		if k.Namespace == collect.ImplicitNamespace {
			k.Namespace = defaultNS
		}
		out[i] = k
	}
	return out
}

// Namespaces returns the distinct namespace names present in keys, in
// first-seen order.
func Namespaces(keys []collect.Key) []string {
	var order []string
	seen := make(map[string]bool)
	for _, k := range keys {
		if !seen[k.Namespace] {
			seen[k.Namespace] = true
			order = append(order, k.Namespace)
		}
	}
	return order
}
