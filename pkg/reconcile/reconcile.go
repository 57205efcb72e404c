package reconcile

import (
	"regexp"

	"github.com/i18nscan/i18nscan/pkg/collect"
)

// DefaultIndentation is used when Options doesn't specify one.
const DefaultIndentation = "  "

// Result is one namespace/locale's reconciliation outcome.
type Result struct {
	Namespace  string
	Locale     string
	Updated    bool
	NewTree    Tree
	Existing   Tree
	Serialized []byte
}

// Reconcile builds the new TranslationTree for one (locale, namespace)
// pair from nsKeys and the on-disk existing tree, following Steps 1-7 of
// §4.7.
func Reconcile(namespace string, nsKeys []collect.Key, existing Tree, opts Options, indent string) Result {
	if existing == nil {
		existing = Tree{}
	}
	if indent == "" {
		indent = DefaultIndentation
	}

	// Step 1.
	candidates := expandPlural(nsKeys, opts)
	candidates = filterPreserved(candidates, opts.PreservePatterns)

	// Step 2.
	var newTree Tree
	if opts.RemoveUnusedKeys {
		newTree = Tree{}
	} else {
		newTree = DeepCopy(existing)
	}

	// Step 3.
	applyPreservePatterns(newTree, existing, opts.KeySeparator, opts.PreservePatterns)

	// Step 4.
	currentBases := make(map[string]bool)
	for _, c := range candidates {
		if c.IsPluralVariant {
			currentBases[c.Base] = true
		}
	}
	preserveZeroForms(newTree, existing, opts.KeySeparator, opts.PluralSeparator, currentBases)

	// Step 5.
	for _, c := range candidates {
		existingValue, found := Lookup(existing, opts.KeySeparator, c.FullKey)
		Set(newTree, opts.KeySeparator, c.FullKey, mergeValue(c, existingValue, found, opts))
	}

	// Steps 6 (lazy, at serialize time) and 7.
	oldSerialized := Serialize(existing, opts, indent)
	newSerialized := Serialize(newTree, opts, indent)

	return Result{
		Namespace:  namespace,
		Locale:     opts.Locale,
		Updated:    string(oldSerialized) != string(newSerialized),
		NewTree:    newTree,
		Existing:   existing,
		Serialized: newSerialized,
	}
}

func filterPreserved(cands []candidate, patterns []*regexp.Regexp) []candidate {
	if len(patterns) == 0 {
		return cands
	}
	out := cands[:0]
	for _, c := range cands {
		if !matchesAny(c.FullKey, patterns) {
			out = append(out, c)
		}
	}
	return out
}

// ReconcileMerged runs Reconcile per namespace and combines the results
// into one tree keyed by namespace at the top level — merged-namespace
// mode (§4.7). Implicit-namespace keys, when the configured default
// namespace is "none", are flattened into the top level alongside the
// per-namespace subtrees instead of nested under a namespace key.
func ReconcileMerged(nsKeys map[string][]collect.Key, existingByNs map[string]Tree, opts Options, indent string, defaultNsIsNone bool) Result {
	if indent == "" {
		indent = DefaultIndentation
	}

	combinedExisting := Tree{}
	for ns, t := range existingByNs {
		if defaultNsIsNone && ns == collect.ImplicitNamespace {
			for k, v := range t {
				combinedExisting[k] = v
			}
			continue
		}
		combinedExisting[ns] = t
	}

	combinedNew := Tree{}
	for ns, keys := range nsKeys {
		existing := existingByNs[ns]
		sub := Reconcile(ns, keys, existing, opts, indent).NewTree
		if defaultNsIsNone && ns == collect.ImplicitNamespace {
			for k, v := range sub {
				combinedNew[k] = v
			}
			continue
		}
		combinedNew[ns] = sub
	}
	// Namespaces discovered on disk but absent from this run's extraction
	// still need to survive (§4.7 "including namespaces discovered on
	// disk even if the current extraction produced none").
	for ns, t := range existingByNs {
		if _, ok := nsKeys[ns]; ok {
			continue
		}
		sub := Reconcile(ns, nil, t, opts, indent).NewTree
		if defaultNsIsNone && ns == collect.ImplicitNamespace {
			for k, v := range sub {
				combinedNew[k] = v
			}
			continue
		}
		combinedNew[ns] = sub
	}

	oldSerialized := Serialize(combinedExisting, opts, indent)
	newSerialized := Serialize(combinedNew, opts, indent)

	return Result{
		Locale:     opts.Locale,
		Updated:    string(oldSerialized) != string(newSerialized),
		NewTree:    combinedNew,
		Existing:   combinedExisting,
		Serialized: newSerialized,
	}
}
