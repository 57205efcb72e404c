package reconcile

import (
	"sort"
	"strings"

	"github.com/i18nscan/i18nscan/pkg/plural"
)

var allCategories = []plural.Category{plural.Zero, plural.One, plural.Two, plural.Few, plural.Many, plural.Other}

func asCategory(s string) (plural.Category, bool) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// classifyKey splits a possibly plural-suffixed key into its base and
// plural metadata, used by the composite comparator (§4.7 Step 6). A key
// that doesn't parse as "<base><pluralSep><category>" (or the ordinal
// three-part shape) is treated as a plain, non-plural key.
func classifyKey(key, pluralSep string) (base string, isPlural, isOrdinal bool, cat plural.Category) {
	if pluralSep == "" {
		return key, false, false, ""
	}
	idx := strings.LastIndex(key, pluralSep)
	if idx < 0 {
		return key, false, false, ""
	}
	tail := key[idx+len(pluralSep):]
	c, ok := asCategory(tail)
	if !ok {
		return key, false, false, ""
	}
	rest := key[:idx]
	ordinalSuffix := pluralSep + "ordinal"
	if strings.HasSuffix(rest, ordinalSuffix) {
		return strings.TrimSuffix(rest, ordinalSuffix), true, true, c
	}
	return rest, true, false, c
}

// orderedKeys returns keys in the output order for one tree level. A
// non-nil opts.SortFunc takes precedence at every level. Otherwise, when
// opts.Sort is false, output order still must be deterministic (the diff
// in Step 7 depends on it), so keys are still sorted lexically — only the
// plural-aware composite ordering is reserved for opts.Sort == true.
func orderedKeys(keys []string, opts Options) []string {
	out := append([]string(nil), keys...)
	if opts.SortFunc != nil {
		sort.SliceStable(out, func(i, j int) bool { return opts.SortFunc(out[i], out[j]) })
		return out
	}
	if !opts.Sort {
		sort.Strings(out)
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return lessComposite(out[i], out[j], opts.PluralSeparator) })
	return out
}

func lessComposite(a, b, pluralSep string) bool {
	baseA, plA, ordA, catA := classifyKey(a, pluralSep)
	baseB, plB, ordB, catB := classifyKey(b, pluralSep)

	lowerA, lowerB := strings.ToLower(baseA), strings.ToLower(baseB)
	if lowerA != lowerB {
		return lowerA < lowerB
	}
	if plA != plB {
		return plB // non-plural (plA==false) sorts before plural
	}
	if !plA {
		return false
	}
	if ordA != ordB {
		return ordB // cardinal (ordA==false) sorts before ordinal
	}
	return plural.Rank(catA) < plural.Rank(catB)
}
