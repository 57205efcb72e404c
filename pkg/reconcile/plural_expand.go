package reconcile

import (
	"strings"

	"github.com/i18nscan/i18nscan/pkg/collect"
	"github.com/i18nscan/i18nscan/pkg/plural"
)

// candidate is one key ready for Step 5's per-key merge: its full key
// string (base plus any context/plural suffixes already applied), plus the
// bookkeeping Step 6's sort needs to group plural variants by base.
type candidate struct {
	collect.Key
	FullKey         string
	Base            string
	Category        plural.Category
	IsPluralVariant bool
}

// expandPlural is Step 1: generates the candidate plural-category variants
// of every hasCount key and filters them down to the categories valid for
// locale, dropping any base-less plural duplicate that
// DisableBasePluralWhenContext says should yield to its context variant.
//
// This implementation resolves one of the spec's documented open
// questions (§9): rather than assume upstream keys arrive pre-expanded per
// category, the reconciler itself performs the expansion, testing each
// generated category against the locale's CLDR table.
func expandPlural(keys []collect.Key, opts Options) []candidate {
	suppressed := basePluralsToSuppress(keys, opts)

	var out []candidate
	for _, k := range keys {
		if !k.HasCount || opts.DisablePlurals {
			out = append(out, candidate{Key: k, FullKey: k.Key, Base: k.Key})
			continue
		}
		if k.ContextExpr == "" && suppressed[pluralBaseID{namespace: k.Namespace, base: k.Key}] {
			continue
		}

		cats := plural.CardinalCategories(opts.Locale)
		if k.IsOrdinal {
			cats = plural.OrdinalCategories(opts.Locale)
		}

		if len(cats) == 1 && cats[0] == plural.Other && !opts.GenerateBasePluralForms {
			out = append(out, candidate{Key: k, FullKey: k.Key, Base: k.Key, Category: plural.Other})
			continue
		}

		for _, cat := range cats {
			out = append(out, candidate{
				Key:             k,
				FullKey:         pluralSuffix(k.Key, cat, k.IsOrdinal, opts),
				Base:            k.Key,
				Category:        cat,
				IsPluralVariant: true,
			})
		}
	}
	return out
}

type pluralBaseID struct {
	namespace string
	base      string
}

// basePluralsToSuppress finds every (namespace, base) that has both a
// hasCount key with no context and a hasCount key with a context, when
// DisableBasePluralWhenContext is set — the context-less plural variant of
// that base is omitted in favor of the context-qualified ones (§4.4).
func basePluralsToSuppress(keys []collect.Key, opts Options) map[pluralBaseID]bool {
	out := make(map[pluralBaseID]bool)
	if !opts.DisableBasePluralWhenContext {
		return out
	}
	hasContext := make(map[pluralBaseID]bool)
	hasBase := make(map[pluralBaseID]bool)
	for _, k := range keys {
		if !k.HasCount {
			continue
		}
		base := k.Key
		if k.ContextExpr != "" {
			base = strings.TrimSuffix(k.Key, opts.ContextSeparator+k.ContextExpr)
		}
		id := pluralBaseID{namespace: k.Namespace, base: base}
		if k.ContextExpr != "" {
			hasContext[id] = true
		} else {
			hasBase[id] = true
		}
	}
	for id := range hasBase {
		if hasContext[id] {
			out[id] = true
		}
	}
	return out
}

func pluralSuffix(base string, cat plural.Category, ordinal bool, opts Options) string {
	if ordinal {
		return base + opts.PluralSeparator + "ordinal" + opts.PluralSeparator + string(cat)
	}
	return base + opts.PluralSeparator + string(cat)
}
