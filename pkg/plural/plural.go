// Package plural provides the CLDR plural-category tables the reconciler
// uses to decide which plural variants of a key survive for a given
// locale (spec §4.7 Step 1, Invariant 3).
//
// Locale tags are parsed and canonicalized with golang.org/x/text/language;
// the category tables themselves are hand-maintained per base language,
// the same zero-dependency-data approach used elsewhere in the retrieved
// corpus for CLDR plural handling — only the locale-tag plumbing comes
// from an external package, not the rule data itself.
package plural

import "golang.org/x/text/language"

// Category is one of the six CLDR plural classes.
type Category string

const (
	Zero  Category = "zero"
	One   Category = "one"
	Two   Category = "two"
	Few   Category = "few"
	Many  Category = "many"
	Other Category = "other"
)

// canonicalOrder is the order categories must appear in when sorting
// plural variants (spec §4.7 Step 6).
var canonicalOrder = []Category{Zero, One, Two, Few, Many, Other}

// Rank returns c's position in canonical CLDR order, for sort comparators.
func Rank(c Category) int {
	for i, want := range canonicalOrder {
		if want == c {
			return i
		}
	}
	return len(canonicalOrder)
}

// cardinalTables maps a base language subtag to its cardinal plural
// categories, excluding "other" (which every locale always has).
var cardinalTables = map[string][]Category{
	// Germanic / Romance "one vs other" languages.
	"en": {One}, "de": {One}, "nl": {One}, "sv": {One}, "da": {One}, "nb": {One}, "nn": {One},
	"it": {One}, "es": {One}, "el": {One}, "fi": {One}, "hu": {One}, "tr": {One}, "bg": {One},
	"pt": {One},
	// French-family: one applies to 0 and 1.
	"fr": {One}, "pt-BR": {One},
	// No plural distinction at all.
	"ja": {}, "ko": {}, "zh": {}, "vi": {}, "th": {}, "id": {}, "ms": {},
	// Slavic one/few/many.
	"ru": {One, Few, Many}, "pl": {One, Few, Many}, "uk": {One, Few, Many}, "cs": {One, Few, Many}, "sk": {One, Few, Many},
	// Arabic has the full six-way split.
	"ar": {Zero, One, Two, Few, Many},
	// Welsh also uses the full split.
	"cy": {Zero, One, Two, Few, Many},
	// Irish.
	"ga": {One, Two, Few, Many},
	// Hebrew.
	"he": {One, Two, Many},
	"iw": {One, Two, Many},
}

// ordinalTables maps a base language subtag to its ordinal plural
// categories, excluding "other". Most languages have no ordinal
// distinction at all (English is the common exception: 1st, 2nd, 3rd, 4th+).
var ordinalTables = map[string][]Category{
	"en": {One, Two, Few},
	"ca": {One, Two, Few},
	"sv": {One},
	"no": {One},
}

// Base canonicalizes a locale tag (e.g. "en-US", "pt_BR") down to the base
// language subtag the tables above are keyed on, falling back to the raw
// input unchanged if it doesn't parse as a BCP 47 tag.
func Base(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, _ := tag.Base()
	return base.String()
}

// CardinalCategories returns the full set of cardinal plural categories
// valid for locale, in canonical CLDR order, always including Other.
func CardinalCategories(locale string) []Category {
	return withOther(cardinalTables[lookupKey(locale, cardinalTables)])
}

// OrdinalCategories returns the full set of ordinal plural categories
// valid for locale, in canonical CLDR order, always including Other.
func OrdinalCategories(locale string) []Category {
	return withOther(ordinalTables[lookupKey(locale, ordinalTables)])
}

// lookupKey tries an exact match first (covers table entries like
// "fr"/"pt-BR" that themselves aren't bare base tags), then falls back to
// the canonicalized base language.
func lookupKey(locale string, table map[string][]Category) string {
	if _, ok := table[locale]; ok {
		return locale
	}
	return Base(locale)
}

func withOther(cats []Category) []Category {
	out := make([]Category, 0, len(cats)+1)
	out = append(out, cats...)
	out = append(out, Other)
	// Sort into canonical order.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && Rank(out[j-1]) > Rank(out[j]); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// IsValidCategory reports whether cat is one of locale's cardinal
// (ordinal=false) or ordinal (ordinal=true) categories.
func IsValidCategory(locale string, cat Category, ordinal bool) bool {
	cats := CardinalCategories(locale)
	if ordinal {
		cats = OrdinalCategories(locale)
	}
	for _, c := range cats {
		if c == cat {
			return true
		}
	}
	return false
}
