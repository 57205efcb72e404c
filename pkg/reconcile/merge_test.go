package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i18nscan/i18nscan/pkg/collect"
)

func TestIsDerivedExactMatch(t *testing.T) {
	assert.True(t, isDerived("greeting", "greeting", "_", "_"))
}

func TestIsDerivedPluralSuffix(t *testing.T) {
	assert.True(t, isDerived("item_count", "item_count_one", "_", "_"))
}

func TestIsDerivedContextSuffix(t *testing.T) {
	assert.True(t, isDerived("greeting", "greeting_formal", "_", "_"))
}

func TestIsDerivedUnrelatedDefaultIsNotDerived(t *testing.T) {
	assert.False(t, isDerived("Hello there!", "greeting", "_", "_"))
}

func TestMergeValuePreservesReturnObjectsTree(t *testing.T) {
	c := candidate{Key: collect.Key{Key: "errors", ReturnObjects: true}, FullKey: "errors"}
	existing := Tree{"notFound": "not found"}

	out := mergeValue(c, existing, true, Options{Locale: "en", PrimaryLanguage: "en"})
	assert.Equal(t, existing, out)
}

func TestMergeValueStaleObjectFallsThroughToNewDefault(t *testing.T) {
	c := candidate{Key: collect.Key{Key: "title", DefaultValue: "Title", ExplicitDefault: true}, FullKey: "title"}
	existing := Tree{"unexpected": "object"}

	out := mergeValue(c, existing, true, Options{Locale: "en", PrimaryLanguage: "en"})
	assert.Equal(t, "Title", out)
}

func TestMergeValueNewPrimaryKeyUsesDefaultValue(t *testing.T) {
	c := candidate{Key: collect.Key{Key: "greeting", DefaultValue: "Hello!", ExplicitDefault: true}, FullKey: "greeting"}
	out := mergeValue(c, nil, false, Options{Locale: "en", PrimaryLanguage: "en"})
	assert.Equal(t, "Hello!", out)
}

func TestMergeValueNewSecondaryKeyUsesResolver(t *testing.T) {
	c := candidate{Key: collect.Key{Key: "greeting", DefaultValue: "Hello!", ExplicitDefault: true}, FullKey: "greeting"}
	opts := Options{Locale: "fr", PrimaryLanguage: "en", ResolveDefault: StringResolver("TODO")}
	out := mergeValue(c, nil, false, opts)
	assert.Equal(t, "TODO", out)
}

func TestMergeValueExistingSecondaryKeptUnchanged(t *testing.T) {
	c := candidate{Key: collect.Key{Key: "greeting", DefaultValue: "Hello!", ExplicitDefault: true}, FullKey: "greeting"}
	opts := Options{Locale: "fr", PrimaryLanguage: "en"}
	out := mergeValue(c, "Bonjour !", true, opts)
	assert.Equal(t, "Bonjour !", out)
}
