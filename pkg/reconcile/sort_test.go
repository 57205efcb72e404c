package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedKeysGroupsPluralVariantsUnderBase(t *testing.T) {
	opts := Options{Sort: true, PluralSeparator: "_"}
	keys := []string{"item_count_other", "apple", "item_count_one"}

	assert.Equal(t, []string{"apple", "item_count_one", "item_count_other"}, orderedKeys(keys, opts))
}

func TestOrderedKeysNonPluralBeforePlural(t *testing.T) {
	opts := Options{Sort: true, PluralSeparator: "_"}
	keys := []string{"count_one", "count"}

	assert.Equal(t, []string{"count", "count_one"}, orderedKeys(keys, opts))
}

func TestOrderedKeysCardinalBeforeOrdinal(t *testing.T) {
	opts := Options{Sort: true, PluralSeparator: "_"}
	keys := []string{"rank_ordinal_one", "rank_one"}

	assert.Equal(t, []string{"rank_one", "rank_ordinal_one"}, orderedKeys(keys, opts))
}

func TestOrderedKeysUnsortedStillDeterministic(t *testing.T) {
	opts := Options{Sort: false, PluralSeparator: "_"}
	keys := []string{"zebra", "apple", "mango"}

	assert.Equal(t, []string{"apple", "mango", "zebra"}, orderedKeys(keys, opts))
}

func TestClassifyKeyPlainKeyWithNoPluralSuffix(t *testing.T) {
	base, isPlural, isOrdinal, _ := classifyKey("greeting", "_")
	assert.Equal(t, "greeting", base)
	assert.False(t, isPlural)
	assert.False(t, isOrdinal)
}

func TestClassifyKeyOrdinalSuffix(t *testing.T) {
	base, isPlural, isOrdinal, cat := classifyKey("rank_ordinal_one", "_")
	assert.Equal(t, "rank", base)
	assert.True(t, isPlural)
	assert.True(t, isOrdinal)
	assert.Equal(t, "one", string(cat))
}
