package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndLookupNested(t *testing.T) {
	tree := Tree{}
	Set(tree, ".", "a.b.c", "hello")

	v, ok := Lookup(tree, ".", "a.b.c")
	require.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestSetNestedWriteConflictFallsBackToFlatKey(t *testing.T) {
	tree := Tree{"a": "scalar"}
	Set(tree, ".", "a.b", "hello")

	assert.Equal(t, "scalar", tree["a"])
	assert.Equal(t, "hello", tree["a.b"])
}

func TestLookupMissingPath(t *testing.T) {
	tree := Tree{"a": Tree{"b": "x"}}
	_, ok := Lookup(tree, ".", "a.c")
	assert.False(t, ok)
}

func TestDeepCopyIsIndependent(t *testing.T) {
	original := Tree{"a": Tree{"b": "x"}}
	copied := DeepCopy(original)

	sub := copied["a"].(Tree)
	sub["b"] = "changed"

	assert.Equal(t, "x", original["a"].(Tree)["b"])
}

func TestDeleteRemovesNestedKey(t *testing.T) {
	tree := Tree{"a": Tree{"b": "x", "c": "y"}}
	Delete(tree, ".", "a.b")

	_, ok := Lookup(tree, ".", "a.b")
	assert.False(t, ok)
	_, ok = Lookup(tree, ".", "a.c")
	assert.True(t, ok)
}

func TestFlattenReturnsEveryLeafPath(t *testing.T) {
	tree := Tree{"a": Tree{"b": "x"}, "c": "y"}
	paths := Flatten(tree, ".")

	assert.ElementsMatch(t, []string{"a.b", "c"}, paths)
}
