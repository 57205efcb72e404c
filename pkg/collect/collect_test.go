package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorAddDedup(t *testing.T) {
	c := New()
	c.Add(Key{Key: "greeting", Namespace: "common", DefaultValue: "greeting"})
	c.Add(Key{Key: "greeting", Namespace: "common", DefaultValue: "greeting"})

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "greeting", c.All()[0].DefaultValue)
}

func TestCollectorMoreSpecificReplacesFallback(t *testing.T) {
	c := New()
	c.Add(Key{Key: "greeting", Namespace: "common", DefaultValue: "greeting"})
	c.Add(Key{Key: "greeting", Namespace: "common", DefaultValue: "Hello!", ExplicitDefault: true})

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Hello!", all[0].DefaultValue)
	assert.True(t, all[0].ExplicitDefault)
}

func TestCollectorFallbackNeverReplacesExplicit(t *testing.T) {
	c := New()
	c.Add(Key{Key: "greeting", Namespace: "common", DefaultValue: "Hello!", ExplicitDefault: true})
	c.Add(Key{Key: "greeting", Namespace: "common", DefaultValue: "greeting"})

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Hello!", all[0].DefaultValue)
}

func TestCollectorDistinctNamespacesDontCollide(t *testing.T) {
	c := New()
	c.Add(Key{Key: "title", Namespace: "common"})
	c.Add(Key{Key: "title", Namespace: "checkout"})

	assert.Equal(t, 2, c.Len())
}

func TestCollectorPreservesFirstSeenOrder(t *testing.T) {
	c := New()
	c.Add(Key{Key: "b", Namespace: "ns"})
	c.Add(Key{Key: "a", Namespace: "ns"})
	c.Add(Key{Key: "c", Namespace: "ns"})

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "a", "c"}, []string{all[0].Key, all[1].Key, all[2].Key})
}
