package tsparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerParseTypeScript(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	tree, err := mgr.Parse([]byte(`const x: string = "hi";`), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestManagerParseJavaScript(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	tree, err := mgr.Parse([]byte(`const x = "hi";`), LanguageJavaScript, false)
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestManagerParseTSXAllowsJSXSyntax(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	tree, err := mgr.Parse([]byte(`const el = <div>hi</div>;`), LanguageTypeScript, true)
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestManagerParseUnknownLanguageErrors(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	_, err := mgr.Parse([]byte(`x`), LanguageUnknown, false)
	assert.Error(t, err)
}

func TestManagerParseFileDetectsLanguageFromExtension(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	tree, lang, err := mgr.ParseFile([]byte(`const x = "hi";`), "src/App.tsx")
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, LanguageTypeScript, lang)
}

func TestManagerParseFileUnsupportedExtensionErrors(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	_, _, err := mgr.ParseFile([]byte(`x`), "README.md")
	assert.Error(t, err)
}

func TestManagerReusesPoolAcrossParses(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	for i := 0; i < 5; i++ {
		tree, err := mgr.Parse([]byte(`const x = "hi";`), LanguageTypeScript, false)
		require.NoError(t, err)
		tree.Close()
	}

	mgr.mu.RLock()
	pool, ok := mgr.pools[poolKey{LanguageTypeScript, false}]
	mgr.mu.RUnlock()
	require.True(t, ok)
	assert.Equal(t, 1, pool.createdCount())
}

func TestManagerLanguagePointerDistinguishesTSXFromTS(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	tsPtr, err := mgr.LanguagePointer(LanguageTypeScript, false)
	require.NoError(t, err)
	tsxPtr, err := mgr.LanguagePointer(LanguageTypeScript, true)
	require.NoError(t, err)

	assert.NotEqual(t, tsPtr, tsxPtr)
}

func TestManagerLanguagePointerUnsupportedLanguageErrors(t *testing.T) {
	mgr := NewManager(nil)
	defer mgr.Close()

	_, err := mgr.LanguagePointer(LanguageUnknown, false)
	assert.Error(t, err)
}

func TestManagerCloseResetsPoolsAndIsReusable(t *testing.T) {
	mgr := NewManager(nil)
	tree, err := mgr.Parse([]byte(`const x = "hi";`), LanguageTypeScript, false)
	require.NoError(t, err)
	tree.Close()

	require.NoError(t, mgr.Close())
	assert.Empty(t, mgr.pools)

	tree2, err := mgr.Parse([]byte(`const x = "hi";`), LanguageTypeScript, false)
	require.NoError(t, err)
	defer tree2.Close()
}
