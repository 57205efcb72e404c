package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i18nscan/i18nscan/pkg/collect"
)

func TestScanFindsPlainKeyInLineComment(t *testing.T) {
	hits := Scan([]byte(`// t("greeting")`), "a.ts")
	require.Len(t, hits, 1)
	assert.Equal(t, "greeting", hits[0].Key)
	assert.False(t, hits[0].ExplicitDefault)
}

func TestScanFindsDefaultValueInBlockComment(t *testing.T) {
	hits := Scan([]byte(`/* t("greeting", "Hello!") */`), "a.ts")
	require.Len(t, hits, 1)
	assert.Equal(t, "greeting", hits[0].Key)
	assert.Equal(t, "Hello!", hits[0].DefaultValue)
	assert.True(t, hits[0].ExplicitDefault)
}

func TestScanFindsNamespaceInOptionsObject(t *testing.T) {
	hits := Scan([]byte(`// t("greeting", { ns: "common" })`), "a.ts")
	require.Len(t, hits, 1)
	assert.Equal(t, "common", hits[0].Namespace)
}

func TestScanFindsDefaultValueAlongsideNamespace(t *testing.T) {
	hits := Scan([]byte(`// t("greeting", { defaultValue: "Hi!", ns: "common" })`), "a.ts")
	require.Len(t, hits, 1)
	assert.Equal(t, "Hi!", hits[0].DefaultValue)
	assert.Equal(t, "common", hits[0].Namespace)
}

func TestScanIgnoresDoubleSlashInsideStringLiteral(t *testing.T) {
	src := `const url = "http://example.com";
// t("greeting")`
	hits := Scan([]byte(src), "a.ts")
	require.Len(t, hits, 1)
	assert.Equal(t, uint32(2), hits[0].Line)
}

func TestScanTracksLineNumberAcrossMultilineBlockComment(t *testing.T) {
	src := "const a = 1;\n/*\n t(\"greeting\")\n*/\n"
	hits := Scan([]byte(src), "a.ts")
	require.Len(t, hits, 1)
	assert.Equal(t, uint32(2), hits[0].Line)
}

func TestScanFindsNothingWithNoCommentedCalls(t *testing.T) {
	hits := Scan([]byte(`const greeting = t("greeting");`), "a.ts")
	assert.Empty(t, hits)
}

func TestToKeysDefaultsNamespaceToImplicit(t *testing.T) {
	hits := []Hit{{Key: "greeting"}}
	keys := ToKeys(hits, "a.ts")
	require.Len(t, keys, 1)
	assert.Equal(t, collect.ImplicitNamespace, keys[0].Namespace)
	assert.Equal(t, "greeting", keys[0].DefaultValue)
	assert.Equal(t, "a.ts", keys[0].SourceFile)
}

func TestToKeysPreservesExplicitNamespaceAndDefault(t *testing.T) {
	hits := []Hit{{Key: "greeting", Namespace: "common", DefaultValue: "Hello!", ExplicitDefault: true, Line: 5}}
	keys := ToKeys(hits, "a.ts")
	require.Len(t, keys, 1)
	assert.Equal(t, "common", keys[0].Namespace)
	assert.Equal(t, "Hello!", keys[0].DefaultValue)
	assert.Equal(t, uint32(5), keys[0].SourceLine)
}
