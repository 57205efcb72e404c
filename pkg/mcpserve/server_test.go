package mcpserve

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i18nscan/i18nscan/pkg/reconcile"
)

func testCatalog() *Catalog {
	return NewCatalog([]reconcile.Result{
		{
			Locale:    "en",
			Namespace: "common",
			NewTree: reconcile.Tree{
				"greeting": "Hello!",
				"nav":      reconcile.Tree{"home": "Home", "about": "About"},
			},
		},
		{
			Locale:    "fr",
			Namespace: "common",
			NewTree: reconcile.Tree{
				"greeting": "Bonjour !",
			},
		},
		{
			Locale:    "en",
			Namespace: "checkout",
			NewTree: reconcile.Tree{
				"pay": "Pay now",
			},
		},
	})
}

func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

func TestCatalogNamespacesSortedAndDeduped(t *testing.T) {
	c := testCatalog()
	assert.Equal(t, []string{"checkout", "common"}, c.namespaces())
}

func TestCatalogFindMissingReturnsFalse(t *testing.T) {
	c := testCatalog()
	_, ok := c.find("de", "common")
	assert.False(t, ok)
}

func TestHandleListNamespaces(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleListNamespaces(context.Background(), makeRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "checkout\ncommon", resultText(t, result))
}

func TestHandleGetNamespaceKeysListsFlattenedSortedKeys(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleGetNamespaceKeys(context.Background(), makeRequest(map[string]any{
		"locale": "en", "namespace": "common",
	}))
	require.NoError(t, err)
	assert.Equal(t, "greeting\nnav.about\nnav.home", resultText(t, result))
}

func TestHandleGetNamespaceKeysUnknownCatalogIsToolError(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleGetNamespaceKeys(context.Background(), makeRequest(map[string]any{
		"locale": "de", "namespace": "common",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetMissingKeysFindsKeysAbsentFromTarget(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleGetMissingKeys(context.Background(), makeRequest(map[string]any{
		"namespace": "common", "primaryLocale": "en", "targetLocale": "fr",
	}))
	require.NoError(t, err)
	assert.Equal(t, "nav.about\nnav.home", resultText(t, result))
}

func TestHandleGetMissingKeysNoneWhenFullyCovered(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleGetMissingKeys(context.Background(), makeRequest(map[string]any{
		"namespace": "checkout", "primaryLocale": "en", "targetLocale": "en",
	}))
	require.NoError(t, err)
	assert.Equal(t, "(none)", resultText(t, result))
}

func TestHandleSearchKeysMatchesAcrossLocalesAndNamespaces(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleSearchKeys(context.Background(), makeRequest(map[string]any{
		"query": "greeting",
	}))
	require.NoError(t, err)
	assert.Equal(t, "en:common#greeting\nfr:common#greeting", resultText(t, result))
}

func TestHandleSearchKeysNoMatches(t *testing.T) {
	s := NewServer(testCatalog())
	result, err := s.handleSearchKeys(context.Background(), makeRequest(map[string]any{
		"query": "nonexistent",
	}))
	require.NoError(t, err)
	assert.Equal(t, "(none)", resultText(t, result))
}
