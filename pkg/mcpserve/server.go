// Package mcpserve exposes an extraction run's key coverage over MCP, so
// an editor or agent can ask "what keys exist in namespace X" or "which
// keys are missing for locale Y" without re-running the CLI.
package mcpserve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/i18nscan/i18nscan/pkg/reconcile"
)

const serverVersion = "0.1.0-dev"

// Catalog is the read-only snapshot mcpserve answers queries against: one
// reconcile.Result per (locale, namespace) pair from the most recent run.
type Catalog struct {
	results []reconcile.Result
}

// NewCatalog builds a Catalog from a driver run's results.
func NewCatalog(results []reconcile.Result) *Catalog {
	return &Catalog{results: results}
}

func (c *Catalog) namespaces() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range c.results {
		if !seen[r.Namespace] {
			seen[r.Namespace] = true
			out = append(out, r.Namespace)
		}
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) find(locale, namespace string) (reconcile.Result, bool) {
	for _, r := range c.results {
		if r.Locale == locale && r.Namespace == namespace {
			return r, true
		}
	}
	return reconcile.Result{}, false
}

// Server implements the MCP server over a Catalog.
type Server struct {
	mcpServer *server.MCPServer
	catalog   *Catalog
}

// NewServer creates a server exposing catalog's queries.
func NewServer(catalog *Catalog) *Server {
	s := &Server{catalog: catalog}

	s.mcpServer = server.NewMCPServer("i18nscan", serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listNamespacesTool(), Handler: s.handleListNamespaces},
		server.ServerTool{Tool: getNamespaceKeysTool(), Handler: s.handleGetNamespaceKeys},
		server.ServerTool{Tool: getMissingKeysTool(), Handler: s.handleGetMissingKeys},
		server.ServerTool{Tool: searchKeysTool(), Handler: s.handleSearchKeys},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func listNamespacesTool() mcp.Tool {
	return mcp.NewTool("list_namespaces",
		mcp.WithDescription("Lists the translation namespaces discovered by the last run"),
	)
}

func (s *Server) handleListNamespaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.Join(s.catalog.namespaces(), "\n")), nil
}

func getNamespaceKeysTool() mcp.Tool {
	return mcp.NewTool("get_namespace_keys",
		mcp.WithDescription("Lists every key in one namespace for one locale"),
		mcp.WithString("locale", mcp.Required()),
		mcp.WithString("namespace", mcp.Required()),
	)
}

func (s *Server) handleGetNamespaceKeys(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	locale := req.GetString("locale", "")
	namespace := req.GetString("namespace", "")
	result, ok := s.catalog.find(locale, namespace)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no catalog for locale %q namespace %q", locale, namespace)), nil
	}
	keys := reconcile.Flatten(result.NewTree, ".")
	sort.Strings(keys)
	return mcp.NewToolResultText(strings.Join(keys, "\n")), nil
}

func getMissingKeysTool() mcp.Tool {
	return mcp.NewTool("get_missing_keys",
		mcp.WithDescription("Lists keys present in the primary locale's namespace but absent from another locale's"),
		mcp.WithString("namespace", mcp.Required()),
		mcp.WithString("primaryLocale", mcp.Required()),
		mcp.WithString("targetLocale", mcp.Required()),
	)
}

func (s *Server) handleGetMissingKeys(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	namespace := req.GetString("namespace", "")
	primary := req.GetString("primaryLocale", "")
	target := req.GetString("targetLocale", "")

	primaryResult, ok := s.catalog.find(primary, namespace)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no catalog for locale %q namespace %q", primary, namespace)), nil
	}
	targetResult, ok := s.catalog.find(target, namespace)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no catalog for locale %q namespace %q", target, namespace)), nil
	}

	targetKeys := map[string]bool{}
	for _, k := range reconcile.Flatten(targetResult.NewTree, ".") {
		targetKeys[k] = true
	}

	var missing []string
	for _, k := range reconcile.Flatten(primaryResult.NewTree, ".") {
		if !targetKeys[k] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	if len(missing) == 0 {
		return mcp.NewToolResultText("(none)"), nil
	}
	return mcp.NewToolResultText(strings.Join(missing, "\n")), nil
}

func searchKeysTool() mcp.Tool {
	return mcp.NewTool("search_keys",
		mcp.WithDescription("Finds keys across every namespace/locale whose path contains a substring"),
		mcp.WithString("query", mcp.Required()),
	)
}

func (s *Server) handleSearchKeys(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	var matches []string
	for _, r := range s.catalog.results {
		for _, k := range reconcile.Flatten(r.NewTree, ".") {
			if strings.Contains(k, query) {
				matches = append(matches, fmt.Sprintf("%s:%s#%s", r.Locale, r.Namespace, k))
			}
		}
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return mcp.NewToolResultText("(none)"), nil
	}
	return mcp.NewToolResultText(strings.Join(matches, "\n")), nil
}
