// Package tsparse owns the tree-sitter parser pools for the TypeScript and
// JavaScript grammars, and the thin language-detection layer over file
// extensions. It is the parser boundary described by the engine: callers
// never touch a *ts.Parser directly, only *ts.Tree results.
package tsparse

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

type poolKey struct {
	lang  Language
	isTSX bool
}

// Manager lazily creates and owns parser pools, one per (language, isTSX)
// combination actually used. Must be closed via Close() to free the
// underlying tree-sitter parsers.
type Manager struct {
	mu     sync.RWMutex
	pools  map[poolKey]*parserPool
	logger *slog.Logger

	parsesCalled int
}

// NewManager creates a Manager. A nil logger falls back to slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source with the given language grammar. isTSX only matters
// for LanguageTypeScript. The returned tree must be closed by the caller.
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mu.Lock()
	m.parsesCalled++
	m.mu.Unlock()

	pool, err := m.poolFor(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors", "language", lang.String())
	}
	return tree, nil
}

// ParseFile detects the language from filePath and parses source accordingly.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, Language, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, lang, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	tree, err := m.Parse(source, lang, IsTSXFile(filePath))
	return tree, lang, err
}

// LanguagePointer exposes the raw tree-sitter language pointer for a
// grammar; poolFor uses it to configure new parsers.
func (m *Manager) LanguagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}

func (m *Manager) poolFor(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang, isTSX}

	m.mu.RLock()
	pool, ok := m.pools[key]
	m.mu.RUnlock()
	if ok {
		return pool, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if pool, ok = m.pools[key]; ok {
		return pool, nil
	}

	langPtr, err := m.LanguagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(lang, langPtr, isTSX, defaultPoolSize(), m.logger)
	m.pools[key] = pool
	m.logger.Debug("created parser pool", "language", lang.String(), "isTSX", isTSX)
	return pool, nil
}

// Close releases all parser pools. The Manager stays usable: a later Parse
// lazily creates fresh pools.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, pool := range m.pools {
		total += pool.createdCount()
		pool.close()
	}
	m.logger.Info("closing parser manager", "parsers_created", total, "parses_called", m.parsesCalled)
	m.pools = make(map[poolKey]*parserPool)
	return nil
}
