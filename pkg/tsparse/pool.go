package tsparse

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool is a channel-backed pool of tree-sitter parsers all bound to
// the same language grammar, grown lazily up to maxSize.
type parserPool struct {
	pool    chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	isTSX   bool
	maxSize int

	mutex   sync.Mutex
	created int

	logger *slog.Logger
}

func newParserPool(lang Language, langPtr unsafe.Pointer, isTSX bool, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		pool:    make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		isTSX:   isTSX,
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.pool:
		return parser, nil
	default:
		return p.createOrWait()
	}
}

func (p *parserPool) createOrWait() (*ts.Parser, error) {
	p.mutex.Lock()
	if p.created < p.maxSize {
		parser := ts.NewParser()
		if parser == nil {
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to create parser")
		}
		if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
			parser.Close()
			p.mutex.Unlock()
			return nil, fmt.Errorf("failed to set language %s: %w", p.lang, err)
		}
		p.created++
		p.mutex.Unlock()
		p.logger.Debug("created parser", "language", p.lang.String(), "isTSX", p.isTSX, "pool_size", p.created)
		return parser, nil
	}
	p.mutex.Unlock()
	return <-p.pool, nil
}

func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.pool <- parser:
	default:
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser", "language", p.lang.String())
	}
}

func (p *parserPool) close() {
	close(p.pool)
	for parser := range p.pool {
		if parser != nil {
			parser.Close()
		}
	}
}

func (p *parserPool) createdCount() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.created
}
