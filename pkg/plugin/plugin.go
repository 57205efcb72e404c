// Package plugin defines the extension points a run can hook into, and the
// registry that invokes them without letting a misbehaving plugin take
// down the run.
package plugin

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/i18nscan/i18nscan/pkg/collect"
)

// Context is the read-only view of the run state a hook is allowed to see.
type Context struct {
	FilePath string
	Source   []byte
}

// Plugin is the extension interface (§4.9). Every method is optional:
// embed Base to get no-op defaults and override only what's needed.
type Plugin interface {
	Name() string

	// Setup runs once before any file is processed.
	Setup() error

	// OnLoad can rewrite a file's source before parsing. Returning ("",
	// false) leaves the source unchanged.
	OnLoad(code string, path string) (string, bool)

	// OnVisitNode receives an AST node and returns extra keys for it.
	// Registry.OnVisitNode gathers these, but neither the walker nor the
	// engine calls it during a run.
	OnVisitNode(node *ts.Node, ctx Context) []collect.Key

	// ExtractKeysFromExpression returns candidate keys for a call argument.
	// Registry.ExtractKeysFromExpression exposes it, but the walker and the
	// resolver do not call it during a run.
	ExtractKeysFromExpression(node *ts.Node, ctx Context) []string

	// ExtractContextFromExpression mirrors ExtractKeysFromExpression for
	// the context option, and is likewise not called during a run.
	ExtractContextFromExpression(node *ts.Node, ctx Context) []string

	// OnEnd runs once after extraction across all files completes, with
	// the full collected key set.
	OnEnd(keys []collect.Key)

	// AfterSync runs once after reconciliation, one call per reconciled
	// (locale, namespace) output whether or not it changed, with the
	// updated flag for that output.
	AfterSync(namespace, locale string, updated bool)
}

// Base implements Plugin with no-op defaults. Embed it so a plugin type
// only needs to define the hooks it actually uses.
type Base struct{}

func (Base) Name() string                                                   { return "" }
func (Base) Setup() error                                                   { return nil }
func (Base) OnLoad(code, path string) (string, bool)                        { return "", false }
func (Base) OnVisitNode(node *ts.Node, ctx Context) []collect.Key           { return nil }
func (Base) ExtractKeysFromExpression(node *ts.Node, ctx Context) []string  { return nil }
func (Base) ExtractContextFromExpression(node *ts.Node, ctx Context) []string { return nil }
func (Base) OnEnd(keys []collect.Key)                                       {}
func (Base) AfterSync(namespace, locale string, updated bool)               {}

// Registry holds the plugins active for a run and invokes their hooks,
// catching and logging any panic so one broken plugin doesn't abort the
// rest of the pipeline (§7 Error Handling Design: plugin failures are
// caught, logged as a warning tagged with the plugin name, and treated as
// an empty/no-op result).
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger
}

// NewRegistry returns a Registry driving plugins, logging failures to
// logger. A nil logger falls back to slog.Default().
func NewRegistry(plugins []Plugin, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{plugins: plugins, logger: logger}
}

func (r *Registry) guard(name string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("plugin panicked", "plugin", name, "error", rec)
		}
	}()
	fn()
}

// Setup calls Setup on every plugin, in order, stopping at (and reporting)
// the first hard error since a plugin that can't initialize shouldn't run
// at all.
func (r *Registry) Setup() error {
	for _, p := range r.plugins {
		var err error
		r.guard(p.Name(), func() { err = p.Setup() })
		if err != nil {
			return err
		}
	}
	return nil
}

// OnLoad runs every plugin's OnLoad in order, threading the rewritten
// source from one plugin into the next.
func (r *Registry) OnLoad(code, path string) string {
	for _, p := range r.plugins {
		r.guard(p.Name(), func() {
			if rewritten, ok := p.OnLoad(code, path); ok {
				code = rewritten
			}
		})
	}
	return code
}

// OnVisitNode collects every plugin's extra keys for node.
func (r *Registry) OnVisitNode(node *ts.Node, ctx Context) []collect.Key {
	var out []collect.Key
	for _, p := range r.plugins {
		r.guard(p.Name(), func() {
			out = append(out, p.OnVisitNode(node, ctx)...)
		})
	}
	return out
}

// ExtractKeysFromExpression asks each plugin in turn, returning the first
// non-empty result.
func (r *Registry) ExtractKeysFromExpression(node *ts.Node, ctx Context) []string {
	for _, p := range r.plugins {
		var out []string
		r.guard(p.Name(), func() { out = p.ExtractKeysFromExpression(node, ctx) })
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// ExtractContextFromExpression mirrors ExtractKeysFromExpression.
func (r *Registry) ExtractContextFromExpression(node *ts.Node, ctx Context) []string {
	for _, p := range r.plugins {
		var out []string
		r.guard(p.Name(), func() { out = p.ExtractContextFromExpression(node, ctx) })
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// OnEnd runs every plugin's OnEnd.
func (r *Registry) OnEnd(keys []collect.Key) {
	for _, p := range r.plugins {
		r.guard(p.Name(), func() { p.OnEnd(keys) })
	}
}

// AfterSync runs every plugin's AfterSync.
func (r *Registry) AfterSync(namespace, locale string, updated bool) {
	for _, p := range r.plugins {
		r.guard(p.Name(), func() { p.AfterSync(namespace, locale, updated) })
	}
}
