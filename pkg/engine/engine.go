// Package engine is the Driver (§4.9): it owns the worker pool that walks
// every source file, the reconciliation pass over every (locale,
// namespace) pair the walk produced, and the write-back to disk.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/i18nscan/i18nscan/pkg/collect"
	"github.com/i18nscan/i18nscan/pkg/comments"
	"github.com/i18nscan/i18nscan/pkg/config"
	"github.com/i18nscan/i18nscan/pkg/emit"
	"github.com/i18nscan/i18nscan/pkg/ignore"
	"github.com/i18nscan/i18nscan/pkg/nsgroup"
	"github.com/i18nscan/i18nscan/pkg/plugin"
	"github.com/i18nscan/i18nscan/pkg/reconcile"
	"github.com/i18nscan/i18nscan/pkg/tsparse"
	"github.com/i18nscan/i18nscan/pkg/util"
	"github.com/i18nscan/i18nscan/pkg/walker"
)

// fileCacheSize bounds the per-file key cache used across watch-mode
// reruns: only the last N files' extracted keys are kept, since a typical edit
// touches a handful of files at a time.
const fileCacheSize = 256

// FileError pairs a failed path with the error encountered reading or
// parsing it (§7: file-path-wrapped errors).
type FileError struct {
	FilePath string
	Err      error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

// Report summarizes one Run.
type Report struct {
	FilesScanned int
	KeysFound    int
	Errors       []FileError
	Results      []reconcile.Result
	AnyUpdated   bool
}

// Driver orchestrates one extraction-and-reconciliation run.
type Driver struct {
	Config   *config.Config
	Logger   *slog.Logger
	Plugins  *plugin.Registry
	DryRun   bool

	parsers *tsparse.Manager
	cache   *ignore.FileCache
	trees   *lru.Cache[string, treeCacheEntry]
}

type treeCacheEntry struct {
	keys []collect.Key
}

// New builds a Driver from cfg. A nil logger falls back to slog.Default().
func New(cfg *config.Config, logger *slog.Logger, plugins *plugin.Registry) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	if plugins == nil {
		plugins = plugin.NewRegistry(nil, logger)
	}
	treeCache, _ := lru.New[string, treeCacheEntry](fileCacheSize)
	return &Driver{
		Config:  cfg,
		Logger:  logger,
		Plugins: plugins,
		parsers: tsparse.NewManager(logger),
		cache:   ignore.NewFileCache(),
		trees:   treeCache,
	}
}

// Close releases pooled parsers and mapped files.
func (d *Driver) Close() error {
	d.parsers.Close()
	return d.cache.Close()
}

// walkerOptions builds the walker's recognition configuration from the
// loaded config's extract.* block.
func (d *Driver) walkerOptions() walker.Options {
	e := d.Config.Extract
	opts := walker.Options{
		Functions:                    e.Functions,
		TransComponents:              e.TransComponents,
		DefaultNS:                    e.DefaultNS,
		KeySeparator:                 e.KeySeparatorValue(),
		NsSeparator:                  e.NsSeparatorValue(),
		ContextSeparator:             e.ContextSeparator,
		PluralSeparator:              e.PluralSeparator,
		DisableBasePluralWhenContext: e.DisableBasePluralWhenContext,
		KeptHTMLTags:                 []string{"br", "strong", "i", "b", "em", "p"},
	}
	for _, h := range e.UseTranslationNames {
		opts.HookNames = append(opts.HookNames, walker.HookSpec{
			Name: h.Name, NsArg: h.NsArg, KeyPrefixArg: h.KeyPrefixArg,
		})
	}
	return opts
}

// Run discovers input files, walks each one, reconciles every locale and
// namespace the walk produced against what's on disk, and (unless DryRun)
// writes the results.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	files, err := ignore.Discover(".", d.Config.Extract.Input, d.Config.Extract.Ignore)
	if err != nil {
		return Report{}, fmt.Errorf("discover input files: %w", err)
	}

	if err := d.Plugins.Setup(); err != nil {
		return Report{}, fmt.Errorf("plugin setup: %w", err)
	}

	collector := collect.New()
	report := Report{}

	numWorkers := util.GetOptimalPoolSize()
	jobs := make(chan string, numWorkers*2)
	errs := make(chan FileError, numWorkers)
	var wg sync.WaitGroup

	opts := d.walkerOptions()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := walker.New(opts, collector)
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				keys, err := d.walkFile(w, path)
				if err != nil {
					errs <- FileError{FilePath: path, Err: err}
					continue
				}
				_ = keys // already fed into collector by walkFile
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(errs)
	}()

	for fe := range errs {
		report.Errors = append(report.Errors, fe)
		d.Logger.Warn("file processing failed", "file", fe.FilePath, "error", fe.Err)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.FilesScanned = len(files)
	allKeys := nsgroup.Normalize(collector.All(), d.Config.Extract.DefaultNS)
	report.KeysFound = len(allKeys)
	d.Plugins.OnEnd(allKeys)

	results, err := d.reconcileAll(allKeys)
	if err != nil {
		return report, err
	}
	report.Results = results
	for _, r := range results {
		if r.Updated {
			report.AnyUpdated = true
		}
		d.Plugins.AfterSync(r.Namespace, r.Locale, r.Updated)
	}

	if !d.DryRun {
		if err := d.writeResults(results); err != nil {
			return report, err
		}
	}

	return report, nil
}

// walkFile reads, parses, and walks one file, feeding any extracted keys
// (including commented-out hits) into the collector. A watch-mode rerun
// that hasn't invalidated path's cache entry skips the parse entirely and
// replays its previously extracted keys.
func (d *Driver) walkFile(w *walker.Walker, path string) ([]collect.Key, error) {
	if entry, ok := d.trees.Get(path); ok {
		for _, k := range entry.keys {
			w.Collector.Add(k)
		}
		return entry.keys, nil
	}

	source, err := d.cache.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	rewritten := d.Plugins.OnLoad(string(source), path)
	if rewritten != string(source) {
		source = []byte(rewritten)
	}

	tree, _, err := d.parsers.ParseFile(source, path)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	local := collect.New()
	fileWalker := walker.New(w.Opts, local)
	fileWalker.WalkFile(tree.RootNode(), source, path)

	for _, hit := range comments.ToKeys(comments.Scan(source, path), path) {
		local.Add(hit)
	}

	keys := local.All()
	for _, k := range keys {
		w.Collector.Add(k)
	}
	d.trees.Add(path, treeCacheEntry{keys: keys})
	return keys, nil
}

// InvalidateFile drops path's cached keys (and mapped source) so the next
// Run re-parses it — called by watch mode on a change event.
func (d *Driver) InvalidateFile(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	d.trees.Remove(path)
	d.cache.Invalidate(path)
}

// reconcileAll builds a reconcile.Options per locale and runs the merge
// for every (locale, namespace) combination the current extraction and
// the on-disk catalogs together cover.
func (d *Driver) reconcileAll(keys []collect.Key) ([]reconcile.Result, error) {
	e := d.Config.Extract
	grouped := nsgroup.Group(keys)

	preservePatterns, err := compilePatterns(e.PreservePatterns)
	if err != nil {
		return nil, fmt.Errorf("compile preservePatterns: %w", err)
	}

	var results []reconcile.Result
	for _, locale := range d.Config.Locales {
		opts := reconcile.Options{
			Locale:                       locale,
			PrimaryLanguage:              e.PrimaryLanguage,
			RemoveUnusedKeys:             derefBool(e.RemoveUnusedKeys, true),
			Sort:                         derefBool(e.Sort, true),
			SyncPrimaryWithDefaults:      e.SyncPrimaryWithDefaults,
			MergeNamespaces:              e.MergeNamespaces,
			DisablePlurals:               e.DisablePlurals,
			GenerateBasePluralForms:      derefBool(e.GenerateBasePluralForms, true),
			DisableBasePluralWhenContext: e.DisableBasePluralWhenContext,
			KeySeparator:                 e.KeySeparatorValue(),
			ContextSeparator:             e.ContextSeparator,
			PluralSeparator:              e.PluralSeparator,
			PreservePatterns:             preservePatterns,
			ResolveDefault:               reconcile.SafeResolver(reconcile.StringResolver(e.DefaultValue)),
		}
		indent := e.IndentString()

		if e.MergeNamespaces {
			existingByNs := map[string]reconcile.Tree{}
			for ns := range grouped {
				existingByNs[ns] = d.readExistingTree(e, locale, ns)
			}
			for _, ns := range onDiskNamespaces(e, locale) {
				if _, ok := existingByNs[ns]; !ok {
					existingByNs[ns] = d.readExistingTree(e, locale, ns)
				}
			}
			result := reconcile.ReconcileMerged(grouped, existingByNs, opts, indent, e.DefaultNS == nsgroup.NoneNamespace)
			result.Namespace = e.DefaultNS
			results = append(results, result)
			continue
		}

		for ns, nsKeys := range grouped {
			existing := d.readExistingTree(e, locale, ns)
			results = append(results, reconcile.Reconcile(ns, nsKeys, existing, opts, indent))
		}
		if strings.Contains(e.Output, "{{namespace}}") || strings.Contains(e.Output, "{{ns}}") {
			for _, ns := range onDiskNamespaces(e, locale) {
				if _, ok := grouped[ns]; ok {
					continue
				}
				existing := d.readExistingTree(e, locale, ns)
				results = append(results, reconcile.Reconcile(ns, nil, existing, opts, indent))
			}
		}
	}
	return results, nil
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile(globToRegexp(p))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// globToRegexp translates a preservePatterns glob (`*` any run, `?` one
// char, everything else literal) into an anchored regexp source, so
// `"a*"` preserves keys starting with "a" rather than matching the regex
// "zero-or-more a's" anywhere in the string.
func globToRegexp(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return b.String()
}

// onDiskNamespaces finds namespace files already present for locale by
// inspecting the configured output directory, so a namespace that exists
// on disk but produced no keys in this run still gets reconciled (and, if
// RemoveUnusedKeys is set, emptied) rather than left untouched.
func onDiskNamespaces(e config.Extract, locale string) []string {
	dir := filepath.Dir(ExpandOutputPath(e.Output, locale, "__probe__"))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), filepath.Ext(ent.Name()))
		out = append(out, name)
	}
	return out
}

func (d *Driver) readExistingTree(e config.Extract, locale, ns string) reconcile.Tree {
	path := ExpandOutputPath(e.Output, locale, ns)
	data, err := os.ReadFile(path)
	if err != nil {
		return reconcile.Tree{}
	}
	t, err := reconcile.Parse(data)
	if err != nil {
		d.Logger.Warn("existing catalog unparseable, treating as empty", "file", path, "error", err)
		return reconcile.Tree{}
	}
	return t
}

func (d *Driver) writeResults(results []reconcile.Result) error {
	e := d.Config.Extract
	format := emit.Format(e.OutputFormat)
	for _, r := range results {
		if !r.Updated {
			continue
		}
		path := ExpandOutputPath(e.Output, r.Locale, r.Namespace)
		wrapped, err := emit.Wrap(format, r.Serialized)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := os.WriteFile(path, wrapped, 0o644); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// ExpandOutputPath expands the {{language}}/{{lng}} and
// {{namespace}}/{{ns}} placeholders in template against locale and
// namespace. When namespace is empty, the namespace placeholder is
// dropped together with the "/" before it, so
// "locales/{{language}}/{{namespace}}.json" becomes "locales/en.json".
func ExpandOutputPath(template, locale, namespace string) string {
	if namespace == "" {
		template = strings.NewReplacer("/{{namespace}}", "", "/{{ns}}", "").Replace(template)
	}
	r := strings.NewReplacer(
		"{{language}}", locale, "{{lng}}", locale,
		"{{namespace}}", namespace, "{{ns}}", namespace,
	)
	path := r.Replace(template)
	path = strings.ReplaceAll(path, "//", "/")
	return path
}
