package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i18nscan/i18nscan/pkg/config"
	"github.com/i18nscan/i18nscan/pkg/engine"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func writeSource(t *testing.T, dir, relPath, contents string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Locales: []string{"en"},
		Extract: config.Extract{
			Input:  []string{"src/**/*.tsx"},
			Output: "locales/{{language}}/{{namespace}}.json",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

type runCollector struct {
	mu     sync.Mutex
	runs   []engine.Report
	notify chan struct{}
}

func (c *runCollector) record(r engine.Report, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, r)
	if c.notify != nil {
		select {
		case c.notify <- struct{}{}:
		default:
		}
	}
}

func (c *runCollector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runs)
}

func TestDefaultOptionsSetsDebounce(t *testing.T) {
	assert.Equal(t, 200, DefaultOptions().DebounceMs)
}

func TestNewZeroDebounceFallsBackToDefault(t *testing.T) {
	dir := chdirTemp(t)
	writeSource(t, dir, "src/App.tsx", `const msg = t("greeting");`)

	d := engine.New(testConfig(), nil, nil)
	defer d.Close()

	w, err := New(d, dir, Options{}, nil, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.Equal(t, 200, w.opts.DebounceMs)
}

func TestWatcherStartRunsOnceImmediately(t *testing.T) {
	dir := chdirTemp(t)
	writeSource(t, dir, "src/App.tsx", `const msg = t("greeting");`)

	d := engine.New(testConfig(), nil, nil)
	defer d.Close()

	collector := &runCollector{}
	w, err := New(d, dir, Options{DebounceMs: 20}, nil, collector.record)
	require.NoError(t, err)
	defer w.Stop()

	w.Start(context.Background())
	assert.Eventually(t, func() bool { return collector.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherRerunsOnFileChange(t *testing.T) {
	dir := chdirTemp(t)
	writeSource(t, dir, "src/App.tsx", `const msg = t("greeting");`)

	d := engine.New(testConfig(), nil, nil)
	defer d.Close()

	collector := &runCollector{notify: make(chan struct{}, 8)}
	w, err := New(d, dir, Options{DebounceMs: 20}, nil, collector.record)
	require.NoError(t, err)
	defer w.Stop()

	w.Start(context.Background())
	require.Eventually(t, func() bool { return collector.count() >= 1 }, 2*time.Second, 10*time.Millisecond)

	writeSource(t, dir, "src/App.tsx", `const msg = t("greeting", "Hello!");`)

	select {
	case <-collector.notify:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a rerun after file change")
	}
	assert.GreaterOrEqual(t, collector.count(), 2)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := chdirTemp(t)
	writeSource(t, dir, "src/App.tsx", `const msg = t("greeting");`)

	d := engine.New(testConfig(), nil, nil)
	defer d.Close()

	w, err := New(d, dir, Options{DebounceMs: 20}, nil, nil)
	require.NoError(t, err)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
