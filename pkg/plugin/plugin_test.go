package plugin

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i18nscan/i18nscan/pkg/collect"
)

type recordingPlugin struct {
	Base
	name      string
	onEndKeys []collect.Key
	afterSync []string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) OnLoad(code, path string) (string, bool) {
	return code + "/*rewritten*/", true
}

func (p *recordingPlugin) OnEnd(keys []collect.Key) {
	p.onEndKeys = keys
}

func (p *recordingPlugin) AfterSync(namespace, locale string, updated bool) {
	p.afterSync = append(p.afterSync, namespace+":"+locale)
}

type panickingPlugin struct {
	Base
}

func (panickingPlugin) Name() string { return "panicker" }

func (panickingPlugin) Setup() error {
	panic("boom")
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, nil))
}

func TestBaseImplementsPluginWithNoOps(t *testing.T) {
	var b Base
	_, ok := b.OnLoad("code", "path")
	assert.False(t, ok)
	assert.NoError(t, b.Setup())
	assert.NotPanics(t, func() { b.OnEnd(nil) })
	assert.NotPanics(t, func() { b.AfterSync("common", "en", false) })
	assert.Nil(t, b.OnVisitNode(nil, Context{}))
	assert.Nil(t, b.ExtractKeysFromExpression(nil, Context{}))
	assert.Nil(t, b.ExtractContextFromExpression(nil, Context{}))
}

func TestRegistryOnLoadThreadsRewriteThroughPlugins(t *testing.T) {
	var buf bytes.Buffer
	p := &recordingPlugin{name: "rewriter"}
	r := NewRegistry([]Plugin{p}, newTestLogger(&buf))

	out := r.OnLoad("const x = 1;", "a.ts")
	assert.Equal(t, "const x = 1;/*rewritten*/", out)
}

func TestRegistryOnEndDispatchesToEveryPlugin(t *testing.T) {
	var buf bytes.Buffer
	p := &recordingPlugin{name: "collector"}
	r := NewRegistry([]Plugin{p}, newTestLogger(&buf))

	keys := []collect.Key{{Key: "greeting"}}
	r.OnEnd(keys)
	assert.Equal(t, keys, p.onEndKeys)
}

func TestRegistryAfterSyncDispatchesToEveryPlugin(t *testing.T) {
	var buf bytes.Buffer
	p := &recordingPlugin{name: "syncer"}
	r := NewRegistry([]Plugin{p}, newTestLogger(&buf))

	r.AfterSync("common", "en", true)
	require.Len(t, p.afterSync, 1)
	assert.Equal(t, "common:en", p.afterSync[0])
}

func TestRegistrySetupRecoversFromPanicAndLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	r := NewRegistry([]Plugin{panickingPlugin{}}, newTestLogger(&buf))

	err := r.Setup()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "plugin panicked")
	assert.Contains(t, buf.String(), "panicker")
}

func TestRegistrySetupStopsOnFirstHardError(t *testing.T) {
	var buf bytes.Buffer
	failing := &erroringPlugin{name: "failing"}
	r := NewRegistry([]Plugin{failing}, newTestLogger(&buf))

	err := r.Setup()
	assert.Error(t, err)
}

type erroringPlugin struct {
	Base
	name string
}

func (p *erroringPlugin) Name() string  { return p.name }
func (p *erroringPlugin) Setup() error  { return assert.AnError }
