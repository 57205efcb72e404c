package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapJSONAppendsTrailingNewline(t *testing.T) {
	out, err := Wrap(FormatJSON, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(out))
}

func TestWrapJSONDoesNotDoubleNewline(t *testing.T) {
	out, err := Wrap(FormatJSON, []byte("{\"a\":1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(out))
}

func TestWrapJSON5FallsBackToStrictJSON(t *testing.T) {
	out, err := Wrap(FormatJSON5, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(out))
}

func TestWrapEmptyFormatDefaultsToJSON(t *testing.T) {
	out, err := Wrap("", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", string(out))
}

func TestWrapJSWrapsExportDefault(t *testing.T) {
	out, err := Wrap(FormatJS, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "export default {\"a\":1}\n", string(out))
}

func TestWrapTSWrapsExportDefaultAsConst(t *testing.T) {
	out, err := Wrap(FormatTS, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "export default {\"a\":1} as const\n", string(out))
}

func TestWrapCJSWrapsModuleExports(t *testing.T) {
	out, err := Wrap(FormatCJS, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "module.exports = {\"a\":1};\n", string(out))
}

func TestWrapJSESMWrapsExportDefaultSameAsJS(t *testing.T) {
	out, err := Wrap(FormatJSESM, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "export default {\"a\":1}\n", string(out))
}

func TestWrapJSCJSWrapsModuleExportsSameAsCJS(t *testing.T) {
	out, err := Wrap(FormatJSCJS, []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "module.exports = {\"a\":1};\n", string(out))
}

func TestWrapUnknownFormatReturnsError(t *testing.T) {
	_, err := Wrap(Format("yaml"), []byte(`{"a":1}`))
	assert.Error(t, err)
}

func TestExtensionMapsEachFormat(t *testing.T) {
	assert.Equal(t, "json", Extension(FormatJSON))
	assert.Equal(t, "json5", Extension(FormatJSON5))
	assert.Equal(t, "js", Extension(FormatJS))
	assert.Equal(t, "js", Extension(FormatJSESM))
	assert.Equal(t, "ts", Extension(FormatTS))
	assert.Equal(t, "cjs", Extension(FormatCJS))
	assert.Equal(t, "cjs", Extension(FormatJSCJS))
	assert.Equal(t, "json", Extension(Format("unknown")))
}
