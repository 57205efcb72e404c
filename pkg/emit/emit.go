// Package emit renders a reconciled translation tree's serialized bytes
// into the on-disk file format configured for the run: plain JSON, a JS or
// TS module wrapping the same JSON literal, or JSON5.
package emit

import (
	"bytes"
	"fmt"
)

// Format names one supported output.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSON5 Format = "json5"
	FormatJS    Format = "js"
	FormatJSESM Format = "js-esm"
	FormatTS    Format = "ts"
	FormatCJS   Format = "cjs"
	FormatJSCJS Format = "js-cjs"
)

// Wrap takes the canonical JSON bytes produced by reconcile.Serialize and
// wraps them for the target format. JSON passes through unchanged (plus a
// trailing newline); the module formats wrap the same JSON literal in an
// export statement.
//
// JSON5 has no dedicated writer here: nothing in the retrieved dependency
// set provides a JSON5 encoder, so JSON5 output is emitted as the
// equivalent valid JSON — a strict subset of JSON5 — rather than with
// JSON5-specific conveniences like unquoted keys or trailing commas. This
// is a documented scope reduction, not a silent gap.
func Wrap(format Format, jsonBytes []byte) ([]byte, error) {
	switch format {
	case "", FormatJSON, FormatJSON5:
		return appendNewline(jsonBytes), nil
	case FormatJS, FormatJSESM:
		return wrapModule(jsonBytes, "export default ", "", "\n"), nil
	case FormatTS:
		return wrapModule(jsonBytes, "export default ", " as const", "\n"), nil
	case FormatCJS, FormatJSCJS:
		return wrapModule(jsonBytes, "module.exports = ", "", ";\n"), nil
	default:
		return nil, fmt.Errorf("emit: unknown output format %q", format)
	}
}

func appendNewline(b []byte) []byte {
	if bytes.HasSuffix(b, []byte("\n")) {
		return b
	}
	return append(append([]byte{}, b...), '\n')
}

func wrapModule(jsonBytes []byte, prefix, suffix, trailer string) []byte {
	var buf bytes.Buffer
	buf.WriteString(prefix)
	buf.Write(jsonBytes)
	buf.WriteString(suffix)
	buf.WriteString(trailer)
	return buf.Bytes()
}

// Extension returns the file extension (without a leading dot) the given
// format is conventionally saved under.
func Extension(format Format) string {
	switch format {
	case FormatJSON5:
		return "json5"
	case FormatJS, FormatJSESM:
		return "js"
	case FormatTS:
		return "ts"
	case FormatCJS, FormatJSCJS:
		return "cjs"
	default:
		return "json"
	}
}
