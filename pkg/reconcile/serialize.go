package reconcile

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Serialize canonically renders t as indented JSON text, in the output key
// order orderedKeys computes — not whatever order encoding/json.Marshal
// would pick for a plain map (alphabetical, losing the plural/context
// grouping Step 6 computes). Leaf values are still encoded with
// encoding/json so string escaping and number formatting stay correct;
// only object-key ordering is custom.
func Serialize(t Tree, opts Options, indent string) []byte {
	var buf bytes.Buffer
	writeTree(&buf, t, opts, indent, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func writeTree(buf *bytes.Buffer, t Tree, opts Options, indent string, depth int) {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	keys = orderedKeys(keys, opts)

	buf.WriteByte('{')
	if len(keys) == 0 {
		buf.WriteByte('}')
		return
	}
	buf.WriteByte('\n')
	childIndent := strings.Repeat(indent, depth+1)
	for i, k := range keys {
		buf.WriteString(childIndent)
		writeJSONValue(buf, k)
		buf.WriteString(": ")
		writeValue(buf, t[k], opts, indent, depth)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(strings.Repeat(indent, depth))
	buf.WriteByte('}')
}

func writeValue(buf *bytes.Buffer, v any, opts Options, indent string, depth int) {
	switch vv := v.(type) {
	case Tree:
		writeTree(buf, vv, opts, indent, depth+1)
	case map[string]any:
		writeTree(buf, Tree(vv), opts, indent, depth+1)
	default:
		writeJSONValue(buf, v)
	}
}

func writeJSONValue(buf *bytes.Buffer, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		b = []byte(`""`)
	}
	buf.Write(b)
}

// Updated reports whether newTree and oldTree differ under canonical
// serialization (Invariant 5 / Step 7).
func Updated(oldTree, newTree Tree, opts Options, indent string) bool {
	return !bytes.Equal(Serialize(oldTree, opts, indent), Serialize(newTree, opts, indent))
}

// Parse decodes an existing on-disk catalog's JSON bytes into a Tree, the
// reverse of Serialize. json.Unmarshal already yields map[string]any for
// nested objects; asTree normalizes those into Tree as they're read back
// out by Lookup/Set/DeepCopy.
func Parse(data []byte) (Tree, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return Tree(raw), nil
}
