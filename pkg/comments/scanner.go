// Package comments scans raw source text for commented-out translation
// keys: `t("key" [, defaultValueOrOptions])` written inside a line or
// block comment. This is a literal text scan, not a parse — it hardcodes
// the bare function name "t" and does not recognize scope-bound aliases,
// to keep false positives low.
package comments

import (
	"regexp"
	"strings"

	"github.com/i18nscan/i18nscan/pkg/collect"
)

// quoteClass matches any of the three JS/TS string delimiters.
const quoteClass = "[\"'`]"

// callPattern matches `t("key"` or `t('key'` followed by the rest of the
// argument list, captured non-greedily up to the first closing paren; a
// nested call inside the options (e.g. `fn(x)`) ends the capture early.
var callPattern = regexp.MustCompile(`\bt\(\s*(` + quoteClass + `)((?:[^\\]|\\.)*?)\1\s*(?:,\s*(.*?))?\)`)

var defaultValuePattern = regexp.MustCompile(`defaultValue\s*:\s*(` + quoteClass + `)((?:[^\\]|\\.)*?)\1`)
var nsPattern = regexp.MustCompile(`\bns\s*:\s*(` + quoteClass + `)((?:[^\\]|\\.)*?)\1`)

// Hit is one recovered commented-out key declaration.
type Hit struct {
	Key          string
	DefaultValue string
	ExplicitDefault bool
	Namespace    string
	Line         uint32
}

// Scan walks source line by line looking inside `//` line comments and
// `/* */` block comments for the t(...) pattern, returning one Hit per
// match. Each hit should be added to the collector with the same contract
// as a real call site.
func Scan(source []byte, filePath string) []Hit {
	var hits []Hit
	for _, region := range commentRegions(source) {
		for _, m := range callPattern.FindAllStringSubmatch(region.text, -1) {
			hit := parseMatch(m)
			hit.Line = region.line
			hits = append(hits, hit)
		}
	}
	return hits
}

// ToKeys converts Scan's hits into collect.Key values, tagging the source
// file for diagnostics.
func ToKeys(hits []Hit, filePath string) []collect.Key {
	out := make([]collect.Key, 0, len(hits))
	for _, h := range hits {
		ns := h.Namespace
		if ns == "" {
			ns = collect.ImplicitNamespace
		}
		out = append(out, collect.Key{
			Key:             h.Key,
			Namespace:       ns,
			DefaultValue:    firstNonEmpty(h.DefaultValue, h.Key),
			ExplicitDefault: h.ExplicitDefault,
			SourceFile:      filePath,
			SourceLine:      h.Line,
		})
	}
	return out
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func parseMatch(m []string) Hit {
	hit := Hit{Key: unescape(m[2])}
	rest := m[3]
	if rest == "" {
		return hit
	}
	rest = strings.TrimSpace(rest)

	// A trailing bare string literal (not an object literal) is a plain
	// defaultValue argument.
	if len(rest) > 0 && (rest[0] == '"' || rest[0] == '\'' || rest[0] == '`') {
		if v, ok := leadingStringLiteral(rest); ok {
			hit.DefaultValue = v
			hit.ExplicitDefault = true
			return hit
		}
	}

	if dm := defaultValuePattern.FindStringSubmatch(rest); dm != nil {
		hit.DefaultValue = unescape(dm[2])
		hit.ExplicitDefault = true
	}
	if nm := nsPattern.FindStringSubmatch(rest); nm != nil {
		hit.Namespace = unescape(nm[2])
	}
	return hit
}

// leadingStringLiteral extracts a string literal starting at rest[0],
// respecting backslash escapes of the same quote character.
func leadingStringLiteral(rest string) (string, bool) {
	quote := rest[0]
	var b strings.Builder
	for i := 1; i < len(rest); i++ {
		c := rest[i]
		if c == '\\' && i+1 < len(rest) {
			b.WriteByte(rest[i+1])
			i++
			continue
		}
		if c == quote {
			return b.String(), true
		}
		b.WriteByte(c)
	}
	return "", false
}

func unescape(s string) string {
	return strings.NewReplacer(`\"`, `"`, `\'`, `'`, "\\`", "`", `\\`, `\`).Replace(s)
}

type region struct {
	text string
	line uint32
}

// commentRegions extracts the textual contents of every line (`//`) and
// block (`/* */`) comment in source, ignoring string/template literals so
// a `//` inside a string isn't mistaken for a comment start. This is a
// best-effort lexer, not a full tokenizer.
func commentRegions(source []byte) []region {
	var regions []region
	s := string(source)
	line := uint32(1)

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\n':
			line++
			i++

		case c == '"' || c == '\'' || c == '`':
			i = skipStringLiteral(s, i, c)

		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			end := strings.IndexByte(s[i:], '\n')
			if end == -1 {
				end = len(s) - i
			}
			regions = append(regions, region{text: s[i : i+end], line: line})
			i += end

		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := strings.Index(s[i+2:], "*/")
			startLine := line
			var block string
			if end == -1 {
				block = s[i:]
				i = len(s)
			} else {
				block = s[i : i+2+end+2]
				i += 2 + end + 2
			}
			line += uint32(strings.Count(block, "\n"))
			regions = append(regions, region{text: block, line: startLine})

		default:
			i++
		}
	}
	return regions
}

func skipStringLiteral(s string, i int, quote byte) int {
	i++
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == quote {
			return i + 1
		}
		if s[i] == '\n' && quote != '`' {
			return i
		}
		i++
	}
	return i
}
