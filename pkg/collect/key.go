// Package collect deduplicates and normalizes extracted translation keys —
// the Key Collector.
package collect

// ImplicitNamespace is the sentinel used when a call site specified no
// explicit namespace anywhere (no ns option, no namespace prefix in the
// key, no scope default).
const ImplicitNamespace = "implicit"

// Key is the canonical unit produced by extraction (ExtractedKey in the
// data model).
type Key struct {
	Key             string
	Namespace       string
	DefaultValue    string
	ExplicitDefault bool
	HasCount        bool
	IsOrdinal       bool
	ReturnObjects   bool
	ContextExpr     string

	// SourceFile/SourceLine are not part of the canonical identity but
	// help diagnostics point at the originating call site.
	SourceFile string
	SourceLine uint32
}

// isFallback reports whether k is a "fallback" entry for replacement
// purposes: its default value is just the key (or, for a plural variant,
// the base key), meaning no one has told us a real display string yet.
func (k Key) isFallback() bool {
	return !k.ExplicitDefault
}

// moreSpecificThan reports whether incoming should replace existing per
// Invariant 1: a non-fallback default, or an explicit namespace, wins over
// a less specific prior entry.
func moreSpecificThan(incoming, existing Key) bool {
	if existing.isFallback() && !incoming.isFallback() {
		return true
	}
	if existing.Namespace == ImplicitNamespace && incoming.Namespace != ImplicitNamespace {
		return true
	}
	return false
}
