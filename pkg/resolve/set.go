package resolve

// Set is a finite, order-preserving set of concrete string values an
// expression could evaluate to. An empty Set means "unresolvable"; a
// one-element Set means "certain"; more than one means "a known finite
// union". Order is preserved (not sorted) so callers that fan out one key
// per candidate get a deterministic, source-order result.
type Set []string

// NewSet dedups values while preserving first-seen order.
func NewSet(values ...string) Set {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make(Set, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Empty reports whether the set is unresolvable.
func (s Set) Empty() bool { return len(s) == 0 }

// Union combines sets, deduping while preserving first-seen order.
func Union(sets ...Set) Set {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	return NewSet(all...)
}

// FilterEmptyString drops the empty string from a set — used when
// resolving a context value, where an empty context is equivalent to no
// context at all.
func FilterEmptyString(s Set) Set {
	out := make(Set, 0, len(s))
	for _, v := range s {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// part is either a literal string (kept verbatim) or a resolved Set, used
// by Concat to build a cartesian combination in source order.
type part struct {
	lit    string
	isLit  bool
	values Set
}

// Lit wraps a fixed string fragment for Concat.
func Lit(s string) part { return part{lit: s, isLit: true} }

// Vals wraps a resolved set for Concat.
func Vals(s Set) part { return part{values: s} }

// Concat builds the cartesian concatenation of a sequence of literal
// fragments and resolved sets, in order — the rule used for both template
// literals (quasis + embedded expressions) and binary-expression
// concatenation (two operand sets). If any non-literal part is empty, the
// whole result is empty (§4.2: "if either is empty, the result is empty").
func Concat(parts ...part) Set {
	acc := []string{""}
	for _, p := range parts {
		if p.isLit {
			for i := range acc {
				acc[i] += p.lit
			}
			continue
		}
		if p.values.Empty() {
			return nil
		}
		next := make([]string, 0, len(acc)*len(p.values))
		for _, prefix := range acc {
			for _, v := range p.values {
				next = append(next, prefix+v)
			}
		}
		acc = next
	}
	return NewSet(acc...)
}
