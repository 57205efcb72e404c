package reconcile

import "regexp"

// DefaultResolver computes the seed value for a key that has no resolvable
// default anywhere (§4.8): a user-supplied string is returned verbatim, a
// user-supplied function is called and any panic is treated as "return
// empty string", and the absence of either yields "".
type DefaultResolver func(key, namespace, locale, primaryValue string) string

// Options carries every reconciler-run input besides the collected keys
// and the on-disk tree (§4.7 Inputs).
type Options struct {
	Locale          string
	PrimaryLanguage string

	RemoveUnusedKeys         bool
	Sort                     bool
	SortFunc                 func(a, b string) bool // user comparator over the full keys of every tree level, nested ones included, in place of the canonical order; plural variants are not grouped by base; nil = canonical order
	SyncPrimaryWithDefaults  bool
	MergeNamespaces          bool
	DisablePlurals           bool
	GenerateBasePluralForms  bool
	DisableBasePluralWhenContext bool

	KeySeparator     string
	ContextSeparator string
	PluralSeparator  string

	PreservePatterns []*regexp.Regexp
	ObjectKeys       map[string]bool

	ResolveDefault DefaultResolver
}

// StringResolver wraps a fixed default-value string in the DefaultResolver
// shape (§4.8 "If defaultSpec is a string, return it verbatim").
func StringResolver(spec string) DefaultResolver {
	return func(string, string, string, string) string { return spec }
}

// SafeResolver wraps a user-supplied function so a panic during evaluation
// degrades to the empty string instead of aborting the run (§4.8 "on
// exception, return the empty string").
func SafeResolver(fn DefaultResolver) DefaultResolver {
	return func(key, ns, locale, primaryValue string) (out string) {
		defer func() {
			if recover() != nil {
				out = ""
			}
		}()
		return fn(key, ns, locale, primaryValue)
	}
}
