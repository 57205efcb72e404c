package walker

// HookSpec names a translation-hook call (e.g. useTranslation) and which
// argument positions carry the namespace and the key-prefix option.
type HookSpec struct {
	Name         string
	NsArg        int
	KeyPrefixArg int
}

// Options configures how the walker recognizes call sites, hooks, and
// Trans-style JSX elements. Mirrors the extract.* configuration fields.
type Options struct {
	// Functions lists callee patterns recognized as translation calls:
	// an exact name ("t"), a dotted member ("i18n.t"), or a wildcard
	// prefix ("*.t", matching any `<ident>.t`).
	Functions []string

	// TransComponents lists JSX tag names treated like <Trans>.
	TransComponents []string

	// HookNames lists the hook calls that bind a scoped translation
	// function, e.g. useTranslation/getT/useT.
	HookNames []HookSpec

	// DefaultNS is the configured default namespace name, or "none".
	DefaultNS string

	KeySeparator     string // "" means flat keys (keySeparator: false)
	NsSeparator      string // "" means no ns-prefix-in-key parsing
	ContextSeparator string
	PluralSeparator  string

	// DisableBasePluralWhenContext, if true, omits the context-less base
	// plural keys when a context is also present on the same call site.
	DisableBasePluralWhenContext bool

	// KeptHTMLTags is the inline-HTML whitelist for <Trans> child
	// serialization (e.g. br, strong, i).
	KeptHTMLTags []string
}

// DefaultOptions returns the engine's documented defaults.
func DefaultOptions() Options {
	return Options{
		Functions:       []string{"t", "*.t"},
		TransComponents: []string{"Trans"},
		HookNames: []HookSpec{
			{Name: "useTranslation", NsArg: 0, KeyPrefixArg: 1},
			{Name: "getT", NsArg: 0, KeyPrefixArg: 1},
			{Name: "useT", NsArg: 0, KeyPrefixArg: 1},
		},
		DefaultNS:        "translation",
		KeySeparator:     ".",
		NsSeparator:      ":",
		ContextSeparator: "_",
		PluralSeparator:  "_",
		KeptHTMLTags:     []string{"br", "strong", "i", "b", "em", "p"},
	}
}

func (o Options) hookSpec(name string) *HookSpec {
	for i := range o.HookNames {
		if o.HookNames[i].Name == name {
			return &o.HookNames[i]
		}
	}
	return nil
}
