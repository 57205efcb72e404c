// Package config loads and validates the extraction run's configuration
// (§6 External Interfaces) and applies its documented defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// HookName is one recognized translation-hook call, optionally overriding
// which argument carries the namespace / keyPrefix (extract.useTranslationNames).
type HookName struct {
	Name         string `yaml:"name"`
	NsArg        int    `yaml:"nsArg"`
	KeyPrefixArg int    `yaml:"keyPrefixArg"`
}

// UnmarshalYAML accepts both the bare-string shorthand ("useTranslation")
// and the full record ({name, nsArg, keyPrefixArg}) forms.
func (h *HookName) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		h.Name, h.NsArg, h.KeyPrefixArg = name, 0, 1
		return nil
	}
	type plain HookName
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*h = HookName(p)
	return nil
}

// Extract holds the extract.* configuration block.
type Extract struct {
	Input                   []string   `yaml:"input"`
	Ignore                  []string   `yaml:"ignore"`
	Output                  string     `yaml:"output"`
	DefaultNS               string     `yaml:"defaultNS"`
	KeySeparator            *string    `yaml:"keySeparator"`
	NsSeparator              *string   `yaml:"nsSeparator"`
	ContextSeparator         string    `yaml:"contextSeparator"`
	PluralSeparator          string    `yaml:"pluralSeparator"`
	Functions                []string  `yaml:"functions"`
	TransComponents          []string  `yaml:"transComponents"`
	UseTranslationNames      []HookName `yaml:"useTranslationNames"`
	PrimaryLanguage          string    `yaml:"primaryLanguage"`
	DefaultValue             string    `yaml:"defaultValue"`
	Sort                     *bool     `yaml:"sort"`
	RemoveUnusedKeys         *bool     `yaml:"removeUnusedKeys"`
	PreservePatterns         []string  `yaml:"preservePatterns"`
	MergeNamespaces          bool      `yaml:"mergeNamespaces"`
	OutputFormat             string    `yaml:"outputFormat"`
	Indentation              any       `yaml:"indentation"`
	GenerateBasePluralForms  *bool     `yaml:"generateBasePluralForms"`
	DisablePlurals           bool      `yaml:"disablePlurals"`
	SyncPrimaryWithDefaults  bool      `yaml:"syncPrimaryWithDefaults"`
	DisableBasePluralWhenContext bool  `yaml:"disableBasePluralWhenContext"`
}

// Config is the full run configuration.
type Config struct {
	Locales []string `yaml:"locales"`
	Extract Extract  `yaml:"extract"`

	// SecondaryLanguages is derived, not parsed, by ApplyDefaults.
	SecondaryLanguages []string `yaml:"-"`
}

// Load reads and parses a YAML config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	return &cfg, nil
}

// ConfigError reports a missing or malformed required setting (§7).
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
}

// Validate checks the required fields (§4.9): input non-empty, output
// present, locales non-empty, output template contains a language
// placeholder.
func (c *Config) Validate() error {
	if len(c.Locales) == 0 {
		return &ConfigError{Field: "locales", Msg: "must be non-empty"}
	}
	if len(c.Extract.Input) == 0 {
		return &ConfigError{Field: "extract.input", Msg: "must be non-empty"}
	}
	if c.Extract.Output == "" {
		return &ConfigError{Field: "extract.output", Msg: "must be present"}
	}
	if !strings.Contains(c.Extract.Output, "{{language}}") && !strings.Contains(c.Extract.Output, "{{lng}}") {
		return &ConfigError{Field: "extract.output", Msg: "must contain {{language}} or {{lng}}"}
	}
	return nil
}

// ApplyDefaults fills in every documented default (§6) that wasn't set.
func (c *Config) ApplyDefaults() {
	e := &c.Extract
	if e.DefaultNS == "" {
		e.DefaultNS = "translation"
	}
	if e.KeySeparator == nil {
		v := "."
		e.KeySeparator = &v
	}
	if e.NsSeparator == nil {
		v := ":"
		e.NsSeparator = &v
	}
	if e.ContextSeparator == "" {
		e.ContextSeparator = "_"
	}
	if e.PluralSeparator == "" {
		e.PluralSeparator = "_"
	}
	if len(e.Functions) == 0 {
		e.Functions = []string{"t", "*.t"}
	}
	if len(e.TransComponents) == 0 {
		e.TransComponents = []string{"Trans"}
	}
	if len(e.UseTranslationNames) == 0 {
		e.UseTranslationNames = []HookName{
			{Name: "useTranslation", NsArg: 0, KeyPrefixArg: 1},
			{Name: "getT", NsArg: 0, KeyPrefixArg: 1},
			{Name: "useT", NsArg: 0, KeyPrefixArg: 1},
		}
	}
	if e.PrimaryLanguage == "" {
		e.PrimaryLanguage = c.Locales[0]
	}
	if e.Sort == nil {
		v := true
		e.Sort = &v
	}
	if e.RemoveUnusedKeys == nil {
		v := true
		e.RemoveUnusedKeys = &v
	}
	if e.GenerateBasePluralForms == nil {
		v := true
		e.GenerateBasePluralForms = &v
	}
	if e.OutputFormat == "" {
		e.OutputFormat = "json"
	}
	if e.Indentation == nil {
		e.Indentation = 2
	}

	c.SecondaryLanguages = nil
	for _, l := range c.Locales {
		if l != e.PrimaryLanguage {
			c.SecondaryLanguages = append(c.SecondaryLanguages, l)
		}
	}
}

// IndentString renders Extract.Indentation (a YAML number or string) as
// the literal text to repeat per nesting level.
func (e Extract) IndentString() string {
	switch v := e.Indentation.(type) {
	case string:
		return v
	case int:
		return strings.Repeat(" ", v)
	default:
		return "  "
	}
}

// KeySeparatorValue returns "" when keySeparator was configured as false
// (flat keys), else the configured separator.
func (e Extract) KeySeparatorValue() string {
	if e.KeySeparator == nil {
		return "."
	}
	return *e.KeySeparator
}

// NsSeparatorValue mirrors KeySeparatorValue for nsSeparator.
func (e Extract) NsSeparatorValue() string {
	if e.NsSeparator == nil {
		return ":"
	}
	return *e.NsSeparator
}
