package reconcile

import "strings"

// isDerived reports whether defaultValue is "derived" from key — equal to
// it outright, or the key is that default value with a plural or context
// suffix appended (§4.7 Step 5, New-value/Existing-value cases). A derived
// default carries no information the key itself doesn't already carry.
func isDerived(defaultValue, key, contextSep, pluralSep string) bool {
	if defaultValue == "" || defaultValue == key {
		return true
	}
	if pluralSep != "" && strings.HasPrefix(key, defaultValue+pluralSep) {
		return true
	}
	if contextSep != "" && strings.HasPrefix(key, defaultValue+contextSep) {
		return true
	}
	return false
}

// mergeValue computes valueToSet for one candidate key per the Step 5
// decision procedure. existingValue/existingFound is the result of
// looking the candidate's full key up in the seeded tree.
func mergeValue(c candidate, existingValue any, existingFound bool, opts Options) any {
	isObjectReturn := c.ReturnObjects || opts.ObjectKeys[c.FullKey] || opts.ObjectKeys[c.Base]
	isPrimary := opts.Locale == opts.PrimaryLanguage

	if existingFound {
		if et, ok := existingValue.(Tree); ok {
			if isObjectReturn || c.DefaultValue == "" || c.DefaultValue == c.FullKey {
				return et
			}
			// A stale object: the call site no longer requests
			// returnObjects and supplies a real default. Falls through
			// to the new-value case below, as if nothing existed.
			existingFound = false
		}
	}

	if !existingFound {
		if isPrimary && opts.SyncPrimaryWithDefaults {
			if c.DefaultValue != "" && !isDerived(c.DefaultValue, c.FullKey, opts.ContextSeparator, opts.PluralSeparator) {
				return c.DefaultValue
			}
			return opts.ResolveDefault(c.FullKey, c.Namespace, opts.Locale, c.DefaultValue)
		}
		if isPrimary {
			if c.DefaultValue != "" {
				return c.DefaultValue
			}
			return c.FullKey
		}
		return opts.ResolveDefault(c.FullKey, c.Namespace, opts.Locale, c.DefaultValue)
	}

	// Existing-value case.
	if isPrimary && opts.SyncPrimaryWithDefaults {
		if (c.IsPluralVariant || c.ContextExpr != "") && !c.ExplicitDefault {
			return existingValue
		}
		if c.DefaultValue != "" && !isDerived(c.DefaultValue, c.FullKey, opts.ContextSeparator, opts.PluralSeparator) {
			return c.DefaultValue
		}
		return existingValue
	}
	return existingValue
}
