package reconcile

import "regexp"

// applyPreservePatterns implements Step 3: every path in existing matching
// any preserve-pattern regex is copied into dst verbatim, regardless of
// removeUnusedKeys.
func applyPreservePatterns(dst, existing Tree, sep string, patterns []*regexp.Regexp) {
	if len(patterns) == 0 {
		return
	}
	for _, entry := range flatten(existing, sep, "") {
		if matchesAny(entry.path, patterns) {
			Set(dst, sep, entry.path, entry.value)
		}
	}
}

func matchesAny(path string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}

// preserveZeroForms implements Step 4: even under removeUnusedKeys
// pruning, an existing `<base>_zero` path survives verbatim when its base
// is still a plural base in the current extraction.
func preserveZeroForms(dst, existing Tree, sep, pluralSep string, currentBases map[string]bool) {
	if len(currentBases) == 0 {
		return
	}
	zeroSuffix := pluralSep + "zero"
	for _, entry := range flatten(existing, sep, "") {
		base, ok := trimZeroSuffix(entry.path, zeroSuffix)
		if !ok || !currentBases[base] {
			continue
		}
		Set(dst, sep, entry.path, entry.value)
	}
}

func trimZeroSuffix(path, suffix string) (string, bool) {
	if len(path) <= len(suffix) || path[len(path)-len(suffix):] != suffix {
		return "", false
	}
	return path[:len(path)-len(suffix)], true
}
