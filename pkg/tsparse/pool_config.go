package tsparse

import "runtime"

// defaultPoolSize returns min(max(runtime.NumCPU()*2, 4), 32).
//
// Must track the engine's worker-pool size (pkg/engine) — if the two
// diverge, workers end up blocked waiting on parsers that are all checked
// out by other goroutines.
func defaultPoolSize() int {
	n := runtime.NumCPU() * 2
	if n < 4 {
		n = 4
	}
	if n > 32 {
		n = 32
	}
	return n
}

// poolSizeOrDefault returns override if positive, else defaultPoolSize().
func poolSizeOrDefault(override int) int {
	if override > 0 {
		return override
	}
	return defaultPoolSize()
}
