package common

import (
	"slices"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// SplitLast splits s around the last occurrence of sep.
// When sep is absent, head is empty and tail is s.
func SplitLast(s string, sep byte) (head, tail string) {
	i := strings.LastIndexByte(s, sep)
	if i < 0 {
		return "", s
	}

	return s[:i], s[i+1:]
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
