// Package suggest ranks class paths by similarity to a name the user typed,
// for "did you mean" hints.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Closest: ranks candidate class paths against a query
package suggest
