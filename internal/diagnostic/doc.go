// Package diagnostic collects non-fatal problems found while translating
// classes: members skipped for unbound types, classes skipped for bad
// identifiers or unresolvable name collisions, dropped proxies and
// configuration mistakes.
//
// Diagnostics carry a stable code plus the class and member they concern so
// runs can be compared and filtered.
package diagnostic
