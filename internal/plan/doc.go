// Package plan provides the resolution pipeline that produces a final
// ResolvedBindingPlan consumed by code generation.
//
// Resolution pipeline, per bound class:
//  1. Check the runtime classes every binding depends on
//  2. Select members by visibility policy
//  3. Resolve collision-free Rust names
//  4. Map every member's types; members with unbound types are skipped
//  5. Plan the proxy surface when the class is proxied
//  6. Emit diagnostics for everything skipped
//
// The plan is complete before any text is rendered, so the Rust side and
// the Java companion of a proxy are both rendered from the same values.
package plan
