// Package gen renders a resolved binding plan as source text.
//
// Generation uses text/template over small view structs built from the
// plan, the same way for both outputs:
//   - one Rust file with a marker type, trait impls and cached JNI
//     accessors per class, nested in modules by namespace
//   - one Java companion class per proxied class, forwarding every
//     overridable method to a native entry point in the Rust file
//
// WriteFiles only touches files whose content changed.
package gen
