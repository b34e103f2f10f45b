// Package naming turns JVM names into Rust identifiers and JNI symbols.
//
// Method names are disambiguated with an escalating ladder of mangling
// styles; see Resolve.
package naming
