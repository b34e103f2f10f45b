// Package jvm models the parts of compiled JVM classes that bindings are
// generated from: classes, methods, fields, access flags, compile-time
// constants and type descriptors.
//
// Values in this package are immutable once decoded. Class paths use the
// binary form with '/' between packages and '$' between nested classes,
// e.g. "java/util/Map$Entry".
package jvm
