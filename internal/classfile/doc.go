// Package classfile decodes JVM class files into jvm.Class values and reads
// them from .class files, .jar archives and directories.
//
// Only the structures bindings need are decoded: the constant pool, access
// flags, super types, fields, methods and the ConstantValue, Deprecated,
// Synthetic, RuntimeVisibleAnnotations and InnerClasses attributes. Every
// other attribute is skipped by length.
package classfile
