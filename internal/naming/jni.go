package naming

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// MangleJNI escapes s per the JNI native method name rules: ASCII
// alphanumerics pass through, '/' becomes '_', and '_', ';' and '[' become
// "_1", "_2" and "_3". Any other UTF-16 unit becomes "_0" plus four
// lowercase hex digits.
func MangleJNI(s string) string {
	var b strings.Builder

	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u < 0x80 && isASCIIAlnum(byte(u)):
			b.WriteByte(byte(u))
		case u == '/':
			b.WriteByte('_')
		case u == '_':
			b.WriteString("_1")
		case u == ';':
			b.WriteString("_2")
		case u == '[':
			b.WriteString("_3")
		default:
			fmt.Fprintf(&b, "_0%04x", u)
		}
	}

	return b.String()
}

func isASCIIAlnum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

// JNISymbol returns the long-form JNI export name of a native method on
// classPath, e.g. Java_pkg_Cls_native_1run__JI for native_run(long, int).
func JNISymbol(classPath, method string, paramDescriptors []string) string {
	var b strings.Builder

	b.WriteString("Java_")
	b.WriteString(MangleJNI(classPath))
	b.WriteByte('_')
	b.WriteString(MangleJNI(method))
	b.WriteString("__")

	for _, d := range paramDescriptors {
		b.WriteString(MangleJNI(d))
	}

	return b.String()
}
