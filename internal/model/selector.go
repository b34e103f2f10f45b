package model

import (
	"binding-generator/internal/config"
	"binding-generator/internal/jvm"
)

// ClassVisible reports whether the class is bound with public visibility
// in the generated code.
func ClassVisible(c *jvm.Class, cfg config.ClassConfig) bool {
	return c.IsPublic() || cfg.BindPrivateClasses
}

// MethodSelected reports whether m gets an accessor: public or allowed by
// bind-private-methods, and neither a bridge nor a static initializer.
func MethodSelected(m *jvm.Method, cfg config.ClassConfig) bool {
	if m.IsBridge() || m.IsStaticInit() {
		return false
	}

	return m.IsPublic() || cfg.BindPrivateMethods
}

// FieldSelected reports whether f gets accessors.
func FieldSelected(f *jvm.Field, cfg config.ClassConfig) bool {
	return f.IsPublic() || cfg.BindPrivateFields
}

// SelectMethods filters the class methods, keeping declaration order.
func SelectMethods(c *jvm.Class, cfg config.ClassConfig) []*jvm.Method {
	var out []*jvm.Method

	for _, m := range c.Methods {
		if MethodSelected(m, cfg) {
			out = append(out, m)
		}
	}

	return out
}

// SelectFields filters the class fields, keeping declaration order.
func SelectFields(c *jvm.Class, cfg config.ClassConfig) []*jvm.Field {
	var out []*jvm.Field

	for _, f := range c.Fields {
		if FieldSelected(f, cfg) {
			out = append(out, f)
		}
	}

	return out
}

// ProxyEligible reports whether a selected method can be overridden by a
// proxy: an instance method that is neither a constructor, final nor
// private.
func ProxyEligible(m *jvm.Method) bool {
	return !m.IsStatic() && !m.IsConstructor() && !m.IsStaticInit() &&
		!m.IsFinal() && !m.IsPrivate() && !m.IsBridge()
}
