package jvm

import "binding-generator/internal/common"

// Class describes one compiled class, interface, enum or annotation type.
type Class struct {
	// Path is the binary class name, e.g. "java/util/Map$Entry".
	Path string
	// Access holds the source-level modifiers. For nested classes the
	// InnerClasses entry wins over the class-file flags.
	Access AccessFlags
	// SuperPath is empty for java/lang/Object and module descriptors.
	SuperPath  string
	Interfaces []string
	Deprecated bool
	Fields     []*Field
	Methods    []*Method
}

// IsPublic reports whether the class is declared public.
func (c *Class) IsPublic() bool { return c.Access.Has(AccPublic) }

// IsInterface reports whether the class is an interface or annotation type.
func (c *Class) IsInterface() bool { return c.Access.Has(AccInterface) }

// IsEnum reports whether the class is an enum.
func (c *Class) IsEnum() bool { return c.Access.Has(AccEnum) }

// IsStatic reports whether a nested class is static.
func (c *Class) IsStatic() bool { return c.Access.Has(AccStatic) }

// IsFinal reports whether the class cannot be subclassed.
func (c *Class) IsFinal() bool { return c.Access.Has(AccFinal) }

// IsAbstract reports whether the class is abstract. Interfaces always are.
func (c *Class) IsAbstract() bool { return c.Access.Has(AccAbstract) }

// Keyword names the kind of type the way it is declared in Java source.
func (c *Class) Keyword() string {
	switch {
	case c.IsInterface():
		return "interface"
	case c.IsEnum():
		return "enum"
	case c.IsStatic():
		return "static class"
	case c.IsFinal():
		return "final class"
	default:
		return "class"
	}
}

// Supertypes returns the declared superclass followed by the interfaces.
func (c *Class) Supertypes() []string {
	out := make([]string, 0, len(c.Interfaces)+1)
	if c.SuperPath != "" {
		out = append(out, c.SuperPath)
	}

	return append(out, c.Interfaces...)
}

// Method is a method, constructor or static initializer.
type Method struct {
	Name       string
	Descriptor MethodDescriptor
	Access     AccessFlags
	Deprecated bool
	// Owner is the path of the declaring class.
	Owner string
}

// Constructor and static initializer method names.
const (
	ConstructorName = "<init>"
	StaticInitName  = "<clinit>"
)

// IsConstructor reports whether m is an instance initializer.
func (m *Method) IsConstructor() bool { return m.Name == ConstructorName }

// IsStaticInit reports whether m is the class initializer.
func (m *Method) IsStaticInit() bool { return m.Name == StaticInitName }

// IsPublic reports whether m is declared public.
func (m *Method) IsPublic() bool { return m.Access.Has(AccPublic) }

// IsPrivate reports whether m is declared private.
func (m *Method) IsPrivate() bool { return m.Access.Has(AccPrivate) }

// IsStatic reports whether m is a static method.
func (m *Method) IsStatic() bool { return m.Access.Has(AccStatic) }

// IsFinal reports whether m cannot be overridden.
func (m *Method) IsFinal() bool { return m.Access.Has(AccFinal) }

// IsAbstract reports whether m has no body.
func (m *Method) IsAbstract() bool { return m.Access.Has(AccAbstract) }

// IsBridge reports whether m is a compiler-generated bridge method.
func (m *Method) IsBridge() bool { return m.Access.Has(AccBridge) }

// IsVarargs reports whether the last parameter of m is variadic.
func (m *Method) IsVarargs() bool { return m.Access.Has(AccVarargs) }

// Field is a static or instance field.
type Field struct {
	Name       string
	Type       TypeDescriptor
	Access     AccessFlags
	Deprecated bool
	// Constant is set for fields carrying a ConstantValue attribute.
	Constant *Constant
}

// IsPublic reports whether f is declared public.
func (f *Field) IsPublic() bool { return f.Access.Has(AccPublic) }

// IsStatic reports whether f is a static field.
func (f *Field) IsStatic() bool { return f.Access.Has(AccStatic) }

// IsFinal reports whether f is assigned only once.
func (f *Field) IsFinal() bool { return f.Access.Has(AccFinal) }

// IsConstant reports whether the field is a static final compile-time constant.
func (f *Field) IsConstant() bool {
	return f.Constant != nil && f.IsStatic() && f.IsFinal()
}

// ConstantKind identifies the representation of a Constant.
type ConstantKind int

const (
	ConstInt ConstantKind = iota
	ConstLong
	ConstFloat
	ConstDouble
	ConstString
)

// String returns a human-readable kind name.
func (k ConstantKind) String() string {
	switch k {
	case ConstInt:
		return "int"
	case ConstLong:
		return "long"
	case ConstFloat:
		return "float"
	case ConstDouble:
		return "double"
	case ConstString:
		return "string"
	default:
		return common.UnknownStr
	}
}

// Constant is a compile-time constant value. Booleans, bytes, chars and
// shorts are stored as ConstInt like the class file does.
type Constant struct {
	Kind   ConstantKind
	Int    int64
	Float  float64
	String string
}
