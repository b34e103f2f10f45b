// Package typemap renders JVM types as Rust types in the flavors the
// generated code needs.
package typemap

import (
	"fmt"

	"binding-generator/internal/common"
	"binding-generator/internal/jvm"
	"binding-generator/internal/model"
)

// Runtime crate paths used by generated code.
const (
	Runtime       = "::java_oxide"
	ThrowablePath = "java/lang/Throwable"
	ObjectPath    = "java/lang/Object"
)

// Flavor selects the Rust spelling of a reference type for one position.
type Flavor int

const (
	// ImplAsArg is an accessor argument: impl AsArg<T>.
	ImplAsArg Flavor = iota
	// OptionLocal is an accessor return: Option<Local<'env, T>>.
	OptionLocal
	// OptionRef is a proxy trait parameter: Option<Ref<'env, T>>.
	OptionRef
	// Arg is a raw proxy entry-point parameter: Arg<T>.
	Arg
	// Return is a proxy return: Return<'env, T>.
	Return
)

// String returns the flavor name.
func (f Flavor) String() string {
	switch f {
	case ImplAsArg:
		return "impl_as_arg"
	case OptionLocal:
		return "option_local"
	case OptionRef:
		return "option_ref"
	case Arg:
		return "arg"
	case Return:
		return "return"
	default:
		return common.UnknownStr
	}
}

// UnboundError reports a reference to a class with no generated binding.
type UnboundError struct {
	Class string
}

func (e *UnboundError) Error() string {
	return fmt.Sprintf("type %s is not bound", e.Class)
}

// Mapper renders types as seen from one generated module.
type Mapper struct {
	table  *model.Table
	module []string
}

// New returns a mapper for code emitted into module.
func New(table *model.Table, module []string) *Mapper {
	return &Mapper{table: table, module: module}
}

// ClassRef renders the Rust path of a bound class.
func (m *Mapper) ClassRef(classPath string) (string, error) {
	e, ok := m.table.Lookup(classPath)
	if !ok {
		return "", &UnboundError{Class: classPath}
	}

	return e.Native.RefFrom(m.module), nil
}

// Type renders t in flavor f. Primitives ignore the flavor.
func (m *Mapper) Type(t jvm.TypeDescriptor, f Flavor) (string, error) {
	if !t.IsArray() && !t.IsObject() {
		return RustPrimitive(t.Primitive), nil
	}

	inner, err := m.ReferenceType(t)
	if err != nil {
		return "", err
	}

	return Wrap(inner, f), nil
}

// Return renders a method return type; void becomes "()".
func (m *Mapper) Return(t *jvm.TypeDescriptor, f Flavor) (string, error) {
	if t == nil {
		return "()", nil
	}

	return m.Type(*t, f)
}

// ReferenceType renders the bare Rust type of a class or array type.
func (m *Mapper) ReferenceType(t jvm.TypeDescriptor) (string, error) {
	if !t.IsArray() {
		if !t.IsObject() {
			return "", fmt.Errorf("primitive %s is not a reference type", t.Primitive)
		}

		return m.ClassRef(t.Class)
	}

	if t.Dims == 1 && !t.IsObject() {
		return Runtime + "::" + primitiveArray(t.Primitive), nil
	}

	elem, err := m.ReferenceType(t.Elem())
	if err != nil {
		return "", err
	}

	throwable, err := m.ClassRef(ThrowablePath)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s::ObjectArray<%s, %s>", Runtime, elem, throwable), nil
}

// Wrap applies flavor f to a bare reference type.
func Wrap(inner string, f Flavor) string {
	switch f {
	case ImplAsArg:
		return fmt.Sprintf("impl %s::AsArg<%s>", Runtime, inner)
	case OptionLocal:
		return fmt.Sprintf("::std::option::Option<%s::Local<'env, %s>>", Runtime, inner)
	case OptionRef:
		return fmt.Sprintf("::std::option::Option<%s::Ref<'env, %s>>", Runtime, inner)
	case Arg:
		return fmt.Sprintf("%s::Arg<%s>", Runtime, inner)
	case Return:
		return fmt.Sprintf("%s::Return<'env, %s>", Runtime, inner)
	default:
		return inner
	}
}

// RustPrimitive maps a JVM primitive to its Rust equivalent.
func RustPrimitive(p jvm.Primitive) string {
	switch p {
	case jvm.PrimBoolean:
		return "bool"
	case jvm.PrimByte:
		return "i8"
	case jvm.PrimChar:
		return "u16"
	case jvm.PrimShort:
		return "i16"
	case jvm.PrimInt:
		return "i32"
	case jvm.PrimLong:
		return "i64"
	case jvm.PrimFloat:
		return "f32"
	case jvm.PrimDouble:
		return "f64"
	default:
		return common.UnknownStr
	}
}

func primitiveArray(p jvm.Primitive) string {
	switch p {
	case jvm.PrimBoolean:
		return "BooleanArray"
	case jvm.PrimByte:
		return "ByteArray"
	case jvm.PrimChar:
		return "CharArray"
	case jvm.PrimShort:
		return "ShortArray"
	case jvm.PrimInt:
		return "IntArray"
	case jvm.PrimLong:
		return "LongArray"
	case jvm.PrimFloat:
		return "FloatArray"
	case jvm.PrimDouble:
		return "DoubleArray"
	default:
		return common.UnknownStr
	}
}

// CallFragment names the JNI call variant for a return or field type:
// "void", a primitive name, or "object".
func CallFragment(t *jvm.TypeDescriptor) string {
	switch {
	case t == nil:
		return "void"
	case t.IsArray() || t.IsObject():
		return "object"
	default:
		return t.Primitive.String()
	}
}
