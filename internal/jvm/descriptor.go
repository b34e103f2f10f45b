package jvm

import (
	"fmt"
	"strings"

	"binding-generator/internal/common"
)

// Primitive identifies a JVM primitive type.
type Primitive int

const (
	// PrimNone marks an object type.
	PrimNone Primitive = iota
	PrimBoolean
	PrimByte
	PrimChar
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
)

// String returns the Java keyword for the primitive.
func (p Primitive) String() string {
	switch p {
	case PrimBoolean:
		return "boolean"
	case PrimByte:
		return "byte"
	case PrimChar:
		return "char"
	case PrimShort:
		return "short"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	case PrimDouble:
		return "double"
	default:
		return common.UnknownStr
	}
}

// Code returns the single-character descriptor code.
func (p Primitive) Code() byte {
	switch p {
	case PrimBoolean:
		return 'Z'
	case PrimByte:
		return 'B'
	case PrimChar:
		return 'C'
	case PrimShort:
		return 'S'
	case PrimInt:
		return 'I'
	case PrimLong:
		return 'J'
	case PrimFloat:
		return 'F'
	case PrimDouble:
		return 'D'
	default:
		return '?'
	}
}

func primitiveFromCode(c byte) Primitive {
	switch c {
	case 'Z':
		return PrimBoolean
	case 'B':
		return PrimByte
	case 'C':
		return PrimChar
	case 'S':
		return PrimShort
	case 'I':
		return PrimInt
	case 'J':
		return PrimLong
	case 'F':
		return PrimFloat
	case 'D':
		return PrimDouble
	default:
		return PrimNone
	}
}

// TypeDescriptor is a field type: a primitive or a class, with zero or more
// array dimensions.
type TypeDescriptor struct {
	// Primitive is PrimNone for object types.
	Primitive Primitive
	// Class is the class path of an object type.
	Class string
	// Dims is the number of array dimensions.
	Dims int
}

// Object returns the descriptor of a plain object type.
func Object(classPath string) TypeDescriptor {
	return TypeDescriptor{Class: classPath}
}

// Prim returns the descriptor of a plain primitive type.
func Prim(p Primitive) TypeDescriptor {
	return TypeDescriptor{Primitive: p}
}

// IsObject reports whether the element type is a class.
func (t TypeDescriptor) IsObject() bool {
	return t.Primitive == PrimNone
}

// IsArray reports whether the type has array dimensions.
func (t TypeDescriptor) IsArray() bool {
	return t.Dims > 0
}

// Elem returns the type with one array dimension removed.
func (t TypeDescriptor) Elem() TypeDescriptor {
	if t.Dims > 0 {
		t.Dims--
	}

	return t
}

// String renders the JVM descriptor, e.g. "[Ljava/lang/String;".
func (t TypeDescriptor) String() string {
	var b strings.Builder

	for range t.Dims {
		b.WriteByte('[')
	}

	if t.IsObject() {
		b.WriteByte('L')
		b.WriteString(t.Class)
		b.WriteByte(';')
	} else {
		b.WriteByte(t.Primitive.Code())
	}

	return b.String()
}

// JavaName renders the type as written in Java source, e.g. "java.util.Map.Entry[]".
func (t TypeDescriptor) JavaName() string {
	var name string
	if t.IsObject() {
		name = strings.NewReplacer("/", ".", "$", ".").Replace(t.Class)
	} else {
		name = t.Primitive.String()
	}

	return name + strings.Repeat("[]", t.Dims)
}

// MethodDescriptor is an ordered parameter list plus an optional return type.
type MethodDescriptor struct {
	Params []TypeDescriptor
	// Return is nil for void.
	Return *TypeDescriptor
}

// String renders the JVM method descriptor, e.g. "(ILjava/lang/String;)V".
func (d MethodDescriptor) String() string {
	var b strings.Builder

	b.WriteByte('(')

	for _, p := range d.Params {
		b.WriteString(p.String())
	}

	b.WriteByte(')')

	if d.Return == nil {
		b.WriteByte('V')
	} else {
		b.WriteString(d.Return.String())
	}

	return b.String()
}

// ParseFieldDescriptor parses a single field descriptor.
func ParseFieldDescriptor(s string) (TypeDescriptor, error) {
	t, n, err := parseType(s, 0)
	if err != nil {
		return TypeDescriptor{}, err
	}

	if n != len(s) {
		return TypeDescriptor{}, fmt.Errorf("field descriptor %q: trailing characters", s)
	}

	return t, nil
}

// ParseMethodDescriptor parses a method descriptor.
func ParseMethodDescriptor(s string) (MethodDescriptor, error) {
	var d MethodDescriptor

	if !strings.HasPrefix(s, "(") {
		return d, fmt.Errorf("method descriptor %q: missing '('", s)
	}

	i := 1
	for i < len(s) && s[i] != ')' {
		t, n, err := parseType(s, i)
		if err != nil {
			return d, fmt.Errorf("method descriptor %q: %w", s, err)
		}

		d.Params = append(d.Params, t)
		i = n
	}

	if i >= len(s) {
		return d, fmt.Errorf("method descriptor %q: missing ')'", s)
	}

	i++

	if i < len(s) && s[i] == 'V' {
		if i+1 != len(s) {
			return d, fmt.Errorf("method descriptor %q: trailing characters", s)
		}

		return d, nil
	}

	ret, n, err := parseType(s, i)
	if err != nil {
		return d, fmt.Errorf("method descriptor %q: %w", s, err)
	}

	if n != len(s) {
		return d, fmt.Errorf("method descriptor %q: trailing characters", s)
	}

	d.Return = &ret

	return d, nil
}

func parseType(s string, i int) (TypeDescriptor, int, error) {
	var t TypeDescriptor

	for i < len(s) && s[i] == '[' {
		t.Dims++
		i++
	}

	if i >= len(s) {
		return t, i, fmt.Errorf("unexpected end of descriptor %q", s)
	}

	if s[i] == 'L' {
		end := strings.IndexByte(s[i:], ';')
		if end <= 1 {
			return t, i, fmt.Errorf("unterminated class name in %q", s)
		}

		t.Class = s[i+1 : i+end]

		return t, i + end + 1, nil
	}

	t.Primitive = primitiveFromCode(s[i])
	if t.Primitive == PrimNone {
		return t, i, fmt.Errorf("invalid type code %q in %q", s[i], s)
	}

	return t, i + 1, nil
}
