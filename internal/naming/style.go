package naming

import (
	"strings"

	"binding-generator/internal/common"
	"binding-generator/internal/jvm"
)

// Style is a method-name mangling style. Styles are ordered: each one
// carries strictly more of the signature than the one before.
type Style int

const (
	// Short is the bare method name; constructors become "new".
	Short Style = iota
	// ShortSignature appends the simple name of every parameter type.
	ShortSignature
	// LongSignature appends the full path of every parameter type and the
	// return type.
	LongSignature
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case Short:
		return "short"
	case ShortSignature:
		return "short_signature"
	case LongSignature:
		return "long_signature"
	default:
		return common.UnknownStr
	}
}

// Next returns the following style and false when s is already the last one.
func (s Style) Next() (Style, bool) {
	if s >= LongSignature {
		return s, false
	}

	return s + 1, true
}

// MethodName renders the unescaped Rust name of m in style s.
func MethodName(m *jvm.Method, s Style) string {
	name := m.Name
	if m.IsConstructor() {
		name = "new"
	}

	if s == Short {
		return name
	}

	var b strings.Builder

	b.WriteString(name)

	for _, p := range m.Descriptor.Params {
		b.WriteByte('_')

		if s == ShortSignature {
			b.WriteString(shortTypeName(p))
		} else {
			b.WriteString(longTypeName(p))
		}
	}

	if s == LongSignature {
		b.WriteString("__")

		if m.Descriptor.Return == nil {
			b.WriteString("void")
		} else {
			b.WriteString(longTypeName(*m.Descriptor.Return))
		}
	}

	return b.String()
}

func shortTypeName(t jvm.TypeDescriptor) string {
	name := t.Primitive.String()
	if t.IsObject() {
		name = jvm.SimpleName(t.Class)
	}

	return name + strings.Repeat("_array", t.Dims)
}

func longTypeName(t jvm.TypeDescriptor) string {
	name := t.Primitive.String()
	if t.IsObject() {
		name = strings.NewReplacer("/", "_", "$", "_").Replace(t.Class)
	}

	return name + strings.Repeat("_array", t.Dims)
}

// FieldNames are the accessor names generated for one field.
type FieldNames struct {
	// Const is set for static final fields with a constant value.
	Const string
	// Getter and Setter are set otherwise; Setter only for non-final fields.
	Getter string
	Setter string
}

// Names lists every non-empty name.
func (n FieldNames) Names() []string {
	var out []string

	for _, s := range []string{n.Const, n.Getter, n.Setter} {
		if s != "" {
			out = append(out, s)
		}
	}

	return out
}

// FieldAccessorNames renders the escaped accessor names of f.
func FieldAccessorNames(f *jvm.Field) (FieldNames, error) {
	if f.IsConstant() {
		name, err := RustIdent(f.Name)
		return FieldNames{Const: name}, err
	}

	var names FieldNames

	getter, err := RustIdent("get_" + f.Name)
	if err != nil {
		return names, err
	}

	names.Getter = getter

	if !f.IsFinal() {
		setter, err := RustIdent("set_" + f.Name)
		if err != nil {
			return names, err
		}

		names.Setter = setter
	}

	return names, nil
}
