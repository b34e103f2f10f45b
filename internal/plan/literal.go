package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"binding-generator/internal/jvm"
	"binding-generator/internal/typemap"
)

// RustConstant renders the Rust type and literal of a constant field.
func RustConstant(f *jvm.Field) (typ, value string, err error) {
	c := f.Constant
	t := f.Type

	if c == nil {
		return "", "", fmt.Errorf("field %s has no constant value", f.Name)
	}

	if t.IsArray() {
		return "", "", fmt.Errorf("field %s: array constants are not supported", f.Name)
	}

	if t.IsObject() {
		if c.Kind != jvm.ConstString {
			return "", "", fmt.Errorf("field %s: %s constant on object type %s", f.Name, c.Kind, t.Class)
		}

		return "&'static str", RustString(c.String), nil
	}

	typ = typemap.RustPrimitive(t.Primitive)

	switch t.Primitive {
	case jvm.PrimBoolean:
		if c.Kind != jvm.ConstInt {
			break
		}

		return typ, strconv.FormatBool(c.Int != 0), nil
	case jvm.PrimByte, jvm.PrimShort, jvm.PrimInt:
		if c.Kind != jvm.ConstInt {
			break
		}

		return typ, strconv.FormatInt(c.Int, 10), nil
	case jvm.PrimChar:
		if c.Kind != jvm.ConstInt {
			break
		}

		return typ, strconv.FormatUint(uint64(uint16(c.Int)), 10), nil
	case jvm.PrimLong:
		if c.Kind != jvm.ConstLong {
			break
		}

		return typ, strconv.FormatInt(c.Int, 10), nil
	case jvm.PrimFloat:
		if c.Kind != jvm.ConstFloat {
			break
		}

		return typ, rustFloat(c.Float, typ, 32), nil
	case jvm.PrimDouble:
		if c.Kind != jvm.ConstDouble {
			break
		}

		return typ, rustFloat(c.Float, typ, 64), nil
	}

	return "", "", fmt.Errorf("field %s: %s constant on %s field", f.Name, c.Kind, t.Primitive)
}

func rustFloat(v float64, typ string, bits int) string {
	switch {
	case math.IsNaN(v):
		return typ + "::NAN"
	case math.IsInf(v, 1):
		return typ + "::INFINITY"
	case math.IsInf(v, -1):
		return typ + "::NEG_INFINITY"
	}

	s := strconv.FormatFloat(v, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// RustString renders s as a Rust string literal.
func RustString(s string) string {
	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')

	return b.String()
}
