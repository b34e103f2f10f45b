// Package classfiletest builds class files and JAR archives from jvm
// values for use in tests.
package classfiletest

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"unicode/utf16"

	"binding-generator/internal/jvm"
)

type attribute struct {
	name string
	body []byte
}

type encoder struct {
	pool    bytes.Buffer
	next    uint16
	utf8s   map[string]uint16
	classes map[string]uint16
}

func (e *encoder) u1(b *bytes.Buffer, v uint8)  { b.WriteByte(v) }
func (e *encoder) u2(b *bytes.Buffer, v uint16) { _ = binary.Write(b, binary.BigEndian, v) }
func (e *encoder) u4(b *bytes.Buffer, v uint32) { _ = binary.Write(b, binary.BigEndian, v) }

func (e *encoder) utf8(s string) uint16 {
	if i, ok := e.utf8s[s]; ok {
		return i
	}

	raw := EncodeModifiedUTF8(s)
	e.u1(&e.pool, 1)
	e.u2(&e.pool, uint16(len(raw)))
	e.pool.Write(raw)

	i := e.next
	e.next++
	e.utf8s[s] = i

	return i
}

func (e *encoder) class(path string) uint16 {
	if i, ok := e.classes[path]; ok {
		return i
	}

	name := e.utf8(path)
	e.u1(&e.pool, 7)
	e.u2(&e.pool, name)

	i := e.next
	e.next++
	e.classes[path] = i

	return i
}

func (e *encoder) constant(c *jvm.Constant) uint16 {
	i := e.next

	switch c.Kind {
	case jvm.ConstInt:
		e.u1(&e.pool, 3)
		e.u4(&e.pool, uint32(int32(c.Int)))
		e.next++
	case jvm.ConstFloat:
		e.u1(&e.pool, 4)
		e.u4(&e.pool, math.Float32bits(float32(c.Float)))
		e.next++
	case jvm.ConstLong:
		e.u1(&e.pool, 5)
		_ = binary.Write(&e.pool, binary.BigEndian, uint64(c.Int))
		e.next += 2
	case jvm.ConstDouble:
		e.u1(&e.pool, 6)
		_ = binary.Write(&e.pool, binary.BigEndian, math.Float64bits(c.Float))
		e.next += 2
	case jvm.ConstString:
		s := e.utf8(c.String)
		i = e.next
		e.u1(&e.pool, 8)
		e.u2(&e.pool, s)
		e.next++
	}

	return i
}

func (e *encoder) attr(b *bytes.Buffer, name string, body []byte) {
	e.u2(b, e.utf8(name))
	e.u4(b, uint32(len(body)))
	b.Write(body)
}

// Encode renders c as a class file. Nested classes (a '$' in the path) get
// an InnerClasses entry carrying c.Access; the top-level flags then keep
// only what a class file can express.
func Encode(c *jvm.Class) []byte {
	e := &encoder{next: 1, utf8s: map[string]uint16{}, classes: map[string]uint16{}}

	var body bytes.Buffer

	access := c.Access
	nested := len(jvm.SplitPath(c.Path).Containing) > 0

	if nested {
		if access.Has(jvm.AccProtected) {
			access |= jvm.AccPublic
		}

		access &^= jvm.AccPrivate | jvm.AccProtected | jvm.AccStatic
	}

	e.u2(&body, uint16(access))
	e.u2(&body, e.class(c.Path))

	if c.SuperPath == "" {
		e.u2(&body, 0)
	} else {
		e.u2(&body, e.class(c.SuperPath))
	}

	e.u2(&body, uint16(len(c.Interfaces)))

	for _, iface := range c.Interfaces {
		e.u2(&body, e.class(iface))
	}

	e.u2(&body, uint16(len(c.Fields)))

	for _, f := range c.Fields {
		e.u2(&body, uint16(f.Access))
		e.u2(&body, e.utf8(f.Name))
		e.u2(&body, e.utf8(f.Type.String()))

		var attrs []attribute
		if f.Constant != nil {
			var v bytes.Buffer
			e.u2(&v, e.constant(f.Constant))
			attrs = append(attrs, attribute{"ConstantValue", v.Bytes()})
		}

		if f.Deprecated {
			attrs = append(attrs, attribute{"Deprecated", []byte{}})
		}

		e.attrs(&body, attrs)
	}

	e.u2(&body, uint16(len(c.Methods)))

	for _, m := range c.Methods {
		e.u2(&body, uint16(m.Access))
		e.u2(&body, e.utf8(m.Name))
		e.u2(&body, e.utf8(m.Descriptor.String()))

		var attrs []attribute
		if m.Deprecated {
			attrs = append(attrs, attribute{"RuntimeVisibleAnnotations", e.deprecatedAnnotation()})
		}

		e.attrs(&body, attrs)
	}

	var attrs []attribute
	if c.Deprecated {
		attrs = append(attrs, attribute{"Deprecated", []byte{}})
	}

	if nested {
		var v bytes.Buffer
		e.u2(&v, 1)
		e.u2(&v, e.class(c.Path))
		e.u2(&v, 0)
		e.u2(&v, e.utf8(jvm.SimpleName(c.Path)))
		e.u2(&v, uint16(c.Access))
		attrs = append(attrs, attribute{"InnerClasses", v.Bytes()})
	}

	e.attrs(&body, attrs)

	var out bytes.Buffer
	e.u4(&out, 0xCAFEBABE)
	e.u2(&out, 0)
	e.u2(&out, 52)
	e.u2(&out, e.next)
	out.Write(e.pool.Bytes())
	out.Write(body.Bytes())

	return out.Bytes()
}

// deprecatedAnnotation encodes one @Deprecated annotation carrying an
// element value pair, so readers must skip element values correctly.
func (e *encoder) deprecatedAnnotation() []byte {
	var v bytes.Buffer
	e.u2(&v, 1)
	e.u2(&v, e.utf8("Ljava/lang/Deprecated;"))
	e.u2(&v, 1)
	e.u2(&v, e.utf8("since"))
	e.u1(&v, 's')
	e.u2(&v, e.utf8("9"))

	return v.Bytes()
}

func (e *encoder) attrs(b *bytes.Buffer, attrs []attribute) {
	e.u2(b, uint16(len(attrs)))

	for _, a := range attrs {
		e.attr(b, a.name, a.body)
	}
}

// EncodeModifiedUTF8 encodes s the way class files store strings.
func EncodeModifiedUTF8(s string) []byte {
	var out []byte

	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, byte(0xC0|u>>6), byte(0x80|u&0x3F))
		default:
			out = append(out, byte(0xE0|u>>12), byte(0x80|(u>>6)&0x3F), byte(0x80|u&0x3F))
		}
	}

	return out
}

// WriteJar writes classes into a JAR archive at path.
func WriteJar(path string, classes ...*jvm.Class) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(f)

	for _, c := range classes {
		w, err := zw.Create(c.Path + ".class")
		if err != nil {
			_ = f.Close()
			return err
		}

		if _, err := w.Write(Encode(c)); err != nil {
			_ = f.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
