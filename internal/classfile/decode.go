package classfile

import (
	"fmt"
	"math"

	"binding-generator/internal/jvm"
)

const magic = 0xCAFEBABE

// Constant pool tags.
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

const deprecatedAnnotation = "Ljava/lang/Deprecated;"

type cpEntry struct {
	tag   uint8
	index uint16 // Class, String: name/utf8 index
	bits  uint64 // Integer, Float, Long, Double raw bits
	utf8  string
}

type decoder struct {
	r    byteReader
	pool []cpEntry
}

// Parse decodes a single class file.
func Parse(data []byte) (*jvm.Class, error) {
	d := &decoder{r: byteReader{data: data}}

	class, err := d.class()
	if err != nil {
		return nil, err
	}

	return class, nil
}

func (d *decoder) class() (*jvm.Class, error) {
	if d.r.u4() != magic {
		d.r.fail("bad magic number")
		return nil, d.r.err
	}

	d.r.u2() // minor
	d.r.u2() // major

	if err := d.constantPool(); err != nil {
		return nil, err
	}

	class := &jvm.Class{Access: jvm.AccessFlags(d.r.u2())}

	var err error

	if class.Path, err = d.classRef(d.r.u2()); err != nil {
		return nil, err
	}

	if super := d.r.u2(); super != 0 {
		if class.SuperPath, err = d.classRef(super); err != nil {
			return nil, err
		}
	}

	for range d.r.u2() {
		iface, err := d.classRef(d.r.u2())
		if err != nil {
			return nil, err
		}

		class.Interfaces = append(class.Interfaces, iface)
	}

	for range d.r.u2() {
		f, err := d.field()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", class.Path, err)
		}

		class.Fields = append(class.Fields, f)
	}

	for range d.r.u2() {
		m, err := d.method(class.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", class.Path, err)
		}

		class.Methods = append(class.Methods, m)
	}

	err = d.attributes(func(name string, body *byteReader) error {
		switch name {
		case "Deprecated":
			class.Deprecated = true
		case "Synthetic":
			class.Access |= jvm.AccSynthetic
		case "RuntimeVisibleAnnotations":
			if d.hasAnnotation(body, deprecatedAnnotation) {
				class.Deprecated = true
			}
		case "InnerClasses":
			return d.innerClasses(body, class)
		}

		return body.err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", class.Path, err)
	}

	return class, d.r.err
}

func (d *decoder) constantPool() error {
	count := int(d.r.u2())
	d.pool = make([]cpEntry, count)

	for i := 1; i < count; i++ {
		e := &d.pool[i]
		e.tag = d.r.u1()

		switch e.tag {
		case tagUtf8:
			raw := d.r.take(int(d.r.u2()))
			if d.r.err != nil {
				return d.r.err
			}

			s, err := decodeModifiedUTF8(raw)
			if err != nil {
				d.r.fail("constant pool entry %d: %v", i, err)
				return d.r.err
			}

			e.utf8 = s
		case tagInteger, tagFloat:
			e.bits = uint64(d.r.u4())
		case tagLong, tagDouble:
			e.bits = d.r.u8()
			i++ // 8-byte constants occupy two slots
		case tagClass, tagString, tagMethodType, tagModule, tagPackage:
			e.index = d.r.u2()
		case tagFieldref, tagMethodref, tagInterfaceMethodref, tagNameAndType, tagDynamic, tagInvokeDynamic:
			d.r.take(4)
		case tagMethodHandle:
			d.r.take(3)
		default:
			d.r.fail("constant pool entry %d: unknown tag %d", i, e.tag)
		}

		if d.r.err != nil {
			return d.r.err
		}
	}

	return nil
}

func (d *decoder) entry(index uint16, tag uint8) (*cpEntry, error) {
	if int(index) == 0 || int(index) >= len(d.pool) || d.pool[index].tag != tag {
		return nil, &FormatError{Offset: d.r.pos, Msg: fmt.Sprintf("constant pool index %d is not tag %d", index, tag)}
	}

	return &d.pool[index], nil
}

func (d *decoder) utf8(index uint16) (string, error) {
	e, err := d.entry(index, tagUtf8)
	if err != nil {
		return "", err
	}

	return e.utf8, nil
}

func (d *decoder) classRef(index uint16) (string, error) {
	if d.r.err != nil {
		return "", d.r.err
	}

	e, err := d.entry(index, tagClass)
	if err != nil {
		return "", err
	}

	return d.utf8(e.index)
}

func (d *decoder) field() (*jvm.Field, error) {
	access := jvm.AccessFlags(d.r.u2())
	name, err := d.utf8(d.r.u2())
	if err != nil {
		return nil, err
	}

	desc, err := d.utf8(d.r.u2())
	if err != nil {
		return nil, err
	}

	typ, err := jvm.ParseFieldDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}

	f := &jvm.Field{Name: name, Type: typ, Access: access}

	err = d.attributes(func(attr string, body *byteReader) error {
		switch attr {
		case "ConstantValue":
			c, err := d.constant(body.u2(), typ)
			if err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}

			f.Constant = c
		case "Deprecated":
			f.Deprecated = true
		case "Synthetic":
			f.Access |= jvm.AccSynthetic
		case "RuntimeVisibleAnnotations":
			if d.hasAnnotation(body, deprecatedAnnotation) {
				f.Deprecated = true
			}
		}

		return body.err
	})
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (d *decoder) method(owner string) (*jvm.Method, error) {
	access := jvm.AccessFlags(d.r.u2())
	name, err := d.utf8(d.r.u2())
	if err != nil {
		return nil, err
	}

	desc, err := d.utf8(d.r.u2())
	if err != nil {
		return nil, err
	}

	md, err := jvm.ParseMethodDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("method %s: %w", name, err)
	}

	m := &jvm.Method{Name: name, Descriptor: md, Access: access, Owner: owner}

	err = d.attributes(func(attr string, body *byteReader) error {
		switch attr {
		case "Deprecated":
			m.Deprecated = true
		case "Synthetic":
			m.Access |= jvm.AccSynthetic
		case "RuntimeVisibleAnnotations":
			if d.hasAnnotation(body, deprecatedAnnotation) {
				m.Deprecated = true
			}
		}

		return body.err
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// attributes walks an attribute table, handing each body to fn as its own
// bounded reader.
func (d *decoder) attributes(fn func(name string, body *byteReader) error) error {
	for range d.r.u2() {
		nameIndex := d.r.u2()
		length := d.r.u4()
		start := d.r.pos
		data := d.r.take(int(length))

		if d.r.err != nil {
			return d.r.err
		}

		name, err := d.utf8(nameIndex)
		if err != nil {
			return err
		}

		body := &byteReader{data: data}
		if err := fn(name, body); err != nil {
			if fe, ok := err.(*FormatError); ok && err == body.err {
				fe.Offset += start
			}

			return err
		}
	}

	return d.r.err
}

func (d *decoder) constant(index uint16, typ jvm.TypeDescriptor) (*jvm.Constant, error) {
	if int(index) == 0 || int(index) >= len(d.pool) {
		return nil, &FormatError{Offset: d.r.pos, Msg: fmt.Sprintf("constant value index %d out of range", index)}
	}

	e := &d.pool[index]

	switch e.tag {
	case tagInteger:
		return &jvm.Constant{Kind: jvm.ConstInt, Int: int64(int32(uint32(e.bits)))}, nil
	case tagLong:
		return &jvm.Constant{Kind: jvm.ConstLong, Int: int64(e.bits)}, nil
	case tagFloat:
		return &jvm.Constant{Kind: jvm.ConstFloat, Float: float64(math.Float32frombits(uint32(e.bits)))}, nil
	case tagDouble:
		return &jvm.Constant{Kind: jvm.ConstDouble, Float: math.Float64frombits(e.bits)}, nil
	case tagString:
		s, err := d.utf8(e.index)
		if err != nil {
			return nil, err
		}

		return &jvm.Constant{Kind: jvm.ConstString, String: s}, nil
	default:
		return nil, &FormatError{
			Offset: d.r.pos,
			Msg:    fmt.Sprintf("constant value of type %s has pool tag %d", typ, e.tag),
		}
	}
}

// innerClasses applies the source-level modifiers recorded for the class
// itself, which the top-level access_flags cannot express.
func (d *decoder) innerClasses(body *byteReader, class *jvm.Class) error {
	for range body.u2() {
		inner := body.u2()
		body.u2() // outer_class_info_index
		body.u2() // inner_name_index
		flags := jvm.AccessFlags(body.u2())

		if body.err != nil {
			return body.err
		}

		name, err := d.classRef(inner)
		if err != nil {
			return err
		}

		if name == class.Path {
			class.Access = flags
		}
	}

	return body.err
}

func (d *decoder) hasAnnotation(body *byteReader, descriptor string) bool {
	found := false

	for range body.u2() {
		typeIndex := body.u2()
		if body.err != nil {
			return found
		}

		if name, err := d.utf8(typeIndex); err == nil && name == descriptor {
			found = true
		}

		skipAnnotationPairs(body)
	}

	return found
}

func skipAnnotationPairs(body *byteReader) {
	for range body.u2() {
		body.u2() // element_name_index
		skipElementValue(body)
	}
}

func skipElementValue(body *byteReader) {
	switch tag := body.u1(); tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		body.u2()
	case 'e':
		body.u2()
		body.u2()
	case '@':
		body.u2()
		skipAnnotationPairs(body)
	case '[':
		for range body.u2() {
			skipElementValue(body)
		}
	default:
		body.fail("unknown element_value tag %q", tag)
	}
}
