package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
)

type writer struct {
	buf bytes.Buffer
}

func (w *writer) u1(v uint8)  { w.buf.WriteByte(v) }
func (w *writer) u2(v uint16) { w.buf.Write(binary.BigEndian.AppendUint16(nil, v)) }
func (w *writer) u4(v uint32) { w.buf.Write(binary.BigEndian.AppendUint32(nil, v)) }

// WriteTo encodes the class file. Attribute bodies are written from
// Info; Parsed is ignored.
func (cf *ClassFile) WriteTo(out io.Writer) (int64, error) {
	w := &writer{}
	w.u4(Magic)
	w.u2(cf.MinorVersion)
	w.u2(cf.MajorVersion)

	w.u2(uint16(len(cf.ConstantPool) + 1))
	for i, entry := range cf.ConstantPool {
		if entry == nil {
			continue
		}
		if err := writeConstantPoolEntry(w, entry); err != nil {
			return 0, fmt.Errorf("failed to write constant pool entry %d: %w", i+1, err)
		}
	}

	w.u2(uint16(cf.AccessFlags))
	w.u2(cf.ThisClass)
	w.u2(cf.SuperClass)
	w.u2(uint16(len(cf.Interfaces)))
	for _, idx := range cf.Interfaces {
		w.u2(idx)
	}

	w.u2(uint16(len(cf.Fields)))
	for _, f := range cf.Fields {
		writeMember(w, f.AccessFlags, f.NameIndex, f.DescriptorIndex, f.Attributes)
	}
	w.u2(uint16(len(cf.Methods)))
	for _, m := range cf.Methods {
		writeMember(w, m.AccessFlags, m.NameIndex, m.DescriptorIndex, m.Attributes)
	}
	writeAttributes(w, cf.Attributes)

	n, err := out.Write(w.buf.Bytes())
	return int64(n), err
}

// Bytes returns the encoded class file.
func (cf *ClassFile) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := cf.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeConstantPoolEntry(w *writer, entry ConstantPoolEntry) error {
	w.u1(uint8(entry.Tag()))
	switch e := entry.(type) {
	case *ConstantUtf8Info:
		data := encodeModifiedUtf8(e.Value)
		if len(data) > 0xFFFF {
			return fmt.Errorf("utf8 constant too long: %d bytes", len(data))
		}
		w.u2(uint16(len(data)))
		w.buf.Write(data)
	case *ConstantClassInfo:
		w.u2(e.NameIndex)
	case *ConstantNameAndTypeInfo:
		w.u2(e.NameIndex)
		w.u2(e.DescriptorIndex)
	case *ConstantRawInfo:
		if payloadSize[e.Kind] != len(e.Data) {
			return fmt.Errorf("constant tag %d needs %d bytes, got %d", e.Kind, payloadSize[e.Kind], len(e.Data))
		}
		w.buf.Write(e.Data)
	default:
		return fmt.Errorf("unsupported constant pool entry %T", entry)
	}
	return nil
}

func writeMember(w *writer, flags AccessFlags, name, desc uint16, attrs []AttributeInfo) {
	w.u2(uint16(flags))
	w.u2(name)
	w.u2(desc)
	writeAttributes(w, attrs)
}

func writeAttributes(w *writer, attrs []AttributeInfo) {
	w.u2(uint16(len(attrs)))
	for _, a := range attrs {
		w.u2(a.NameIndex)
		w.u4(uint32(len(a.Info)))
		w.buf.Write(a.Info)
	}
}

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	put := func(c uint16) {
		switch {
		case c != 0 && c < 0x80:
			out = append(out, byte(c))
		case c < 0x800:
			out = append(out, byte(0xC0|c>>6), byte(0x80|c&0x3F))
		default:
			out = append(out, byte(0xE0|c>>12), byte(0x80|(c>>6)&0x3F), byte(0x80|c&0x3F))
		}
	}
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			put(uint16(hi))
			put(uint16(lo))
			continue
		}
		put(uint16(r))
	}
	return out
}
