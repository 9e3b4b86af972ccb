package classfile

import "encoding/binary"

// Builder assembles a class file that carries only the structure
// needed for generic signature processing: no code, no constants
// beyond names.
type Builder struct {
	pool *Pool
	cf   *ClassFile
}

// NewBuilder starts a class with the given internal name and super
// class. An empty super class leaves it unset, as for java/lang/Object.
func NewBuilder(name, super string, flags AccessFlags) *Builder {
	b := &Builder{pool: NewPool(), cf: &ClassFile{MajorVersion: 61, AccessFlags: flags}}
	b.cf.ThisClass = b.pool.Class(name)
	if super != "" {
		b.cf.SuperClass = b.pool.Class(super)
	}
	return b
}

func (b *Builder) Interface(name string) *Builder {
	b.cf.Interfaces = append(b.cf.Interfaces, b.pool.Class(name))
	return b
}

func (b *Builder) signatureAttr(sig string) AttributeInfo {
	idx := b.pool.Utf8(sig)
	return AttributeInfo{
		NameIndex: b.pool.Utf8(AttrSignature),
		Info:      binary.BigEndian.AppendUint16(nil, idx),
		Parsed:    &SignatureAttribute{SignatureIndex: idx},
	}
}

// Signature sets the class Signature attribute.
func (b *Builder) Signature(sig string) *Builder {
	b.cf.Attributes = append(b.cf.Attributes, b.signatureAttr(sig))
	return b
}

// Field adds a field. sig may be empty.
func (b *Builder) Field(flags AccessFlags, name, descriptor, sig string) *Builder {
	f := FieldInfo{AccessFlags: flags, NameIndex: b.pool.Utf8(name), DescriptorIndex: b.pool.Utf8(descriptor)}
	if sig != "" {
		f.Attributes = append(f.Attributes, b.signatureAttr(sig))
	}
	b.cf.Fields = append(b.cf.Fields, f)
	return b
}

// Method adds a method or constructor. sig may be empty; exceptions are
// internal class names for the Exceptions attribute.
func (b *Builder) Method(flags AccessFlags, name, descriptor, sig string, exceptions ...string) *Builder {
	m := MethodInfo{AccessFlags: flags, NameIndex: b.pool.Utf8(name), DescriptorIndex: b.pool.Utf8(descriptor)}
	if sig != "" {
		m.Attributes = append(m.Attributes, b.signatureAttr(sig))
	}
	if len(exceptions) > 0 {
		table := make([]uint16, len(exceptions))
		info := binary.BigEndian.AppendUint16(nil, uint16(len(exceptions)))
		for i, ex := range exceptions {
			table[i] = b.pool.Class(ex)
			info = binary.BigEndian.AppendUint16(info, table[i])
		}
		m.Attributes = append(m.Attributes, AttributeInfo{
			NameIndex: b.pool.Utf8(AttrExceptions),
			Info:      info,
			Parsed:    &ExceptionsAttribute{ExceptionIndexTable: table},
		})
	}
	b.cf.Methods = append(b.cf.Methods, m)
	return b
}

// Outer records this class as a member of outer in an InnerClasses
// attribute.
func (b *Builder) Outer(outer, simpleName string, flags AccessFlags) *Builder {
	entry := InnerClassEntry{
		InnerClassInfoIndex:   b.cf.ThisClass,
		OuterClassInfoIndex:   b.pool.Class(outer),
		InnerNameIndex:        b.pool.Utf8(simpleName),
		InnerClassAccessFlags: flags,
	}
	info := binary.BigEndian.AppendUint16(nil, 1)
	info = binary.BigEndian.AppendUint16(info, entry.InnerClassInfoIndex)
	info = binary.BigEndian.AppendUint16(info, entry.OuterClassInfoIndex)
	info = binary.BigEndian.AppendUint16(info, entry.InnerNameIndex)
	info = binary.BigEndian.AppendUint16(info, uint16(entry.InnerClassAccessFlags))
	b.cf.Attributes = append(b.cf.Attributes, AttributeInfo{
		NameIndex: b.pool.Utf8(AttrInnerClasses),
		Info:      info,
		Parsed:    &InnerClassesAttribute{Classes: []InnerClassEntry{entry}},
	})
	return b
}

// EnclosingMethod marks the class as local to a method of class. An
// empty name means the class is declared in an initializer.
func (b *Builder) EnclosingMethod(class, name, descriptor string) *Builder {
	em := EnclosingMethodAttribute{ClassIndex: b.pool.Class(class)}
	if name != "" {
		em.MethodIndex = b.pool.NameAndType(name, descriptor)
	}
	info := binary.BigEndian.AppendUint16(nil, em.ClassIndex)
	info = binary.BigEndian.AppendUint16(info, em.MethodIndex)
	b.cf.Attributes = append(b.cf.Attributes, AttributeInfo{
		NameIndex: b.pool.Utf8(AttrEnclosingMethod),
		Info:      info,
		Parsed:    &em,
	})
	return b
}

func (b *Builder) Build() *ClassFile {
	b.cf.ConstantPool = b.pool.Entries()
	return b.cf
}
