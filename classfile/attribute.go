package classfile

import (
	"encoding/binary"
	"fmt"
)

type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    interface{}
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

// EnclosingMethodAttribute marks local and anonymous classes. MethodIndex
// is zero when the class is not enclosed by a method or constructor.
type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

func (a *AttributeInfo) AsSignature() *SignatureAttribute {
	if s, ok := a.Parsed.(*SignatureAttribute); ok {
		return s
	}
	return nil
}

func (a *AttributeInfo) AsExceptions() *ExceptionsAttribute {
	if e, ok := a.Parsed.(*ExceptionsAttribute); ok {
		return e
	}
	return nil
}

func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	if ic, ok := a.Parsed.(*InnerClassesAttribute); ok {
		return ic
	}
	return nil
}

func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	if em, ok := a.Parsed.(*EnclosingMethodAttribute); ok {
		return em
	}
	return nil
}

func parseAttribute(name string, info []byte) (interface{}, error) {
	switch name {
	case AttrSignature:
		if len(info) != 2 {
			return nil, fmt.Errorf("Signature attribute has length %d, want 2", len(info))
		}
		return &SignatureAttribute{SignatureIndex: binary.BigEndian.Uint16(info)}, nil
	case AttrExceptions:
		return parseExceptionsAttribute(info)
	case AttrInnerClasses:
		return parseInnerClassesAttribute(info)
	case AttrEnclosingMethod:
		if len(info) != 4 {
			return nil, fmt.Errorf("EnclosingMethod attribute has length %d, want 4", len(info))
		}
		return &EnclosingMethodAttribute{
			ClassIndex:  binary.BigEndian.Uint16(info[0:2]),
			MethodIndex: binary.BigEndian.Uint16(info[2:4]),
		}, nil
	}
	return nil, nil
}

func parseExceptionsAttribute(info []byte) (*ExceptionsAttribute, error) {
	if len(info) < 2 {
		return nil, fmt.Errorf("Exceptions attribute truncated")
	}
	count := binary.BigEndian.Uint16(info[0:2])
	if len(info) != 2+int(count)*2 {
		return nil, fmt.Errorf("Exceptions attribute has length %d for %d entries", len(info), count)
	}

	ex := &ExceptionsAttribute{
		ExceptionIndexTable: make([]uint16, count),
	}
	offset := 2
	for i := uint16(0); i < count; i++ {
		ex.ExceptionIndexTable[i] = binary.BigEndian.Uint16(info[offset : offset+2])
		offset += 2
	}
	return ex, nil
}

func parseInnerClassesAttribute(info []byte) (*InnerClassesAttribute, error) {
	if len(info) < 2 {
		return nil, fmt.Errorf("InnerClasses attribute truncated")
	}
	count := binary.BigEndian.Uint16(info[0:2])
	if len(info) != 2+int(count)*8 {
		return nil, fmt.Errorf("InnerClasses attribute has length %d for %d entries", len(info), count)
	}

	ic := &InnerClassesAttribute{
		Classes: make([]InnerClassEntry, count),
	}
	offset := 2
	for i := uint16(0); i < count; i++ {
		ic.Classes[i] = InnerClassEntry{
			InnerClassInfoIndex:   binary.BigEndian.Uint16(info[offset : offset+2]),
			OuterClassInfoIndex:   binary.BigEndian.Uint16(info[offset+2 : offset+4]),
			InnerNameIndex:        binary.BigEndian.Uint16(info[offset+4 : offset+6]),
			InnerClassAccessFlags: AccessFlags(binary.BigEndian.Uint16(info[offset+6 : offset+8])),
		}
		offset += 8
	}
	return ic, nil
}

// attributeOwner is implemented by everything that carries attributes.
type attributeOwner interface {
	attributes() []AttributeInfo
}

func findAttribute(owner attributeOwner, cp ConstantPool, name string) *AttributeInfo {
	attrs := owner.attributes()
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

func signatureOf(owner attributeOwner, cp ConstantPool) (string, bool) {
	attr := findAttribute(owner, cp, AttrSignature)
	if attr == nil {
		return "", false
	}
	sig := attr.AsSignature()
	if sig == nil {
		return "", false
	}
	return cp.GetUtf8(sig.SignatureIndex), true
}
