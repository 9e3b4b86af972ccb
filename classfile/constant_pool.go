package classfile

import "strings"

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndTypeInfo) Tag() ConstantTag { return ConstantNameAndType }

// ConstantRawInfo holds an entry whose contents signature processing
// never looks at. Data is the payload after the tag byte.
type ConstantRawInfo struct {
	Kind ConstantTag
	Data []byte
}

func (c *ConstantRawInfo) Tag() ConstantTag { return c.Kind }

// ConstantPool is indexed from 1 like the class file format; the entry
// following a long or double is nil.
type ConstantPool []ConstantPoolEntry

func (cp ConstantPool) entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantUtf8Info); ok {
		return entry.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if entry, ok := cp.entry(index).(*ConstantClassInfo); ok {
		return cp.GetUtf8(entry.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if entry, ok := cp.entry(index).(*ConstantNameAndTypeInfo); ok {
		return cp.GetUtf8(entry.NameIndex), cp.GetUtf8(entry.DescriptorIndex)
	}
	return "", ""
}

// Pool builds a constant pool, reusing entries that were added before.
type Pool struct {
	entries ConstantPool
	utf8    map[string]uint16
	classes map[string]uint16
}

func NewPool() *Pool {
	return &Pool{utf8: map[string]uint16{}, classes: map[string]uint16{}}
}

func (p *Pool) add(e ConstantPoolEntry) uint16 {
	p.entries = append(p.entries, e)
	return uint16(len(p.entries))
}

func (p *Pool) Utf8(s string) uint16 {
	if idx, ok := p.utf8[s]; ok {
		return idx
	}
	idx := p.add(&ConstantUtf8Info{Value: s})
	p.utf8[s] = idx
	return idx
}

// Class adds a class entry for an internal name such as "java/lang/Object".
func (p *Pool) Class(internalName string) uint16 {
	if idx, ok := p.classes[internalName]; ok {
		return idx
	}
	idx := p.add(&ConstantClassInfo{NameIndex: p.Utf8(internalName)})
	p.classes[internalName] = idx
	return idx
}

func (p *Pool) NameAndType(name, descriptor string) uint16 {
	return p.add(&ConstantNameAndTypeInfo{NameIndex: p.Utf8(name), DescriptorIndex: p.Utf8(descriptor)})
}

func (p *Pool) Entries() ConstantPool {
	return p.entries
}

func InternalToBinaryName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func BinaryToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
