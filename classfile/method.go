package classfile

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) attributes() []AttributeInfo { return m.Attributes }

func (m *MethodInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *MethodInfo) GetAttribute(cp ConstantPool, name string) *AttributeInfo {
	return findAttribute(m, cp, name)
}

func (m *MethodInfo) Signature(cp ConstantPool) (string, bool) {
	return signatureOf(m, cp)
}

// ExceptionNames returns the internal names listed in the Exceptions
// attribute.
func (m *MethodInfo) ExceptionNames(cp ConstantPool) []string {
	attr := m.GetAttribute(cp, AttrExceptions)
	if attr == nil || attr.AsExceptions() == nil {
		return nil
	}
	table := attr.AsExceptions().ExceptionIndexTable
	names := make([]string, len(table))
	for i, idx := range table {
		names[i] = cp.GetClassName(idx)
	}
	return names
}

func (m *MethodInfo) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *MethodInfo) IsBridge() bool    { return m.AccessFlags.IsBridge() }
func (m *MethodInfo) IsVarargs() bool   { return m.AccessFlags.IsVarargs() }
func (m *MethodInfo) IsAbstract() bool  { return m.AccessFlags.IsAbstract() }
func (m *MethodInfo) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}
