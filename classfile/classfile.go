package classfile

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

func (cf *ClassFile) attributes() []AttributeInfo { return cf.Attributes }

// ClassName returns the internal name, e.g. "java/util/Map$Entry".
func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool {
	return cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsEnum() bool {
	return cf.AccessFlags.IsEnum()
}

func (cf *ClassFile) GetField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name(cf.ConstantPool) == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

func (cf *ClassFile) GetMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name(cf.ConstantPool) == name {
			if descriptor == "" || cf.Methods[i].Descriptor(cf.ConstantPool) == descriptor {
				return &cf.Methods[i]
			}
		}
	}
	return nil
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	return findAttribute(cf, cf.ConstantPool, name)
}

// Signature returns the class signature, if the class carries one.
func (cf *ClassFile) Signature() (string, bool) {
	return signatureOf(cf, cf.ConstantPool)
}

// OuterClassName returns the internal name of the class that declares
// this one as a member, using the InnerClasses attribute.
func (cf *ClassFile) OuterClassName() string {
	attr := cf.GetAttribute(AttrInnerClasses)
	if attr == nil || attr.AsInnerClasses() == nil {
		return ""
	}
	for _, entry := range attr.AsInnerClasses().Classes {
		if entry.InnerClassInfoIndex == cf.ThisClass && entry.OuterClassInfoIndex != 0 {
			return cf.ConstantPool.GetClassName(entry.OuterClassInfoIndex)
		}
	}
	return ""
}

// InnerClassFlags returns the source-level flags of a nested class, which
// the class file's own access flags do not carry, or nil for top level
// classes.
func (cf *ClassFile) InnerClassFlags() *AccessFlags {
	attr := cf.GetAttribute(AttrInnerClasses)
	if attr == nil || attr.AsInnerClasses() == nil {
		return nil
	}
	for _, entry := range attr.AsInnerClasses().Classes {
		if entry.InnerClassInfoIndex == cf.ThisClass {
			flags := entry.InnerClassAccessFlags
			return &flags
		}
	}
	return nil
}

// EnclosingMethod reports the class, method name and descriptor that
// enclose a local or anonymous class. name is empty when the class is
// enclosed by an initializer.
func (cf *ClassFile) EnclosingMethod() (class, name, descriptor string, ok bool) {
	attr := cf.GetAttribute(AttrEnclosingMethod)
	if attr == nil || attr.AsEnclosingMethod() == nil {
		return "", "", "", false
	}
	em := attr.AsEnclosingMethod()
	class = cf.ConstantPool.GetClassName(em.ClassIndex)
	if em.MethodIndex != 0 {
		name, descriptor = cf.ConstantPool.GetNameAndType(em.MethodIndex)
	}
	return class, name, descriptor, true
}
