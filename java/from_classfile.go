package java

import (
	"fmt"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/signature"
)

// ClassModelFromFile reads a class file without a class loader and
// builds its model.
func ClassModelFromFile(path string) (*ClassModel, error) {
	c, err := ReadClassFile(path, nil)
	if err != nil {
		return nil, err
	}
	return ClassModelOf(c), nil
}

// ClassModelOf builds the model of c from its parsed signatures. A
// malformed signature is recorded in the Error field of the class or
// member it belongs to.
func ClassModelOf(c *Class) *ClassModel {
	model := &ClassModel{
		Name:       c.Name(),
		SimpleName: c.SimpleName(),
		Package:    c.Package(),
		Kind:       classKindOf(c),
		Modifiers:  modifiers(classModifierFlags(c)),
	}
	if sig, ok := c.Signature(); ok {
		model.Signature = sig
	}

	if decl, err := c.Declaration(); err != nil {
		model.Error = err.Error()
	} else if decl != nil {
		model.TypeParameters = typeParameterStrings(decl.TypeParameters)
		if !c.IsInterface() && !c.IsAnnotation() {
			model.SuperClass = decl.SuperClass.String()
		}
		model.Interfaces = typeStrings(decl.SuperInterfaces)
	} else {
		if super := c.ClassFile().SuperClassName(); super != "" && !c.IsInterface() && !c.IsAnnotation() {
			model.SuperClass = (&signature.ClassType{Name: classfile.InternalToBinaryName(super)}).String()
		}
		for _, iface := range c.ClassFile().InterfaceNames() {
			model.Interfaces = append(model.Interfaces, (&signature.ClassType{Name: classfile.InternalToBinaryName(iface)}).String())
		}
	}

	for _, f := range c.Fields() {
		if f.IsSynthetic() {
			continue
		}
		model.Fields = append(model.Fields, fieldModel(f))
	}
	for _, ctor := range c.Constructors() {
		if ctor.IsSynthetic() {
			continue
		}
		model.Constructors = append(model.Constructors, constructorModel(ctor))
	}
	for _, m := range c.Methods() {
		if m.IsSynthetic() || m.IsBridge() {
			continue
		}
		model.Methods = append(model.Methods, methodModel(m))
	}
	return model
}

func classKindOf(c *Class) ClassKind {
	switch {
	case c.IsAnnotation():
		return ClassKindAnnotation
	case c.IsEnum():
		return ClassKindEnum
	case c.IsInterface():
		return ClassKindInterface
	}
	return ClassKindClass
}

// classModifierFlags drops the flags implied by the class kind.
func classModifierFlags(c *Class) classfile.AccessFlags {
	flags := c.ClassFile().AccessFlags
	if outer := c.ClassFile().InnerClassFlags(); outer != nil {
		flags = *outer
	}
	if c.IsInterface() {
		flags &^= classfile.AccAbstract | classfile.AccStatic
	}
	if c.IsEnum() {
		flags &^= classfile.AccFinal
	}
	return flags
}

// modifiers lists the Java source modifiers in flags, in the order
// javac prints them.
func modifiers(flags classfile.AccessFlags) []string {
	var mods []string
	switch {
	case flags.IsPublic():
		mods = append(mods, "public")
	case flags.IsProtected():
		mods = append(mods, "protected")
	case flags.IsPrivate():
		mods = append(mods, "private")
	}
	if flags.IsAbstract() {
		mods = append(mods, "abstract")
	}
	if flags.IsStatic() {
		mods = append(mods, "static")
	}
	if flags.IsFinal() {
		mods = append(mods, "final")
	}
	return mods
}

func fieldModel(f *Field) MemberModel {
	model := MemberModel{Name: f.Name(), Descriptor: f.Descriptor(), Static: f.IsStatic(), Modifiers: modifiers(f.Info().AccessFlags)}
	if sig, ok := f.Signature(); ok {
		model.Signature = sig
	}
	decl, err := f.Declaration()
	if err != nil {
		model.Error = err.Error()
		return model
	}
	model.Type = decl.FieldType.String()
	return model
}

func methodModel(m *Method) MemberModel {
	flags := m.Info().AccessFlags
	if m.DeclaringClass().IsInterface() {
		flags &^= classfile.AccAbstract | classfile.AccPublic
	}
	model := MemberModel{Name: m.Name(), Descriptor: m.Descriptor(), Static: m.IsStatic(), Modifiers: modifiers(flags)}
	if sig, ok := m.Signature(); ok {
		model.Signature = sig
	}
	decl, err := m.Declaration()
	if err != nil {
		model.Error = err.Error()
		return model
	}
	model.TypeParameters = typeParameterStrings(decl.TypeParameters)
	model.Type = decl.ReturnValue.String()
	model.Parameters = typeStrings(decl.MethodParameters)
	model.Throws = throwsStrings(decl.Throwns, &m.executable)
	return model
}

func constructorModel(c *Constructor) MemberModel {
	model := MemberModel{Name: c.Name(), Descriptor: c.Descriptor(), Modifiers: modifiers(c.Info().AccessFlags)}
	if sig, ok := c.Signature(); ok {
		model.Signature = sig
	}
	decl, err := c.Declaration()
	if err != nil {
		model.Error = err.Error()
		return model
	}
	model.TypeParameters = typeParameterStrings(decl.TypeParameters)
	model.Parameters = typeStrings(decl.MethodParameters)
	model.Throws = throwsStrings(decl.Throwns, &c.executable)
	return model
}

// throwsStrings uses the Exceptions attribute when the signature has no
// throws clause.
func throwsStrings(throws []signature.GenericType, e *executable) []string {
	if len(throws) > 0 {
		return typeStrings(throws)
	}
	var names []string
	for _, name := range e.info.ExceptionNames(e.class.cf.ConstantPool) {
		names = append(names, (&signature.ClassType{Name: classfile.InternalToBinaryName(name)}).String())
	}
	return names
}

func typeStrings(types []signature.GenericType) []string {
	if len(types) == 0 {
		return nil
	}
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

func typeParameterStrings(params []*signature.TypeParameter) []string {
	if len(params) == 0 {
		return nil
	}
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.String()
	}
	return out
}

// ResolvedString renders a resolved type with its bounds, for
// diagnostics.
func ResolvedString(t Type) string {
	if v, ok := t.(*TypeVariable); ok {
		bounds, err := v.Bounds()
		if err != nil {
			return fmt.Sprintf("%s (bounds: %v)", v.name, err)
		}
		if len(bounds) == 1 {
			if c, ok := bounds[0].(*Class); ok && c.Name() == signature.ObjectClassName {
				return v.name
			}
		}
		s := v.name + " extends "
		for i, b := range bounds {
			if i > 0 {
				s += " & "
			}
			s += b.TypeName()
		}
		return s
	}
	return t.TypeName()
}
