package java

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/internal/metrics"
	"github.com/dhamidi/jsig/signature"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jsig.java")

// Class is a loaded class file with reflective access to its generic
// declarations. Signatures are parsed on first access and resolved only
// when a generic accessor is called.
type Class struct {
	cf     *classfile.ClassFile
	loader ClassLoader
	repo   *Repository
	name   string

	declOnce sync.Once
	decl     *signature.ClassGenericDecl
	declErr  error

	paramsOnce sync.Once
	params     []*TypeVariable
	paramsErr  error

	membersOnce  sync.Once
	fields       []*Field
	methods      []*Method
	constructors []*Constructor
}

// NewClass wraps a parsed class file. loader resolves the classes its
// signatures refer to and may be nil.
func NewClass(cf *classfile.ClassFile, loader ClassLoader) *Class {
	return &Class{
		cf:     cf,
		loader: loader,
		repo:   NewRepository(),
		name:   classfile.InternalToBinaryName(cf.ClassName()),
	}
}

// ReadClass parses class file bytes.
func ReadClass(data []byte, loader ClassLoader) (*Class, error) {
	cf, err := classfile.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return NewClass(cf, loader), nil
}

func ReadClassFile(path string, loader ClassLoader) (*Class, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewClass(cf, loader), nil
}

// Name is the binary name, e.g. "java.util.Map$Entry".
func (c *Class) Name() string     { return c.name }
func (c *Class) TypeName() string { return c.name }
func (c *Class) String() string   { return c.name }

func (c *Class) SimpleName() string {
	name := c.name
	if outer := c.cf.OuterClassName(); outer != "" {
		return strings.TrimPrefix(name, classfile.InternalToBinaryName(outer)+"$")
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (c *Class) Package() string {
	if i := strings.LastIndexByte(c.name, '.'); i >= 0 {
		return c.name[:i]
	}
	return ""
}

func (c *Class) IsInterface() bool  { return c.cf.IsInterface() }
func (c *Class) IsAnnotation() bool { return c.cf.IsAnnotation() }
func (c *Class) IsEnum() bool       { return c.cf.IsEnum() }
func (c *Class) IsPublic() bool     { return c.cf.AccessFlags.IsPublic() }
func (c *Class) IsAbstract() bool   { return c.cf.AccessFlags.IsAbstract() }
func (c *Class) IsFinal() bool      { return c.cf.AccessFlags.IsFinal() }

func (c *Class) Loader() ClassLoader              { return c.loader }
func (c *Class) Repository() *Repository          { return c.repo }
func (c *Class) ClassFile() *classfile.ClassFile { return c.cf }
func (c *Class) declaringClass() *Class           { return c }

// Signature returns the raw class signature, if present.
func (c *Class) Signature() (string, bool) {
	return c.cf.Signature()
}

func (c *Class) HasSignature() bool {
	_, ok := c.cf.Signature()
	return ok
}

// Declaration returns the parsed class signature, or nil when the class
// has none.
func (c *Class) Declaration() (*signature.ClassGenericDecl, error) {
	c.declOnce.Do(func() {
		sig, ok := c.cf.Signature()
		if !ok {
			return
		}
		decl, err := parseSignature(sig, signature.KindClass, c.name)
		if err != nil {
			c.declErr = err
			return
		}
		c.decl = decl.(*signature.ClassGenericDecl)
	})
	return c.decl, c.declErr
}

func (c *Class) TypeParameters() ([]*TypeVariable, error) {
	c.paramsOnce.Do(func() {
		decl, err := c.Declaration()
		if err != nil {
			c.paramsErr = err
			return
		}
		if decl == nil {
			c.params = []*TypeVariable{}
			return
		}
		c.params = declareTypeVariables(decl.TypeParameters, c, newResolver(c, true))
	})
	return c.params, c.paramsErr
}

// Superclass returns the erased super class, or nil for interfaces and
// java.lang.Object.
func (c *Class) Superclass() (*Class, error) {
	super := c.cf.SuperClassName()
	if super == "" || c.cf.IsInterface() || c.cf.IsAnnotation() {
		return nil, nil
	}
	return newResolver(c, false).loadClass(classfile.InternalToBinaryName(super))
}

func (c *Class) Interfaces() ([]*Class, error) {
	res := newResolver(c, false)
	names := c.cf.InterfaceNames()
	ifaces := make([]*Class, len(names))
	for i, name := range names {
		iface, err := res.loadClass(classfile.InternalToBinaryName(name))
		if err != nil {
			return nil, err
		}
		ifaces[i] = iface
	}
	return ifaces, nil
}

// GenericSuperclass falls back to Superclass when the class has no
// signature. It is nil whenever Superclass is.
func (c *Class) GenericSuperclass() (Type, error) {
	decl, err := c.Declaration()
	if err != nil {
		return nil, err
	}
	if decl == nil {
		super, err := c.Superclass()
		if err != nil || super == nil {
			return nil, err
		}
		return super, nil
	}
	if c.cf.IsInterface() || c.cf.IsAnnotation() {
		return nil, nil
	}
	return newResolver(c, true).resolve(decl.SuperClass)
}

func (c *Class) GenericInterfaces() ([]Type, error) {
	decl, err := c.Declaration()
	if err != nil {
		return nil, err
	}
	if decl == nil {
		ifaces, err := c.Interfaces()
		if err != nil {
			return nil, err
		}
		types := make([]Type, len(ifaces))
		for i, iface := range ifaces {
			types[i] = iface
		}
		return types, nil
	}
	return newResolver(c, true).resolveAll(decl.SuperInterfaces)
}

// DeclaringClass returns the class this one is a member of, or nil.
func (c *Class) DeclaringClass() (*Class, error) {
	outer := c.cf.OuterClassName()
	if outer == "" {
		return nil, nil
	}
	return newResolver(c, false).loadClass(classfile.InternalToBinaryName(outer))
}

// EnclosingDeclaration returns the method, constructor or class that
// lexically encloses this one, or nil for top level classes.
func (c *Class) EnclosingDeclaration() (GenericDeclaration, error) {
	return c.enclosingDeclaration()
}

func (c *Class) enclosingDeclaration() (GenericDeclaration, error) {
	class, name, desc, ok := c.cf.EnclosingMethod()
	if !ok {
		outer, err := c.DeclaringClass()
		if err != nil || outer == nil {
			return nil, err
		}
		return outer, nil
	}

	enclosing, err := newResolver(c, false).loadClass(classfile.InternalToBinaryName(class))
	if err != nil {
		return nil, err
	}
	switch name {
	case "":
		return enclosing, nil
	case "<init>":
		if ctor := enclosing.Constructor(desc); ctor != nil {
			return ctor, nil
		}
	default:
		if m := enclosing.MethodByDescriptor(name, desc); m != nil {
			return m, nil
		}
	}
	return nil, &TypeNotPresentError{Name: class + "." + name + desc, Err: fmt.Errorf("enclosing method of %s not found", c.name)}
}

func (c *Class) loadMembers() {
	c.membersOnce.Do(func() {
		cp := c.cf.ConstantPool
		for i := range c.cf.Fields {
			c.fields = append(c.fields, &Field{class: c, info: &c.cf.Fields[i]})
		}
		for i := range c.cf.Methods {
			info := &c.cf.Methods[i]
			switch {
			case info.IsStaticInitializer(cp):
			case info.IsConstructor(cp):
				c.constructors = append(c.constructors, &Constructor{executable{class: c, info: info}})
			default:
				c.methods = append(c.methods, &Method{executable{class: c, info: info}})
			}
		}
	})
}

func (c *Class) Fields() []*Field {
	c.loadMembers()
	return c.fields
}

func (c *Class) Field(name string) *Field {
	for _, f := range c.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (c *Class) Methods() []*Method {
	c.loadMembers()
	return c.methods
}

// Method returns the first method called name.
func (c *Class) Method(name string) *Method {
	for _, m := range c.Methods() {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

func (c *Class) MethodByDescriptor(name, descriptor string) *Method {
	for _, m := range c.Methods() {
		if m.Name() == name && m.Descriptor() == descriptor {
			return m
		}
	}
	return nil
}

func (c *Class) MethodsByName(name string) []*Method {
	var methods []*Method
	for _, m := range c.Methods() {
		if m.Name() == name {
			methods = append(methods, m)
		}
	}
	return methods
}

func (c *Class) Constructors() []*Constructor {
	c.loadMembers()
	return c.constructors
}

// Constructor returns the constructor with the given descriptor, or the
// first one when descriptor is empty.
func (c *Class) Constructor(descriptor string) *Constructor {
	for _, ctor := range c.Constructors() {
		if descriptor == "" || ctor.Descriptor() == descriptor {
			return ctor
		}
	}
	return nil
}

func parseSignature(sig string, kind signature.Kind, owner string) (signature.Declaration, error) {
	decl, err := signature.Parse(sig, kind)
	metrics.SignaturesParsed.WithLabelValues(kind.String(), metrics.Outcome(err)).Inc()
	if err != nil {
		log.Warningf("malformed %s signature on %s: %s", kind, owner, err)
		return nil, fmt.Errorf("%s: %w", owner, err)
	}
	return decl, nil
}
