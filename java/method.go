package java

import (
	"sync"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/signature"
)

// executable is the part shared by methods and constructors.
type executable struct {
	class *Class
	info  *classfile.MethodInfo

	erasedOnce sync.Once
	erased     *methodShape
	erasedErr  error

	genericOnce sync.Once
	generic     *methodShape
	genericErr  error

	paramsOnce sync.Once
	params     []*TypeVariable
}

// methodShape is the kind-independent view of a method or constructor
// declaration.
type methodShape struct {
	typeParams []*signature.TypeParameter
	params     []signature.GenericType
	ret        signature.GenericType
	throws     []signature.GenericType
}

func shapeOf(decl signature.Declaration) *methodShape {
	switch d := decl.(type) {
	case *signature.MethodGenericDecl:
		return &methodShape{typeParams: d.TypeParameters, params: d.MethodParameters, ret: d.ReturnValue, throws: d.Throwns}
	case *signature.ConstructorGenericDecl:
		return &methodShape{typeParams: d.TypeParameters, params: d.MethodParameters, throws: d.Throwns}
	}
	return nil
}

func (e *executable) Name() string {
	return e.info.Name(e.class.cf.ConstantPool)
}

func (e *executable) Descriptor() string {
	return e.info.Descriptor(e.class.cf.ConstantPool)
}

func (e *executable) DeclaringClass() *Class      { return e.class }
func (e *executable) declaringClass() *Class      { return e.class }
func (e *executable) IsStatic() bool              { return e.info.IsStatic() }
func (e *executable) IsVarargs() bool             { return e.info.IsVarargs() }
func (e *executable) IsSynthetic() bool           { return e.info.IsSynthetic() }
func (e *executable) Info() *classfile.MethodInfo { return e.info }

func (e *executable) enclosingDeclaration() (GenericDeclaration, error) {
	return e.class, nil
}

func (e *executable) Signature() (string, bool) {
	return e.info.Signature(e.class.cf.ConstantPool)
}

// HasSignature reports whether a Signature attribute is present.
func (e *executable) HasSignature() bool {
	_, ok := e.Signature()
	return ok
}

func (e *executable) owner() string {
	return e.class.name + "." + e.Name() + e.Descriptor()
}

// loadErased parses the descriptor, which uses the same grammar as a
// signature without type variables.
func (e *executable) loadErased(kind signature.Kind) (*methodShape, error) {
	e.erasedOnce.Do(func() {
		desc, err := parseSignature(e.Descriptor(), kind, e.owner())
		if err != nil {
			e.erasedErr = err
			return
		}
		e.erased = shapeOf(desc)
	})
	return e.erased, e.erasedErr
}

// loadGeneric parses the signature, or the descriptor when there is no
// signature.
func (e *executable) loadGeneric(kind signature.Kind) (*methodShape, error) {
	e.genericOnce.Do(func() {
		sig, ok := e.Signature()
		if !ok {
			e.generic, e.genericErr = e.loadErased(kind)
			return
		}
		decl, err := parseSignature(sig, kind, e.owner())
		if err != nil {
			e.genericErr = err
			return
		}
		e.generic = shapeOf(decl)
	})
	return e.generic, e.genericErr
}

func (e *executable) typeParameters(self GenericDeclaration, kind signature.Kind) ([]*TypeVariable, error) {
	g, err := e.loadGeneric(kind)
	if err != nil {
		return nil, err
	}
	e.paramsOnce.Do(func() {
		e.params = declareTypeVariables(g.typeParams, self, newResolver(self, len(g.typeParams) > 0))
	})
	return e.params, nil
}

func (e *executable) parameterTypes(self GenericDeclaration, kind signature.Kind) ([]Type, error) {
	erased, err := e.loadErased(kind)
	if err != nil {
		return nil, err
	}
	return newResolver(self, false).resolveAll(erased.params)
}

func (e *executable) genericParameterTypes(self GenericDeclaration, kind signature.Kind) ([]Type, error) {
	g, err := e.loadGeneric(kind)
	if err != nil {
		return nil, err
	}
	return newResolver(self, len(g.typeParams) > 0).resolveAll(g.params)
}

// ExceptionTypes lists the classes of the Exceptions attribute.
func (e *executable) ExceptionTypes() ([]*Class, error) {
	res := newResolver(e.class, false)
	names := e.info.ExceptionNames(e.class.cf.ConstantPool)
	types := make([]*Class, len(names))
	for i, name := range names {
		c, err := res.loadClass(classfile.InternalToBinaryName(name))
		if err != nil {
			return nil, err
		}
		types[i] = c
	}
	return types, nil
}

// genericExceptionTypes falls back to the Exceptions attribute when the
// signature has no throws clause.
func (e *executable) genericExceptionTypes(self GenericDeclaration, kind signature.Kind) ([]Type, error) {
	g, err := e.loadGeneric(kind)
	if err != nil {
		return nil, err
	}
	if len(g.throws) > 0 {
		return newResolver(self, len(g.typeParams) > 0).resolveAll(g.throws)
	}
	classes, err := e.ExceptionTypes()
	if err != nil {
		return nil, err
	}
	types := make([]Type, len(classes))
	for i, c := range classes {
		types[i] = c
	}
	return types, nil
}

type Method struct {
	executable
}

var _ GenericDeclaration = (*Method)(nil)

// Declaration returns the parsed method signature, or the parsed
// descriptor when the method has no signature.
func (m *Method) Declaration() (*signature.MethodGenericDecl, error) {
	g, err := m.loadGeneric(signature.KindMethod)
	if err != nil {
		return nil, err
	}
	return &signature.MethodGenericDecl{TypeParameters: g.typeParams, MethodParameters: g.params, ReturnValue: g.ret, Throwns: g.throws}, nil
}

func (m *Method) TypeParameters() ([]*TypeVariable, error) {
	return m.typeParameters(m, signature.KindMethod)
}

func (m *Method) ParameterTypes() ([]Type, error) {
	return m.parameterTypes(m, signature.KindMethod)
}

func (m *Method) GenericParameterTypes() ([]Type, error) {
	return m.genericParameterTypes(m, signature.KindMethod)
}

func (m *Method) ReturnType() (Type, error) {
	erased, err := m.loadErased(signature.KindMethod)
	if err != nil {
		return nil, err
	}
	return newResolver(m, false).resolve(erased.ret)
}

func (m *Method) GenericReturnType() (Type, error) {
	g, err := m.loadGeneric(signature.KindMethod)
	if err != nil {
		return nil, err
	}
	return newResolver(m, len(g.typeParams) > 0).resolve(g.ret)
}

func (m *Method) GenericExceptionTypes() ([]Type, error) {
	return m.genericExceptionTypes(m, signature.KindMethod)
}

func (m *Method) IsBridge() bool   { return m.info.IsBridge() }
func (m *Method) IsAbstract() bool { return m.info.IsAbstract() }

type Constructor struct {
	executable
}

var _ GenericDeclaration = (*Constructor)(nil)

func (c *Constructor) Declaration() (*signature.ConstructorGenericDecl, error) {
	g, err := c.loadGeneric(signature.KindConstructor)
	if err != nil {
		return nil, err
	}
	return &signature.ConstructorGenericDecl{TypeParameters: g.typeParams, MethodParameters: g.params, Throwns: g.throws}, nil
}

func (c *Constructor) TypeParameters() ([]*TypeVariable, error) {
	return c.typeParameters(c, signature.KindConstructor)
}

func (c *Constructor) ParameterTypes() ([]Type, error) {
	return c.parameterTypes(c, signature.KindConstructor)
}

func (c *Constructor) GenericParameterTypes() ([]Type, error) {
	return c.genericParameterTypes(c, signature.KindConstructor)
}

func (c *Constructor) GenericExceptionTypes() ([]Type, error) {
	return c.genericExceptionTypes(c, signature.KindConstructor)
}
