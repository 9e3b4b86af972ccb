package java

import (
	"strings"
	"sync"

	"github.com/dhamidi/jsig/signature"
)

// Type is a resolved type. It is one of *Class, *PrimitiveType,
// *ArrayType, *ParameterizedType, *TypeVariable, *WildcardType or
// *GenericArrayType.
type Type interface {
	TypeName() string
}

// PrimitiveType is one of the eight base types or void.
type PrimitiveType struct {
	name string
}

var primitives = map[string]*PrimitiveType{}

func init() {
	for _, name := range []string{"boolean", "byte", "char", "short", "int", "long", "float", "double", "void"} {
		primitives[name] = &PrimitiveType{name: name}
	}
}

// Primitive returns the shared instance for a primitive type name, or
// nil if name is not a primitive.
func Primitive(name string) *PrimitiveType {
	return primitives[name]
}

func (t *PrimitiveType) TypeName() string { return t.name }
func (t *PrimitiveType) String() string   { return t.name }
func (t *PrimitiveType) IsVoid() bool     { return t.name == "void" }

// ArrayType is an array whose component is not generic.
type ArrayType struct {
	Component Type
}

func (t *ArrayType) TypeName() string { return t.Component.TypeName() + "[]" }
func (t *ArrayType) String() string   { return t.TypeName() }

type ParameterizedType struct {
	raw   *Class
	owner Type
	args  []Type
}

func (t *ParameterizedType) RawType() *Class { return t.raw }

// OwnerType is the type this one is a member of, or nil for top level
// classes.
func (t *ParameterizedType) OwnerType() Type { return t.owner }

func (t *ParameterizedType) ActualTypeArguments() []Type {
	return append([]Type(nil), t.args...)
}

func (t *ParameterizedType) TypeName() string {
	var sb strings.Builder
	switch owner := t.owner.(type) {
	case nil:
		sb.WriteString(t.raw.Name())
	case *ParameterizedType:
		sb.WriteString(owner.TypeName())
		sb.WriteByte('$')
		sb.WriteString(strings.TrimPrefix(t.raw.Name(), owner.raw.Name()+"$"))
	default:
		sb.WriteString(owner.TypeName())
		sb.WriteByte('$')
		sb.WriteString(t.raw.SimpleName())
	}
	sb.WriteByte('<')
	for i, arg := range t.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.TypeName())
	}
	sb.WriteByte('>')
	return sb.String()
}

func (t *ParameterizedType) String() string { return t.TypeName() }

// TypeVariable is a formal type parameter of a class, method or
// constructor. Its bounds are resolved on first use, which lets a bound
// refer back to the variable itself.
type TypeVariable struct {
	name  string
	decl  GenericDeclaration
	param *signature.TypeParameter
	res   resolver

	once   sync.Once
	bounds []Type
	err    error
}

func newTypeVariable(param *signature.TypeParameter, decl GenericDeclaration, res resolver) *TypeVariable {
	return &TypeVariable{name: param.Name, decl: decl, param: param, res: res}
}

func (v *TypeVariable) Name() string                           { return v.name }
func (v *TypeVariable) TypeName() string                       { return v.name }
func (v *TypeVariable) String() string                         { return v.name }
func (v *TypeVariable) GenericDeclaration() GenericDeclaration { return v.decl }

// Bounds returns the upper bounds in declaration order. An omitted class
// bound followed by interface bounds is not reported.
func (v *TypeVariable) Bounds() ([]Type, error) {
	v.once.Do(func() {
		v.bounds, v.err = v.res.resolveAll(v.param.Bounds())
	})
	return v.bounds, v.err
}

type WildcardType struct {
	upper []Type
	lower []Type
}

// UpperBounds is [java.lang.Object] for "?" and "? super X".
func (t *WildcardType) UpperBounds() []Type { return append([]Type(nil), t.upper...) }
func (t *WildcardType) LowerBounds() []Type { return append([]Type(nil), t.lower...) }

func (t *WildcardType) TypeName() string {
	if len(t.lower) > 0 {
		return "? super " + t.lower[0].TypeName()
	}
	if len(t.upper) == 0 {
		return "?"
	}
	if c, ok := t.upper[0].(*Class); ok && c.Name() == signature.ObjectClassName {
		return "?"
	}
	return "? extends " + t.upper[0].TypeName()
}

func (t *WildcardType) String() string { return t.TypeName() }

type GenericArrayType struct {
	component Type
}

func (t *GenericArrayType) GenericComponentType() Type { return t.component }
func (t *GenericArrayType) TypeName() string           { return t.component.TypeName() + "[]" }
func (t *GenericArrayType) String() string             { return t.TypeName() }

// GenericDeclaration is a class, method or constructor that may declare
// type parameters.
type GenericDeclaration interface {
	Name() string
	TypeParameters() ([]*TypeVariable, error)

	// enclosingDeclaration is the next scope searched for type
	// variables, or nil at the outermost class.
	enclosingDeclaration() (GenericDeclaration, error)
	declaringClass() *Class
}
