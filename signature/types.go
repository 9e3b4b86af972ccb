package signature

import (
	"fmt"
	"strings"
)

// GenericType is implemented by every node of a parsed signature tree.
type GenericType interface {
	fmt.Stringer
	genericType()
}

// ClassType is a reference to a class, interface or primitive without
// type arguments. Name is the binary name in source form, e.g.
// "java.util.Map$Entry" or "int".
type ClassType struct {
	Name string
}

// ParameterizedType is a class type with type arguments. Signature is
// the exact slice of the input that produced the node and serves as the
// memoization key during resolution.
type ParameterizedType struct {
	RawType       *ClassType
	OwnerType     GenericType
	TypeArguments []GenericType
	Signature     string
}

type TypeVariable struct {
	Name string
}

// WildcardType has exactly one bound. An unbounded wildcard is an upper
// bounded one with java.lang.Object as its bound.
type WildcardType struct {
	UpperBound bool
	Bounds     []GenericType
}

// GenericArrayType adds one array dimension to its component.
type GenericArrayType struct {
	ComponentType GenericType
}

// TypeParameter is a formal type parameter. ClassBound is
// java.lang.Object when the signature omits it, in which case
// ImplicitClassBound is set.
type TypeParameter struct {
	Name               string
	ClassBound         GenericType
	InterfaceBounds    []GenericType
	ImplicitClassBound bool
}

func (*ClassType) genericType()         {}
func (*ParameterizedType) genericType() {}
func (*TypeVariable) genericType()      {}
func (*WildcardType) genericType()      {}
func (*GenericArrayType) genericType()  {}

const ObjectClassName = "java.lang.Object"

func objectType() *ClassType {
	return &ClassType{Name: ObjectClassName}
}

// IsPrimitive reports whether the class type names a base type or void.
func (t *ClassType) IsPrimitive() bool {
	return PrimitiveCode(t.Name) != 0
}

func (t *ClassType) String() string {
	return strings.ReplaceAll(t.Name, "$", ".")
}

func (t *ParameterizedType) String() string {
	var sb strings.Builder
	if owner, ok := t.OwnerType.(*ParameterizedType); ok {
		sb.WriteString(owner.String())
		sb.WriteByte('.')
		sb.WriteString(InnerName(t.RawType.Name, owner.RawType.Name))
	} else {
		sb.WriteString(t.RawType.String())
	}
	sb.WriteByte('<')
	for i, arg := range t.TypeArguments {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// InnerName strips the owner's binary name and the '$' separator from
// an inner class name.
func InnerName(name, owner string) string {
	if strings.HasPrefix(name, owner+"$") {
		return name[len(owner)+1:]
	}
	if i := strings.LastIndexByte(name, '$'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func (t *TypeVariable) String() string {
	return t.Name
}

// IsUnbounded reports whether the wildcard is "?".
func (t *WildcardType) IsUnbounded() bool {
	if !t.UpperBound || len(t.Bounds) != 1 {
		return false
	}
	ct, ok := t.Bounds[0].(*ClassType)
	return ok && ct.Name == ObjectClassName
}

func (t *WildcardType) String() string {
	if t.IsUnbounded() {
		return "?"
	}
	if t.UpperBound {
		return "? extends " + t.Bounds[0].String()
	}
	return "? super " + t.Bounds[0].String()
}

func (t *GenericArrayType) String() string {
	return t.ComponentType.String() + "[]"
}

// Bounds returns the declared bounds in source order, leaving out an
// implicit java.lang.Object class bound when interface bounds follow.
func (p *TypeParameter) Bounds() []GenericType {
	if p.ImplicitClassBound && len(p.InterfaceBounds) > 0 {
		return p.InterfaceBounds
	}
	bounds := make([]GenericType, 0, 1+len(p.InterfaceBounds))
	bounds = append(bounds, p.ClassBound)
	return append(bounds, p.InterfaceBounds...)
}

func (p *TypeParameter) String() string {
	bounds := p.Bounds()
	if len(bounds) == 1 {
		if ct, ok := bounds[0].(*ClassType); ok && ct.Name == ObjectClassName {
			return p.Name
		}
	}
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = b.String()
	}
	return p.Name + " extends " + strings.Join(parts, " & ")
}

// Kind selects the grammar a signature is parsed with.
type Kind int

const (
	KindClass Kind = iota
	KindField
	KindMethod
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts the names returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "class":
		return KindClass, nil
	case "field":
		return KindField, nil
	case "method":
		return KindMethod, nil
	case "constructor", "ctor":
		return KindConstructor, nil
	}
	return 0, fmt.Errorf("unknown signature kind %q (expected class, field, method or constructor)", s)
}

// Declaration is the result of parsing one signature.
type Declaration interface {
	Kind() Kind
}

type ClassGenericDecl struct {
	TypeParameters  []*TypeParameter
	SuperClass      GenericType
	SuperInterfaces []GenericType
}

type FieldGenericDecl struct {
	FieldType GenericType
}

type MethodGenericDecl struct {
	TypeParameters   []*TypeParameter
	MethodParameters []GenericType
	ReturnValue      GenericType
	Throwns          []GenericType
}

// ConstructorGenericDecl has no return value; constructors return void.
type ConstructorGenericDecl struct {
	TypeParameters   []*TypeParameter
	MethodParameters []GenericType
	Throwns          []GenericType
}

func (*ClassGenericDecl) Kind() Kind       { return KindClass }
func (*FieldGenericDecl) Kind() Kind       { return KindField }
func (*MethodGenericDecl) Kind() Kind      { return KindMethod }
func (*ConstructorGenericDecl) Kind() Kind { return KindConstructor }
