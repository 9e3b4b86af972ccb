package java

import (
	"fmt"

	"github.com/dhamidi/jsig/signature"
)

// resolver turns parsed signature nodes into resolved types. scope is
// where type variable lookups start; key is the context parameterized
// types are memoized under.
type resolver struct {
	scope GenericDeclaration
	key   GenericDeclaration
	class *Class
}

// newResolver picks the repository context for a member: the member
// itself when it declares type parameters, otherwise its class, so
// that non-generic members of a class share resolved nodes.
func newResolver(scope GenericDeclaration, declaresTypeParameters bool) resolver {
	class := scope.declaringClass()
	key := GenericDeclaration(class)
	if declaresTypeParameters {
		key = scope
	}
	return resolver{scope: scope, key: key, class: class}
}

func (r resolver) resolveAll(nodes []signature.GenericType) ([]Type, error) {
	types := make([]Type, len(nodes))
	for i, n := range nodes {
		t, err := r.resolve(n)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	return types, nil
}

func (r resolver) resolve(node signature.GenericType) (Type, error) {
	switch n := node.(type) {
	case *signature.ClassType:
		if n.IsPrimitive() {
			return Primitive(n.Name), nil
		}
		return r.loadClass(n.Name)
	case *signature.ParameterizedType:
		return r.resolveParameterized(n)
	case *signature.TypeVariable:
		return findTypeVariable(n.Name, r.scope)
	case *signature.WildcardType:
		bounds, err := r.resolveAll(n.Bounds)
		if err != nil {
			return nil, err
		}
		if n.UpperBound {
			return &WildcardType{upper: bounds}, nil
		}
		object, err := r.loadClass(signature.ObjectClassName)
		if err != nil {
			return nil, err
		}
		return &WildcardType{upper: []Type{object}, lower: bounds}, nil
	case *signature.GenericArrayType:
		component, err := r.resolve(n.ComponentType)
		if err != nil {
			return nil, err
		}
		switch component.(type) {
		case *Class, *PrimitiveType, *ArrayType:
			return &ArrayType{Component: component}, nil
		}
		return &GenericArrayType{component: component}, nil
	}
	return nil, fmt.Errorf("unexpected signature node %T", node)
}

func (r resolver) loadClass(name string) (*Class, error) {
	loader := r.class.Loader()
	if loader == nil {
		return nil, &TypeNotPresentError{Name: name, Err: ErrClassNotFound}
	}
	c, err := loader.LoadClass(name)
	if err != nil {
		return nil, &TypeNotPresentError{Name: name, Err: err}
	}
	return c, nil
}

func (r resolver) resolveParameterized(n *signature.ParameterizedType) (Type, error) {
	repo := r.class.Repository()
	if t, ok := repo.FindParameterizedType(n, r.key); ok {
		return t, nil
	}

	raw, err := r.loadClass(n.RawType.Name)
	if err != nil {
		return nil, err
	}

	var owner Type
	if n.OwnerType != nil {
		if owner, err = r.resolve(n.OwnerType); err != nil {
			return nil, err
		}
	} else {
		outer, err := raw.DeclaringClass()
		if err != nil {
			return nil, err
		}
		if outer != nil {
			owner = outer
		}
	}

	args, err := r.resolveAll(n.TypeArguments)
	if err != nil {
		return nil, err
	}
	if err := checkArgumentCount(n, raw, len(args)); err != nil {
		return nil, err
	}

	t := &ParameterizedType{raw: raw, owner: owner, args: args}
	return repo.RegisterParameterizedType(t, n, r.key), nil
}

func checkArgumentCount(n *signature.ParameterizedType, raw *Class, actual int) error {
	formals, err := raw.TypeParameters()
	if err != nil {
		return err
	}
	if len(formals) != actual {
		return &MalformedParameterizedTypeError{
			Type:     n.String(),
			RawType:  raw.Name(),
			Expected: len(formals),
			Actual:   actual,
		}
	}
	return nil
}

// findTypeVariable searches scope and then its enclosing declarations
// for a type parameter called name.
func findTypeVariable(name string, scope GenericDeclaration) (*TypeVariable, error) {
	for decl := scope; decl != nil; {
		if v, ok := decl.declaringClass().Repository().FindTypeVariable(name, decl); ok {
			return v, nil
		}
		params, err := decl.TypeParameters()
		if err != nil {
			return nil, err
		}
		for _, v := range params {
			if v.name == name {
				return v, nil
			}
		}
		if decl, err = decl.enclosingDeclaration(); err != nil {
			return nil, err
		}
	}
	return nil, &TypeNotPresentError{Name: name, Err: fmt.Errorf("no type parameter %s in scope of %s", name, scope.Name())}
}

// declareTypeVariables returns the type variables for params, creating
// and registering those the repository does not know yet.
func declareTypeVariables(params []*signature.TypeParameter, decl GenericDeclaration, res resolver) []*TypeVariable {
	repo := decl.declaringClass().Repository()
	vars := make([]*TypeVariable, len(params))
	for i, p := range params {
		if v, ok := repo.FindTypeVariable(p.Name, decl); ok {
			vars[i] = v
			continue
		}
		vars[i] = repo.RegisterTypeVariable(newTypeVariable(p, decl, res), p.Name, decl)
	}
	return vars
}
