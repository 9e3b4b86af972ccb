package java

import (
	"sync"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/signature"
)

type Field struct {
	class *Class
	info  *classfile.FieldInfo

	erasedOnce sync.Once
	erased     signature.GenericType
	erasedErr  error

	genericOnce sync.Once
	generic     signature.GenericType
	genericErr  error
}

func (f *Field) Name() string {
	return f.info.Name(f.class.cf.ConstantPool)
}

func (f *Field) Descriptor() string {
	return f.info.Descriptor(f.class.cf.ConstantPool)
}

func (f *Field) DeclaringClass() *Class     { return f.class }
func (f *Field) IsStatic() bool             { return f.info.IsStatic() }
func (f *Field) IsSynthetic() bool          { return f.info.IsSynthetic() }
func (f *Field) Info() *classfile.FieldInfo { return f.info }

func (f *Field) Signature() (string, bool) {
	return f.info.Signature(f.class.cf.ConstantPool)
}

func (f *Field) HasSignature() bool {
	_, ok := f.Signature()
	return ok
}

func (f *Field) owner() string {
	return f.class.name + "." + f.Name()
}

func (f *Field) loadErased() (signature.GenericType, error) {
	f.erasedOnce.Do(func() {
		decl, err := parseSignature(f.Descriptor(), signature.KindField, f.owner())
		if err != nil {
			f.erasedErr = err
			return
		}
		f.erased = decl.(*signature.FieldGenericDecl).FieldType
	})
	return f.erased, f.erasedErr
}

// Declaration returns the parsed field signature, or the parsed
// descriptor when the field has no signature.
func (f *Field) Declaration() (*signature.FieldGenericDecl, error) {
	f.genericOnce.Do(func() {
		sig, ok := f.Signature()
		if !ok {
			f.generic, f.genericErr = f.loadErased()
			return
		}
		decl, err := parseSignature(sig, signature.KindField, f.owner())
		if err != nil {
			f.genericErr = err
			return
		}
		f.generic = decl.(*signature.FieldGenericDecl).FieldType
	})
	if f.genericErr != nil {
		return nil, f.genericErr
	}
	return &signature.FieldGenericDecl{FieldType: f.generic}, nil
}

// Type returns the erased type from the descriptor.
func (f *Field) Type() (Type, error) {
	t, err := f.loadErased()
	if err != nil {
		return nil, err
	}
	return newResolver(f.class, false).resolve(t)
}

// GenericType resolves the field signature in the scope of the
// declaring class.
func (f *Field) GenericType() (Type, error) {
	decl, err := f.Declaration()
	if err != nil {
		return nil, err
	}
	return newResolver(f.class, false).resolve(decl.FieldType)
}
