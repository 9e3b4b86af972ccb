package java

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
)

// ClassModel is the generic API of a class as declared by its
// signatures, rendered in Java source form. It needs no class loading.
type ClassModel struct {
	Name           string        `json:"name"`
	SimpleName     string        `json:"simpleName"`
	Package        string        `json:"package,omitempty"`
	Kind           ClassKind     `json:"kind"`
	Modifiers      []string      `json:"modifiers,omitempty"`
	Signature      string        `json:"signature,omitempty"`
	TypeParameters []string      `json:"typeParameters,omitempty"`
	SuperClass     string        `json:"superClass,omitempty"`
	Interfaces     []string      `json:"interfaces,omitempty"`
	Fields         []MemberModel `json:"fields,omitempty"`
	Constructors   []MemberModel `json:"constructors,omitempty"`
	Methods        []MemberModel `json:"methods,omitempty"`
	Error          string        `json:"error,omitempty"`
}

// MemberModel describes a field, constructor or method. Type is the
// field type or return type and is empty for constructors.
type MemberModel struct {
	Name           string   `json:"name"`
	Descriptor     string   `json:"descriptor"`
	Signature      string   `json:"signature,omitempty"`
	Static         bool     `json:"static,omitempty"`
	Modifiers      []string `json:"modifiers,omitempty"`
	TypeParameters []string `json:"typeParameters,omitempty"`
	Type           string   `json:"type,omitempty"`
	Parameters     []string `json:"parameters,omitempty"`
	Throws         []string `json:"throws,omitempty"`
	Error          string   `json:"error,omitempty"`
}
