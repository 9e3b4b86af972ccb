package format

import (
	"io"
	"strings"

	"github.com/dhamidi/jsig/java"
)

// JavaEncoder renders a class model as a Java declaration without
// bodies, in the manner of javap.
type JavaEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	return encode(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model

	if m.Package != "" {
		sb.WriteString("package ")
		sb.WriteString(m.Package)
		sb.WriteString(";\n\n")
	}

	if m.Error != "" {
		sb.WriteString("// ")
		sb.WriteString(m.Error)
		sb.WriteString("\n")
	}
	e.writeClassDeclaration(&sb)
	sb.WriteString(" {\n")

	e.writeFields(&sb)
	e.writeConstructors(&sb)
	e.writeMethods(&sb)

	sb.WriteString("}\n")
	return []byte(sb.String()), nil
}

func (e *JavaEncoder) writeClassDeclaration(sb *strings.Builder) {
	m := e.model

	writeModifiers(sb, m.Modifiers)
	switch m.Kind {
	case java.ClassKindAnnotation:
		sb.WriteString("@interface ")
	case java.ClassKindEnum:
		sb.WriteString("enum ")
	case java.ClassKindInterface:
		sb.WriteString("interface ")
	default:
		sb.WriteString("class ")
	}

	sb.WriteString(m.SimpleName)
	writeTypeParameters(sb, m.TypeParameters, "")

	if super := m.SuperClass; super != "" && super != "java.lang.Object" && m.Kind != java.ClassKindEnum {
		sb.WriteString(" extends ")
		sb.WriteString(super)
	}

	if len(m.Interfaces) > 0 && m.Kind != java.ClassKindAnnotation {
		if m.Kind == java.ClassKindInterface {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		sb.WriteString(strings.Join(m.Interfaces, ", "))
	}
}

func (e *JavaEncoder) writeFields(sb *strings.Builder) {
	for _, f := range e.model.Fields {
		sb.WriteString("    ")
		if f.Error != "" {
			sb.WriteString("// ")
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(f.Error)
			sb.WriteString("\n")
			continue
		}
		writeModifiers(sb, f.Modifiers)
		sb.WriteString(f.Type)
		sb.WriteString(" ")
		sb.WriteString(f.Name)
		sb.WriteString(";\n")
	}
}

func (e *JavaEncoder) writeConstructors(sb *strings.Builder) {
	for _, c := range e.model.Constructors {
		sb.WriteString("    ")
		if c.Error != "" {
			writeMemberError(sb, e.model.SimpleName, c)
			continue
		}
		writeModifiers(sb, c.Modifiers)
		writeTypeParameters(sb, c.TypeParameters, " ")
		sb.WriteString(e.model.SimpleName)
		writeSignatureTail(sb, c)
	}
}

func (e *JavaEncoder) writeMethods(sb *strings.Builder) {
	for _, m := range e.model.Methods {
		sb.WriteString("    ")
		if m.Error != "" {
			writeMemberError(sb, m.Name, m)
			continue
		}
		writeModifiers(sb, m.Modifiers)
		writeTypeParameters(sb, m.TypeParameters, " ")
		sb.WriteString(m.Type)
		sb.WriteString(" ")
		sb.WriteString(m.Name)
		writeSignatureTail(sb, m)
	}
}

func writeSignatureTail(sb *strings.Builder, m java.MemberModel) {
	sb.WriteString("(")
	sb.WriteString(strings.Join(m.Parameters, ", "))
	sb.WriteString(")")
	if len(m.Throws) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(m.Throws, ", "))
	}
	sb.WriteString(";\n")
}

func writeMemberError(sb *strings.Builder, name string, m java.MemberModel) {
	sb.WriteString("// ")
	sb.WriteString(name)
	sb.WriteString(m.Descriptor)
	sb.WriteString(": ")
	sb.WriteString(m.Error)
	sb.WriteString("\n")
}

func writeModifiers(sb *strings.Builder, mods []string) {
	for _, mod := range mods {
		sb.WriteString(mod)
		sb.WriteString(" ")
	}
}

func writeTypeParameters(sb *strings.Builder, params []string, suffix string) {
	if len(params) == 0 {
		return
	}
	sb.WriteString("<")
	sb.WriteString(strings.Join(params, ", "))
	sb.WriteString(">")
	sb.WriteString(suffix)
}
