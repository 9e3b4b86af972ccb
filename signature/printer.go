package signature

import "strings"

// Print renders t in signature encoding. Parsing the result with the
// matching grammar yields an equivalent tree.
func Print(t GenericType) string {
	var sb strings.Builder
	writeType(&sb, t)
	return sb.String()
}

// PrintDeclaration renders a whole declaration in signature encoding.
func PrintDeclaration(decl Declaration) string {
	var sb strings.Builder
	switch d := decl.(type) {
	case *ClassGenericDecl:
		writeTypeParameters(&sb, d.TypeParameters)
		writeType(&sb, d.SuperClass)
		for _, iface := range d.SuperInterfaces {
			writeType(&sb, iface)
		}
	case *FieldGenericDecl:
		writeType(&sb, d.FieldType)
	case *MethodGenericDecl:
		writeTypeParameters(&sb, d.TypeParameters)
		writeParameters(&sb, d.MethodParameters)
		writeType(&sb, d.ReturnValue)
		writeThrows(&sb, d.Throwns)
	case *ConstructorGenericDecl:
		writeTypeParameters(&sb, d.TypeParameters)
		writeParameters(&sb, d.MethodParameters)
		sb.WriteByte('V')
		writeThrows(&sb, d.Throwns)
	}
	return sb.String()
}

func writeTypeParameters(sb *strings.Builder, params []*TypeParameter) {
	if len(params) == 0 {
		return
	}
	sb.WriteByte('<')
	for _, param := range params {
		sb.WriteString(escapeIdent(param.Name))
		sb.WriteByte(':')
		if !param.ImplicitClassBound {
			writeType(sb, param.ClassBound)
		} else if len(param.InterfaceBounds) == 0 {
			writeType(sb, objectType())
		}
		for _, bound := range param.InterfaceBounds {
			sb.WriteByte(':')
			writeType(sb, bound)
		}
	}
	sb.WriteByte('>')
}

func writeParameters(sb *strings.Builder, params []GenericType) {
	sb.WriteByte('(')
	for _, param := range params {
		writeType(sb, param)
	}
	sb.WriteByte(')')
}

func writeThrows(sb *strings.Builder, throws []GenericType) {
	for _, t := range throws {
		sb.WriteByte('^')
		writeType(sb, t)
	}
}

func writeType(sb *strings.Builder, t GenericType) {
	switch t := t.(type) {
	case *ClassType:
		if code := PrimitiveCode(t.Name); code != 0 {
			sb.WriteByte(code)
			return
		}
		writeClassBody(sb, t)
		sb.WriteByte(';')
	case *ParameterizedType:
		writeClassBody(sb, t)
		sb.WriteByte(';')
	case *TypeVariable:
		sb.WriteByte('T')
		sb.WriteString(escapeIdent(t.Name))
		sb.WriteByte(';')
	case *WildcardType:
		switch {
		case t.IsUnbounded():
			sb.WriteByte('*')
			return
		case t.UpperBound:
			sb.WriteByte('+')
		default:
			sb.WriteByte('-')
		}
		writeType(sb, t.Bounds[0])
	case *GenericArrayType:
		sb.WriteByte('[')
		writeType(sb, t.ComponentType)
	}
}

// writeClassBody writes a class reference without its closing ';'. An
// owner is written first and the inner class follows after '.'.
func writeClassBody(sb *strings.Builder, t GenericType) {
	var raw *ClassType
	var owner GenericType
	var args []GenericType
	switch t := t.(type) {
	case *ClassType:
		raw = t
	case *ParameterizedType:
		raw, owner, args = t.RawType, t.OwnerType, t.TypeArguments
	default:
		return
	}

	if owner != nil {
		writeClassBody(sb, owner)
		sb.WriteByte('.')
		sb.WriteString(escapeIdent(InnerName(raw.Name, ownerName(owner))))
	} else {
		sb.WriteByte('L')
		for i, part := range strings.Split(raw.Name, ".") {
			if i > 0 {
				sb.WriteByte('/')
			}
			sb.WriteString(escapeIdent(part))
		}
	}

	if len(args) > 0 {
		sb.WriteByte('<')
		for _, arg := range args {
			writeType(sb, arg)
		}
		sb.WriteByte('>')
	}
}

func ownerName(t GenericType) string {
	switch t := t.(type) {
	case *ClassType:
		return t.Name
	case *ParameterizedType:
		return t.RawType.Name
	}
	return ""
}

// Describe renders a declaration the way Java source spells it, without
// names: "<T> extends Base<T> implements java.lang.Comparable<T>" for a
// class, "<T> T (java.util.List<T>) throws E" for a method.
func Describe(decl Declaration) string {
	var sb strings.Builder
	switch d := decl.(type) {
	case *ClassGenericDecl:
		if describeTypeParameters(&sb, d.TypeParameters) {
			sb.WriteByte(' ')
		}
		sb.WriteString("extends ")
		sb.WriteString(d.SuperClass.String())
		if len(d.SuperInterfaces) > 0 {
			sb.WriteString(" implements ")
			describeList(&sb, d.SuperInterfaces)
		}
	case *FieldGenericDecl:
		sb.WriteString(d.FieldType.String())
	case *MethodGenericDecl:
		if describeTypeParameters(&sb, d.TypeParameters) {
			sb.WriteByte(' ')
		}
		sb.WriteString(d.ReturnValue.String())
		sb.WriteString(" (")
		describeList(&sb, d.MethodParameters)
		sb.WriteByte(')')
		describeThrows(&sb, d.Throwns)
	case *ConstructorGenericDecl:
		if describeTypeParameters(&sb, d.TypeParameters) {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		describeList(&sb, d.MethodParameters)
		sb.WriteByte(')')
		describeThrows(&sb, d.Throwns)
	}
	return sb.String()
}

func describeTypeParameters(sb *strings.Builder, params []*TypeParameter) bool {
	if len(params) == 0 {
		return false
	}
	sb.WriteByte('<')
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteByte('>')
	return true
}

func describeList(sb *strings.Builder, types []GenericType) {
	for i, t := range types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
}

func describeThrows(sb *strings.Builder, throws []GenericType) {
	if len(throws) > 0 {
		sb.WriteString(" throws ")
		describeList(sb, throws)
	}
}
