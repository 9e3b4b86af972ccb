package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jsig/java"
)

// LineEncoder writes one tab separated record per declaration, so that
// two classes can be compared with a line diff. Empty columns hold "-".
type LineEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", m.Kind, m.Name, list(m.Modifiers, ","))
	if m.Error != "" {
		fmt.Fprintf(&sb, "error\t%s\n", m.Error)
	}
	for _, p := range m.TypeParameters {
		fmt.Fprintf(&sb, "typeparam\t%s\n", p)
	}
	if m.SuperClass != "" {
		fmt.Fprintf(&sb, "extends\t%s\n", m.SuperClass)
	}
	for _, iface := range m.Interfaces {
		fmt.Fprintf(&sb, "implements\t%s\n", iface)
	}

	for _, f := range m.Fields {
		if f.Error != "" {
			fmt.Fprintf(&sb, "field\t%s\terror\t%s\n", f.Name, f.Error)
			continue
		}
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", f.Name, f.Type, list(f.Modifiers, ","))
	}

	for _, c := range m.Constructors {
		if c.Error != "" {
			fmt.Fprintf(&sb, "constructor\t%s\terror\t%s\n", c.Descriptor, c.Error)
			continue
		}
		fmt.Fprintf(&sb, "constructor\t%s\t%s\t%s\t%s\n",
			typeParametersStr(c.TypeParameters),
			list(c.Parameters, ","),
			list(c.Throws, ","),
			list(c.Modifiers, ","),
		)
	}

	for _, method := range m.Methods {
		if method.Error != "" {
			fmt.Fprintf(&sb, "method\t%s%s\terror\t%s\n", method.Name, method.Descriptor, method.Error)
			continue
		}
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\t%s\t%s\n",
			method.Name,
			typeParametersStr(method.TypeParameters),
			list(method.Parameters, ","),
			method.Type,
			list(method.Throws, ","),
			list(method.Modifiers, ","),
		)
	}

	return []byte(sb.String()), nil
}

func list(items []string, sep string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, sep)
}

func typeParametersStr(params []string) string {
	if len(params) == 0 {
		return "-"
	}
	return "<" + strings.Join(params, ", ") + ">"
}
