package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jsig/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(model *java.ClassModel) error
}

// New returns the encoder for one of the names in config.Formats.
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "java":
		return NewJavaEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
