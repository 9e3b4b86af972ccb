package java

import (
	"errors"
	"fmt"
)

// ErrClassNotFound is returned by class loaders for names they cannot
// locate.
var ErrClassNotFound = errors.New("class not found")

// TypeNotPresentError reports a type named by a signature that could not
// be loaded or found in scope. Name is the unresolved name.
type TypeNotPresentError struct {
	Name string
	Err  error
}

func (e *TypeNotPresentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("type %s not present: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("type %s not present", e.Name)
}

func (e *TypeNotPresentError) Unwrap() error {
	return e.Err
}

// MalformedParameterizedTypeError reports a parameterized type whose
// argument count differs from the formal type parameters of its raw
// type.
type MalformedParameterizedTypeError struct {
	Type     string
	RawType  string
	Expected int
	Actual   int
}

func (e *MalformedParameterizedTypeError) Error() string {
	return fmt.Sprintf("malformed parameterized type %s: %s declares %d type parameters, got %d arguments",
		e.Type, e.RawType, e.Expected, e.Actual)
}
