package signature

import (
	"errors"
	"fmt"
)

// ErrMalformedSignature matches every FormatError with errors.Is.
var ErrMalformedSignature = errors.New("malformed generic signature")

// LexError reports input that starts no token.
type LexError struct {
	Offset int
	Text   string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg(), e.Offset)
}

// Msg describes the character without its position.
func (e *LexError) Msg() string {
	return fmt.Sprintf("unexpected character %q", e.Text)
}

// FormatError is the single error Parse returns for any lexical or
// grammatical violation. No partial tree accompanies it.
type FormatError struct {
	Signature string
	Kind      Kind
	Offset    int
	Msg       string
	Err       error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s signature %q: %s at offset %d", e.Kind, e.Signature, e.Msg, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == ErrMalformedSignature
}

// errGuessFailed ends a speculative alternative. It never leaves the
// parser.
var errGuessFailed = errors.New("speculative parse failed")
