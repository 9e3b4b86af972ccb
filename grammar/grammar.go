// Package grammar holds the signature grammar in EBNF form and a
// recognizer that matches strings against any production of an
// golang.org/x/exp/ebnf grammar.
//
// The recognizer is independent of package signature; tests and the
// jsig grammar command use it to cross-check the hand-written parser.
package grammar

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"
)

// Root names the production that reaches every other production of the
// signature grammar.
const Root = "Signature"

//go:embed signature.ebnf
var Source string

var log = commonlog.GetLogger("jsig.grammar")

var signatures = sync.OnceValues(func() (ebnf.Grammar, error) {
	return Parse("signature.ebnf", strings.NewReader(Source), Root)
})

// Signatures returns the parsed and verified signature grammar.
func Signatures() (ebnf.Grammar, error) {
	return signatures()
}

// Parse reads an EBNF grammar and, when start is not empty, verifies that
// every production is defined and reachable from start.
func Parse(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start != "" {
		if err := ebnf.Verify(g, start); err != nil {
			return nil, fmt.Errorf("verify grammar: %w", err)
		}
	}
	log.Debugf("loaded %s: %d productions", filename, len(g))
	return g, nil
}

// LoadFile parses and verifies a grammar file.
func LoadFile(filename, start string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f, start)
}

// Production returns the start production for a declaration kind name
// such as "method".
func Production(kind string) (string, error) {
	switch kind {
	case "class", "field", "method", "constructor":
		return strings.ToUpper(kind[:1]) + kind[1:] + "Signature", nil
	}
	return "", fmt.Errorf("unknown signature kind %q", kind)
}

// Errors flattens the error list returned by ebnf.Parse and ebnf.Verify,
// looking through wrapping.
func Errors(err error) []error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() != reflect.Slice {
			continue
		}
		list := make([]error, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := v.Index(i).Interface().(error); ok {
				list = append(list, item)
			}
		}
		return list
	}
	if err == nil {
		return nil
	}
	return []error{err}
}
