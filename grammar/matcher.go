package grammar

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher recognizes input against the productions of a grammar.
// Alternatives take the longest match and repetitions are greedy, so the
// grammar must not need backtracking into a repetition. Matches are
// memoized per production and offset.
//
// A Matcher is not safe for concurrent use.
type Matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey]int
	visiting map[memoKey]bool
	farthest int
}

func NewMatcher(g ebnf.Grammar, input string) *Matcher {
	return &Matcher{
		grammar:  g,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Match returns the number of bytes matched by production start at the
// beginning of the input, or -1 when it does not match.
func (m *Matcher) Match(start string) int {
	m.farthest = 0
	return m.matchName(start, 0)
}

// Farthest returns the largest offset at which a terminal was tried
// during the last Match.
func (m *Matcher) Farthest() int {
	return m.farthest
}

// MatchError reports input that a production does not match completely.
type MatchError struct {
	Production string
	Input      string
	Offset     int
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("%s does not match %q at offset %d", e.Production, e.Input, e.Offset)
}

// Recognize reports whether production start matches all of input.
func Recognize(g ebnf.Grammar, start, input string) error {
	m := NewMatcher(g, input)
	n := m.Match(start)
	if n == len(input) {
		return nil
	}
	offset := m.Farthest()
	if n > offset {
		offset = n
	}
	return &MatchError{Production: start, Input: input, Offset: offset}
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		if strings.HasPrefix(m.input[offset:], e.String) {
			return len(e.String)
		}
		m.miss(offset)
		return -1

	case *ebnf.Range:
		return m.matchRange(e, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := m.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	// left recursion
	if m.visiting[key] {
		return -1
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}

func (m *Matcher) matchRange(e *ebnf.Range, offset int) int {
	r, size := utf8.DecodeRuneInString(m.input[offset:])
	if size == 0 {
		m.miss(offset)
		return -1
	}
	lo, _ := utf8.DecodeRuneInString(e.Begin.String)
	hi, _ := utf8.DecodeRuneInString(e.End.String)
	if r < lo || r > hi || r == utf8.RuneError && size == 1 {
		m.miss(offset)
		return -1
	}
	return size
}

func (m *Matcher) miss(offset int) {
	if offset > m.farthest {
		m.farthest = offset
	}
}
