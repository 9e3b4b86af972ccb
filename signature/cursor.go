package signature

// cursor buffers tokens pulled from the lexer so the parser can look
// ahead and rewind. Rewinding replays buffered tokens; the lexer itself
// only ever moves forward.
type cursor struct {
	lex    *Lexer
	tokens []Token
	pos    int
}

func newCursor(lex *Lexer) *cursor {
	return &cursor{lex: lex}
}

func (c *cursor) fill() {
	for c.pos >= len(c.tokens) {
		if n := len(c.tokens); n > 0 && c.tokens[n-1].Kind == TokenEOF {
			c.tokens = append(c.tokens, c.tokens[n-1])
			continue
		}
		c.tokens = append(c.tokens, c.lex.NextToken())
	}
}

func (c *cursor) peek() Token {
	c.fill()
	return c.tokens[c.pos]
}

func (c *cursor) next() Token {
	tok := c.peek()
	c.pos++
	return tok
}

func (c *cursor) check(kind TokenKind) bool {
	return c.peek().Kind == kind
}

func (c *cursor) match(kinds ...TokenKind) bool {
	k := c.peek().Kind
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
