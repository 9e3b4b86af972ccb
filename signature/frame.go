package signature

type wildcardMode int

const (
	wildcardNone wildcardMode = iota
	wildcardExtends
	wildcardSuper
)

// frame holds the state of one class type signature under construction.
// The pending wrap (dims, wildcard) applies to the next type emitted into
// the frame, whichever of class, parameterized or type variable it is.
type frame struct {
	name     string
	raw      *ClassType
	owner    GenericType
	args     []GenericType
	dims     int
	wildcard wildcardMode
	start    int
	end      int
}

// frameStack is the parser's stack of in-progress frames. Index 0 is the
// declaration level and is never popped during a parse.
type frameStack struct {
	frames []frame
}

func (s *frameStack) push(f frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) pop() frame {
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

func (s *frameStack) top() *frame {
	return &s.frames[len(s.frames)-1]
}

func (s *frameStack) depth() int {
	return len(s.frames)
}

func (s *frameStack) reset() {
	s.frames = s.frames[:0]
	s.push(frame{})
}

// checkpoint captures enough state to undo a failed alternative.
type checkpoint struct {
	pos   int
	depth int
	top   frame
}

func (p *parser) mark() checkpoint {
	return checkpoint{
		pos:   p.cur.pos,
		depth: p.stack.depth(),
		top:   *p.stack.top(),
	}
}

func (p *parser) restore(cp checkpoint) {
	p.cur.pos = cp.pos
	p.stack.frames = p.stack.frames[:cp.depth]
	*p.stack.top() = cp.top
}

// emit applies the top frame's pending array dimensions and wildcard to
// t and clears them.
func (p *parser) emit(t GenericType) GenericType {
	f := p.stack.top()
	for i := 0; i < f.dims; i++ {
		t = &GenericArrayType{ComponentType: t}
	}
	switch f.wildcard {
	case wildcardExtends:
		t = &WildcardType{UpperBound: true, Bounds: []GenericType{t}}
	case wildcardSuper:
		t = &WildcardType{UpperBound: false, Bounds: []GenericType{t}}
	}
	f.dims = 0
	f.wildcard = wildcardNone
	return t
}
