// Package signature parses the generic signatures stored in Java class
// files (JVMS §4.7.9.1) into a tree of interim types.
//
// A signature is parsed against one of four grammars, selected by Kind:
//
//	decl, err := signature.Parse("<T:Ljava/lang/Object;>(TT;)Ljava/util/List<TT;>;", signature.KindMethod)
//
// The tree only names classes and type variables. Turning it into
// runtime types, loading classes and checking argument counts happens in
// package java.
package signature

import (
	"fmt"
	"strings"
)

type parser struct {
	input    string
	kind     Kind
	cur      *cursor
	stack    frameStack
	guessing int
	farthest int
}

// Parse parses sig with the grammar for kind. Any lexical or grammatical
// violation yields a *FormatError and no declaration.
func Parse(sig string, kind Kind) (Declaration, error) {
	p := newParser(sig, kind)
	decl, err := p.parse()
	if err != nil {
		p.stack.reset()
		return nil, err
	}
	return decl, nil
}

func ParseClass(sig string) (*ClassGenericDecl, error) {
	decl, err := Parse(sig, KindClass)
	if err != nil {
		return nil, err
	}
	return decl.(*ClassGenericDecl), nil
}

func ParseField(sig string) (*FieldGenericDecl, error) {
	decl, err := Parse(sig, KindField)
	if err != nil {
		return nil, err
	}
	return decl.(*FieldGenericDecl), nil
}

func ParseMethod(sig string) (*MethodGenericDecl, error) {
	decl, err := Parse(sig, KindMethod)
	if err != nil {
		return nil, err
	}
	return decl.(*MethodGenericDecl), nil
}

func ParseConstructor(sig string) (*ConstructorGenericDecl, error) {
	decl, err := Parse(sig, KindConstructor)
	if err != nil {
		return nil, err
	}
	return decl.(*ConstructorGenericDecl), nil
}

func newParser(sig string, kind Kind) *parser {
	p := &parser{
		input:    sig,
		kind:     kind,
		cur:      newCursor(NewLexer(sig)),
		farthest: -1,
	}
	p.stack.reset()
	return p
}

func (p *parser) parse() (Declaration, error) {
	switch p.kind {
	case KindClass:
		return p.parseClassDecl()
	case KindField:
		return p.parseFieldDecl()
	case KindMethod, KindConstructor:
		return p.parseMethodDecl()
	}
	return nil, fmt.Errorf("signature: unknown kind %v", p.kind)
}

// fail reports a mismatch at tok. While guessing it only records how far
// the alternative got.
func (p *parser) fail(tok Token, format string, args ...any) error {
	if p.guessing > 0 {
		if tok.Offset > p.farthest {
			p.farthest = tok.Offset
		}
		return errGuessFailed
	}
	err := &FormatError{
		Signature: p.input,
		Kind:      p.kind,
		Offset:    tok.Offset,
		Msg:       fmt.Sprintf(format, args...),
	}
	if tok.Kind == TokenError {
		lexErr := &LexError{Offset: tok.Offset, Text: tok.Text}
		err.Err = lexErr
		err.Msg = lexErr.Msg()
	}
	return err
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.cur.peek()
	if tok.Kind != kind {
		return tok, p.fail(tok, "expected %s, found %s", kind, tok)
	}
	return p.cur.next(), nil
}

// choose runs each alternative speculatively and keeps the first one
// that parses. When all fail, the alternative that got farthest (the
// later one on a tie) is run again outside speculation so its error
// carries a real position.
func (p *parser) choose(alts ...func() error) error {
	best, bestPos := 0, -1
	for i, alt := range alts {
		cp := p.mark()
		saved := p.farthest
		p.farthest = -1
		p.guessing++
		err := alt()
		p.guessing--
		reached := p.farthest
		p.farthest = max(saved, reached)
		if err == nil {
			return nil
		}
		p.restore(cp)
		if reached >= bestPos {
			best, bestPos = i, reached
		}
	}
	if p.guessing > 0 {
		return errGuessFailed
	}
	return alts[best]()
}

// ClassSignature: FormalTypeParameters? SuperclassSignature SuperinterfaceSignature*
func (p *parser) parseClassDecl() (*ClassGenericDecl, error) {
	decl := &ClassGenericDecl{
		TypeParameters:  []*TypeParameter{},
		SuperInterfaces: []GenericType{},
	}
	if p.cur.check(TokenLAngle) {
		params, err := p.formalTypeParameters()
		if err != nil {
			return nil, err
		}
		decl.TypeParameters = params
	}

	super, err := p.classTypeSignature()
	if err != nil {
		return nil, err
	}
	decl.SuperClass = super

	for p.cur.match(TokenPackageSpecifier, TokenClassStart) {
		iface, err := p.classTypeSignature()
		if err != nil {
			return nil, err
		}
		decl.SuperInterfaces = append(decl.SuperInterfaces, iface)
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return decl, nil
}

// FieldSignature: FieldTypeSignature, with base types accepted as well.
func (p *parser) parseFieldDecl() (*FieldGenericDecl, error) {
	t, err := p.typeSignature()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return &FieldGenericDecl{FieldType: t}, nil
}

type methodShape struct {
	typeParams []*TypeParameter
	params     []GenericType
	ret        GenericType
	throws     []GenericType
}

// MethodSignature: FormalTypeParameters? '(' TypeSignature* ')' ReturnType ThrowsSignature*
//
// The shapes with and without formal type parameters are tried as whole
// alternatives, throws suffix and end of input included.
func (p *parser) parseMethodDecl() (Declaration, error) {
	var shape methodShape
	err := p.choose(
		func() error { return p.methodShape(&shape, true) },
		func() error { return p.methodShape(&shape, false) },
	)
	if err != nil {
		return nil, err
	}

	if p.kind == KindConstructor {
		return &ConstructorGenericDecl{
			TypeParameters:   shape.typeParams,
			MethodParameters: shape.params,
			Throwns:          shape.throws,
		}, nil
	}
	return &MethodGenericDecl{
		TypeParameters:   shape.typeParams,
		MethodParameters: shape.params,
		ReturnValue:      shape.ret,
		Throwns:          shape.throws,
	}, nil
}

func (p *parser) methodShape(shape *methodShape, withFormals bool) error {
	*shape = methodShape{
		typeParams: []*TypeParameter{},
		params:     []GenericType{},
		throws:     []GenericType{},
	}

	if withFormals {
		params, err := p.formalTypeParameters()
		if err != nil {
			return err
		}
		shape.typeParams = params
	}

	if _, err := p.expect(TokenLParen); err != nil {
		return err
	}
	for !p.cur.check(TokenRParen) {
		tok := p.cur.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenReturnBaseType {
			return p.fail(tok, "unterminated parameter list")
		}
		t, err := p.typeSignature()
		if err != nil {
			return err
		}
		shape.params = append(shape.params, t)
	}
	p.cur.next()

	ret, err := p.returnType()
	if err != nil {
		return err
	}
	shape.ret = ret

	for p.cur.check(TokenCaret) {
		p.cur.next()
		t, err := p.throwsEntry()
		if err != nil {
			return err
		}
		shape.throws = append(shape.throws, t)
	}

	_, err = p.expect(TokenEOF)
	return err
}

func (p *parser) returnType() (GenericType, error) {
	tok := p.cur.peek()
	if tok.Kind == TokenVoid {
		p.cur.next()
		return &ClassType{Name: "void"}, nil
	}
	if p.kind == KindConstructor {
		return nil, p.fail(tok, "constructor must return void, found %s", tok)
	}
	return p.typeSignature()
}

// ThrowsSignature: '^' ClassTypeSignature | '^' TypeVariableSignature
func (p *parser) throwsEntry() (GenericType, error) {
	tok := p.cur.peek()
	switch tok.Kind {
	case TokenTypeVariable:
		p.cur.next()
		return p.emit(&TypeVariable{Name: tok.Text}), nil
	case TokenPackageSpecifier, TokenClassStart:
		t, err := p.classTypeSignature()
		if err != nil {
			return nil, err
		}
		if _, ok := t.(*ParameterizedType); ok {
			return nil, p.fail(tok, "parameterized type %s cannot be thrown", t)
		}
		return t, nil
	}
	return nil, p.fail(tok, "expected class or type variable after '^', found %s", tok)
}

// FormalTypeParameters: '<' FormalTypeParameter+ '>'
func (p *parser) formalTypeParameters() ([]*TypeParameter, error) {
	if _, err := p.expect(TokenLAngle); err != nil {
		return nil, err
	}
	var params []*TypeParameter
	for !p.cur.check(TokenRAngle) {
		param, err := p.formalTypeParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	if len(params) == 0 {
		return nil, p.fail(p.cur.peek(), "empty formal type parameter list")
	}
	p.cur.next()
	return params, nil
}

// FormalTypeParameter: Identifier ClassBound InterfaceBound*
func (p *parser) formalTypeParameter() (*TypeParameter, error) {
	tok := p.cur.next()
	param := &TypeParameter{InterfaceBounds: []GenericType{}}

	switch tok.Kind {
	case TokenIdent:
		param.Name = tok.Text
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		if p.startsFieldType() {
			bound, err := p.fieldTypeSignature()
			if err != nil {
				return nil, err
			}
			param.ClassBound = bound
		}
	case TokenIdentColon:
		// "T::" has no class bound; the first interface bound follows
		// directly.
		param.Name = tok.Text
		bound, err := p.fieldTypeSignature()
		if err != nil {
			return nil, err
		}
		param.InterfaceBounds = append(param.InterfaceBounds, bound)
	default:
		return nil, p.fail(tok, "expected formal type parameter, found %s", tok)
	}

	if param.ClassBound == nil {
		param.ClassBound = objectType()
		param.ImplicitClassBound = true
	}

	for p.cur.check(TokenColon) {
		p.cur.next()
		bound, err := p.fieldTypeSignature()
		if err != nil {
			return nil, err
		}
		param.InterfaceBounds = append(param.InterfaceBounds, bound)
	}
	return param, nil
}

func (p *parser) startsFieldType() bool {
	return p.cur.match(TokenPackageSpecifier, TokenClassStart, TokenTypeVariable, TokenLBracket)
}

// TypeSignature: FieldTypeSignature | BaseType
func (p *parser) typeSignature() (GenericType, error) {
	tok := p.cur.peek()
	if tok.Kind == TokenBaseType || tok.Kind == TokenReturnBaseType {
		p.cur.next()
		return p.emit(&ClassType{Name: PrimitiveName(tok.Text[0])}), nil
	}
	return p.fieldTypeSignature()
}

// FieldTypeSignature: ClassTypeSignature | ArrayTypeSignature | TypeVariableSignature
func (p *parser) fieldTypeSignature() (GenericType, error) {
	tok := p.cur.peek()
	switch tok.Kind {
	case TokenPackageSpecifier, TokenClassStart:
		return p.classTypeSignature()
	case TokenTypeVariable:
		p.cur.next()
		return p.emit(&TypeVariable{Name: tok.Text}), nil
	case TokenLBracket:
		for p.cur.check(TokenLBracket) {
			p.cur.next()
			p.stack.top().dims++
		}
		return p.typeSignature()
	}
	return nil, p.fail(tok, "expected reference type, found %s", tok)
}

// ClassTypeSignature: 'L' PackageSpecifier? SimpleClassTypeSignature ClassTypeSignatureSuffix* ';'
func (p *parser) classTypeSignature() (GenericType, error) {
	start := p.cur.peek()
	p.stack.push(frame{start: start.Offset})

	var pkg string
	switch start.Kind {
	case TokenPackageSpecifier:
		pkg = strings.ReplaceAll(start.Text, "/", ".")
	case TokenClassStart:
	default:
		return nil, p.fail(start, "expected class type, found %s", start)
	}
	p.cur.next()

	ident, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	f := p.stack.top()
	f.name = pkg + ident.Text
	f.raw = &ClassType{Name: f.name}
	if err := p.typeArgumentsOpt(); err != nil {
		return nil, err
	}

	for p.cur.match(TokenDot, TokenDollar) {
		p.cur.next()
		ident, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		f = p.stack.top()
		f.owner = p.completeLevel()
		f.name = f.name + "$" + ident.Text
		f.raw = &ClassType{Name: f.name}
		if err := p.typeArgumentsOpt(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	t := p.completeLevel()
	p.stack.pop()
	return p.emit(t), nil
}

// completeLevel turns the top frame's accumulated name and arguments
// into a node and clears the arguments for the next inner class level.
func (p *parser) completeLevel() GenericType {
	f := p.stack.top()
	if len(f.args) == 0 {
		return f.raw
	}
	t := &ParameterizedType{
		RawType:       f.raw,
		OwnerType:     f.owner,
		TypeArguments: f.args,
		Signature:     p.input[f.start:f.end],
	}
	f.args = nil
	return t
}

// TypeArguments: '<' TypeArgument+ '>'
func (p *parser) typeArgumentsOpt() error {
	if !p.cur.check(TokenLAngle) {
		return nil
	}
	p.cur.next()
	for !p.cur.check(TokenRAngle) {
		arg, err := p.typeArgument()
		if err != nil {
			return err
		}
		f := p.stack.top()
		f.args = append(f.args, arg)
	}
	closing := p.cur.next()
	f := p.stack.top()
	if len(f.args) == 0 {
		return p.fail(closing, "empty type argument list")
	}
	f.end = closing.End
	return nil
}

// TypeArgument: '*' | WildcardIndicator? FieldTypeSignature
//
// A base type is accepted as a plain argument.
func (p *parser) typeArgument() (GenericType, error) {
	tok := p.cur.peek()
	switch tok.Kind {
	case TokenStar:
		p.cur.next()
		return &WildcardType{UpperBound: true, Bounds: []GenericType{objectType()}}, nil
	case TokenPlus, TokenMinus:
		p.cur.next()
		if tok.Kind == TokenPlus {
			p.stack.top().wildcard = wildcardExtends
		} else {
			p.stack.top().wildcard = wildcardSuper
		}
		return p.fieldTypeSignature()
	case TokenBaseType:
		p.cur.next()
		return p.emit(&ClassType{Name: PrimitiveName(tok.Text[0])}), nil
	}
	return p.fieldTypeSignature()
}
