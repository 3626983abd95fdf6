// SPDX-License-Identifier: MIT

package library

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/grace/construction"
)

// primitiveRules maps step keywords to rule kinds.
var primitiveRules = map[string]construction.RuleKind{
	"LineSegment": construction.RuleSegment,
	"Ray":         construction.RuleRay,
	"CompRay":     construction.RuleComplementaryRay,
	"Line":        construction.RuleLine,
	"PerpBi":      construction.RulePerpendicularBisector,
	"Circle":      construction.RuleCircle,
	"Intersect":   construction.RuleIntersect,
}

// Parser turns tokens into templates.
type Parser struct {
	file    string
	tokens  []Token
	current int
	lookup  func(name string) (*construction.Template, bool)

	// per template
	t     *construction.Template
	scope map[string]construction.Ref
}

// NewParser returns a parser over tokens. lookup resolves nested
// templates defined outside these tokens; nil means none.
func NewParser(tokens []Token, file string, lookup func(string) (*construction.Template, bool)) *Parser {
	if lookup == nil {
		lookup = func(string) (*construction.Template, bool) { return nil, false }
	}

	return &Parser{file: file, tokens: tokens, lookup: lookup}
}

// Parse reads every template in the token stream, in order.
func (p *Parser) Parse() ([]*construction.Template, error) {
	var out []*construction.Template
	defined := make(map[string]*construction.Template)
	outer := p.lookup
	p.lookup = func(name string) (*construction.Template, bool) {
		if t, ok := defined[name]; ok {
			return t, true
		}
		return outer(name)
	}

	p.skipNewlines()
	for !p.check(TokenEOF) {
		tok := p.peek()
		if !p.checkKeyword(kwConstruction) {
			return nil, p.errorf(tok, ErrSyntax, "expected %s, found %s", kwConstruction, describe(tok))
		}
		t, err := p.parseConstruction()
		if err != nil {
			return nil, err
		}
		if _, dup := p.lookup(t.Name); dup {
			return nil, p.errorf(tok, ErrDuplicateName, "construction %q is already defined", t.Name)
		}
		defined[t.Name] = t
		out = append(out, t)
	}

	return out, nil
}

func (p *Parser) parseConstruction() (*construction.Template, error) {
	// 1. Header and descriptions
	p.advance()
	name, err := p.expect(TokenString, "construction name")
	if err != nil {
		return nil, err
	}
	p.t = &construction.Template{Name: name.Lexeme}
	p.scope = make(map[string]construction.Ref)
	if err := p.endLine(); err != nil {
		return nil, err
	}
	for p.check(TokenString) {
		p.t.Description = append(p.t.Description, p.advance().Lexeme)
		if err := p.endLine(); err != nil {
			return nil, err
		}
	}

	// 2. Inputs
	for p.checkKeyword(kwInput) {
		p.advance()
		if err := p.parseInputs(); err != nil {
			return nil, err
		}
	}

	// 3. Assumptions
	for p.checkKeyword(kwAssume) {
		p.advance()
		cr, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		p.t.Assume = append(p.t.Assume, cr)
		if err := p.endLine(); err != nil {
			return nil, err
		}
	}

	// 4. Steps
	if !p.checkKeyword(kwSteps) {
		return nil, p.errorf(p.peek(), ErrSyntax, "expected %s, found %s", kwSteps, describe(p.peek()))
	}
	p.advance()
	if err := p.endLine(); err != nil {
		return nil, err
	}
	for !p.checkKeyword(kwOutput) {
		if p.check(TokenEOF) || p.checkKeyword(kwConstruction) {
			return nil, p.errorf(p.peek(), ErrSyntax, "construction %q has no %s", p.t.Name, kwOutput)
		}
		if err := p.parseStep(); err != nil {
			return nil, err
		}
		if err := p.endLine(); err != nil {
			return nil, err
		}
	}

	// 5. Outputs
	p.advance()
	out := construction.Rule{Kind: construction.RuleOutput}
	for p.check(TokenIdent) {
		tok := p.advance()
		ref, err := p.resolve(tok)
		if err != nil {
			return nil, err
		}
		if p.t.Rules[ref.Step].Kind == construction.RuleInput {
			return nil, p.errorf(tok, ErrSyntax, "input %q may not be an output", tok.Lexeme)
		}
		out.Args = append(out.Args, ref)
		out.Names = append(out.Names, tok.Lexeme)
	}
	p.t.Rules = append(p.t.Rules, out)
	if err := p.endLine(); err != nil {
		return nil, err
	}

	// 6. Conclusions
	for p.checkKeyword(kwConclude) {
		p.advance()
		cr, err := p.parseConstraint()
		if err != nil {
			return nil, err
		}
		p.t.Conclude = append(p.t.Conclude, cr)
		if err := p.endLine(); err != nil {
			return nil, err
		}
	}

	return p.t, nil
}

// parseInputs reads `name ["annotation"] [x y]` groups up to the line end.
func (p *Parser) parseInputs() error {
	if !p.check(TokenIdent) {
		return p.errorf(p.peek(), ErrSyntax, "expected an input name, found %s", describe(p.peek()))
	}
	for p.check(TokenIdent) {
		tok := p.advance()
		r := construction.Rule{Kind: construction.RuleInput, Names: []string{tok.Lexeme}}
		if p.check(TokenString) {
			r.Annotation = p.advance().Lexeme
		}
		if p.check(TokenNumber) {
			x, err := p.number()
			if err != nil {
				return err
			}
			y, err := p.number()
			if err != nil {
				return err
			}
			r.HasDefault, r.X, r.Y = true, x, y
		}
		if err := p.declare(tok, construction.Ref{Step: len(p.t.Rules)}); err != nil {
			return err
		}
		p.t.Rules = append(p.t.Rules, r)
	}

	return p.endLine()
}

// parseStep reads one `names = Kind(args)` or `Force expr` line.
func (p *Parser) parseStep() error {
	if p.checkKeyword(kwForce) {
		p.advance()
		cr, err := p.parseConstraint()
		if err != nil {
			return err
		}
		p.t.Rules = append(p.t.Rules, construction.Rule{Kind: construction.RuleForce, Force: &cr})
		return nil
	}

	// 1. Names on the left
	var names []Token
	for p.check(TokenIdent) {
		names = append(names, p.advance())
	}
	if len(names) == 0 {
		return p.errorf(p.peek(), ErrSyntax, "expected a step, found %s", describe(p.peek()))
	}
	if _, err := p.expect(TokenEqual, "'='"); err != nil {
		return err
	}

	// 2. What to build
	head := p.peek()
	r := construction.Rule{}
	wantArgs, wantNames := 2, 1
	switch head.Type {
	case TokenIdent:
		k, ok := primitiveRules[head.Lexeme]
		if !ok {
			return p.errorf(head, ErrSyntax, "unknown primitive %q", head.Lexeme)
		}
		r.Kind = k
		if k == construction.RuleIntersect {
			if len(names) > 2 {
				return p.errorf(names[2], ErrArgCount, "Intersect yields at most 2 points")
			}
			wantNames = len(names)
		}
	case TokenString:
		if head.Lexeme == p.t.Name {
			return p.errorf(head, ErrUnknownConstruction, "construction %q cannot use itself", head.Lexeme)
		}
		nested, ok := p.lookup(head.Lexeme)
		if !ok {
			return p.errorf(head, ErrUnknownConstruction, "construction %q is not defined", head.Lexeme)
		}
		r.Kind, r.Template = construction.RuleConstruction, nested
		wantArgs, wantNames = nested.NumInputs(), len(nested.Outputs())
	default:
		return p.errorf(head, ErrSyntax, "expected a primitive or a quoted construction, found %s", describe(head))
	}
	p.advance()
	if len(names) != wantNames {
		return p.errorf(names[0], ErrArgCount, "%s yields %d shapes, %d names given", head.Lexeme, wantNames, len(names))
	}

	// 3. Arguments
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return err
	}
	for !p.check(TokenRParen) {
		tok, err := p.expect(TokenIdent, "an argument")
		if err != nil {
			return err
		}
		ref, err := p.resolve(tok)
		if err != nil {
			return err
		}
		r.Args = append(r.Args, ref)
		if p.check(TokenComma) {
			p.advance()
		}
	}
	p.advance()
	if len(r.Args) != wantArgs {
		return p.errorf(head, ErrArgCount, "%s takes %d arguments, %d given", head.Lexeme, wantArgs, len(r.Args))
	}

	// 4. Bind the names
	step := len(p.t.Rules)
	for i, n := range names {
		if err := p.declare(n, construction.Ref{Step: step, Child: i}); err != nil {
			return err
		}
		r.Names = append(r.Names, n.Lexeme)
	}
	p.t.Rules = append(p.t.Rules, r)

	return nil
}

// parseConstraint reads `side = side`.
func (p *Parser) parseConstraint() (construction.ConstraintRule, error) {
	var cr construction.ConstraintRule
	start := p.peek()
	left, err := p.parseSide()
	if err != nil {
		return cr, err
	}
	if _, err := p.expect(TokenEqual, "'='"); err != nil {
		return cr, err
	}
	right, err := p.parseSide()
	if err != nil {
		return cr, err
	}
	cr.Left, cr.Right = left, right
	if len(left)+len(right) == 0 {
		return cr, p.errorf(start, ErrSyntax, "empty constraint")
	}

	// dist and angle never mix; PI goes with angles
	var dist, angle, pi bool
	for _, m := range append(append([]construction.MeasureRule(nil), left...), right...) {
		switch m.Kind {
		case construction.MeasureDistance:
			dist = true
		case construction.MeasureAngle:
			angle = true
		default:
			pi = true
		}
	}
	if dist && (angle || pi) {
		return cr, p.errorf(start, ErrSyntax, "distances cannot be mixed with angles or PI")
	}

	return cr, nil
}

// parseSide reads `term ('+' term)*` or a lone 0.
func (p *Parser) parseSide() ([]construction.MeasureRule, error) {
	if p.check(TokenNumber) && p.peek().Lexeme == "0" {
		next := p.peekAt(1).Type
		if next == TokenEqual || next == TokenNewline || next == TokenEOF {
			p.advance()
			return nil, nil
		}
	}
	var out []construction.MeasureRule
	for {
		m, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
		if !p.check(TokenPlus) {
			return out, nil
		}
		p.advance()
	}
}

// parseTerm reads `[n '*'] measure`.
func (p *Parser) parseTerm() (construction.MeasureRule, error) {
	m := construction.MeasureRule{Weight: 1}
	if p.check(TokenNumber) {
		tok := p.advance()
		w, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil || w <= 0 {
			return m, p.errorf(tok, ErrSyntax, "coefficient %q must be a positive integer", tok.Lexeme)
		}
		m.Weight = w
		if p.check(TokenStar) {
			p.advance()
		}
	}
	tok, err := p.expect(TokenIdent, "dist, angle or PI")
	if err != nil {
		return m, err
	}
	arity := 0
	switch tok.Lexeme {
	case kwDist:
		m.Kind, arity = construction.MeasureDistance, 2
	case kwAngle:
		m.Kind, arity = construction.MeasureAngle, 3
	case kwPi:
		m.Kind = construction.MeasurePi
		return m, nil
	default:
		return m, p.errorf(tok, ErrSyntax, "expected dist, angle or PI, found %q", tok.Lexeme)
	}
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return m, err
	}
	for !p.check(TokenRParen) {
		arg, err := p.expect(TokenIdent, "a point")
		if err != nil {
			return m, err
		}
		ref, err := p.resolve(arg)
		if err != nil {
			return m, err
		}
		m.Args = append(m.Args, ref)
		if p.check(TokenComma) {
			p.advance()
		}
	}
	p.advance()
	if len(m.Args) != arity {
		return m, p.errorf(tok, ErrArgCount, "%s takes %d points, %d given", tok.Lexeme, arity, len(m.Args))
	}

	return m, nil
}

func (p *Parser) declare(tok Token, ref construction.Ref) error {
	if tok.Lexeme == kwPi {
		return p.errorf(tok, ErrDuplicateName, "%s is reserved", kwPi)
	}
	if _, dup := p.scope[tok.Lexeme]; dup {
		return p.errorf(tok, ErrDuplicateName, "%q is already defined", tok.Lexeme)
	}
	p.scope[tok.Lexeme] = ref

	return nil
}

func (p *Parser) resolve(tok Token) (construction.Ref, error) {
	ref, ok := p.scope[tok.Lexeme]
	if !ok {
		return ref, p.errorf(tok, ErrUnknownName, "%q is not defined", tok.Lexeme)
	}

	return ref, nil
}

func (p *Parser) number() (float64, error) {
	tok, err := p.expect(TokenNumber, "a coordinate")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return 0, p.errorf(tok, ErrSyntax, "bad coordinate %q", tok.Lexeme)
	}

	return v, nil
}

// endLine consumes the end of a line and any blank lines after it.
func (p *Parser) endLine() error {
	if p.check(TokenEOF) {
		return nil
	}
	if _, err := p.expect(TokenNewline, "end of line"); err != nil {
		return err
	}
	p.skipNewlines()

	return nil
}

func (p *Parser) skipNewlines() {
	for p.check(TokenNewline) {
		p.advance()
	}
}

func (p *Parser) expect(t TokenType, what string) (Token, error) {
	if !p.check(t) {
		return Token{}, p.errorf(p.peek(), ErrSyntax, "expected %s, found %s", what, describe(p.peek()))
	}

	return p.advance(), nil
}

func (p *Parser) check(t TokenType) bool { return p.peek().Type == t }

func (p *Parser) checkKeyword(kw string) bool {
	tok := p.peek()
	return tok.Type == TokenIdent && tok.Lexeme == kw
}

func (p *Parser) peek() Token { return p.peekAt(0) }

func (p *Parser) peekAt(n int) Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.current+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.current < len(p.tokens)-1 {
		p.current++
	}

	return tok
}

func (p *Parser) errorf(tok Token, sentinel error, format string, args ...any) error {
	return &ParseError{
		File:   p.file,
		Line:   tok.Line,
		Column: tok.Column,
		Err:    sentinel,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func describe(tok Token) string {
	switch tok.Type {
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("%q", tok.Lexeme)
	case TokenString:
		return fmt.Sprintf("string %q", tok.Lexeme)
	default:
		return tok.Type.String()
	}
}
