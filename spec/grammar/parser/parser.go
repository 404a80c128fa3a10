package parser

import (
	"io"

	verr "github.com/bilaaaal0/Compiler-Construction-Project/error"
)

type RootNode struct {
	Directives  []*DirectiveNode
	Productions []*ProductionNode
}

type DirectiveNode struct {
	Name       string
	Parameters []string
	Pos        Position
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

// ElementNode is one RHS symbol occurrence. Exactly one of ID and Literal is
// set: ID for an identifier, Literal for a quoted terminal.
type ElementNode struct {
	ID      string
	Literal string
	Pos     Position
}

func (n *ElementNode) Text() string {
	if n.Literal != "" {
		return n.Literal
	}
	return n.ID
}

// Parse reads a grammar description and returns its AST. Syntax errors are
// returned as verr.SpecErrors with the row and column of the offending
// token.
func Parse(src io.Reader) (*RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
	errs      verr.SpecErrors
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			specErrs, ok := err.(verr.SpecErrors)
			if !ok {
				panic(err)
			}
			retErr = specErrs
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	root := &RootNode{}
	p.skipNewlines()
	for p.consume(tokenKindDirective) {
		root.Directives = append(root.Directives, p.parseDirective())
		p.skipNewlines()
	}
	for {
		if p.consume(tokenKindEOF) {
			break
		}
		if p.consume(tokenKindDirective) {
			p.raiseSyntaxError(synErrDirAfterProd)
		}
		root.Productions = append(root.Productions, p.parseProduction())
		p.skipNewlines()
	}
	if len(root.Productions) == 0 {
		p.raiseSyntaxError(synErrNoProduction)
	}
	return root
}

func (p *parser) parseDirective() *DirectiveNode {
	dir := &DirectiveNode{
		Name: p.lastTok.text[1:],
		Pos:  p.lastTok.pos,
	}
	for {
		switch {
		case p.consume(tokenKindID):
			dir.Parameters = append(dir.Parameters, p.lastTok.text)
		case p.consume(tokenKindTerminal):
			dir.Parameters = append(dir.Parameters, p.lastTok.text)
		default:
			if len(dir.Parameters) == 0 {
				p.raiseSyntaxError(synErrNoDirectiveParam)
			}
			return dir
		}
	}
}

func (p *parser) parseProduction() *ProductionNode {
	if !p.consume(tokenKindID) {
		p.raiseSyntaxError(synErrNoProductionName)
	}
	prod := &ProductionNode{
		LHS: p.lastTok.text,
		Pos: p.lastTok.pos,
	}
	if !p.consume(tokenKindArrow) {
		p.raiseSyntaxError(synErrNoArrow)
	}
	prod.RHS = append(prod.RHS, p.parseAlternative())
	for p.consume(tokenKindOr) {
		prod.RHS = append(prod.RHS, p.parseAlternative())
	}
	if !p.consume(tokenKindNewline) && !p.consume(tokenKindEOF) {
		p.raiseSyntaxError(synErrNoNewline)
	}
	return prod
}

func (p *parser) parseAlternative() *AlternativeNode {
	alt := &AlternativeNode{}
	peeked := p.peek()
	alt.Pos = peeked.pos
	if p.consume(tokenKindEmpty) {
		// An explicit ε alternative has no elements.
		return alt
	}
	for {
		switch {
		case p.consume(tokenKindID):
			alt.Elements = append(alt.Elements, &ElementNode{
				ID:  p.lastTok.text,
				Pos: p.lastTok.pos,
			})
		case p.consume(tokenKindTerminal):
			alt.Elements = append(alt.Elements, &ElementNode{
				Literal: p.lastTok.text,
				Pos:     p.lastTok.pos,
			})
		default:
			return alt
		}
	}
}

func (p *parser) skipNewlines() {
	for p.consume(tokenKindNewline) {
	}
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		tok, err := p.lex.next()
		if err != nil {
			if synErr, ok := err.(*SyntaxError); ok {
				p.raiseSyntaxErrorAt(tok.pos, synErr)
			}
			panic(verr.SpecErrors{
				&verr.SpecError{
					Cause: err,
				},
			})
		}
		p.peekedTok = tok
	}
	return p.peekedTok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == tokenKindInvalid {
		p.raiseSyntaxErrorAt(tok.pos, synErrInvalidToken)
	}
	if tok.kind == expected {
		p.lastTok = tok
		p.peekedTok = nil
		return true
	}
	return false
}

func (p *parser) raiseSyntaxError(synErr *SyntaxError) {
	pos := Position{}
	if p.peekedTok != nil {
		pos = p.peekedTok.pos
	} else if p.lastTok != nil {
		pos = p.lastTok.pos
	}
	p.raiseSyntaxErrorAt(pos, synErr)
}

func (p *parser) raiseSyntaxErrorAt(pos Position, synErr *SyntaxError) {
	panic(verr.SpecErrors{
		&verr.SpecError{
			Cause: synErr,
			Row:   pos.Row,
			Col:   pos.Col,
		},
	})
}
