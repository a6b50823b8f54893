package template

import "fmt"

// node is an expression tree element.
type node interface {
	position() int
}

type identNode struct {
	name string
	pos  int
}

type literalNode struct {
	value any
	pos   int
}

type memberNode struct {
	target node
	name   string
	pos    int
}

type indexNode struct {
	target node
	index  node
	pos    int
}

type callNode struct {
	target node
	method string
	args   []node
	pos    int
}

func (n *identNode) position() int   { return n.pos }
func (n *literalNode) position() int { return n.pos }
func (n *memberNode) position() int  { return n.pos }
func (n *indexNode) position() int   { return n.pos }
func (n *callNode) position() int    { return n.pos }

type parser struct {
	tokens []token
	pos    int
}

// parseExpr compiles an expression source into a tree.
func parseExpr(src string) (node, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, &syntaxError{pos: 0, msg: "empty expression"}
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, &syntaxError{pos: tok.pos, msg: fmt.Sprintf("unexpected %s", describe(tok))}
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, &syntaxError{pos: tok.pos, msg: fmt.Sprintf("expected %s, found %s", kind, describe(tok))}
	}
	return tok, nil
}

// expr := primary ( '.' ident [ '(' args ')' ] | '[' expr ']' )*
func (p *parser) expr() (node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		switch tok.kind {
		case tokDot:
			p.next()
			name, err := p.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			if p.peek().kind == tokLParen {
				args, err := p.args()
				if err != nil {
					return nil, err
				}
				n = &callNode{target: n, method: name.text, args: args, pos: name.pos}
				continue
			}
			n = &memberNode{target: n, name: name.text, pos: name.pos}
		case tokLBrack:
			p.next()
			index, err := p.expr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBrack); err != nil {
				return nil, err
			}
			n = &indexNode{target: n, index: index, pos: tok.pos}
		case tokLParen:
			return nil, &syntaxError{pos: tok.pos, msg: "only allow-listed methods can be called"}
		default:
			return n, nil
		}
	}
}

func (p *parser) primary() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokIdent:
		switch tok.text {
		case "true":
			return &literalNode{value: true, pos: tok.pos}, nil
		case "false":
			return &literalNode{value: false, pos: tok.pos}, nil
		case "null":
			return &literalNode{value: nil, pos: tok.pos}, nil
		case "undefined":
			return &literalNode{value: undefined, pos: tok.pos}, nil
		}
		return &identNode{name: tok.text, pos: tok.pos}, nil
	case tokString:
		return &literalNode{value: tok.text, pos: tok.pos}, nil
	case tokNumber:
		return &literalNode{value: tok.num, pos: tok.pos}, nil
	}
	return nil, &syntaxError{pos: tok.pos, msg: fmt.Sprintf("unexpected %s", describe(tok))}
}

// args := '(' [ expr ( ',' expr )* ] ')'
func (p *parser) args() ([]node, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var args []node
	if p.peek().kind == tokRParen {
		p.next()
		return args, nil
	}
	for {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		tok := p.next()
		switch tok.kind {
		case tokComma:
			continue
		case tokRParen:
			return args, nil
		default:
			return nil, &syntaxError{pos: tok.pos, msg: fmt.Sprintf("expected \",\" or \")\", found %s", describe(tok))}
		}
	}
}

func describe(tok token) string {
	switch tok.kind {
	case tokIdent, tokNumber:
		return fmt.Sprintf("%s %q", tok.kind, tok.text)
	case tokString:
		return "string literal"
	}
	return tok.kind.String()
}
