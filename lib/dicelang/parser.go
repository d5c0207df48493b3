package dicelang

import (
	"unicode"

	"github.com/aasmall/word2number"
)

// Parser holds a Lexer and implements a top down operator precedence parser (https://tdop.github.io/)
// over dice notation. Unlike a classic Pratt parser it works directly on runes
// and backtracks, because any span it cannot read as an expression is kept as
// description text instead of being an error.
type Parser struct {
	lexer    *Lexer
	registry *symbolRegistry
}

//ParserOption configures a Parser.
type ParserOption func(*Parser)

//WithNumberWords lets numeric literals be spelled as English words, so that
//"three + 2" is an expression rather than a description followed by one.
func WithNumberWords() ParserOption {
	return func(p *Parser) {
		c, err := word2number.NewConverter("en")
		if err == nil {
			p.lexer.words = c
		}
	}
}

//NewParser creates a new Parser from an input string
func NewParser(source string, opts ...ParserOption) *Parser {
	p := &Parser{lexer: newLexer(source), registry: symbols}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

//Entities splits the whole input into expressions and the description text
//between them, in order. It never fails: anything that is not an expression
//becomes description, and adjacent descriptions are joined.
func (p *Parser) Entities() []Entity {
	var entities []Entity
	p.lexer.consumeWhitespace()
	for !p.lexer.eof() {
		m := p.lexer.mark()
		if e, err := p.expression(0); err == nil {
			text := p.lexer.source[m.index:p.lexer.index]
			p.lexer.consumeWhitespace()
			entities = append(entities, Expression{Expr: e, Text: text})
			continue
		}
		p.lexer.reset(m)
		entities = appendDescription(entities, p.lexer.descriptionUnit())
	}
	return entities
}

func appendDescription(entities []Entity, text string) []Entity {
	if n := len(entities); n > 0 {
		if last, ok := entities[n-1].(Description); ok {
			entities[n-1] = last + Description(text)
			return entities
		}
	}
	return append(entities, Description(text))
}

//Expression parses the whole input as a single expression. Unlike Entities
//it fails with a *errors.LexError when any part of the input is left over.
func (p *Parser) Expression() (Expr, error) {
	p.lexer.consumeWhitespace()
	e, err := p.expression(0)
	if err != nil {
		return nil, p.lexer.errorf("could not understand input")
	}
	p.lexer.consumeWhitespace()
	if !p.lexer.eof() {
		return nil, p.lexer.errorf("could not understand input")
	}
	return e, nil
}

func (p *Parser) expression(rbp int) (Expr, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		m := p.lexer.mark()
		p.lexer.consumeWhitespace()
		s, n := p.registry.match(p.lexer, true)
		if s == nil || rbp >= s.bindingPower {
			p.lexer.reset(m)
			return left, nil
		}
		p.lexer.advance(n)
		next, err := s.led(s, p, left)
		if err != nil {
			// the operator is optional: leave it for whatever comes next
			p.lexer.reset(m)
			return left, nil
		}
		left = next
	}
}

// primary tries each terminal in a fixed order. The order matters: "4d6"
// must be a die before it can be the number 4.
func (p *Parser) primary() (Expr, error) {
	m := p.lexer.mark()
	for _, alt := range []func() (Expr, error){p.dice, p.number, p.prefix, p.group} {
		if e, err := alt(); err == nil {
			return e, nil
		}
		p.lexer.reset(m)
	}
	return nil, p.lexer.errorf("expected an expression such as 1d100")
}

func (p *Parser) dice() (Expr, error) {
	d := DefaultDice()
	n, found, err := p.lexer.number()
	if err != nil {
		return nil, err
	}
	if found {
		d.Number = n
	}
	if !p.lexer.accept("d") {
		return nil, p.lexer.errorf("expected the 'd' or 'D' in the XdY")
	}
	face, found, err := p.lexer.number()
	if err != nil {
		return nil, err
	}
	if found {
		d.Face = face
		d.FaceOmitted = false
		return Roll{Dice: d}, nil
	}
	// "do" and "dice" are words, not a die followed by text
	if r, size := p.lexer.peekRune(); size > 0 && unicode.IsLetter(r) {
		return nil, p.lexer.errorf("dice term runs into a word")
	}
	return Roll{Dice: d}, nil
}

func (p *Parser) number() (Expr, error) {
	n, found, err := p.lexer.number()
	if err != nil {
		return nil, err
	}
	if found {
		return Num(n), nil
	}
	if n, ok := p.lexer.numberWord(); ok {
		return Num(n), nil
	}
	return nil, p.lexer.errorf("expected a number")
}

func (p *Parser) prefix() (Expr, error) {
	s, n := p.registry.match(p.lexer, false)
	if s == nil {
		return nil, p.lexer.errorf("expected max or min")
	}
	p.lexer.advance(n)
	return s.nud(s, p)
}

func (p *Parser) group() (Expr, error) {
	if !p.lexer.accept("(") {
		return nil, p.lexer.errorf("expected \"(\"")
	}
	p.lexer.consumeWhitespace()
	inner, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	p.lexer.consumeWhitespace()
	if !p.lexer.accept(")") {
		return nil, p.lexer.errorf("did not find expected character \")\"")
	}
	return Group{Expr: inner}, nil
}
