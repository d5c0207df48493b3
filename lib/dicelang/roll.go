package dicelang

import (
	"unicode"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
)

//Roll parses the input with the flat roll grammar: a sequence of dice,
//operator-and-operand pairs, max/min dice, variable references, numbers and
//description words. Items only need whitespace between them where they would
//otherwise run together. Input that matches none of these is a *errors.LexError.
func (p *Parser) Roll() ([]Token, error) {
	var roll []Token
	p.lexer.consumeWhitespace()
	for !p.lexer.eof() {
		tokens, err := p.rollItem()
		if err != nil {
			return nil, err
		}
		roll = append(roll, tokens...)
		p.lexer.consumeWhitespace()
	}
	return roll, nil
}

//Command parses a flat roll that can be evaluated. A lone variable
//reference is understood but unsupported, and a roll without a number or
//a die has nothing to evaluate.
func (p *Parser) Command() ([]Token, error) {
	roll, err := p.Roll()
	if err != nil {
		return nil, err
	}
	if len(roll) == 1 && roll[0].Kind == VariableToken {
		return nil, errors.NewDicelangErrorf(errors.UnsupportedCommand, "unsupported command: '%s", roll[0].Text)
	}
	for _, t := range roll {
		if t.Kind == NumberToken || t.Kind == DiceToken {
			return roll, nil
		}
	}
	return nil, errors.NewDicelangError("nothing to roll", errors.InvalidCommand, nil)
}

func (p *Parser) rollItem() ([]Token, error) {
	m := p.lexer.mark()
	alternatives := []func() ([]Token, error){
		p.flatDice,
		p.arithmetic,
		p.maxAndMin,
		p.variable,
		p.flatNumber,
		p.longNumeral,
		p.description,
	}
	for _, alt := range alternatives {
		if tokens, err := alt(); err == nil {
			return tokens, nil
		}
		p.lexer.reset(m)
	}
	return nil, p.lexer.errorf("could not understand input")
}

// flatDice differs from the tree grammar's dice term: a die without a face
// must be followed by whitespace or the end of input.
func (p *Parser) flatDice() ([]Token, error) {
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
	} else if r, size := p.lexer.peekRune(); size > 0 && !unicode.IsSpace(r) {
		return nil, p.lexer.errorf("expected a face, a space or the end of input after 'd'")
	}
	return []Token{{Kind: DiceToken, Dice: d}}, nil
}

func (p *Parser) arithmetic() ([]Token, error) {
	s, n := p.registry.match(p.lexer, true)
	if s == nil {
		return nil, p.lexer.errorf("expected an operator")
	}
	p.lexer.advance(n)
	p.lexer.consumeWhitespace()
	m := p.lexer.mark()
	for _, operand := range []func() ([]Token, error){p.flatDice, p.variable, p.maxAndMin, p.flatNumber} {
		if tokens, err := operand(); err == nil {
			return append([]Token{{Kind: OperatorToken, Op: s.op}}, tokens...), nil
		}
		p.lexer.reset(m)
	}
	return nil, p.lexer.errorf("expected an operand after %s", s.op)
}

func (p *Parser) maxAndMin() ([]Token, error) {
	s, n := p.registry.match(p.lexer, false)
	if s == nil {
		return nil, p.lexer.errorf("expected max or min")
	}
	p.lexer.advance(n)
	p.lexer.consumeWhitespace()
	dice, err := p.flatDice()
	if err != nil {
		return nil, err
	}
	return append([]Token{{Kind: OperatorToken, Op: s.op}}, dice...), nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':'
}

func (p *Parser) variable() ([]Token, error) {
	if !p.lexer.accept("'") {
		return nil, p.lexer.errorf("expected \"'\"")
	}
	start := p.lexer.index
	if p.lexer.consumeWhile(isIdentRune) == 0 {
		return nil, p.lexer.errorf("expected a variable name")
	}
	return []Token{{Kind: VariableToken, Text: p.lexer.source[start:p.lexer.index]}}, nil
}

func (p *Parser) flatNumber() ([]Token, error) {
	n, found, err := p.lexer.number()
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, p.lexer.errorf("expected a number")
	}
	return []Token{{Kind: NumberToken, Num: n}}, nil
}

func isDigitRune(r rune) bool {
	f := fold(r)
	return f >= '0' && f <= '9'
}

// longNumeral takes a digit run too long to be a number as description text.
func (p *Parser) longNumeral() ([]Token, error) {
	start := p.lexer.index
	if p.lexer.consumeWhile(isDigitRune) <= maxDigits {
		return nil, p.lexer.errorf("expected more than %d digits", maxDigits)
	}
	return []Token{{Kind: DescriptionToken, Text: p.lexer.source[start:p.lexer.index]}}, nil
}

func isDescriptionRune(r rune) bool {
	return !unicode.IsSpace(r) && !unicode.IsControl(r) && !unicode.IsNumber(r) && r != '\''
}

func (p *Parser) description() ([]Token, error) {
	start := p.lexer.index
	if p.lexer.consumeWhile(isDescriptionRune) == 0 {
		return nil, p.lexer.errorf("expected a description")
	}
	return []Token{{Kind: DescriptionToken, Text: p.lexer.source[start:p.lexer.index]}}, nil
}
