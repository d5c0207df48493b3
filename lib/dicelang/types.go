package dicelang

import (
	"strconv"
	"strings"
)

//Operator is one of the arithmetic or list operators understood by dicelang.
type Operator int

//Operators. Max and Min are prefix operators; the rest are infix.
const (
	Add Operator = iota
	Sub
	Mul
	Div
	Max
	Min
)

//String returns the display glyph of the operator.
func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "×"
	case Div:
		return "÷"
	case Max:
		return "max"
	case Min:
		return "min"
	}
	return "Operator(" + strconv.Itoa(int(o)) + ")"
}

//Prefix reports whether o applies to a single following operand.
func (o Operator) Prefix() bool {
	return o == Max || o == Min
}

//Dice is a dice term such as 4d100. A die written without a face, such as "d"
//or "2d", has FaceOmitted set and takes its face from the evaluating Context.
type Dice struct {
	Number      int64
	Face        int64
	FaceOmitted bool
}

//DefaultDice returns a single die with the face left to the Context.
func DefaultDice() Dice {
	return Dice{Number: 1, FaceOmitted: true}
}

func (d Dice) String() string {
	s := strconv.FormatInt(d.Number, 10) + "d"
	if d.FaceOmitted {
		return s
	}
	return s + strconv.FormatInt(d.Face, 10)
}

//Expr is a node of a parsed expression tree: Num, Roll, Prefix, Infix or Group.
//Every node owns its children.
type Expr interface {
	String() string
	expr()
}

//Num is a numeric literal.
type Num int64

//Roll is a dice term.
type Roll struct {
	Dice Dice
}

//Prefix applies Max or Min to a single operand.
type Prefix struct {
	Op   Operator
	Expr Expr
}

//Infix combines two operands with Add, Sub, Mul or Div.
type Infix struct {
	Left  Expr
	Op    Operator
	Right Expr
}

//Group is a parenthesized expression. It is kept as its own node so String
//can put the parentheses back.
type Group struct {
	Expr Expr
}

func (Num) expr()    {}
func (Roll) expr()   {}
func (Prefix) expr() {}
func (Infix) expr()  {}
func (Group) expr()  {}

func (n Num) String() string    { return strconv.FormatInt(int64(n), 10) }
func (r Roll) String() string   { return r.Dice.String() }
func (p Prefix) String() string { return p.Op.String() + " " + p.Expr.String() }
func (i Infix) String() string {
	return i.Left.String() + " " + i.Op.String() + " " + i.Right.String()
}
func (g Group) String() string { return "(" + g.Expr.String() + ")" }

//Entity is one segment of parsed input, either a Description or an Expression.
type Entity interface {
	String() string
	entity()
}

//Description is free text kept verbatim, including trailing whitespace.
type Description string

//Expression is a recognized expression together with the source text it was
//parsed from.
type Expression struct {
	Expr Expr
	Text string
}

func (Description) entity() {}
func (Expression) entity()  {}

func (d Description) String() string { return string(d) }
func (e Expression) String() string  { return e.Expr.String() }

//TokenKind identifies the kind of a flat roll Token.
type TokenKind int

//Token kinds of the flat roll grammar.
const (
	NumberToken TokenKind = iota
	DiceToken
	OperatorToken
	DescriptionToken
	VariableToken
)

//Token is one item of a flat roll. Only the field matching Kind is set.
type Token struct {
	Kind TokenKind
	Num  int64
	Dice Dice
	Op   Operator
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case NumberToken:
		return strconv.FormatInt(t.Num, 10)
	case DiceToken:
		return t.Dice.String()
	case OperatorToken:
		return t.Op.String()
	case VariableToken:
		return "'" + t.Text
	}
	return t.Text
}

//RollString renders a flat roll with single spaces between tokens.
func RollString(roll []Token) string {
	s := make([]string, 0, len(roll))
	for _, t := range roll {
		s = append(s, t.String())
	}
	return strings.Join(s, " ")
}
