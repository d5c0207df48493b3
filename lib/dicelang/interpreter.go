package dicelang

import (
	"strconv"
	"strings"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
)

//Eval evaluates a single expression tree. It returns the value and a trace
//that shows every die drawn, such as "[3, 5] = 8 + 2".
func (c *Context) Eval(e Expr) (int64, string, error) {
	switch e := e.(type) {
	case Num:
		return int64(e), e.String(), nil
	case Roll:
		faces, err := c.rollDice(e.Dice)
		if err != nil {
			return 0, "", err
		}
		total, err := sum(faces)
		if err != nil {
			return 0, "", err
		}
		if len(faces) == 1 {
			return total, strconv.FormatInt(total, 10), nil
		}
		return total, listTrace(faces) + " = " + strconv.FormatInt(total, 10), nil
	case Prefix:
		return c.evalPrefix(e)
	case Infix:
		x, left, err := c.Eval(e.Left)
		if err != nil {
			return 0, "", err
		}
		y, right, err := c.Eval(e.Right)
		if err != nil {
			return 0, "", err
		}
		v, err := combine(e.Op, x, y)
		if err != nil {
			return 0, "", err
		}
		return v, left + " " + e.Op.String() + " " + right, nil
	case Group:
		v, inner, err := c.Eval(e.Expr)
		if err != nil {
			return 0, "", err
		}
		return v, "(" + inner + ")", nil
	case nil:
		return 0, "", errors.NewDicelangError("empty expression", errors.InvalidAST, nil)
	}
	return 0, "", errors.NewDicelangErrorf(errors.InvalidAST, "unsupported expression %T", e)
}

// evalPrefix reduces the operand list of max or min. A dice operand
// contributes each face; anything else contributes its single value.
func (c *Context) evalPrefix(p Prefix) (int64, string, error) {
	if !p.Op.Prefix() {
		return 0, "", errors.NewDicelangErrorf(errors.InvalidAST, "%s is not a prefix operator", p.Op)
	}
	var xs []int64
	var operand string
	if r, ok := p.Expr.(Roll); ok {
		faces, err := c.rollDice(r.Dice)
		if err != nil {
			return 0, "", err
		}
		xs, operand = faces, listTrace(faces)
	} else {
		v, trace, err := c.Eval(p.Expr)
		if err != nil {
			return 0, "", err
		}
		xs, operand = []int64{v}, trace
	}
	v, err := sum(reduce(p.Op, xs))
	if err != nil {
		return 0, "", err
	}
	return v, p.Op.String() + " " + operand + " = " + strconv.FormatInt(v, 10), nil
}

//EvalEntities evaluates every expression of a segmented line and adds the
//values together. Descriptions are copied into the trace without their
//surrounding whitespace. A line without any expression is an
//InvalidCommand error.
//
//There is no unary minus: in "-3" the sign is description text and the
//line is worth 3.
func (c *Context) EvalEntities(entities []Entity) (int64, string, error) {
	var total int64
	var log []string
	found := false
	for _, entity := range entities {
		switch entity := entity.(type) {
		case Description:
			if s := strings.TrimSpace(string(entity)); s != "" {
				log = append(log, s)
			}
		case Expression:
			v, trace, err := c.Eval(entity.Expr)
			if err != nil {
				return 0, "", err
			}
			if total, err = combine(Add, total, v); err != nil {
				return 0, "", err
			}
			log = append(log, trace)
			found = true
		}
	}
	if !found {
		return 0, "", errors.NewDicelangError("nothing to roll", errors.InvalidCommand, nil)
	}
	return total, strings.Join(log, " "), nil
}
