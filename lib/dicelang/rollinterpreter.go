package dicelang

import (
	"strconv"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
)

//EvalRoll evaluates a flat roll from left to right. Operators wait on a
//stack for the next operand: max and min shrink the operand to one value,
//any other operator folds the operand's sum into the running total. Once
//an operand is folded in, the stack falls back to a single pending
//addition, so "2 3" is 5.
func (c *Context) EvalRoll(roll []Token) (int64, string, error) {
	var value int64
	var log []string
	var ops operatorStack
	ops.Reset(Add)

	for _, t := range roll {
		var xs []int64
		switch t.Kind {
		case NumberToken:
			xs = []int64{t.Num}
		case DiceToken:
			faces, err := c.rollDice(t.Dice)
			if err != nil {
				return 0, "", err
			}
			xs = faces
		case OperatorToken:
			ops.Push(t.Op)
			log = append(log, t.Op.String())
			continue
		case DescriptionToken:
			log = append(log, t.Text)
			continue
		case VariableToken:
			log = append(log, "."+t.Text+"(unsupported)")
			continue
		default:
			return 0, "", errors.NewDicelangErrorf(errors.InvalidAST, "unknown token kind %d", t.Kind)
		}

		for {
			op, ok := ops.Pop()
			if !ok {
				break
			}
			if len(xs) > 1 {
				log = append(log, listTrace(xs)+" =")
			}
			if op.Prefix() {
				xs = reduce(op, xs)
				continue
			}
			x, err := sum(xs)
			if err != nil {
				return 0, "", err
			}
			log = append(log, strconv.FormatInt(x, 10))
			if value, err = combine(op, value, x); err != nil {
				return 0, "", err
			}
			break
		}
		ops.Reset(Add)
	}
	return value, joinLog(log), nil
}
