package dicelang

import (
	"math"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
)

const (
	//MaxDice is the largest number of dice a single term may roll.
	MaxDice int64 = 999
	//MaxFace is the largest face a die may have.
	MaxFace int64 = 10000
	//DefaultFace is the face used for dice written without one.
	DefaultFace int64 = 100
)

//Context evaluates parsed rolls. It resolves dice written without a face
//against DefaultFace and draws from its Roller. A Context keeps no state
//between evaluations.
type Context struct {
	DefaultFace int64
	roller      Roller
}

//ContextOption configures a Context.
type ContextOption func(*Context)

//WithRoller replaces the default crypto/rand Roller.
func WithRoller(r Roller) ContextOption {
	return func(c *Context) {
		c.roller = r
	}
}

//NewContext creates a Context whose omitted faces default to defaultFace.
func NewContext(defaultFace int64, opts ...ContextOption) *Context {
	c := &Context{DefaultFace: defaultFace, roller: CryptoRoller{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// roll draws a single die. A one-faced die is always 1 and never reaches
// the Roller.
func (c *Context) roll(face int64) (int64, error) {
	if face == 1 {
		return 1, nil
	}
	n, err := c.roller.Roll(face)
	if err != nil {
		return 0, errors.NewDicelangError("couldn't roll the dice", errors.Unexpected, err)
	}
	if n < 1 || n > face {
		return 0, errors.NewDicelangErrorf(errors.Unexpected, "roller returned %d for a d%d", n, face)
	}
	return n, nil
}

// rollDice returns one face per die, in the order they were drawn.
func (c *Context) rollDice(d Dice) ([]int64, error) {
	face := d.Face
	if d.FaceOmitted {
		face = c.DefaultFace
	}
	if face > MaxFace {
		return nil, errors.NewDicelangErrorf(errors.DiceBoundsExceeded, "too much dice face (max %d)", MaxFace)
	}
	if face < 1 {
		return nil, errors.NewDicelangError("a die needs at least one face", errors.DiceBoundsExceeded, nil)
	}
	if d.Number > MaxDice {
		return nil, errors.NewDicelangErrorf(errors.DiceBoundsExceeded, "too much dice (max %d)", MaxDice)
	}
	if d.Number < 0 {
		return nil, errors.NewDicelangErrorf(errors.InvalidAST, "cannot roll %d dice", d.Number)
	}
	faces := make([]int64, 0, d.Number)
	for i := int64(0); i < d.Number; i++ {
		f, err := c.roll(face)
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return faces, nil
}

func arithmeticError(reason string) error {
	return errors.NewDicelangError("arithmetical error: "+reason, errors.Arithmetic, errors.New(reason))
}

// combine applies an infix operator with overflow and division checks.
// Division truncates toward zero.
func combine(op Operator, x, y int64) (int64, error) {
	switch op {
	case Add:
		if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
			return 0, arithmeticError("integer overflow")
		}
		return x + y, nil
	case Sub:
		if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
			return 0, arithmeticError("integer overflow")
		}
		return x - y, nil
	case Mul:
		if x == 0 || y == 0 {
			return 0, nil
		}
		r := x * y
		if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, arithmeticError("integer overflow")
		}
		return r, nil
	case Div:
		if y == 0 {
			return 0, arithmeticError("division by zero")
		}
		if x == math.MinInt64 && y == -1 {
			return 0, arithmeticError("integer overflow")
		}
		return x / y, nil
	}
	return 0, errors.NewDicelangErrorf(errors.InvalidAST, "%s is not an infix operator", op)
}

func sum(xs []int64) (int64, error) {
	var total int64
	for _, x := range xs {
		var err error
		if total, err = combine(Add, total, x); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// reduce keeps only the largest or smallest element. An empty list stays empty.
func reduce(op Operator, xs []int64) []int64 {
	if len(xs) == 0 {
		return xs
	}
	best := xs[0]
	for _, x := range xs[1:] {
		if (op == Max && x > best) || (op == Min && x < best) {
			best = x
		}
	}
	return []int64{best}
}
