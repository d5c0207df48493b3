package dicelang

import (
	"bytes"
	"strconv"
	"strings"
)

//FacesSliceString joins the drawn faces with commas: "3, 5, 1".
func FacesSliceString(faces []int64) string {
	var b [][]byte
	for _, f := range faces {
		b = append(b, []byte(strconv.FormatInt(f, 10)))
	}
	return string(bytes.Join(b, []byte(", ")))
}

func listTrace(faces []int64) string {
	return "[" + FacesSliceString(faces) + "]"
}

func joinLog(log []string) string {
	return strings.Join(log, " ")
}

//PrintExpr prints a formatted version of the expression tree to a string
func PrintExpr(e Expr, indentation int) string {
	var b bytes.Buffer
	b.WriteRune('\n')
	b.WriteString(strings.Repeat(" ", indentation))
	b.WriteRune('(')
	switch e := e.(type) {
	case Num:
		b.WriteString("num:" + e.String())
	case Roll:
		b.WriteString("dice:" + e.String())
	case Prefix:
		b.WriteString(e.Op.String())
		b.WriteString(PrintExpr(e.Expr, indentation+4))
	case Infix:
		b.WriteString(e.Op.String())
		b.WriteString(PrintExpr(e.Left, indentation+4))
		b.WriteString(PrintExpr(e.Right, indentation+4))
	case Group:
		b.WriteString("group")
		b.WriteString(PrintExpr(e.Expr, indentation+4))
	}
	b.WriteRune(')')
	return b.String()
}

//PrintEntities prints every entity of a segmented line, one per line.
func PrintEntities(entities []Entity) string {
	var s []string
	for _, entity := range entities {
		switch entity := entity.(type) {
		case Description:
			s = append(s, "description:"+strconv.Quote(string(entity)))
		case Expression:
			s = append(s, "expression:"+strconv.Quote(entity.Text)+PrintExpr(entity.Expr, 4))
		}
	}
	return strings.Join(s, "\n")
}

//CollectDice returns every dice term of the entities in the order they appear.
func CollectDice(entities []Entity) []Dice {
	var dice []Dice
	for _, entity := range entities {
		if e, ok := entity.(Expression); ok {
			dice = collectDice(e.Expr, dice)
		}
	}
	return dice
}

func collectDice(e Expr, dice []Dice) []Dice {
	switch e := e.(type) {
	case Roll:
		return append(dice, e.Dice)
	case Prefix:
		return collectDice(e.Expr, dice)
	case Infix:
		return collectDice(e.Right, collectDice(e.Left, dice))
	case Group:
		return collectDice(e.Expr, dice)
	}
	return dice
}
