//Package dicelang parses and evaluates free-form dice notation such as
//"4d100+1d6 小焰除3". A line is split into expressions and the description
//text around them; expressions are evaluated with a Context into a total
//and a trace of every die drawn.
//
//Two grammars are provided. The expression grammar (Parse, Evaluate) builds
//a tree with operator precedence and parentheses. The flat roll grammar
//(EvaluateRoll) reads a line as a left-to-right sequence of dice, numbers and
//operators.
package dicelang

//Parse splits text into entities. It never fails.
func Parse(text string, opts ...ParserOption) []Entity {
	return NewParser(text, opts...).Entities()
}

//Evaluate parses text with the expression grammar and evaluates it with the
//default face and a crypto/rand Roller.
func Evaluate(text string, opts ...ParserOption) (int64, string, error) {
	return NewContext(DefaultFace).EvalEntities(Parse(text, opts...))
}

//EvaluateRoll parses text with the flat roll grammar and evaluates it with
//the default face and a crypto/rand Roller.
func EvaluateRoll(text string) (int64, string, error) {
	roll, err := NewParser(text).Command()
	if err != nil {
		return 0, "", err
	}
	return NewContext(DefaultFace).EvalRoll(roll)
}
