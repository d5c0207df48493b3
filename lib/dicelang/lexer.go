package dicelang

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
	"github.com/aasmall/word2number"
	"golang.org/x/text/width"
)

// maxDigits bounds numeric literals so they stay far from int64 overflow
// before any arithmetic runs.
const maxDigits = 6

//Lexer steps through a source string one rune at a time. Every read can be
//undone with mark and reset, which is what lets the parser backtrack freely.
type Lexer struct {
	source string
	index  int
	line   int
	col    int
	words  *word2number.Converter
}

type mark struct {
	index int
	line  int
	col   int
}

// newLexer creates a Lexer positioned at the start of source.
func newLexer(source string) *Lexer {
	return &Lexer{source: source, index: 0, line: 1, col: 1}
}

func (lex *Lexer) mark() mark {
	return mark{index: lex.index, line: lex.line, col: lex.col}
}

func (lex *Lexer) reset(m mark) {
	lex.index = m.index
	lex.line = m.line
	lex.col = m.col
}

func (lex *Lexer) eof() bool {
	return lex.index >= len(lex.source)
}

func (lex *Lexer) peekRune() (rune, int) {
	return utf8.DecodeRuneInString(lex.source[lex.index:])
}

func (lex *Lexer) consumeRune() {
	r, size := lex.peekRune()
	if size == 0 {
		return
	}
	lex.index += size
	if r == '\n' {
		lex.line++
		lex.col = 1
	} else {
		lex.col++
	}
}

// advance consumes n bytes, which must end on a rune boundary.
func (lex *Lexer) advance(n int) {
	end := lex.index + n
	for lex.index < end && !lex.eof() {
		lex.consumeRune()
	}
}

func (lex *Lexer) consumeWhile(accept func(rune) bool) int {
	count := 0
	for {
		r, size := lex.peekRune()
		if size == 0 || !accept(r) {
			return count
		}
		lex.consumeRune()
		count++
	}
}

func (lex *Lexer) consumeWhitespace() bool {
	return lex.consumeWhile(unicode.IsSpace) > 0
}

func (lex *Lexer) errorf(format string, a ...interface{}) error {
	return errors.NewLexError(fmt.Sprintf(format, a...), lex.col, lex.line)
}

// fold maps full-width forms to their half-width equivalent and lowers case,
// so keywords match regardless of the script width or case they are typed in.
func fold(r rune) rune {
	if f := width.LookupRune(r).Folded(); f != 0 {
		r = f
	}
	return unicode.ToLower(r)
}

func foldString(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		b = append(b, fold(r))
	}
	return string(b)
}

// matchLength returns the number of source bytes matching the folded
// spelling at the current position, or -1.
func (lex *Lexer) matchLength(spelling string) int {
	i := lex.index
	for _, want := range spelling {
		if i >= len(lex.source) {
			return -1
		}
		r, size := utf8.DecodeRuneInString(lex.source[i:])
		if fold(r) != want {
			return -1
		}
		i += size
	}
	return i - lex.index
}

// accept consumes spelling if it is next in the source.
func (lex *Lexer) accept(spelling string) bool {
	n := lex.matchLength(spelling)
	if n < 0 {
		return false
	}
	lex.advance(n)
	return true
}

// number reads a run of decimal digits. found is false when there are no
// digits; a run longer than maxDigits is an error and consumes nothing.
func (lex *Lexer) number() (n int64, found bool, err error) {
	m := lex.mark()
	var digits []byte
	for {
		r, size := lex.peekRune()
		if size == 0 {
			break
		}
		f := fold(r)
		if f < '0' || f > '9' {
			break
		}
		digits = append(digits, byte(f))
		lex.consumeRune()
	}
	if len(digits) == 0 {
		return 0, false, nil
	}
	if len(digits) > maxDigits {
		err = lex.errorf("number has more than %d digits", maxDigits)
		lex.reset(m)
		return 0, false, err
	}
	n, err = strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		lex.reset(m)
		return 0, false, lex.errorf("fail to parse number")
	}
	return n, true, nil
}

// numberWord reads a run of letters spelling an English number, such as
// "three". It only runs when the lexer has a converter.
func (lex *Lexer) numberWord() (int64, bool) {
	if lex.words == nil {
		return 0, false
	}
	m := lex.mark()
	if lex.consumeWhile(unicode.IsLetter) == 0 {
		return 0, false
	}
	word := lex.source[m.index:lex.index]
	found, value := convertToNumeric(lex.words, word)
	if !found || value > 999999 {
		lex.reset(m)
		return 0, false
	}
	return int64(value), true
}

func convertToNumeric(c *word2number.Converter, word string) (bool, int) {
	n := c.Words2Number(word)
	if n <= 0 || n != float64(int(n)) {
		return false, 0
	}
	return true, int(n)
}

// descriptionUnit consumes the smallest span of free text the segmenter may
// give up on: a run of letters, a run of digits, or one rune, together with
// the whitespace that follows it.
func (lex *Lexer) descriptionUnit() string {
	start := lex.index
	r, _ := lex.peekRune()
	switch {
	case unicode.IsLetter(r):
		lex.consumeWhile(unicode.IsLetter)
	case unicode.IsDigit(r):
		lex.consumeWhile(unicode.IsDigit)
	default:
		lex.consumeRune()
	}
	lex.consumeWhitespace()
	return lex.source[start:lex.index]
}

type nudFn func(*symbol, *Parser) (Expr, error)

type ledFn func(*symbol, *Parser, Expr) (Expr, error)

// symbol is an operator keyword with every spelling it may be written in.
type symbol struct {
	op           Operator
	spellings    []string
	bindingPower int
	nud          nudFn
	led          ledFn
}

type symbolRegistry struct {
	symbols []*symbol
}

func (registry *symbolRegistry) register(op Operator, bp int, nud nudFn, led ledFn, spellings ...string) {
	folded := make([]string, 0, len(spellings))
	for _, s := range spellings {
		folded = append(folded, foldString(s))
	}
	registry.symbols = append(registry.symbols, &symbol{
		op:           op,
		spellings:    folded,
		bindingPower: bp,
		nud:          nud,
		led:          led,
	})
}

// an infixRight token has two children, the exp on the left and the one that
// follows, parsed one binding power lower so equal operators nest to the right
func (registry *symbolRegistry) infixRight(op Operator, bp int, spellings ...string) {
	registry.register(op, bp, nil, func(s *symbol, p *Parser, left Expr) (Expr, error) {
		p.lexer.consumeWhitespace()
		right, err := p.expression(s.bindingPower - 1)
		if err != nil {
			return nil, err
		}
		return Infix{Left: left, Op: s.op, Right: right}, nil
	}, spellings...)
}

// a prefix token has a single child, the primary that follows
func (registry *symbolRegistry) prefix(op Operator, spellings ...string) {
	registry.register(op, 0, func(s *symbol, p *Parser) (Expr, error) {
		p.lexer.consumeWhitespace()
		operand, err := p.primary()
		if err != nil {
			return nil, err
		}
		return Prefix{Op: s.op, Expr: operand}, nil
	}, nil, spellings...)
}

// match finds the symbol with the longest spelling at the lexer position
// without consuming it. infix selects symbols with a led, otherwise symbols
// with a nud.
func (registry *symbolRegistry) match(lex *Lexer, infix bool) (*symbol, int) {
	var best *symbol
	bestLen := 0
	for _, s := range registry.symbols {
		if (infix && s.led == nil) || (!infix && s.nud == nil) {
			continue
		}
		for _, spelling := range s.spellings {
			if n := lex.matchLength(spelling); n > bestLen {
				best, bestLen = s, n
			}
		}
	}
	return best, bestLen
}

var symbols = getSymbolRegistry()

func getSymbolRegistry() *symbolRegistry {
	r := &symbolRegistry{}

	r.infixRight(Add, 50, "+", "add", "加")
	r.infixRight(Sub, 50, "-", "sub", "减")

	r.infixRight(Mul, 60, "*", "×", "x", "乘", "mul")
	r.infixRight(Div, 60, "/", "÷", "除", "div")

	r.prefix(Max, "max", "最大")
	r.prefix(Min, "min", "最小")

	return r
}
