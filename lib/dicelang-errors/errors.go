package errors

import (
	"errors"
	"fmt"
)

const (
	// InvalidAST is the error type that occurs when a parsed expression is malformed in a way the grammar should never produce.
	InvalidAST = iota
	// InvalidCommand is the error type that occurs when input contains nothing that can be rolled
	InvalidCommand
	// Friendly represents an expected error
	Friendly
	// DiceBoundsExceeded occurs when a dice term asks for too many dice or too many faces
	DiceBoundsExceeded
	// Arithmetic covers overflow and division by zero while combining values
	Arithmetic
	// UnsupportedCommand is a syntactically valid command that cannot be evaluated
	UnsupportedCommand
	// Unexpected errors should not occur.
	Unexpected = 999
)

//LexError represents an error occured during parsing of a dicelang statement.
type LexError struct {
	Err  string
	Col  int
	Line int
}

//Error returns the message string
func (e LexError) Error() string {
	return e.Err
}

//NewLexError creates a new LexError
func NewLexError(text string, col int, line int) *LexError {
	return &LexError{
		Err:  text,
		Col:  col,
		Line: line,
	}
}

//DicelangError represents a custom error thrown by Dicelang
type DicelangError struct {
	Err   string
	Code  int32
	Inner error
}

//Error returns the message string
func (e DicelangError) Error() string {
	return e.Err
}

//Unwrap returns the error that caused e, if any
func (e DicelangError) Unwrap() error {
	return e.Inner
}

//NewDicelangError creates a new DiceLangError
func NewDicelangError(text string, code int32, inner error) *DicelangError {
	return &DicelangError{
		Err:   text,
		Code:  code,
		Inner: inner,
	}
}

//NewDicelangErrorf creates a new DicelangError with a formatted message and no inner error
func NewDicelangErrorf(code int32, format string, a ...interface{}) *DicelangError {
	return NewDicelangError(fmt.Sprintf(format, a...), code, nil)
}

//HasCode reports whether any DicelangError in err's chain carries code
func HasCode(err error, code int32) bool {
	for err != nil {
		var de *DicelangError
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Inner
	}
	return false
}

//New creates a new simple error
func New(text string) error {
	return errors.New(text)
}

//Newf creates a new simple error with fmt.Sprintf
func Newf(text string, a ...interface{}) error {
	return fmt.Errorf(text, a...)
}
