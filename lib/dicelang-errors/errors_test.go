package errors

import (
	"fmt"
	"reflect"
	"testing"
)

func TestLexError_Error(t *testing.T) {
	type fields struct {
		Err  string
		Col  int
		Line int
	}
	tests := []struct {
		name   string
		fields fields
		want   string
	}{
		{
			name:   "oh no!",
			fields: fields{Err: "oh no!", Col: 1, Line: 1},
			want:   "oh no!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := LexError{
				Err:  tt.fields.Err,
				Col:  tt.fields.Col,
				Line: tt.fields.Line,
			}
			if got := e.Error(); got != tt.want {
				t.Errorf("LexError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLexError(t *testing.T) {
	type args struct {
		text string
		col  int
		line int
	}
	tests := []struct {
		name string
		args args
		want *LexError
	}{
		{
			name: "could not understand input",
			args: args{text: "could not understand input", col: 4, line: 2},
			want: &LexError{Err: "could not understand input", Col: 4, Line: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewLexError(tt.args.text, tt.args.col, tt.args.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewLexError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	bounds := NewDicelangError("too much dice (max 999)", DiceBoundsExceeded, nil)
	tests := []struct {
		name string
		err  error
		code int32
		want bool
	}{
		{name: "nil", err: nil, code: Arithmetic, want: false},
		{name: "plain error", err: New("boom"), code: Arithmetic, want: false},
		{name: "direct", err: bounds, code: DiceBoundsExceeded, want: true},
		{name: "other code", err: bounds, code: Arithmetic, want: false},
		{name: "wrapped by fmt", err: fmt.Errorf("rolling: %w", bounds), code: DiceBoundsExceeded, want: true},
		{name: "inner", err: NewDicelangError("could not roll", Friendly, bounds), code: DiceBoundsExceeded, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDicelangError_Unwrap(t *testing.T) {
	inner := New("division by zero")
	e := NewDicelangErrorf(Arithmetic, "arithmetical error at %d", 3)
	if e.Error() != "arithmetical error at 3" {
		t.Errorf("DicelangError.Error() = %q", e.Error())
	}
	if e.Unwrap() != nil {
		t.Errorf("DicelangError.Unwrap() = %v, want nil", e.Unwrap())
	}
	e = NewDicelangError("arithmetical error", Arithmetic, inner)
	if e.Unwrap() != inner {
		t.Errorf("DicelangError.Unwrap() = %v, want %v", e.Unwrap(), inner)
	}
}
