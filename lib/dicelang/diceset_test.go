package dicelang

import (
	"reflect"
	"testing"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
)

func TestContext_rollDice(t *testing.T) {
	tests := []struct {
		name     string
		dice     Dice
		faces    []int64
		want     []int64
		wantCode int32
		wantErr  bool
	}{
		{name: "roll 20d1",
			dice: Dice{Number: 20, Face: 1},
			want: []int64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{name: "3d6 in draw order",
			dice:  Dice{Number: 3, Face: 6},
			faces: []int64{6, 1, 3},
			want:  []int64{6, 1, 3}},
		{name: "largest allowed",
			dice:  Dice{Number: 1, Face: MaxFace},
			faces: []int64{MaxFace},
			want:  []int64{MaxFace}},
		{name: "no dice",
			dice: Dice{Number: 0, Face: 6},
			want: []int64{}},
		{name: "1000 dice",
			dice:     Dice{Number: 1000, Face: 6},
			wantCode: errors.DiceBoundsExceeded,
			wantErr:  true},
		{name: "10001 faces",
			dice:     Dice{Number: 1, Face: 10001},
			wantCode: errors.DiceBoundsExceeded,
			wantErr:  true},
		{name: "zero faces",
			dice:     Dice{Number: 1, Face: 0},
			wantCode: errors.DiceBoundsExceeded,
			wantErr:  true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// scriptedRoller fails once it runs out, so one faced dice prove
			// they never reach it
			c := NewContext(DefaultFace, WithRoller(&scriptedRoller{faces: tt.faces}))
			got, err := c.rollDice(tt.dice)
			if (err != nil) != tt.wantErr {
				t.Errorf("Context.rollDice() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.HasCode(err, tt.wantCode) {
					t.Errorf("Context.rollDice() error = %v, want code %d", err, tt.wantCode)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Context.rollDice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContext_rollDiceMessages(t *testing.T) {
	c := NewContext(DefaultFace)
	if _, err := c.rollDice(Dice{Number: 1000, Face: 6}); err == nil || err.Error() != "too much dice (max 999)" {
		t.Errorf("rollDice(1000d6) error = %v", err)
	}
	if _, err := c.rollDice(Dice{Number: 1, Face: 10001}); err == nil || err.Error() != "too much dice face (max 10000)" {
		t.Errorf("rollDice(d10001) error = %v", err)
	}
	// an omitted face resolves against the context before the bounds check
	big := NewContext(MaxFace + 1)
	if _, err := big.rollDice(DefaultDice()); !errors.HasCode(err, errors.DiceBoundsExceeded) {
		t.Errorf("rollDice(d) with default face %d error = %v", MaxFace+1, err)
	}
}

func Test_reduce(t *testing.T) {
	tests := []struct {
		name string
		op   Operator
		xs   []int64
		want []int64
	}{
		{name: "max", op: Max, xs: []int64{3, 9, 2}, want: []int64{9}},
		{name: "min", op: Min, xs: []int64{3, 9, 2}, want: []int64{2}},
		{name: "single", op: Max, xs: []int64{4}, want: []int64{4}},
		{name: "empty", op: Min, xs: []int64{}, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reduce(tt.op, tt.xs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("reduce() = %v, want %v", got, tt.want)
			}
		})
	}
}
