package dicelang

import (
	"fmt"
	"sort"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// scriptedRoller returns its faces in order and records every face it was
// asked for.
type scriptedRoller struct {
	faces []int64
	asked []int64
}

func (s *scriptedRoller) Roll(max int64) (int64, error) {
	s.asked = append(s.asked, max)
	if len(s.faces) == 0 {
		return 0, fmt.Errorf("scriptedRoller: out of faces (asked for a d%d)", max)
	}
	f := s.faces[0]
	s.faces = s.faces[1:]
	return f, nil
}

func Test_generateRandomInt(t *testing.T) {
	numberOfBuckets := int64(200)
	numberOfLoops := 1000000
	m := make(map[int64]int)
	for i := 0; i < numberOfLoops; i++ {
		x, err := generateRandomInt(1, numberOfBuckets)
		if err != nil {
			t.Fatalf("generateRandomInt() error = %v", err)
		}
		if x < 1 || x > numberOfBuckets {
			t.Fatalf("generateRandomInt() = %d, out of [1, %d]", x, numberOfBuckets)
		}
		m[x]++
	}
	var obs []float64
	var exp []float64
	expv := float64(int64(numberOfLoops) / numberOfBuckets)
	if len(m) != int(numberOfBuckets) {
		t.Errorf("bad distribution of random numbers")
	}
	for e := range m {
		obs = append(obs, float64(m[e]))
		exp = append(exp, expv)
	}
	c := stat.ChiSquare(obs, exp)
	p := 1 - distuv.ChiSquared{K: float64(numberOfBuckets - 1), Src: nil}.CDF(c)
	t.Logf("chi2=%v, df=%v, p=%v", c, numberOfBuckets-1, p)
	if p < .001 {
		t.Errorf("generateRandomInt() is not uniform: chi2=%v, p=%v", c, p)
	}
}

func Test_generateRandomIntBounds(t *testing.T) {
	tests := []struct {
		name    string
		min     int64
		max     int64
		want    int64
		wantErr bool
	}{
		{name: "single value", min: 5, max: 5, want: 5},
		{name: "zero max", min: 0, max: 0, wantErr: true},
		{name: "max below min", min: 6, max: 2, wantErr: true},
		{name: "negative min", min: -1, max: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateRandomInt(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("generateRandomInt() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("generateRandomInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeededRoller_Replays(t *testing.T) {
	a, b := NewSeededRoller(42), NewSeededRoller(42)
	for i := 0; i < 100; i++ {
		x, err := a.Roll(20)
		if err != nil {
			t.Fatalf("SeededRoller.Roll() error = %v", err)
		}
		y, _ := b.Roll(20)
		if x != y {
			t.Fatalf("roll %d: %d != %d for the same seed", i, x, y)
		}
		if x < 1 || x > 20 {
			t.Fatalf("SeededRoller.Roll() = %d, out of [1, 20]", x)
		}
	}
	if _, err := a.Roll(0); err == nil {
		t.Errorf("SeededRoller.Roll(0) error = nil, want an error")
	}
}

func TestRoll(t *testing.T) {
	type args struct {
		roller       Roller
		biasMod      int64
		biasTo       int64
		biasFreq     float64
		loops        int
		minPValue    float64
		numberOfDice int64
		sides        int64
	}
	tests := []struct {
		name    string
		args    args
		want    bool
		wantErr bool
	}{
		{
			name:    "2d12",
			args:    args{roller: CryptoRoller{}, loops: 100000, minPValue: .001, numberOfDice: 2, sides: 12},
			want:    true,
			wantErr: false},
		{
			name:    "2d6 seeded",
			args:    args{roller: NewSeededRoller(1), loops: 100000, minPValue: .001, numberOfDice: 2, sides: 6},
			want:    true,
			wantErr: false},
		{
			name:    "3d20",
			args:    args{roller: CryptoRoller{}, loops: 100000, minPValue: .001, numberOfDice: 3, sides: 20},
			want:    true,
			wantErr: false},
		{
			name:    "3d20 bias +1",
			args:    args{roller: NewSeededRoller(2), biasMod: 1, loops: 100000, minPValue: .001, numberOfDice: 3, sides: 20},
			want:    false,
			wantErr: false},
		{
			name:    "3d20 1% bias",
			args:    args{roller: NewSeededRoller(3), biasTo: 31, biasFreq: .01, loops: 100000, minPValue: .001, numberOfDice: 3, sides: 20},
			want:    false,
			wantErr: false},
		{
			name:    "8d4",
			args:    args{roller: CryptoRoller{}, loops: 200000, minPValue: .001, numberOfDice: 8, sides: 4},
			want:    true,
			wantErr: false}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext(DefaultFace, WithRoller(tt.args.roller))
			got, err := testRoll(t, c, tt.args.biasMod, tt.args.biasTo, tt.args.biasFreq, tt.args.loops, tt.args.minPValue, tt.args.numberOfDice, tt.args.sides)
			if (err != nil) != tt.wantErr {
				t.Errorf("testRoll() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("testRoll() = %v, want %v", got, tt.want)
			}
		})
	}
}

func testRoll(t *testing.T, c *Context, biasMod int64, biasTo int64, biasFreq float64, loops int, minPValue float64, numberOfDice int64, sides int64) (bool, error) {
	m := make(map[int64]int)
	for i := numberOfDice; i <= numberOfDice*sides; i++ {
		m[i] = 0
	}
	biasCount := 0
	for i := 0; i < loops; i++ {
		faces, err := c.rollDice(Dice{Number: numberOfDice, Face: sides})
		if err != nil {
			return false, err
		}
		x, err := sum(faces)
		if err != nil {
			return false, err
		}
		//calculate biases
		x += biasMod
		if biasFreq > 0 {
			if i%int(1/biasFreq) == 0 {
				biasCount++
				x = biasTo
			}
		}
		m[x]++
	}

	var obs []float64
	var exp []float64
	var keys []int64
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	df := -1

	t.Logf("Rolling %dd%d %d times", numberOfDice, sides, loops)
	t.Logf("Bucket : Probability : Expected : Observed")
	t.Logf("------------------------------------------")
	probMap, err := DiceProbability(numberOfDice, sides)
	if err != nil {
		return false, err
	}
	for _, k := range keys {
		obs = append(obs, float64(m[k]))
		prob := probMap[k] / 100
		exp = append(exp, prob*float64(loops))
		t.Logf("%6d : %10.5g%% : %8.5g : %8g", k, probMap[k], prob*float64(loops), float64(m[k]))
		df++
	}
	chi := stat.ChiSquare(obs, exp)
	p := 1 - distuv.ChiSquared{K: float64(df), Src: nil}.CDF(chi)
	t.Logf("chi2=%v, df=%v, p=%v", chi, df, p)
	if biasFreq > 0 {
		t.Logf("Biased to %v %d times", biasTo, biasCount)
	}
	if p > minPValue {
		return true, nil
	}
	return false, nil
}
