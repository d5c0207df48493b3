package dicelang

import (
	"math"
	"sort"

	errors "github.com/aasmall/diceval/lib/dicelang-errors"
	"gonum.org/v1/gonum/stat"
)

// maxProbabilityCells bounds the work of DiceProbability: number × face
// outcomes per die added.
const maxProbabilityCells = 2000000

//DiceProbability returns a map of results to probabilities (in percent) for
//the sum of number dice with face sides each.
//Dice are added one at a time; each step is a sliding window sum over the
//previous distribution, so the cost is number × (number × face).
func DiceProbability(number, face int64) (map[int64]float64, error) {
	if number < 0 || number > MaxDice || face < 1 || face > MaxFace {
		return nil, errors.NewDicelangErrorf(errors.DiceBoundsExceeded, "cannot compute the probability of %dd%d", number, face)
	}
	if number*number*face > maxProbabilityCells {
		return nil, errors.NewDicelangErrorf(errors.Friendly, "%dd%d has too many outcomes to list", number, face)
	}
	// dist[i] is the probability of a total of i, over the dice added so far
	dist := []float64{1}
	for n := int64(0); n < number; n++ {
		dist = addDie(dist, face)
	}
	d := make(map[int64]float64)
	for total, p := range dist {
		if p > 0 {
			d[int64(total)] = p * 100
		}
	}
	return d, nil
}

func addDie(dist []float64, face int64) []float64 {
	next := make([]float64, len(dist)+int(face))
	var window float64
	for total := 1; total < len(next); total++ {
		// window holds dist[total-face .. total-1]
		if i := total - 1; i < len(dist) {
			window += dist[i]
		}
		if i := total - 1 - int(face); i >= 0 && i < len(dist) {
			window -= dist[i]
		}
		next[total] = window / float64(face)
	}
	return next
}

//Expectation returns the mean and standard deviation of a distribution as
//returned by DiceProbability.
func Expectation(dist map[int64]float64) (mean, stddev float64) {
	if len(dist) == 0 {
		return 0, 0
	}
	var keys []int64
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	x := make([]float64, 0, len(keys))
	w := make([]float64, 0, len(keys))
	for _, k := range keys {
		x = append(x, float64(k))
		w = append(w, dist[k])
	}
	mean = stat.Mean(x, w)
	sq := make([]float64, len(x))
	for i, v := range x {
		sq[i] = (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(stat.Mean(sq, w))
}
