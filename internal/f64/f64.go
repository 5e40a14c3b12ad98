// Package f64 provides small helpers over float64 slices.
package f64

import (
	"math"
)

// Sum is
//  var sum float64
//  for i := range x {
//      sum += x[i]
//  }
func Sum(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum
}

// Mean is Sum(x) / len(x). The mean of an empty slice is NaN.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}

	return Sum(x) / float64(len(x))
}

// ArgMax returns the index of the first greatest element of x, or -1 if x
// is empty.
func ArgMax(x []float64) int {
	best := -1
	for i, v := range x {
		if best < 0 || v > x[best] {
			best = i
		}
	}
	return best
}

// Max is
//  max := math.Inf(-1)
//  for _, v := range x {
//      max = math.Max(max, v)
//  }
func Max(x []float64) float64 {
	max := math.Inf(-1)
	for _, v := range x {
		max = math.Max(max, v)
	}
	return max
}

// AbsDiff is |a - b|.
func AbsDiff(a, b float64) float64 {
	return math.Abs(a - b)
}
