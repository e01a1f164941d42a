package domain

import "math"

// NormalizeMinMax scales a numeric series to [0,1] using (x-min)/(max-min).
//
// The output always has the same length as the input. NaN entries are
// excluded from the min/max computation and propagate as NaN in the output.
// When every finite value is identical (including a single-element series),
// every finite position becomes exactly 0.5: a constant series carries no
// discriminating signal, and the neutral midpoint encodes that without a
// division by zero.
func NormalizeMinMax(series []float64) []float64 {
	out := make([]float64, len(series))

	min, max := math.NaN(), math.NaN()
	for _, v := range series {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}

	for i, v := range series {
		switch {
		case math.IsNaN(v):
			out[i] = math.NaN()
		case min == max:
			out[i] = 0.5
		default:
			out[i] = (v - min) / (max - min)
		}
	}
	return out
}
