package analyzer

import "math"

// Pearson returns the Pearson correlation coefficient of x and y using
// cov(x,y) / sqrt(var(x) * var(y)). It returns 0 when the series differ in
// length, have fewer than two values, or either series has zero variance.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0
	}

	meanX, meanY := mean(x), mean(y)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0
	}

	r := cov / math.Sqrt(varX*varY)
	return clampFloat(r, -1, 1)
}

// DataConfidence maps a number of aligned points to a 0-1 confidence,
// reaching 1 at a month of daily data.
func DataConfidence(points int) float64 {
	if points <= 0 {
		return 0
	}
	return math.Min(float64(points)/30.0, 1.0)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round3 rounds to 3 decimal places. Adding zero folds -0 into 0.
func round3(v float64) float64 {
	return math.Round(v*1000)/1000 + 0
}
