// Package stats implements the descriptive statistics used for quality and
// distribution reporting.
package stats

import (
	"math"
	"sort"
)

// Quantile returns the p-quantile of sorted using linear interpolation between
// closest ranks (Hyndman-Fan type 7, the spreadsheet and pandas default):
//
//	h = (n-1)*p
//	q = x[floor(h)] + (h-floor(h)) * (x[ceil(h)] - x[floor(h)])
//
// sorted must be ascending. An empty input yields NaN; p is clamped to [0, 1].
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	xlo := sorted[int(lo)]
	xhi := sorted[int(hi)]
	return xlo + (h-lo)*(xhi-xlo)
}

// Sorted returns an ascending copy of values.
func Sorted(values []float64) []float64 {
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	return out
}

// IQRBounds is the Tukey fence around the interquartile range.
type IQRBounds struct {
	Q1    float64 `json:"q1" yaml:"q1"`
	Q3    float64 `json:"q3" yaml:"q3"`
	IQR   float64 `json:"iqr" yaml:"iqr"`
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// NewIQRBounds computes Q1, Q3 and the fences [Q1-k*IQR, Q3+k*IQR] of values.
// ok is false when values is empty.
func NewIQRBounds(values []float64, k float64) (b IQRBounds, ok bool) {
	if len(values) == 0 {
		return IQRBounds{}, false
	}
	sorted := Sorted(values)
	b.Q1 = Quantile(sorted, 0.25)
	b.Q3 = Quantile(sorted, 0.75)
	b.IQR = b.Q3 - b.Q1
	b.Lower = b.Q1 - k*b.IQR
	b.Upper = b.Q3 + k*b.IQR
	return b, true
}

// Outside reports whether v falls strictly outside the fences.
func (b IQRBounds) Outside(v float64) bool {
	return v < b.Lower || v > b.Upper
}
