package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary mirrors the classic describe() table.
type Summary struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Std    float64 `json:"std" yaml:"std"`
	Min    float64 `json:"min" yaml:"min"`
	Q25    float64 `json:"q25" yaml:"q25"`
	Median float64 `json:"median" yaml:"median"`
	Q75    float64 `json:"q75" yaml:"q75"`
	Max    float64 `json:"max" yaml:"max"`
}

// Describe summarizes values. Std is the sample standard deviation and is zero
// for fewer than two values; every field is zero for an empty input.
func Describe(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := Sorted(values)
	s := Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    floats.Min(sorted),
		Q25:    Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q75:    Quantile(sorted, 0.75),
		Max:    floats.Max(sorted),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// Sum adds values; zero for an empty input.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

// Mean averages values; zero for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Median is the type-7 0.5 quantile; zero for an empty input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Quantile(Sorted(values), 0.5)
}

// CorrelationMatrix returns the Pearson correlation of every pair of columns.
// columns must have equal lengths. Undefined coefficients (fewer than two rows or
// a constant column) are NaN.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	m := make([][]float64, len(columns))
	for i := range columns {
		m[i] = make([]float64, len(columns))
		for j := range columns {
			m[i][j] = correlation(columns[i], columns[j])
		}
	}
	return m
}

func correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	if floats.Min(x) == floats.Max(x) || floats.Min(y) == floats.Max(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
