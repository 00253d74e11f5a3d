package fu

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Mean is the arithmetic mean of a, zero for an empty slice.
func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return floats.Sum(a) / float64(len(a))
}

// Mse is the mean squared difference of a and b.
func Mse(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c / float64(len(a))
}

// Mae is the mean absolute difference of a and b.
func Mae(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	var c float64
	for i, x := range a {
		c += math.Abs(x - b[i])
	}
	return c / float64(len(a))
}

func Maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Fnzi returns a if it's not zero and dflt otherwise
func Fnzi(a, dflt int) int {
	if a != 0 {
		return a
	}
	return dflt
}

// Fnzs returns a if it's not empty and dflt otherwise
func Fnzs(a, dflt string) string {
	if a != "" {
		return a
	}
	return dflt
}

// Indmind is the index of the minimal value of a, -1 for an empty slice.
func Indmind(a []float64) int {
	if len(a) == 0 {
		return -1
	}
	j := 0
	for i, x := range a {
		if x < a[j] {
			j = i
		}
	}
	return j
}
