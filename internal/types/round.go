package types

import "math"

// Round rounds x half away from zero to the given number of decimal places.
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}

// Percent converts a [0,1] fraction to a percentage rounded to two decimals.
func Percent(fraction float64) float64 {
	return Round(fraction*100, 2)
}
