package domain

import "math"

// AverageRating returns the mean rating of reviews rounded to one decimal
// place. The boolean is false when reviews is empty.
//
// Rounding is half away from zero on the float64 mean; ratings are never
// negative so this is half-up.
func AverageRating(reviews []Review) (float64, bool) {
	if len(reviews) == 0 {
		return 0, false
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return roundToOneDecimal(sum / float64(len(reviews))), true
}

func roundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10.0
}
