package review

import "github.com/BruksfildServices01/room-booking/internal/httperr"

const (
	MinRating = 1
	MaxRating = 5
)

func ValidateRating(r int) error {
	if r < MinRating || r > MaxRating {
		return httperr.ErrValidation("invalid_rating", "Rating must be between 1 and 5.")
	}
	return nil
}

// Mean is the master rating for a set of review ratings: their arithmetic
// mean, or 0 when there are none.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
