package storage

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/nyumba-ke/backend/models"
)

// AverageRating reports the mean rating rounded to one decimal place, or nil
// when there are no reviews. "No data" is distinct from a zero rating.
func AverageRating(reviews []models.Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	ratings := make([]float64, len(reviews))
	for i, r := range reviews {
		ratings[i] = float64(r.Rating)
	}
	mean, err := stats.Mean(ratings)
	if err != nil {
		return nil
	}
	rounded := math.Round(mean*10) / 10
	return &rounded
}
