package entity

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	ReviewerID string    `json:"reviewer_id"`
	RevieweeID string    `json:"reviewee_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

func ClampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// MeanRating returns the mean of the ratings rounded to one decimal place,
// or 0 when there are none.
func MeanRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}
