package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a star rating with text left by one user on one spot.
// A user may review a given spot at most once.
type Review struct {
	ID        uuid.UUID
	SpotID    uuid.UUID
	UserID    uuid.UUID
	Review    string
	Stars     int
	User      *User // populated on list reads only
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AverageRating returns the arithmetic mean of stars, or nil for no reviews.
func AverageRating(stars []int) *float64 {
	if len(stars) == 0 {
		return nil
	}
	total := 0
	for _, s := range stars {
		total += s
	}
	avg := float64(total) / float64(len(stars))
	return &avg
}
