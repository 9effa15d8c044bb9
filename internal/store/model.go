// Package store is the client-side cache of API entities. State is only ever
// replaced through Reduce, a pure function from (State, Action) to a new State,
// and Store serialises dispatches for concurrent callers.
package store

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// User is the public part of an account as embedded in spots, reviews and bookings.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// SpotImage is an image attached to a spot.
type SpotImage struct {
	ID      uuid.UUID `json:"id"`
	URL     string    `json:"url"`
	Preview bool      `json:"preview"`
}

// Spot is a spot as the API returns it. List responses fill AvgRating and
// PreviewImage; the detail response fills NumReviews, AvgStarRating,
// SpotImages and Owner. Fields a response omits stay at their zero value.
type Spot struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	AvgRating    *float64 `json:"avgRating,omitempty"`
	PreviewImage string   `json:"previewImage,omitempty"`

	NumReviews    *int        `json:"numReviews,omitempty"`
	AvgStarRating *float64    `json:"avgStarRating,omitempty"`
	SpotImages    []SpotImage `json:"SpotImages,omitempty"`
	Owner         *User       `json:"Owner,omitempty"`
}

// Review is a review of a spot. User is set when the server includes the author.
type Review struct {
	ID        uuid.UUID `json:"id"`
	SpotID    uuid.UUID `json:"spotId"`
	UserID    uuid.UUID `json:"userId"`
	Review    string    `json:"review"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      *User     `json:"User,omitempty"`
}

// Booking is a reservation of a spot. Callers who do not own the spot only
// ever receive SpotID, StartDate and EndDate.
type Booking struct {
	ID        uuid.UUID          `json:"id"`
	SpotID    uuid.UUID          `json:"spotId"`
	UserID    uuid.UUID          `json:"userId"`
	StartDate openapi_types.Date `json:"startDate"`
	EndDate   openapi_types.Date `json:"endDate"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	User      *User              `json:"User,omitempty"`
}
