package domain

import (
	"time"

	"github.com/google/uuid"
)

// NoPreviewImage is reported as a spot's preview when none of its images is
// flagged for thumbnail display.
const NoPreviewImage = "No preview available"

// Spot is a rentable listing owned by a single user.
type Spot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Address     string
	City        string
	State       string
	Country     string
	Lat         float64
	Lng         float64
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SpotImage is an image URL attached to a spot. At most one image per spot is
// expected to carry Preview, but nothing enforces it.
type SpotImage struct {
	ID        uuid.UUID
	SpotID    uuid.UUID
	URL       string
	Preview   bool
	CreatedAt time.Time
}

// SpotSummary is a spot as it appears in list results.
// AvgRating is nil when the spot has no reviews.
type SpotSummary struct {
	Spot
	AvgRating    *float64
	PreviewImage string
}

// SpotDetail is the single-spot view with images, owner and review aggregates.
type SpotDetail struct {
	Spot
	Images        []SpotImage
	Owner         User
	NumReviews    int
	AvgStarRating *float64
}

// SpotFilter narrows a spot listing. Every non-nil bound adds its own range
// predicate; the bounds are combined with AND.
type SpotFilter struct {
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	MinPrice *float64
	MaxPrice *float64
}

// Validate checks that every present bound is within its legal range.
func (f SpotFilter) Validate() error {
	fields := map[string]string{}
	if !inRange(f.MaxLat, -90, 90) {
		fields["maxLat"] = "Maximum latitude is invalid"
	}
	if !inRange(f.MinLat, -90, 90) {
		fields["minLat"] = "Minimum latitude is invalid"
	}
	if !inRange(f.MaxLng, -180, 180) {
		fields["maxLng"] = "Maximum longitude is invalid"
	}
	if !inRange(f.MinLng, -180, 180) {
		fields["minLng"] = "Minimum longitude is invalid"
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		fields["minPrice"] = "Minimum price must be greater than or equal to 0"
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		fields["maxPrice"] = "Maximum price must be greater than or equal to 0"
	}
	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func inRange(v *float64, lo, hi float64) bool {
	return v == nil || (*v >= lo && *v <= hi)
}

// PreviewImage returns the URL of the first image flagged as preview, or
// NoPreviewImage. images must be in creation order.
func PreviewImage(images []SpotImage) string {
	for _, img := range images {
		if img.Preview {
			return img.URL
		}
	}
	return NoPreviewImage
}
