// Package handler implements the HTTP handlers for the spotbnb API.
// All handlers are methods on Server. They are split into per-resource files
// (spot.go, review.go, booking.go) but share the same Server struct so they can
// reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
)

// SpotServicer defines the spot operations the handlers depend on.
// Declared here, in the consumer, so handler tests can inject a mock.
type SpotServicer interface {
	List(ctx context.Context, filter domain.SpotFilter, p domain.PaginationParams) ([]domain.SpotSummary, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.SpotSummary, error)
	GetDetail(ctx context.Context, id uuid.UUID) (domain.SpotDetail, error)
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (domain.Spot, error)
	Create(ctx context.Context, spot domain.Spot) (domain.Spot, error)
	Update(ctx context.Context, spot domain.Spot) (domain.Spot, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	AddImage(ctx context.Context, ownerID uuid.UUID, img domain.SpotImage) (domain.SpotImage, error)
}

// ReviewServicer defines the review operations the handlers depend on.
type ReviewServicer interface {
	ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error)
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
}

// BookingServicer defines the booking operations the handlers depend on.
type BookingServicer interface {
	ListBySpot(ctx context.Context, spotID, callerID uuid.UUID) ([]domain.Booking, bool, error)
	CheckBookable(ctx context.Context, spotID, userID uuid.UUID) error
	Create(ctx context.Context, booking domain.Booking) (domain.Booking, error)
}

// Server holds the services every handler reaches through.
type Server struct {
	spots    SpotServicer
	reviews  ReviewServicer
	bookings BookingServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(spots SpotServicer, reviews ReviewServicer, bookings BookingServicer) *Server {
	return &Server{spots: spots, reviews: reviews, bookings: bookings}
}

// Routes returns the API router. requireUser guards every route that acts on
// behalf of a caller; it must put the caller id in the request context the way
// middleware.Authenticator.RequireUser does.
func (s *Server) Routes(requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/spots", func(r chi.Router) {
		r.Get("/", s.ListSpots)
		r.Get("/{spotId}", s.GetSpot)
		r.Get("/{spotId}/reviews", s.ListSpotReviews)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Get("/current", s.ListCurrentSpots)
			r.Post("/", s.CreateSpot)
			r.Put("/{spotId}", s.UpdateSpot)
			r.Delete("/{spotId}", s.DeleteSpot)
			r.Post("/{spotId}/images", s.CreateSpotImage)
			r.Post("/{spotId}/reviews", s.CreateSpotReview)
			r.Get("/{spotId}/bookings", s.ListSpotBookings)
			r.Post("/{spotId}/bookings", s.CreateSpotBooking)
		})
	})

	return r
}
