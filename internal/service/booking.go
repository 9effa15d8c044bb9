package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/repo"
)

// BookingService implements business logic for Booking operations.
type BookingService struct {
	spots    repo.SpotRepo
	bookings repo.BookingRepo
}

// NewBookingService constructs a BookingService backed by the provided repos.
func NewBookingService(spots repo.SpotRepo, bookings repo.BookingRepo) *BookingService {
	return &BookingService{spots: spots, bookings: bookings}
}

// ListBySpot returns the bookings of a spot as seen by callerID. The second
// return value reports whether callerID owns the spot; only the owner sees
// booking ids and renters, everyone else gets the dates alone.
// Returns domain.ErrNotFound if the spot does not exist.
func (s *BookingService) ListBySpot(ctx context.Context, spotID, callerID uuid.UUID) ([]domain.Booking, bool, error) {
	spot, err := s.spots.GetByID(ctx, spotID)
	if err != nil {
		return nil, false, fmt.Errorf("service.BookingService.ListBySpot: %w", err)
	}
	bookings, err := s.bookings.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, false, fmt.Errorf("service.BookingService.ListBySpot: %w", err)
	}

	isOwner := spot.OwnerID == callerID
	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !isOwner {
			b = domain.Booking{SpotID: b.SpotID, StartDate: b.StartDate, EndDate: b.EndDate}
		}
		out = append(out, b)
	}
	return out, isOwner, nil
}

// Create books booking.SpotID for booking.UserID over [StartDate, EndDate).
//
// Returns domain.ErrNotFound if the spot does not exist or the renter owns it,
// a validation FieldError if EndDate is not after StartDate, and a conflict
// FieldError if the dates overlap an existing booking. The overlap check and
// the insert happen atomically in the repo.
func (s *BookingService) Create(ctx context.Context, booking domain.Booking) (domain.Booking, error) {
	if err := s.CheckBookable(ctx, booking.SpotID, booking.UserID); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}

	candidate := domain.NewDateRange(booking.StartDate, booking.EndDate)
	if !candidate.Valid() {
		// CheckBooking reports the inverted range before looking at neighbours.
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", domain.CheckBooking(candidate, nil))
	}
	booking.StartDate, booking.EndDate = candidate.Start, candidate.End

	created, err := s.bookings.CreateIfAvailable(ctx, booking, func(existing []domain.Booking) error {
		return domain.CheckBooking(candidate, existing)
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	return created, nil
}

// CheckBookable returns domain.ErrNotFound if spotID does not exist or is
// owned by userID. Handlers call it before reading the request body.
func (s *BookingService) CheckBookable(ctx context.Context, spotID, userID uuid.UUID) error {
	spot, err := s.spots.GetByID(ctx, spotID)
	if err != nil {
		return fmt.Errorf("service.BookingService.CheckBookable: %w", err)
	}
	if spot.OwnerID == userID {
		return fmt.Errorf("service.BookingService.CheckBookable: owner cannot book own spot: %w", domain.ErrNotFound)
	}
	return nil
}
