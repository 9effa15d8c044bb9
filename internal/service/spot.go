// Package service contains the business logic for the spot rental API.
// Services enforce ownership and booking rules and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/repo"
)

// SpotService implements business logic for Spot and SpotImage operations.
// It reads images and review stars alongside spots to build list and detail views.
type SpotService struct {
	spots   repo.SpotRepo
	images  repo.ImageRepo
	reviews repo.ReviewRepo
	users   repo.UserRepo
}

// NewSpotService constructs a SpotService backed by the provided repos.
func NewSpotService(spots repo.SpotRepo, images repo.ImageRepo, reviews repo.ReviewRepo, users repo.UserRepo) *SpotService {
	return &SpotService{spots: spots, images: images, reviews: reviews, users: users}
}

// List returns one page of spots matching filter with their average rating
// and preview image. Returns domain.ErrValidation for out-of-range bounds.
func (s *SpotService) List(ctx context.Context, filter domain.SpotFilter, p domain.PaginationParams) ([]domain.SpotSummary, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("service.SpotService.List: %w", err)
	}
	spots, err := s.spots.List(ctx, filter, p)
	if err != nil {
		return nil, fmt.Errorf("service.SpotService.List: %w", err)
	}
	out, err := s.summarize(ctx, spots)
	if err != nil {
		return nil, fmt.Errorf("service.SpotService.List: %w", err)
	}
	return out, nil
}

// ListByOwner returns every spot owned by ownerID in the list view shape.
func (s *SpotService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.SpotSummary, error) {
	spots, err := s.spots.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.SpotService.ListByOwner: %w", err)
	}
	out, err := s.summarize(ctx, spots)
	if err != nil {
		return nil, fmt.Errorf("service.SpotService.ListByOwner: %w", err)
	}
	return out, nil
}

// GetDetail returns a spot with its images, owner and review aggregates.
// Returns domain.ErrNotFound if the spot does not exist.
func (s *SpotService) GetDetail(ctx context.Context, id uuid.UUID) (domain.SpotDetail, error) {
	spot, err := s.spots.GetByID(ctx, id)
	if err != nil {
		return domain.SpotDetail{}, fmt.Errorf("service.SpotService.GetDetail: %w", err)
	}

	ids := []uuid.UUID{spot.ID}
	images, err := s.images.ListBySpotIDs(ctx, ids)
	if err != nil {
		return domain.SpotDetail{}, fmt.Errorf("service.SpotService.GetDetail: %w", err)
	}
	stars, err := s.reviews.StarsBySpotIDs(ctx, ids)
	if err != nil {
		return domain.SpotDetail{}, fmt.Errorf("service.SpotService.GetDetail: %w", err)
	}
	owner, err := s.users.GetByID(ctx, spot.OwnerID)
	if err != nil {
		return domain.SpotDetail{}, fmt.Errorf("service.SpotService.GetDetail: owner: %w", err)
	}

	detail := domain.SpotDetail{
		Spot:          spot,
		Images:        images[spot.ID],
		Owner:         owner,
		NumReviews:    len(stars[spot.ID]),
		AvgStarRating: domain.AverageRating(stars[spot.ID]),
	}
	if detail.Images == nil {
		detail.Images = []domain.SpotImage{}
	}
	return detail, nil
}

// GetOwned returns the spot with id if ownerID owns it. Returns
// domain.ErrNotFound if the spot does not exist or belongs to someone else.
func (s *SpotService) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (domain.Spot, error) {
	spot, err := s.spots.GetByID(ctx, id)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("service.SpotService.GetOwned: %w", err)
	}
	if spot.OwnerID != ownerID {
		return domain.Spot{}, fmt.Errorf("service.SpotService.GetOwned: %w", domain.ErrNotFound)
	}
	return spot, nil
}

// Create persists a new spot owned by spot.OwnerID.
func (s *SpotService) Create(ctx context.Context, spot domain.Spot) (domain.Spot, error) {
	created, err := s.spots.Create(ctx, spot)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("service.SpotService.Create: %w", err)
	}
	return created, nil
}

// Update overwrites a spot's fields. Returns domain.ErrNotFound if the spot
// does not exist or is not owned by spot.OwnerID.
func (s *SpotService) Update(ctx context.Context, spot domain.Spot) (domain.Spot, error) {
	updated, err := s.spots.Update(ctx, spot)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("service.SpotService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a spot owned by ownerID. Returns domain.ErrNotFound if the
// spot does not exist or belongs to someone else.
func (s *SpotService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.spots.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("service.SpotService.Delete: %w", err)
	}
	return nil
}

// AddImage attaches img to img.SpotID on behalf of ownerID.
// Returns domain.ErrNotFound if the spot does not exist or is not owned by ownerID.
func (s *SpotService) AddImage(ctx context.Context, ownerID uuid.UUID, img domain.SpotImage) (domain.SpotImage, error) {
	spot, err := s.spots.GetByID(ctx, img.SpotID)
	if err != nil {
		return domain.SpotImage{}, fmt.Errorf("service.SpotService.AddImage: %w", err)
	}
	if spot.OwnerID != ownerID {
		return domain.SpotImage{}, fmt.Errorf("service.SpotService.AddImage: %w", domain.ErrNotFound)
	}

	created, err := s.images.Create(ctx, img)
	if err != nil {
		return domain.SpotImage{}, fmt.Errorf("service.SpotService.AddImage: %w", err)
	}
	return created, nil
}

// summarize attaches rating and preview image to each spot using two batch reads.
// Always returns a non-nil slice so callers can safely range over it.
func (s *SpotService) summarize(ctx context.Context, spots []domain.Spot) ([]domain.SpotSummary, error) {
	out := make([]domain.SpotSummary, 0, len(spots))
	if len(spots) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(spots))
	for i, sp := range spots {
		ids[i] = sp.ID
	}

	images, err := s.images.ListBySpotIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	stars, err := s.reviews.StarsBySpotIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, sp := range spots {
		out = append(out, domain.SpotSummary{
			Spot:         sp,
			AvgRating:    domain.AverageRating(stars[sp.ID]),
			PreviewImage: domain.PreviewImage(images[sp.ID]),
		})
	}
	return out, nil
}
