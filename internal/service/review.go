package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/repo"
)

// ReviewService implements business logic for Review operations.
type ReviewService struct {
	spots   repo.SpotRepo
	reviews repo.ReviewRepo
}

// NewReviewService constructs a ReviewService backed by the provided repos.
func NewReviewService(spots repo.SpotRepo, reviews repo.ReviewRepo) *ReviewService {
	return &ReviewService{spots: spots, reviews: reviews}
}

// ListBySpot returns the reviews of a spot with their authors.
// Returns domain.ErrNotFound if the spot does not exist.
func (s *ReviewService) ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error) {
	if _, err := s.spots.GetByID(ctx, spotID); err != nil {
		return nil, fmt.Errorf("service.ReviewService.ListBySpot: %w", err)
	}
	reviews, err := s.reviews.ListBySpot(ctx, spotID)
	if err != nil {
		return nil, fmt.Errorf("service.ReviewService.ListBySpot: %w", err)
	}
	if reviews == nil {
		return []domain.Review{}, nil
	}
	return reviews, nil
}

// Create stores a review for review.SpotID by review.UserID.
// Returns domain.ErrNotFound if the spot does not exist and domain.ErrConflict
// if the author has already reviewed it.
func (s *ReviewService) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	if review.Stars < 1 || review.Stars > 5 {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w",
			domain.NewValidationError(map[string]string{"stars": "Stars must be an integer from 1 to 5"}))
	}
	if _, err := s.spots.GetByID(ctx, review.SpotID); err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return domain.Review{}, fmt.Errorf("service.ReviewService.Create: %w", err)
	}
	return created, nil
}
