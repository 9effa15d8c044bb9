package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/spotbnb/internal/domain"
)

// ReviewRepo defines the persistence operations for Reviews.
type ReviewRepo interface {
	// Create inserts a review. The (spot_id, user_id) UNIQUE constraint makes a
	// second review by the same author fail with domain.ErrConflict.
	Create(ctx context.Context, review domain.Review) (domain.Review, error)

	// ListBySpot returns all reviews for a spot with their author, newest first.
	ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error)

	// StarsBySpotIDs returns the star values of every review per spot.
	// Spots without reviews are absent from the map.
	StarsBySpotIDs(ctx context.Context, spotIDs []uuid.UUID) (map[uuid.UUID][]int, error)
}

type pgReviewRepo struct {
	db db
}

// NewReviewRepo constructs a ReviewRepo backed by the provided db connection.
func NewReviewRepo(db db) ReviewRepo {
	return &pgReviewRepo{db: db}
}

// Create relies on the database for uniqueness so two concurrent reviews by
// the same author cannot both land.
func (r *pgReviewRepo) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	const q = `
		INSERT INTO reviews (spot_id, user_id, review, stars)
		VALUES (@spot_id, @user_id, @review, @stars)
		RETURNING id, spot_id, user_id, review, stars, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"spot_id": review.SpotID,
		"user_id": review.UserID,
		"review":  review.Review,
		"stars":   review.Stars,
	})
	result, err := scanReview(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Review{}, fmt.Errorf("repo.ReviewRepo.Create: %w", translateFK(err))
	}
	return result, nil
}

// ListBySpot joins each review with its author.
func (r *pgReviewRepo) ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error) {
	const q = `
		SELECT r.id, r.spot_id, r.user_id, r.review, r.stars, r.created_at, r.updated_at,
		       u.first_name, u.last_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.spot_id = @spot_id
		ORDER BY r.created_at DESC, r.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"spot_id": spotID})
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListBySpot: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var (
			rv     domain.Review
			id     pgtype.UUID
			sID    pgtype.UUID
			userID pgtype.UUID
			author domain.User
		)
		err := rows.Scan(&id, &sID, &userID, &rv.Review, &rv.Stars, &rv.CreatedAt, &rv.UpdatedAt,
			&author.FirstName, &author.LastName)
		if err != nil {
			return nil, fmt.Errorf("repo.ReviewRepo.ListBySpot: scan: %w", err)
		}
		rv.ID = uuid.UUID(id.Bytes)
		rv.SpotID = uuid.UUID(sID.Bytes)
		rv.UserID = uuid.UUID(userID.Bytes)
		author.ID = rv.UserID
		rv.User = &author
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.ListBySpot: rows: %w", err)
	}
	return reviews, nil
}

// StarsBySpotIDs loads star values for a batch of spots in one round trip.
func (r *pgReviewRepo) StarsBySpotIDs(ctx context.Context, spotIDs []uuid.UUID) (map[uuid.UUID][]int, error) {
	out := map[uuid.UUID][]int{}
	if len(spotIDs) == 0 {
		return out, nil
	}

	const q = `SELECT spot_id, stars FROM reviews WHERE spot_id = ANY(@spot_ids)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"spot_ids": spotIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.StarsBySpotIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			spotID pgtype.UUID
			stars  int
		)
		if err := rows.Scan(&spotID, &stars); err != nil {
			return nil, fmt.Errorf("repo.ReviewRepo.StarsBySpotIDs: scan: %w", err)
		}
		key := uuid.UUID(spotID.Bytes)
		out[key] = append(out[key], stars)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReviewRepo.StarsBySpotIDs: rows: %w", err)
	}
	return out, nil
}

func scanReview(s scanner) (domain.Review, error) {
	var (
		rv     domain.Review
		id     pgtype.UUID
		spotID pgtype.UUID
		userID pgtype.UUID
	)
	err := s.Scan(&id, &spotID, &userID, &rv.Review, &rv.Stars, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, domain.ErrNotFound
		}
		return domain.Review{}, err
	}
	rv.ID = uuid.UUID(id.Bytes)
	rv.SpotID = uuid.UUID(spotID.Bytes)
	rv.UserID = uuid.UUID(userID.Bytes)
	return rv, nil
}
