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

// ImageRepo defines the persistence operations for SpotImages.
type ImageRepo interface {
	// Create attaches an image to img.SpotID and returns the persisted record.
	Create(ctx context.Context, img domain.SpotImage) (domain.SpotImage, error)

	// ListBySpotIDs returns the images of every spot in spotIDs keyed by spot,
	// each slice in creation order. Spots without images are absent from the map.
	ListBySpotIDs(ctx context.Context, spotIDs []uuid.UUID) (map[uuid.UUID][]domain.SpotImage, error)
}

// pgImageRepo is the Postgres implementation of ImageRepo.
type pgImageRepo struct {
	db db
}

// NewImageRepo constructs an ImageRepo backed by the provided db connection.
func NewImageRepo(db db) ImageRepo {
	return &pgImageRepo{db: db}
}

// Create inserts a spot_images row.
func (r *pgImageRepo) Create(ctx context.Context, img domain.SpotImage) (domain.SpotImage, error) {
	const q = `
		INSERT INTO spot_images (spot_id, url, preview)
		VALUES (@spot_id, @url, @preview)
		RETURNING id, spot_id, url, preview, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{
		"spot_id": img.SpotID,
		"url":     img.URL,
		"preview": img.Preview,
	})
	result, err := scanImage(row)
	if err != nil {
		return domain.SpotImage{}, fmt.Errorf("repo.ImageRepo.Create: %w", translateFK(err))
	}
	return result, nil
}

// ListBySpotIDs loads images for a batch of spots in one round trip.
func (r *pgImageRepo) ListBySpotIDs(ctx context.Context, spotIDs []uuid.UUID) (map[uuid.UUID][]domain.SpotImage, error) {
	out := map[uuid.UUID][]domain.SpotImage{}
	if len(spotIDs) == 0 {
		return out, nil
	}

	const q = `
		SELECT id, spot_id, url, preview, created_at
		FROM spot_images
		WHERE spot_id = ANY(@spot_ids)
		ORDER BY spot_id, created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"spot_ids": spotIDs})
	if err != nil {
		return nil, fmt.Errorf("repo.ImageRepo.ListBySpotIDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ImageRepo.ListBySpotIDs: scan: %w", err)
		}
		out[img.SpotID] = append(out[img.SpotID], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ImageRepo.ListBySpotIDs: rows: %w", err)
	}
	return out, nil
}

func scanImage(s scanner) (domain.SpotImage, error) {
	var (
		img    domain.SpotImage
		id     pgtype.UUID
		spotID pgtype.UUID
	)
	err := s.Scan(&id, &spotID, &img.URL, &img.Preview, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SpotImage{}, domain.ErrNotFound
		}
		return domain.SpotImage{}, err
	}
	img.ID = uuid.UUID(id.Bytes)
	img.SpotID = uuid.UUID(spotID.Bytes)
	return img, nil
}
