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

// SpotRepo defines the persistence operations for Spots.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type SpotRepo interface {
	// Create inserts a new spot and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, spot domain.Spot) (domain.Spot, error)

	// GetByID retrieves a single spot by its UUID primary key.
	// Returns domain.ErrNotFound if no spot with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Spot, error)

	// List returns one page of spots matching filter, oldest first.
	List(ctx context.Context, filter domain.SpotFilter, p domain.PaginationParams) ([]domain.Spot, error)

	// ListByOwner returns every spot owned by ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Spot, error)

	// Update overwrites the mutable fields of a spot, scoped to its owner.
	// Returns domain.ErrNotFound if no spot with that ID is owned by spot.OwnerID.
	Update(ctx context.Context, spot domain.Spot) (domain.Spot, error)

	// Delete removes a spot by ID, scoped to ownerID. Images, reviews and
	// bookings go with it. Returns domain.ErrNotFound if nothing was deleted.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// pgSpotRepo is the Postgres implementation of SpotRepo.
type pgSpotRepo struct {
	db db
}

// NewSpotRepo constructs a SpotRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSpotRepo(db db) SpotRepo {
	return &pgSpotRepo{db: db}
}

const spotColumns = `id, owner_id, address, city, state, country, lat, lng, name, description, price, created_at, updated_at`

// Create inserts a new spot row and returns the full persisted record.
func (r *pgSpotRepo) Create(ctx context.Context, spot domain.Spot) (domain.Spot, error) {
	const q = `
		INSERT INTO spots (owner_id, address, city, state, country, lat, lng, name, description, price)
		VALUES (@owner_id, @address, @city, @state, @country, @lat, @lng, @name, @description, @price)
		RETURNING ` + spotColumns

	row := r.db.QueryRow(ctx, q, spotArgs(spot))
	result, err := scanSpot(row)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("repo.SpotRepo.Create: %w", translateFK(err))
	}
	return result, nil
}

// GetByID retrieves a spot by primary key.
func (r *pgSpotRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Spot, error) {
	const q = `SELECT ` + spotColumns + ` FROM spots WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSpot(row)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("repo.SpotRepo.GetByID: %w", err)
	}
	return result, nil
}

// List applies each non-nil bound of filter as its own predicate. A NULL
// parameter disables its predicate, so the SQL text never changes.
func (r *pgSpotRepo) List(ctx context.Context, filter domain.SpotFilter, p domain.PaginationParams) ([]domain.Spot, error) {
	const q = `
		SELECT ` + spotColumns + `
		FROM spots
		WHERE (@min_lat::float8   IS NULL OR lat   >= @min_lat)
		  AND (@max_lat::float8   IS NULL OR lat   <= @max_lat)
		  AND (@min_lng::float8   IS NULL OR lng   >= @min_lng)
		  AND (@max_lng::float8   IS NULL OR lng   <= @max_lng)
		  AND (@min_price::float8 IS NULL OR price >= @min_price)
		  AND (@max_price::float8 IS NULL OR price <= @max_price)
		ORDER BY created_at, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"min_lat":   filter.MinLat,
		"max_lat":   filter.MaxLat,
		"min_lng":   filter.MinLng,
		"max_lng":   filter.MaxLng,
		"min_price": filter.MinPrice,
		"max_price": filter.MaxPrice,
		"limit":     p.Size,
		"offset":    p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.SpotRepo.List: %w", err)
	}
	spots, err := collectSpots(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.SpotRepo.List: %w", err)
	}
	return spots, nil
}

// ListByOwner returns all spots owned by ownerID.
func (r *pgSpotRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Spot, error) {
	const q = `
		SELECT ` + spotColumns + `
		FROM spots
		WHERE owner_id = @owner_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.SpotRepo.ListByOwner: %w", err)
	}
	spots, err := collectSpots(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.SpotRepo.ListByOwner: %w", err)
	}
	return spots, nil
}

// Update overwrites the mutable fields of a spot and returns the updated record.
func (r *pgSpotRepo) Update(ctx context.Context, spot domain.Spot) (domain.Spot, error) {
	const q = `
		UPDATE spots
		SET address     = @address,
		    city        = @city,
		    state       = @state,
		    country     = @country,
		    lat         = @lat,
		    lng         = @lng,
		    name        = @name,
		    description = @description,
		    price       = @price,
		    updated_at  = now()
		WHERE id = @id AND owner_id = @owner_id
		RETURNING ` + spotColumns

	args := spotArgs(spot)
	args["id"] = spot.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSpot(row)
	if err != nil {
		return domain.Spot{}, fmt.Errorf("repo.SpotRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a spot by primary key and owner.
func (r *pgSpotRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const q = `DELETE FROM spots WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.SpotRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SpotRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func spotArgs(s domain.Spot) pgx.NamedArgs {
	return pgx.NamedArgs{
		"owner_id":    s.OwnerID,
		"address":     s.Address,
		"city":        s.City,
		"state":       s.State,
		"country":     s.Country,
		"lat":         s.Lat,
		"lng":         s.Lng,
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
	}
}

func collectSpots(rows pgx.Rows) ([]domain.Spot, error) {
	defer rows.Close()

	spots := []domain.Spot{}
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return spots, nil
}

// scanSpot maps a single database row into a domain.Spot.
func scanSpot(s scanner) (domain.Spot, error) {
	var (
		sp      domain.Spot
		id      pgtype.UUID
		ownerID pgtype.UUID
	)

	err := s.Scan(&id, &ownerID, &sp.Address, &sp.City, &sp.State, &sp.Country,
		&sp.Lat, &sp.Lng, &sp.Name, &sp.Description, &sp.Price, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Spot{}, domain.ErrNotFound
		}
		return domain.Spot{}, err
	}

	sp.ID = uuid.UUID(id.Bytes)
	sp.OwnerID = uuid.UUID(ownerID.Bytes)
	return sp, nil
}
