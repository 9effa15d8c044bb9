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

// AvailabilityCheck decides whether a booking may be inserted given the
// bookings already stored for the same spot. A non-nil error aborts the insert
// and is returned to the caller unchanged.
type AvailabilityCheck func(existing []domain.Booking) error

// BookingRepo defines the persistence operations for Bookings.
type BookingRepo interface {
	// ListBySpot returns all bookings for a spot ordered by start_date, each
	// with its renter populated.
	ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Booking, error)

	// CreateIfAvailable locks the spot, loads its bookings, runs check and
	// inserts booking only if check returns nil. The whole sequence is one
	// transaction, so two concurrent calls for the same spot never both pass
	// check against a stale booking list.
	// Returns domain.ErrNotFound if the spot does not exist.
	CreateIfAvailable(ctx context.Context, booking domain.Booking, check AvailabilityCheck) (domain.Booking, error)
}

type pgBookingRepo struct {
	db txDB
}

// NewBookingRepo constructs a BookingRepo. db must be able to begin
// transactions: *pgxpool.Pool in production, pgx.Tx in tests.
func NewBookingRepo(db txDB) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingSelect = `
		SELECT b.id, b.spot_id, b.user_id, b.start_date, b.end_date, b.created_at, b.updated_at,
		       u.first_name, u.last_name
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.spot_id = @spot_id
		ORDER BY b.start_date, b.id`

func (r *pgBookingRepo) ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Booking, error) {
	bookings, err := listBookings(ctx, r.db, spotID)
	if err != nil {
		return nil, fmt.Errorf("repo.BookingRepo.ListBySpot: %w", err)
	}
	return bookings, nil
}

func (r *pgBookingRepo) CreateIfAvailable(ctx context.Context, booking domain.Booking, check AvailabilityCheck) (domain.Booking, error) {
	var created domain.Booking

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// The row lock serializes every booking attempt for this spot until commit.
		var locked pgtype.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM spots WHERE id = @id FOR UPDATE`,
			pgx.NamedArgs{"id": booking.SpotID}).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock spot: %w", err)
		}

		existing, err := listBookings(ctx, tx, booking.SpotID)
		if err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}

		const q = `
			INSERT INTO bookings (spot_id, user_id, start_date, end_date)
			VALUES (@spot_id, @user_id, @start_date, @end_date)
			RETURNING id, spot_id, user_id, start_date, end_date, created_at, updated_at`

		created, err = scanBooking(tx.QueryRow(ctx, q, pgx.NamedArgs{
			"spot_id":    booking.SpotID,
			"user_id":    booking.UserID,
			"start_date": pgtype.Date{Time: booking.StartDate, Valid: true},
			"end_date":   pgtype.Date{Time: booking.EndDate, Valid: true},
		}))
		return err
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.CreateIfAvailable: %w", translateFK(err))
	}
	return created, nil
}

func listBookings(ctx context.Context, q db, spotID uuid.UUID) ([]domain.Booking, error) {
	rows, err := q.Query(ctx, bookingSelect, pgx.NamedArgs{"spot_id": spotID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var (
			b      domain.Booking
			id     pgtype.UUID
			sID    pgtype.UUID
			userID pgtype.UUID
			start  pgtype.Date
			end    pgtype.Date
			renter domain.User
		)
		err := rows.Scan(&id, &sID, &userID, &start, &end, &b.CreatedAt, &b.UpdatedAt,
			&renter.FirstName, &renter.LastName)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		b.ID = uuid.UUID(id.Bytes)
		b.SpotID = uuid.UUID(sID.Bytes)
		b.UserID = uuid.UUID(userID.Bytes)
		b.StartDate = start.Time
		b.EndDate = end.Time
		renter.ID = b.UserID
		b.User = &renter
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return bookings, nil
}

func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b      domain.Booking
		id     pgtype.UUID
		spotID pgtype.UUID
		userID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)
	err := s.Scan(&id, &spotID, &userID, &start, &end, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	b.ID = uuid.UUID(id.Bytes)
	b.SpotID = uuid.UUID(spotID.Bytes)
	b.UserID = uuid.UUID(userID.Bytes)
	b.StartDate = start.Time
	b.EndDate = end.Time
	return b, nil
}
