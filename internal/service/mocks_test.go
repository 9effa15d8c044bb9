package service_test

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/repo"
)

// mockSpotRepo is a hand-written test double for repo.SpotRepo.
// Each method is a function field; set only the ones your test needs.
type mockSpotRepo struct {
	create      func(ctx context.Context, spot domain.Spot) (domain.Spot, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Spot, error)
	list        func(ctx context.Context, f domain.SpotFilter, p domain.PaginationParams) ([]domain.Spot, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID) ([]domain.Spot, error)
	update      func(ctx context.Context, spot domain.Spot) (domain.Spot, error)
	delete      func(ctx context.Context, id, ownerID uuid.UUID) error
}

func (m *mockSpotRepo) Create(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	return m.create(ctx, s)
}
func (m *mockSpotRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Spot, error) {
	return m.getByID(ctx, id)
}
func (m *mockSpotRepo) List(ctx context.Context, f domain.SpotFilter, p domain.PaginationParams) ([]domain.Spot, error) {
	return m.list(ctx, f, p)
}
func (m *mockSpotRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Spot, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockSpotRepo) Update(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	return m.update(ctx, s)
}
func (m *mockSpotRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.delete(ctx, id, ownerID)
}

// spotFound returns a mockSpotRepo whose GetByID always yields spot.
func spotFound(spot domain.Spot) *mockSpotRepo {
	return &mockSpotRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Spot, error) {
			spot.ID = id
			return spot, nil
		},
	}
}

// spotMissing returns a mockSpotRepo whose GetByID always reports ErrNotFound.
func spotMissing() *mockSpotRepo {
	return &mockSpotRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Spot, error) {
			return domain.Spot{}, domain.ErrNotFound
		},
	}
}

// mockImageRepo is a hand-written test double for repo.ImageRepo.
type mockImageRepo struct {
	create        func(ctx context.Context, img domain.SpotImage) (domain.SpotImage, error)
	listBySpotIDs func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.SpotImage, error)
}

func (m *mockImageRepo) Create(ctx context.Context, img domain.SpotImage) (domain.SpotImage, error) {
	return m.create(ctx, img)
}
func (m *mockImageRepo) ListBySpotIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]domain.SpotImage, error) {
	if m.listBySpotIDs == nil {
		return map[uuid.UUID][]domain.SpotImage{}, nil
	}
	return m.listBySpotIDs(ctx, ids)
}

// mockReviewRepo is a hand-written test double for repo.ReviewRepo.
type mockReviewRepo struct {
	create         func(ctx context.Context, r domain.Review) (domain.Review, error)
	listBySpot     func(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error)
	starsBySpotIDs func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]int, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, r domain.Review) (domain.Review, error) {
	return m.create(ctx, r)
}
func (m *mockReviewRepo) ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error) {
	return m.listBySpot(ctx, spotID)
}
func (m *mockReviewRepo) StarsBySpotIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]int, error) {
	if m.starsBySpotIDs == nil {
		return map[uuid.UUID][]int{}, nil
	}
	return m.starsBySpotIDs(ctx, ids)
}

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	getByID func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Create(context.Context, domain.User, string) (domain.User, error) {
	panic("mockUserRepo.Create not expected")
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

// memBookingRepo stores bookings in memory and runs the availability check
// under a mutex, mirroring the row lock the Postgres repo takes.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings []domain.Booking
}

func (m *memBookingRepo) ListBySpot(_ context.Context, spotID uuid.UUID) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.bookings {
		if b.SpotID == spotID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookingRepo) CreateIfAvailable(_ context.Context, b domain.Booking, check repo.AvailabilityCheck) (domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var existing []domain.Booking
	for _, e := range m.bookings {
		if e.SpotID == b.SpotID {
			existing = append(existing, e)
		}
	}
	if err := check(existing); err != nil {
		return domain.Booking{}, err
	}
	b.ID = uuid.New()
	m.bookings = append(m.bookings, b)
	return b, nil
}

// compile-time checks: the doubles must satisfy their repo interfaces.
var (
	_ repo.SpotRepo    = (*mockSpotRepo)(nil)
	_ repo.ImageRepo   = (*mockImageRepo)(nil)
	_ repo.ReviewRepo  = (*mockReviewRepo)(nil)
	_ repo.UserRepo    = (*mockUserRepo)(nil)
	_ repo.BookingRepo = (*memBookingRepo)(nil)
)
