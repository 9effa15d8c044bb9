package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/handler"
	"github.com/pkordes/spotbnb/internal/middleware"
)

// mockSpotServicer is a test double for handler.SpotServicer.
// Set only the method fields your test needs.
type mockSpotServicer struct {
	list        func(ctx context.Context, f domain.SpotFilter, p domain.PaginationParams) ([]domain.SpotSummary, error)
	listByOwner func(ctx context.Context, ownerID uuid.UUID) ([]domain.SpotSummary, error)
	getDetail   func(ctx context.Context, id uuid.UUID) (domain.SpotDetail, error)
	getOwned    func(ctx context.Context, id, ownerID uuid.UUID) (domain.Spot, error)
	create      func(ctx context.Context, s domain.Spot) (domain.Spot, error)
	update      func(ctx context.Context, s domain.Spot) (domain.Spot, error)
	delete      func(ctx context.Context, id, ownerID uuid.UUID) error
	addImage    func(ctx context.Context, ownerID uuid.UUID, img domain.SpotImage) (domain.SpotImage, error)
}

func (m *mockSpotServicer) List(ctx context.Context, f domain.SpotFilter, p domain.PaginationParams) ([]domain.SpotSummary, error) {
	return m.list(ctx, f, p)
}
func (m *mockSpotServicer) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.SpotSummary, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockSpotServicer) GetDetail(ctx context.Context, id uuid.UUID) (domain.SpotDetail, error) {
	return m.getDetail(ctx, id)
}
func (m *mockSpotServicer) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (domain.Spot, error) {
	return m.getOwned(ctx, id, ownerID)
}
func (m *mockSpotServicer) Create(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	return m.create(ctx, s)
}
func (m *mockSpotServicer) Update(ctx context.Context, s domain.Spot) (domain.Spot, error) {
	return m.update(ctx, s)
}
func (m *mockSpotServicer) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.delete(ctx, id, ownerID)
}
func (m *mockSpotServicer) AddImage(ctx context.Context, ownerID uuid.UUID, img domain.SpotImage) (domain.SpotImage, error) {
	return m.addImage(ctx, ownerID, img)
}

// mockReviewServicer is a test double for handler.ReviewServicer.
type mockReviewServicer struct {
	listBySpot func(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error)
	create     func(ctx context.Context, r domain.Review) (domain.Review, error)
}

func (m *mockReviewServicer) ListBySpot(ctx context.Context, spotID uuid.UUID) ([]domain.Review, error) {
	return m.listBySpot(ctx, spotID)
}
func (m *mockReviewServicer) Create(ctx context.Context, r domain.Review) (domain.Review, error) {
	return m.create(ctx, r)
}

// mockBookingServicer is a test double for handler.BookingServicer.
type mockBookingServicer struct {
	listBySpot    func(ctx context.Context, spotID, callerID uuid.UUID) ([]domain.Booking, bool, error)
	checkBookable func(ctx context.Context, spotID, userID uuid.UUID) error
	create        func(ctx context.Context, b domain.Booking) (domain.Booking, error)
}

func (m *mockBookingServicer) ListBySpot(ctx context.Context, spotID, callerID uuid.UUID) ([]domain.Booking, bool, error) {
	return m.listBySpot(ctx, spotID, callerID)
}
// CheckBookable passes unless a test sets checkBookable.
func (m *mockBookingServicer) CheckBookable(ctx context.Context, spotID, userID uuid.UUID) error {
	if m.checkBookable == nil {
		return nil
	}
	return m.checkBookable(ctx, spotID, userID)
}
func (m *mockBookingServicer) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}

// compile-time checks: the doubles must satisfy the handler interfaces.
var (
	_ handler.SpotServicer    = (*mockSpotServicer)(nil)
	_ handler.ReviewServicer  = (*mockReviewServicer)(nil)
	_ handler.BookingServicer = (*mockBookingServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// testAPI bundles the router with the mocks behind it and a signed-in caller.
type testAPI struct {
	handler  http.Handler
	spots    *mockSpotServicer
	reviews  *mockReviewServicer
	bookings *mockBookingServicer
	userID   uuid.UUID
	token    string
}

// newTestAPI wires a Server with empty mocks the way main.go wires the real
// services. Tests fill in the mock functions they exercise.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	auth := middleware.NewAuthenticator("handler-test-secret")
	api := &testAPI{
		spots:    &mockSpotServicer{},
		reviews:  &mockReviewServicer{},
		bookings: &mockBookingServicer{},
		userID:   uuid.New(),
	}
	token, err := auth.SignToken(api.userID, time.Hour)
	require.NoError(t, err)
	api.token = token
	api.handler = handler.NewServer(api.spots, api.reviews, api.bookings).Routes(auth.RequireUser)
	return api
}

// do sends a request through the router. body is JSON-encoded unless it is
// already a string; signedIn adds the caller's bearer token.
func (a *testAPI) do(t *testing.T, method, path string, body any, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if signedIn {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// errorBody decodes the {message, errors} body every failure carries.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func spotFixture(ownerID uuid.UUID) domain.Spot {
	now := time.Now().UTC()
	return domain.Spot{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Address:     "123 Disney Lane",
		City:        "San Francisco",
		State:       "California",
		Country:     "United States of America",
		Lat:         37.7645358,
		Lng:         -122.4730327,
		Name:        "App Academy",
		Description: "Place where web developers are created",
		Price:       123,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func validSpotBody() map[string]any {
	return map[string]any{
		"address":     "123 Disney Lane",
		"city":        "San Francisco",
		"state":       "California",
		"country":     "United States of America",
		"lat":         37.7645358,
		"lng":         -122.4730327,
		"name":        "App Academy",
		"description": "Place where web developers are created",
		"price":       123,
	}
}
