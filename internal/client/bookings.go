package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/spotbnb/internal/store"
)

// ListBookings fetches a spot's bookings and dispatches store.BookingsLoaded.
func (c *Client) ListBookings(ctx context.Context, spotID uuid.UUID) ([]store.Booking, error) {
	var out struct {
		Bookings []store.Booking `json:"Bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/spots/"+spotID.String()+"/bookings", nil, nil, &out); err != nil {
		return nil, err
	}
	c.store.Dispatch(store.BookingsLoaded{SpotID: spotID, Bookings: out.Bookings})
	return out.Bookings, nil
}

// CreateBooking books a spot from start to end (calendar dates) and
// dispatches store.BookingCreated.
func (c *Client) CreateBooking(ctx context.Context, spotID uuid.UUID, start, end time.Time) (store.Booking, error) {
	in := struct {
		StartDate openapi_types.Date `json:"startDate"`
		EndDate   openapi_types.Date `json:"endDate"`
	}{StartDate: openapi_types.Date{Time: start}, EndDate: openapi_types.Date{Time: end}}
	var b store.Booking
	if err := c.do(ctx, http.MethodPost, "/spots/"+spotID.String()+"/bookings", nil, in, &b); err != nil {
		return store.Booking{}, err
	}
	c.store.Dispatch(store.BookingCreated{Booking: b})
	return b, nil
}
