package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/spotbnb/internal/domain"
)

// bookingRequest is the body of POST /spots/{spotId}/bookings.
// Dates are calendar dates ("2006-01-02").
type bookingRequest struct {
	StartDate *openapi_types.Date `json:"startDate" validate:"required"`
	EndDate   *openapi_types.Date `json:"endDate" validate:"required"`
}

func (bookingRequest) fieldMessages() map[string]string {
	return map[string]string{
		"startDate": "startDate is required",
		"endDate":   "endDate is required",
	}
}

// publicBookingResponse is what a non-owner learns about a booking.
type publicBookingResponse struct {
	SpotID    uuid.UUID          `json:"spotId"`
	StartDate openapi_types.Date `json:"startDate"`
	EndDate   openapi_types.Date `json:"endDate"`
}

type bookingResponse struct {
	ID        uuid.UUID          `json:"id"`
	SpotID    uuid.UUID          `json:"spotId"`
	UserID    uuid.UUID          `json:"userId"`
	StartDate openapi_types.Date `json:"startDate"`
	EndDate   openapi_types.Date `json:"endDate"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	User      *userResponse      `json:"User,omitempty"`
}

type bookingListResponse[T any] struct {
	Bookings []T `json:"Bookings"`
}

// ListSpotBookings handles GET /spots/{spotId}/bookings.
// The owner sees every booking with its renter; anyone else sees dates only.
// ?format=csv streams the owner's view as CSV.
func (s *Server) ListSpotBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	var format *string
	fields := map[string]string{}
	queryParam(r, "format", &format, `format must be "json" or "csv"`, fields)
	if len(fields) == 0 && format != nil && *format != "json" && *format != "csv" {
		fields["format"] = `format must be "json" or "csv"`
	}
	if len(fields) > 0 {
		writeError(w, http.StatusBadRequest, msgBadRequest, fields)
		return
	}

	bookings, isOwner, err := s.bookings.ListBySpot(r.Context(), id, userID)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	if format != nil && *format == "csv" {
		if !isOwner {
			// Only the owner may export renter details.
			writeError(w, http.StatusNotFound, msgSpotNotFound, nil)
			return
		}
		writeBookingsCSV(w, r, bookings)
		return
	}

	if !isOwner {
		out := make([]publicBookingResponse, len(bookings))
		for i, b := range bookings {
			out[i] = publicBookingResponse{SpotID: b.SpotID, StartDate: toDate(b.StartDate), EndDate: toDate(b.EndDate)}
		}
		writeJSON(w, http.StatusOK, bookingListResponse[publicBookingResponse]{Bookings: out})
		return
	}
	out := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}
	writeJSON(w, http.StatusOK, bookingListResponse[bookingResponse]{Bookings: out})
}

// CreateSpotBooking handles POST /spots/{spotId}/bookings.
func (s *Server) CreateSpotBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := spotIDParam(r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	// A missing or self-owned spot is a 404 whatever the body says.
	if err := s.bookings.CheckBookable(r.Context(), id, userID); err != nil {
		respondError(w, r, err, "")
		return
	}
	var body bookingRequest
	if err := decodeBody(r, &body); err != nil {
		respondError(w, r, err, "")
		return
	}

	created, err := s.bookings.Create(r.Context(), domain.Booking{
		SpotID:    id,
		UserID:    userID,
		StartDate: body.StartDate.Time,
		EndDate:   body.EndDate.Time,
	})
	if err != nil {
		respondError(w, r, err, msgBookedDates)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(created))
}

func toBookingResponse(b domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:        b.ID,
		SpotID:    b.SpotID,
		UserID:    b.UserID,
		StartDate: toDate(b.StartDate),
		EndDate:   toDate(b.EndDate),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.User != nil {
		u := toUserResponse(*b.User)
		resp.User = &u
	}
	return resp
}

func toDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}
