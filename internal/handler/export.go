package handler

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/spotbnb/internal/domain"
)

// csvHeaders is the first row of a bookings export.
var csvHeaders = []string{
	"booking_id", "spot_id", "user_id", "first_name", "last_name",
	"start_date", "end_date", "nights", "created_at",
}

// writeBookingsCSV answers with bookings as text/csv, one row per booking.
// The body is buffered so an encoding failure can still become a 500.
func writeBookingsCSV(w http.ResponseWriter, r *http.Request, bookings []domain.Booking) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(csvHeaders)
	for _, b := range bookings {
		_ = cw.Write(bookingToCSVRecord(b))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "bookings csv export", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalServer, nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// bookingToCSVRecord flattens a booking. A booking without a loaded renter
// leaves the name columns empty.
func bookingToCSVRecord(b domain.Booking) []string {
	var first, last string
	if b.User != nil {
		first, last = b.User.FirstName, b.User.LastName
	}
	nights := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	return []string{
		b.ID.String(),
		b.SpotID.String(),
		b.UserID.String(),
		first,
		last,
		b.StartDate.Format(time.DateOnly),
		b.EndDate.Format(time.DateOnly),
		strconv.Itoa(nights),
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
