package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pkordes/spotbnb/internal/domain"
)

const (
	msgBadRequest     = "Bad Request"
	msgSpotNotFound   = "Spot couldn't be found"
	msgBookedDates    = "Sorry, this spot is already booked for the specified dates"
	msgReviewExists   = "User already has a review for this spot"
	msgDeleted        = "Successfully deleted"
	msgUnauthorized   = "Authentication required"
	msgTooLarge       = "Request body too large"
	msgInternalServer = "Internal Server Error"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, errorResponse{Message: message, Errors: fields})
}

// respondError maps err onto the status code and body the API documents for
// it. conflictMessage is used for domain.ErrConflict, whose wording depends
// on the resource. Anything unrecognised is logged and answered with 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, conflictMessage string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge, nil)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, msgBadRequest, domain.FieldsOf(err))
	case errors.Is(err, domain.ErrUnknownUser):
		writeError(w, http.StatusUnauthorized, msgUnauthorized, nil)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgSpotNotFound, nil)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusForbidden, conflictMessage, domain.FieldsOf(err))
	default:
		slog.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalServer, nil)
	}
}
