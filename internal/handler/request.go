package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/spotbnb/internal/domain"
	"github.com/pkordes/spotbnb/internal/middleware"
)

// requestBody is implemented by every JSON request DTO. fieldMessages maps a
// JSON field name to the reason reported when any rule on that field fails.
type requestBody interface {
	fieldMessages() map[string]string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so failures line up with what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody decodes the JSON request body into dst and runs its validate
// tags. Failures come back as a domain validation FieldError, except an
// oversized body, which keeps its *http.MaxBytesError.
func decodeBody(r *http.Request, dst requestBody) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if msg, ok := dst.fieldMessages()[typeErr.Field]; ok {
				return domain.NewValidationError(map[string]string{typeErr.Field: msg})
			}
		}
		return domain.NewValidationError(map[string]string{"body": "Request body must be a valid JSON object"})
	}
	return validateBody(dst)
}

func validateBody(dst requestBody) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("handler.validateBody: %w", err)
	}
	messages := dst.fieldMessages()
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		fields[fe.Field()] = msg
	}
	return domain.NewValidationError(fields)
}

// spotIDParam binds the {spotId} path segment. A malformed id can never name
// a spot, so it is reported as domain.ErrNotFound.
func spotIDParam(r *http.Request) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "spotId", chi.URLParam(r, "spotId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("handler.spotIDParam: %w", domain.ErrNotFound)
	}
	return id, nil
}

// queryParam binds an optional form-style query parameter into dest. On a
// parse failure it records message under name in fields.
func queryParam(r *http.Request, name string, dest any, message string, fields map[string]string) {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		fields[name] = message
	}
}

// callerID returns the authenticated caller. The bool is false only when a
// route was wired without the auth middleware.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgUnauthorized, nil)
	}
	return id, ok
}
