package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spotmw "github.com/pkordes/spotbnb/internal/middleware"
)

const frontendOrigin = "http://localhost:5173"

// requestIDHandler stands in for the API: it answers with the chi request id
// header the way the router does for every response.
var requestIDHandler = middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(middleware.RequestIDHeader, middleware.GetReqID(r.Context()))
	w.WriteHeader(http.StatusOK)
}))

func corsRequest(method, origin string, headers map[string]string) *httptest.ResponseRecorder {
	h := spotmw.NewCORSHandler([]string{frontendOrigin})(requestIDHandler)
	req := httptest.NewRequest(method, "/spots", nil)
	req.Header.Set("Origin", origin)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS_AllowedOrigin_CredentialsAndRequestID(t *testing.T) {
	rec := corsRequest(http.MethodGet, frontendOrigin, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestCORS_Preflight(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		headers string
		allowed bool
	}{
		// Request header names arrive lowercase from browsers.
		{"post with bearer", http.MethodPost, "authorization,content-type", true},
		{"put spot", http.MethodPut, "content-type", true},
		{"delete spot", http.MethodDelete, "authorization", true},
		{"patch is not routed", http.MethodPatch, "content-type", false},
		{"unknown header", http.MethodPost, "x-api-key", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := corsRequest(http.MethodOptions, frontendOrigin, map[string]string{
				"Access-Control-Request-Method":  tc.method,
				"Access-Control-Request-Headers": tc.headers,
			})

			assert.Less(t, rec.Code, 300)
			if tc.allowed {
				assert.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, tc.method, rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORS_DisallowedOrigin_NoHeaders(t *testing.T) {
	rec := corsRequest(http.MethodGet, "http://evil.example.com", nil)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, rec.Header().Get("Access-Control-Expose-Headers"))
}
