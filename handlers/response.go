package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"habitTrackerAPI/internal/analytics"
	"habitTrackerAPI/internal/calendar"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/services"
)

const maxBodyBytes = 1 << 20

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calendar.ErrInvalidTimezone),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidDateRange),
		errors.Is(err, analytics.ErrInvalidRequest),
		errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, analytics.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes the mapped status. Client errors echo the
// error text; server errors are logged and hidden behind a generic message.
func respondWithServiceError(w http.ResponseWriter, err error, clerkID string) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		logger.Error("request failed", "clerk_id", clerkID, "status", code, "error", err)
		if code == http.StatusServiceUnavailable {
			respondWithError(w, code, "Service temporarily unavailable")
			return
		}
		respondWithError(w, code, "Internal server error")
		return
	}
	respondWithError(w, code, err.Error())
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	return dec.Decode(dst)
}
