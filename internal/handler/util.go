package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"ecovision/internal/dashboard"

	"github.com/rs/zerolog/log"
)

// writeJSON encodes v before sending status, so an unencodable value
// becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("couldn't encode a response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// isForm reports whether r carries an HTML form body.
func isForm(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

var validationErrors = []error{
	dashboard.ErrUnknownPanel,
	dashboard.ErrUnknownLayer,
	dashboard.ErrUnknownDisaster,
	dashboard.ErrUnknownEvent,
	dashboard.ErrUnknownFeed,
	dashboard.ErrUnknownAction,
	dashboard.ErrUnknownPost,
	dashboard.ErrUnknownSolution,
	dashboard.ErrUnknownControl,
}

// statusFor maps a dashboard error to an HTTP status.
func statusFor(err error) int {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	if errors.Is(err, dashboard.ErrRefreshInProgress) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
