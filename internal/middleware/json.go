package middleware

import (
	"mime"
	"net/http"
)

var acceptedMediaTypes = map[string]bool{
	"application/json":                  true,
	"application/x-www-form-urlencoded": true,
	"multipart/form-data":               true,
}

// JsonMiddleware rejects request bodies that are neither JSON nor an HTML form.
// Requests without a Content-Type are passed through as JSON.
func JsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || !acceptedMediaTypes[mediaType] {
				http.Error(w, "Unsupported media type", http.StatusUnsupportedMediaType)
				return
			}
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}
