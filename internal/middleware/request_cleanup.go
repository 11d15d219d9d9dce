package middleware

import (
	"io"
	"net/http"
)

// MaxRequestBodyBytes is the largest JSON body any endpoint accepts. A full
// workout with many exercises and sets stays far below it.
const MaxRequestBodyBytes int64 = 1 << 20

// LimitAndDrainRequest caps the request body at maxBytes and drains whatever the
// handler left unread, so the connection can be reused.
func LimitAndDrainRequest(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)

			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxBytes))
			_ = r.Body.Close()
		})
	}
}
