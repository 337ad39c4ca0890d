package handler

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond rps sustained requests per second with
// the given burst. Uploads are heavyweight; a single shared limiter is
// enough for this surface.
func RateLimit(rps, burst int, next http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
