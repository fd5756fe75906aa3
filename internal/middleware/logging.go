// Package middleware holds chi middleware shared by the API routes.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
)

// RequestLogger writes one structured line per request. Bodies are not logged
// since they carry conversation text.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Infow("HTTP Request Log",
			"statusCode", ww.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", r.RemoteAddr,
			"method", r.Method,
			"path", r.URL.Path,
			"bytes", ww.BytesWritten(),
			"requestId", chimw.GetReqID(r.Context()),
		)
	})
}
