// filepath: internal/api/middleware.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KodyMike/DropZone/internal/logging"
	"github.com/KodyMike/DropZone/internal/requestid"
	"github.com/sirupsen/logrus"
)

// statusRecorder captures the status code written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// requestMiddleware tags every request with a ULID, advertises the server
// version and writes an access log line when the response is done.
func requestMiddleware(next http.Handler, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestid.New()

		w.Header().Set("X-Request-Id", id)
		w.Header().Set("Server", fmt.Sprintf("DropZone/%s", version))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(requestid.NewContext(r.Context(), id)))

		logging.Log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"remote":     r.RemoteAddr,
			"duration":   time.Since(start).String(),
		}).Info("request completed")
	})
}

// writeError sends a JSON error body for requests rejected by the dispatcher.
func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
