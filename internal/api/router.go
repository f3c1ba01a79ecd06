// filepath: internal/api/router.go
package api

import (
	"net/http"

	"github.com/KodyMike/DropZone/internal/api/handlers"

	"github.com/gorilla/mux"
)

// SetupRouter configures the request dispatcher. Exactly one route exists:
// POST /upload. Every other method/path combination is rejected before any
// storage logic runs, which is what keeps the server write-only.
func SetupRouter(h *handlers.Handlers, version string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/upload", h.UploadFile).Methods(http.MethodPost)

	// Known path, wrong method
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	// Unknown path, any method
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})

	// Wrap the router instead of using mux.Use so rejected requests are
	// logged and tagged with request IDs too.
	return requestMiddleware(r, version)
}
