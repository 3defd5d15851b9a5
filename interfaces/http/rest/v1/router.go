package v1

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// NewRouter creates the legacy v1 API router. Every analysis route moved to
// v2; v1 answers with permanent redirects so old clients keep working.
func NewRouter() *mux.Router {
	router := mux.NewRouter()
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.Use(versionHeaders)

	// Legacy analysis endpoints
	v1.HandleFunc("/analysis/graph", redirectToV2).Methods("GET")
	v1.HandleFunc("/analysis/clusters", redirectToV2).Methods("GET")
	v1.HandleFunc("/collections", redirectToV2).Methods("GET")

	// Health check
	v1.HandleFunc("/health", healthCheck).Methods("GET")

	return router
}

// redirectToV2 rewrites the path to the v2 equivalent
func redirectToV2(w http.ResponseWriter, r *http.Request) {
	target := strings.Replace(r.URL.Path, "/api/v1", "/api/v2", 1)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusPermanentRedirect)
}

// versionHeaders adds API version headers to responses
func versionHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", "v1")
		w.Header().Set("X-API-Deprecated", "true")
		next.ServeHTTP(w, r)
	})
}

// healthCheck provides a health check endpoint
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","version":"v1"}`))
}
