package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"consolidator-backend/application/ports"
	querybus "consolidator-backend/application/queries/bus"
	"consolidator-backend/interfaces/http/rest/handlers"
	"consolidator-backend/interfaces/http/rest/middleware"
	v1 "consolidator-backend/interfaces/http/rest/v1"
	"consolidator-backend/pkg/common"
	"consolidator-backend/pkg/observability"
	"consolidator-backend/pkg/utils"
)

// Router creates and configures the HTTP router
type Router struct {
	queryBus *querybus.QueryBus
	store    ports.RecordStore
	tracer   *observability.Tracer
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	queryBus *querybus.QueryBus,
	store ports.RecordStore,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		queryBus: queryBus,
		store:    store,
		tracer:   tracer,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(versionMiddleware)

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes (legacy - redirects to v2)
	router.Mount("/api/v1", v1.NewRouter())

	// API v2 routes (current)
	router.Route("/api/v2", func(r chi.Router) {
		r.Use(middleware.Authenticate())

		// Analysis endpoints
		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(rt.queryBus, rt.tracer, rt.logger)
			r.Get("/graph", analysisHandler.AnalyzeGraph)
			r.Get("/clusters", analysisHandler.AnalyzeClusters)
		})

		// Collection registry endpoints
		r.Route("/collections", func(r chi.Router) {
			collectionHandler := handlers.NewCollectionHandler(rt.queryBus, rt.logger)
			r.Get("/", collectionHandler.ListCollections)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": utils.NowRFC3339(),
	})
}

// readinessCheck verifies the record store is reachable
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	if err := rt.store.Ping(req.Context()); err != nil {
		rt.logger.Warn("readiness check failed", zap.Error(err))
		common.RespondError(w, http.StatusServiceUnavailable, common.StandardErrorCodes.ServiceUnavailable, "record store unreachable")
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ready",
		"timestamp": utils.NowRFC3339(),
	})
}

// versionMiddleware adds API version headers to all responses
func versionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version := "v2"
		if strings.Contains(r.URL.Path, "/api/v1") {
			version = "v1"
		}

		w.Header().Set("X-API-Version", version)
		w.Header().Set("X-API-Latest", "v2")
		w.Header().Set("X-API-Deprecated", "false")

		if version == "v1" {
			w.Header().Set("X-API-Deprecated", "true")
			w.Header().Set("X-API-Sunset-Date", "2026-12-01")
		}

		next.ServeHTTP(w, r)
	})
}
