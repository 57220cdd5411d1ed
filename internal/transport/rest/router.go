package rest

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/hasanuzzaman/attendance-core/internal/ingestion"
	"github.com/hasanuzzaman/attendance-core/internal/transport/swagger"
)

// RegisterAllRoutes mounts the ingest endpoint and health checks, the
// minimal transport glue spec.md §1 carries outside the excluded auth and
// reporting surfaces.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, pipeline *ingestion.Pipeline) {
	healthHandler := NewHealthHandler(db)
	ingestHandler := NewIngestHandler(pipeline)

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)
		r.Post("/recognitions:ingest", ingestHandler.Ingest)
	})
}
