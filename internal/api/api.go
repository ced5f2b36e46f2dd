// Package api implements the HTTP build service.
//
// The server fronts a pipeline.Runner: POST /v1/template builds the
// template sheet for a box, POST /v1/wraps builds the two wrap images
// from an uploaded template, and GET /v1/artifacts/{id} serves any
// recently built image as PNG. Builds are synchronous; the geometry
// is cheap enough that a request either finishes quickly or fails
// validation.
//
// Build failures map onto status codes through the error codes:
// invalid input is 400, a template with the wrong pixel size is 422,
// and anything unexpected is 500. Error bodies carry the code and the
// user-facing message as JSON.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mwoelke/boxwrap/pkg/geometry"
	"github.com/mwoelke/boxwrap/pkg/host"
	"github.com/mwoelke/boxwrap/pkg/observability"
	"github.com/mwoelke/boxwrap/pkg/pipeline"
)

// maxUploadBytes caps the multipart template upload. The largest
// sensible template (a giant box at 300 dpi) stays well below this.
const maxUploadBytes = 64 << 20

// Server serves the build API.
type Server struct {
	runner    *pipeline.Runner
	artifacts *host.MemoryHost
	logger    *log.Logger
	defaults  geometry.Params
}

// NewServer creates a server around the runner. The artifacts host
// must be the runner's publish target so /v1/artifacts finds built
// images. defaults fills wrap parameters absent from requests.
func NewServer(runner *pipeline.Runner, artifacts *host.MemoryHost, logger *log.Logger, defaults geometry.Params) *Server {
	return &Server{
		runner:    runner,
		artifacts: artifacts,
		logger:    logger,
		defaults:  defaults,
	}
}

// Routes assembles the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/template", s.handleTemplate)
		r.Post("/wraps", s.handleWraps)
		r.Get("/artifacts/{id}", s.handleArtifact)
	})

	return r
}

// logRequests writes one log line per request and feeds the HTTP
// hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.Round(time.Millisecond),
		)
	})
}
