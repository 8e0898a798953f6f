// Package server exposes the progress engine over HTTP.
package server

import (
	"net/http"

	"github.com/abhisek/mapquiz/internal/progress"
)

// Server holds the handler dependencies.
type Server struct {
	engine     *progress.Engine
	adminToken string
}

// New creates a Server. An empty adminToken leaves the admin routes open.
func New(engine *progress.Engine, adminToken string) *Server {
	return &Server{engine: engine, adminToken: adminToken}
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.Health)
	mux.HandleFunc("GET /api/regions", s.Regions)
	mux.HandleFunc("GET /api/questions", s.Questions)
	mux.HandleFunc("GET /api/status", s.Status)
	mux.HandleFunc("GET /api/quiz/{region}", s.DueQuestions)
	mux.HandleFunc("POST /api/quiz/{region}", s.Submit)
	// Older clients post the region in the body.
	mux.HandleFunc("POST /api/submit", s.Submit)

	mux.HandleFunc("POST /api/admin/unlock-all", s.RequireAdmin(s.UnlockAll))
	mux.HandleFunc("POST /api/admin/reset", s.RequireAdmin(s.Reset))

	return Logging(mux)
}
