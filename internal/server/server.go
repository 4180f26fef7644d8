// Package server exposes the dashboard views over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/sells-group/access-cli/internal/config"
	"github.com/sells-group/access-cli/internal/dashboard"
)

// Server routes API requests to a loaded dashboard.
type Server struct {
	dash    *dashboard.Dashboard
	cfg     config.ServerConfig
	limiter *rate.Limiter
}

// New creates a Server. A zero RateLimit disables request limiting.
func New(dash *dashboard.Dashboard, cfg config.ServerConfig) *Server {
	s := &Server{dash: dash, cfg: cfg}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		r.Use(rateLimit(s.limiter))
	}

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/legend/{metric}", s.handleLegend)
		r.Get("/intensity", s.handleIntensity)
		r.Get("/intensity/map.geojson", s.handleIntensityMap)
		r.Get("/severity", s.handleSeverity)
		r.Get("/severity/map.geojson", s.handleSeverityMap)
		r.Get("/cache", s.handleCache)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
