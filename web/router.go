/* router.go
 * Contains NewServer and the route table
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer creates a server for the given configuration and registers its metrics
func NewServer(cfg Config) *Server {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	return &Server{
		api:      cfg.API,
		secret:   []byte(cfg.JWTSecret),
		registry: reg,
		metrics:  NewMetrics(reg),
	}
}

// Router returns the handler for every route the server exposes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.instrument)

	r.HandleFunc("/admin/results", s.requireAdmin(s.RecordResultHandler)).Methods("POST")
	r.HandleFunc("/admin/round", s.requireAdmin(s.SetRoundHandler)).Methods("POST")

	r.HandleFunc("/leaderboard", s.LeaderboardHandler).Methods("GET")
	r.HandleFunc("/leaderboard.xlsx", s.LeaderboardExportHandler).Methods("GET")
	r.HandleFunc("/brackets/{userID}", s.BracketHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	return r
}

// statusRecorder keeps the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records the count and latency of every routed request
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unknown"
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.metrics.observeRequest(route, r.Method, rec.status, time.Since(start).Seconds())
	})
}
