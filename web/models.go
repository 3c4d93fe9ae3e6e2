/* models.go
 * Contains the configuration, server and request types for the HTTP server
 * Authors: Zachary Bower
 */

package web

import (
	"madness-pool/api/api"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
	// JWTSecret signs admin tokens. Admin routes reject every request when it is empty
	JWTSecret string
	// Registry receives the server metrics. Nil creates a new registry
	Registry *prometheus.Registry
}

// Server is the HTTP server that handles admin and read only requests
type Server struct {
	api      *api.API
	secret   []byte
	registry *prometheus.Registry
	metrics  *Metrics
}

// resultRequest is the body of POST /admin/results
type resultRequest struct {
	GameID int    `json:"gameId"`
	Winner string `json:"winner"`
}

// roundRequest is the body of POST /admin/round. A round of 0 advances to the next round
type roundRequest struct {
	Round int `json:"round"`
}

type errorResponse struct {
	Error string `json:"error"`
}
