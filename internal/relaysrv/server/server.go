// Package server provides the HTTP server for the relay service. It wires the
// conversation endpoints, version and health checks, CORS handling, and the
// logging and panic-recovery middleware onto a chi router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/linguachat/linguachat/internal/common/httpx"
	"github.com/linguachat/linguachat/internal/common/middleware"
	"github.com/linguachat/linguachat/internal/relaysrv/config"
	"github.com/linguachat/linguachat/internal/relaysrv/conversation"
)

// RelayServer is the main HTTP server for the relay service.
type RelayServer struct {
	Router *chi.Mux // HTTP router for request handling
}

// CreateNewServer creates a new RelayServer instance.
func CreateNewServer() (*RelayServer, error) {
	s := &RelayServer{}
	s.Router = chi.NewRouter()
	return s, nil
}

// MountHandlers sets up all HTTP routes and middleware for the server.
func (s *RelayServer) MountHandlers() {
	s.Router.Use(middleware.RequestLogger)
	s.Router.Use(middleware.PanicHandler)
	if !config.Config().DisableCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.mountResourceHandlers(s.Router)
}

// mountResourceHandlers registers all resource endpoints on the router.
func (s *RelayServer) mountResourceHandlers(r chi.Router) {
	r.Route("/api/conversation", func(r chi.Router) {
		conversation.Router(r)
	})
	r.Get("/version", s.getVersion)
	r.Get("/ready", s.getReadiness)
}

// GetVersionRsp represents the response for version information.
type GetVersionRsp struct {
	ServerVersion string `json:"serverVersion"` // server version string
	ApiVersion    string `json:"apiVersion"`    // API version string
}

// getVersion handles version information requests.
func (s *RelayServer) getVersion(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("GetVersion")
	rsp := &GetVersionRsp{
		ServerVersion: "LinguaChat Relay Server: " + Version,
		ApiVersion:    conversation.Version,
	}
	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, rsp)
}

// getReadiness handles health check requests.
func (s *RelayServer) getReadiness(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Debug().Msg("readiness check")

	httpx.SendJsonRsp(r.Context(), w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// HandleCORS provides permissive CORS middleware for cross-origin requests.
// All responses, including errors, carry the CORS headers; OPTIONS preflight
// succeeds with no body.
func (s *RelayServer) HandleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
