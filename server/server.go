package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/seatflow/go-floorplan-server/companies"
	"github.com/seatflow/go-floorplan-server/floorplan"
	"github.com/seatflow/go-floorplan-server/internal/config"
	"github.com/seatflow/go-floorplan-server/platform"
	"github.com/seatflow/go-floorplan-server/session"
)

// Repos bundles the persistence interfaces the server depends on.
type Repos struct {
	Companies companies.Repo
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	repos     Repos
	floorplan *floorplan.Service
	platform  *platform.Client
	issuer    *session.Issuer
}

func New(cfg config.Config, repos Repos, floorplanService *floorplan.Service, platformClient *platform.Client) (*Server, error) {
	if repos.Companies == nil {
		return nil, fmt.Errorf("[Server New] company repo is required")
	}
	if cfg.GetClientSecret() == "" {
		return nil, fmt.Errorf("[Server New] client secret is not configured")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		repos:     repos,
		floorplan: floorplanService,
		platform:  platformClient,
		issuer:    session.NewIssuer(session.NewHMACSigner(cfg.GetSessionSigningSecret()), cfg.GetSessionTokenTTL()),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Debug().Str("route", route).Msg("registered")
	}
}
