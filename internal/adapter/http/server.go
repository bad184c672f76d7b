package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"healthlog/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	glucose *app.GlucoseService
	weight  *app.WeightService
	profile *app.ProfileService
	stats   *app.StatsService
	authSvc *app.AuthService
	webDir  string

	log         *zap.Logger
	oidcConfig  *OIDCConfig
	disableAuth bool
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithLogger sets the request logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithOIDC enables the SSO login routes.
func WithOIDC(cfg *OIDCConfig) Option {
	return func(s *Server) { s.oidcConfig = cfg }
}

// WithoutAuth serves the API without checking sessions.
func WithoutAuth() Option {
	return func(s *Server) { s.disableAuth = true }
}

// New creates a Server wired to the given application services.
func New(gs *app.GlucoseService, ws *app.WeightService, ps *app.ProfileService, ss *app.StatsService, authSvc *app.AuthService, webDir string, opts ...Option) *Server {
	s := &Server{
		glucose:    gs,
		weight:     ws,
		profile:    ps,
		stats:      ss,
		authSvc:    authSvc,
		webDir:     webDir,
		log:        zap.NewNop(),
		oidcConfig: &OIDCConfig{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	data := http.NewServeMux()
	data.HandleFunc("/profile", s.handleProfile)
	data.HandleFunc("/summary", s.handleSummary)

	data.HandleFunc("/glucose", s.handleGlucoseCreate)
	data.HandleFunc("/glucose/recent", s.handleGlucoseRecent)
	data.HandleFunc("/glucose/{id}", s.handleGlucoseItem)

	data.HandleFunc("/weight", s.handleWeightCreate)
	data.HandleFunc("/weight/recent", s.handleWeightRecent)
	data.HandleFunc("/weight/{id}", s.handleWeightItem)

	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/", s.authMiddleware(data))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}

func (s *Server) authRequired() bool {
	return !s.disableAuth && s.authSvc != nil && s.authSvc.Enabled()
}
