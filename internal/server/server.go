package server

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/videoshare/videoshare/internal/catalog"
	"github.com/videoshare/videoshare/internal/docs"
	"github.com/videoshare/videoshare/internal/httputil"
	"github.com/videoshare/videoshare/internal/metrics"
	"github.com/videoshare/videoshare/internal/model"
	"github.com/videoshare/videoshare/internal/ratelimit"
	"github.com/videoshare/videoshare/internal/session"
	"github.com/videoshare/videoshare/internal/validate"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Catalog  *catalog.Store
	Sessions *session.Store
	Metrics  *metrics.Metrics
	// Pinger checks the slot backend for /api/health. Nil means always healthy.
	Pinger       Pinger
	WebFS        fs.FS
	BaseURL      string
	MediaOrigins []string
	// SessionLimiter throttles login, register and logout. A default is
	// created when nil.
	SessionLimiter *ratelimit.Limiter
	EnableDocs     bool
}

type Server struct {
	router         chi.Router
	pinger         Pinger
	metrics        *metrics.Metrics
	catalogHandler *catalog.Handler
	sessionHandler *session.Handler
	sessionLimiter *ratelimit.Limiter
	webFS          fs.FS
	enableDocs     bool
}

func New(cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(slogMiddleware)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	r.Use(securityHeaders(SecurityConfig{
		BaseURL:      cfg.BaseURL,
		MediaOrigins: cfg.MediaOrigins,
	}))

	s := &Server{
		router:         r,
		pinger:         cfg.Pinger,
		metrics:        cfg.Metrics,
		sessionLimiter: cfg.SessionLimiter,
		webFS:          cfg.WebFS,
		enableDocs:     cfg.EnableDocs,
	}
	if s.sessionLimiter == nil {
		s.sessionLimiter = ratelimit.NewLimiter(0.5, 5)
	}

	if cfg.Sessions != nil {
		s.sessionHandler = session.NewHandler(cfg.Sessions)
	}
	if cfg.Catalog != nil {
		var current catalog.CurrentUser = signedOut{}
		if cfg.Sessions != nil {
			current = cfg.Sessions
		}
		s.catalogHandler = catalog.NewHandler(cfg.Catalog, current)
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/limits", s.handleLimits)
	if s.enableDocs {
		s.router.Get("/api/docs", docs.HandleDocs)
		s.router.Get("/api/docs/openapi.yaml", docs.HandleSpec)
	}
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	if s.sessionHandler != nil {
		s.router.Route("/api/session", func(r chi.Router) {
			r.Get("/", s.sessionHandler.Current)
			r.Group(func(r chi.Router) {
				r.Use(s.sessionLimiter.Middleware)
				r.Post("/login", s.sessionHandler.Login)
				r.Post("/register", s.sessionHandler.Register)
				r.Post("/logout", s.sessionHandler.Logout)
			})
		})
	}

	if h := s.catalogHandler; h != nil {
		s.router.Route("/api/videos", func(r chi.Router) {
			r.Get("/", h.ListVideos)
			r.Get("/trending", h.Trending)
			r.Get("/{id}", h.GetVideo)
			r.Get("/{id}/up-next", h.UpNext)
			r.Post("/{id}/like", h.LikeVideo)
			r.Post("/{id}/dislike", h.DislikeVideo)
			r.Get("/{id}/comments", h.ListComments)
			r.Post("/{id}/comments", h.PostComment)
		})
		s.router.Post("/api/comments/{id}/like", h.LikeComment)
		s.router.Post("/api/comments/{id}/replies", h.PostReply)
		s.router.Get("/api/channels/{id}", h.GetChannel)
		s.router.Post("/api/channels/{id}/subscribe", h.Subscribe)
		s.router.Get("/api/filter", h.GetFilter)
		s.router.Put("/api/filter", h.UpdateFilter)
		s.router.Get("/api/categories", h.Categories)
		s.router.Get("/api/current-video", h.GetCurrentVideo)
		s.router.Put("/api/current-video", h.SetCurrentVideo)
	}

	if s.webFS != nil {
		spa := newSPAFileServer(s.webFS)
		s.router.NotFound(spa.ServeHTTP)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy","error":"slot backend unreachable"}`))
			return
		}
	}
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleLimits(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, validate.FieldLimits())
}

// signedOut stands in for the session store when the server runs without one.
type signedOut struct{}

func (signedOut) Current() (model.Identity, bool) { return model.Identity{}, false }
