package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"churchconnect/internal/delivery/http/controllers"
	"churchconnect/internal/delivery/http/helpers"
	"churchconnect/internal/delivery/http/middleware"
	"churchconnect/internal/domain"
)

// Controllers groups the API handlers mounted by NewRouter.
type Controllers struct {
	Auth      *controllers.AuthController
	Sermons   *controllers.SermonController
	Topics    *controllers.TopicController
	Events    *controllers.EventController
	Dashboard *controllers.DashboardController
	Media     *controllers.MediaController
}

// RouterOptions configures everything around the API handlers.
type RouterOptions struct {
	Logger      *slog.Logger
	Verifier    domain.TokenVerifier
	CORSOrigins []string
	// Static holds the single-page front end; nil disables it.
	Static fs.FS
	// MediaDir is served under MediaPrefix when uploads are stored locally.
	MediaDir    string
	MediaPrefix string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(opts RouterOptions, c Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	auth := middleware.RequireAuth(opts.Verifier, opts.Logger)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/login", c.Auth.Login)
		r.Get("/me", auth(c.Auth.Me))

		r.Route("/sermons", func(r chi.Router) {
			r.Get("/", c.Sermons.List)
			r.Get("/recent", c.Sermons.Recent)
			r.Get("/categories", c.Sermons.Categories)
			r.Get("/search", c.Sermons.Search)
			r.Get("/{id}", c.Sermons.Get)
			r.Post("/", auth(c.Sermons.Create))
			r.Put("/{id}", auth(c.Sermons.Update))
			r.Delete("/{id}", auth(c.Sermons.Delete))
		})

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", c.Topics.List)
			r.Get("/{id}", c.Topics.Get)
			r.Get("/{id}/sermons", c.Topics.Sermons)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", c.Events.List)
			r.Get("/upcoming", c.Events.Upcoming)
			r.Get("/{id}", c.Events.Get)
			r.Post("/", auth(c.Events.Create))
			r.Put("/{id}", auth(c.Events.Update))
			r.Delete("/{id}", auth(c.Events.Delete))
			r.Post("/{id}/register", c.Events.Register)
		})

		r.Post("/upload", auth(c.Media.Upload))
		r.Get("/dashboard/stats", c.Dashboard.Stats)
		r.Get("/dashboard/activity", auth(c.Dashboard.Activity))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// Swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.MediaDir != "" {
		prefix := "/" + strings.Trim(opts.MediaPrefix, "/")
		if prefix == "/" {
			prefix = "/media"
		}
		r.Handle(prefix+"/*", http.StripPrefix(prefix, Media(opts.MediaDir)))
	}

	if opts.Static != nil {
		spa := SPA(opts.Static)
		r.Get("/", spa.ServeHTTP)
		r.NotFound(spa.ServeHTTP)
	}
	return r
}
