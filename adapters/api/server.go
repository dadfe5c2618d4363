// Package api exposes the analysis engine over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tsinsight/app"
	"tsinsight/internal"
	"tsinsight/internal/config"
	"tsinsight/ports"
)

// App represents the HTTP application
type App struct {
	router  *chi.Mux
	service *app.InsightService
	runs    ports.RunRepository
	store   *seriesStore
	cfg     *config.Config
	log     *internal.Logger
}

// NewApp creates the HTTP application around the analysis service.
func NewApp(cfg *config.Config, service *app.InsightService, runs ports.RunRepository) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		runs:    runs,
		store:   newSeriesStore(),
		cfg:     cfg,
		log:     internal.NewDefaultLogger(),
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		r.Route("/upload", func(r chi.Router) {
			r.Post("/file", a.handleUploadFile)
			r.Post("/data", a.handleUploadData)
		})

		r.Route("/analysis", func(r chi.Router) {
			r.Post("/{seriesID}", a.handleAnalyze)
			r.Get("/{analysisID}", a.handleGetAnalysis)
		})

		r.Post("/predict/{analysisID}", a.handlePredict)
		r.Get("/runs", a.handleListRuns)
	})
}

// Router returns the configured handler.
func (a *App) Router() http.Handler {
	return a.router
}

// ListenAndServe starts the HTTP server.
func (a *App) ListenAndServe() error {
	addr := ":" + a.cfg.Server.Port
	a.log.Info("starting API server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
