package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jamiesoo123/ENG40011-EndoMML/app"
	"github.com/jamiesoo123/ENG40011-EndoMML/domain/wizard"
	"github.com/jamiesoo123/ENG40011-EndoMML/internal"
	"github.com/jamiesoo123/ENG40011-EndoMML/ports"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App is the wizard web application. Every collaborator is injected: the
// engine, both stores, the submission controller and the explainer - the
// handlers hold no global state.
type App struct {
	router      *chi.Mux
	engine      *wizard.Engine
	sessions    ports.SessionStore
	results     ports.ResultStore
	submissions *app.SubmissionService
	explainer   ports.Explainer
	templates   *template.Template
	logger      *internal.Logger

	// Port the app listens on, without the leading colon
	port string
}

// Config holds UI application configuration
type Config struct {
	Port        string
	Engine      *wizard.Engine
	Sessions    ports.SessionStore
	Results     ports.ResultStore
	Submissions *app.SubmissionService
	Explainer   ports.Explainer
	Logger      *internal.Logger
}

// NewApp creates the wizard application
func NewApp(cfg Config) (*App, error) {
	if cfg.Engine == nil {
		return nil, fmt.Errorf("ui: engine is required")
	}
	if cfg.Sessions == nil || cfg.Results == nil || cfg.Submissions == nil {
		return nil, fmt.Errorf("ui: session store, result store and submission service are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = internal.DefaultLogger
	}

	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f", v*100) },
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:      chi.NewRouter(),
		engine:      cfg.Engine,
		sessions:    cfg.Sessions,
		results:     cfg.Results,
		submissions: cfg.Submissions,
		explainer:   cfg.Explainer,
		templates:   templates,
		logger:      cfg.Logger,
		port:        cfg.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures all application routes
func (a *App) setupRoutes() {
	staticRoot, _ := fs.Sub(embeddedFiles, "static")
	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))))

	a.router.Get("/", a.handleHome)
	a.router.Get("/survey", a.handleSurvey)
	a.router.Post("/survey", a.handleSurveyAction)
	a.router.Get("/result", a.handleResult)
	a.router.Get("/result/export", a.handleResultExport)

	a.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// Router exposes the handler tree, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("wizard UI listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
