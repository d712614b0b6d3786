package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/pkgindex/legacy-api/internal/api/handlers"
	mw "github.com/pkgindex/legacy-api/internal/api/middleware"
)

type Dependencies struct {
	DB              *gorm.DB
	ProjectsHandler *handlers.ProjectsHandler
	LegacyHandler   *handlers.LegacyHandler
	JournalHandler  *handlers.JournalHandler
	UsersHandler    *handlers.UsersHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(chimid.Compress(5))

	// Health endpoints
	hh := handlers.NewHealthHandler(dep.DB)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Legacy per-project documents
	r.Route("/pypi/{name}", func(lr chi.Router) {
		lr.Get("/json", dep.LegacyHandler.Project)
		lr.Get("/{version}/json", dep.LegacyHandler.Release)
	})

	r.Route("/api/v1", func(api chi.Router) {
		// Projects
		api.Route("/projects", func(pr chi.Router) {
			pr.Get("/", dep.ProjectsHandler.List)
			pr.Get("/{name}/", dep.ProjectsHandler.Get)
			pr.Get("/{name}/roles", dep.ProjectsHandler.Roles)
		})

		// Journal
		api.Route("/journals", func(jr chi.Router) {
			jr.Get("/", dep.JournalHandler.List)
			jr.Get("/recent", dep.JournalHandler.Recent)
			jr.Get("/latest", dep.JournalHandler.Latest)
		})

		// Users
		api.Get("/users/{username}/projects", dep.UsersHandler.Projects)
	})

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	return r
}
