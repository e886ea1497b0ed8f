package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
//
// GET /metrics and GET /healthz sit outside admission control; every other
// request, unmatched ones included, is counted against the client's
// rate-limit window.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.MethodNotAllowed(h.withAdmission(CheckHTTPMethod(router)).ServeHTTP)
	router.NotFound(h.withAdmission(http.HandlerFunc(notFound)).ServeHTTP)

	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(h.withMetrics)
	router.Use(middleware.Recoverer)
	router.Use(h.withSecurityHeaders)
	router.Use(middleware.RequestSize(h.settings.BodyLimit))

	// operational routes
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	router.Get("/healthz", h.healthz)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(h.settings.RequestTimeout))
		r.Use(h.withAdmission)

		r.Get("/", h.welcome)

		// routes without authorization
		r.Route("/auth", func(r chi.Router) {
			routeMisses(r, router)

			r.Post("/register", h.register)
			r.Post("/login", h.login)
		})

		r.Route("/protected", func(r chi.Router) {
			routeMisses(r, router)
			r.Use(h.auth)

			r.Get("/me", h.me)
			r.Put("/me/update", h.updateMe)
			r.Get("/users", h.listUsers)

			r.Get("/posts", h.listPosts)
			r.Post("/posts", h.createPost)
			r.Put("/posts", h.updatePost)
			r.Delete("/posts", h.deletePost)
		})
	})

	return router
}

// routeMisses sets the plain miss handlers on a sub-router mounted inside
// the admission group, so a miss there is not counted a second time.
func routeMisses(r chi.Router, root chi.Routes) {
	r.NotFound(notFound)
	r.MethodNotAllowed(CheckHTTPMethod(root))
}
