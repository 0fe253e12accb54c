package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tonyspizza/internal/handlers/auth"
	"tonyspizza/internal/handlers/booking"
	"tonyspizza/internal/handlers/index"
	"tonyspizza/internal/handlers/table"
	"tonyspizza/shared"
	"tonyspizza/transport/http/middleware"
	"tonyspizza/transport/http/render"
)

type DomainHandlers struct {
	Index   index.Handler
	Table   table.Handler
	Auth    auth.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.Auth
	Renderer       render.Renderer
}

// SetupRoutes mounts the public pages and the login-guarded booking pages.
// Every request first passes through session resolution.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		r.AppMiddleware.Tracing,
		r.AppMiddleware.AccessLog,
		r.AppMiddleware.CORS(),
		r.AppMiddleware.RateLimit(),
		r.AuthMiddleware.Session,
	)

	router.NotFound(r.notFound)

	r.DomainHandlers.Index.Router(router)
	r.DomainHandlers.Table.Router(router)
	r.DomainHandlers.Auth.Router(router)

	router.Group(func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.RequireLogin)
		r.DomainHandlers.Booking.Router(routerGroup)
	})
}

func (r *Router) notFound(w http.ResponseWriter, req *http.Request) {
	_, username := shared.CurrentUser(req.Context())

	r.Renderer.HTML(w, http.StatusNotFound, render.PageNotFound, render.View{Title: "Not found", Username: username})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authMiddleware middleware.Auth, renderer render.Renderer) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
		Renderer:       renderer,
	}
}
