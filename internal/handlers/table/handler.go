package table

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tonyspizza/infras/otel"
	"tonyspizza/internal/domains/table/service"
	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/response"
)

type Handler struct {
	service  service.Table
	renderer render.Renderer
	otel     otel.Otel
}

func New(service service.Table, renderer render.Renderer, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		renderer: renderer,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.PathTables, handler.ListTables)
}

// ListTables renders every table with its seating capacity. No login required.
func (handler *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListTables")
	defer scope.End()

	_, username := shared.CurrentUser(ctx)
	view := render.View{Title: "Tables", Username: username}

	tables, err := handler.service.ListTables(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithPageError(w, r, handler.renderer, view, err)

		return
	}

	view.Data = tables
	handler.renderer.HTML(w, http.StatusOK, render.PageTableList, view)
}
