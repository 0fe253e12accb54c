package index

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	"tonyspizza/transport/http/render"
)

type Handler struct {
	renderer render.Renderer
}

func New(renderer render.Renderer) Handler {
	return Handler{
		renderer: renderer,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.PathIndex, handler.Index)
}

func (handler *Handler) Index(w http.ResponseWriter, r *http.Request) {
	_, username := shared.CurrentUser(r.Context())

	handler.renderer.HTML(w, http.StatusOK, render.PageIndex, render.View{Username: username})
}
