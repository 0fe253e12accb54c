package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/infras/otel"
	"tonyspizza/internal/domains/auth/model/dto"
	"tonyspizza/internal/domains/auth/service"
	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	"tonyspizza/shared/failure"
	"tonyspizza/shared/validator"
	"tonyspizza/transport/http/cookie"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/response"
)

type Handler struct {
	service  service.Auth
	renderer render.Renderer
	config   *config.Config
	otel     otel.Otel
}

func New(service service.Auth, renderer render.Renderer, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		renderer: renderer,
		config:   config,
		otel:     otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get(constant.PathLogin, handler.LoginForm)
	r.Post(constant.PathLogin, handler.Login)
	r.Get(constant.PathSignup, handler.SignupForm)
	r.Post(constant.PathSignup, handler.Signup)
	r.Post(constant.PathLogout, handler.Logout)
}

// SafeNext returns next when it is a local path, otherwise the bookings page.
func SafeNext(next string) string {
	if next == constant.Empty || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return constant.PathBookings
	}

	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != constant.Empty || parsed.Host != constant.Empty {
		return constant.PathBookings
	}

	return next
}

func (handler *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	_, username := shared.CurrentUser(r.Context())

	handler.renderer.HTML(w, http.StatusOK, render.PageLogin, render.View{
		Title:    "Log in",
		Username: username,
		Next:     r.URL.Query().Get(constant.RequestParamNext),
		Form:     dto.Credentials{},
	})
}

func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	r = r.WithContext(ctx)
	req := dto.Credentials{}

	err := validator.ValidateForm(r, &req)
	if err == nil {
		var session dto.Session

		session, err = handler.service.Authenticate(ctx, req)
		if err == nil {
			cookie.Set(w, handler.config, session.Token, session.ExpiresAt)
			response.Redirect(w, r, SafeNext(r.PostFormValue(constant.RequestParamNext)))

			return
		}
	}

	scope.TraceError(err)
	log.Warn().Err(err).Str("username", req.Username).Msg("failed to log in")

	// the password is never echoed back
	req.Password = constant.Empty
	handler.renderForm(w, r, render.PageLogin, render.View{
		Title: "Log in",
		Next:  r.PostFormValue(constant.RequestParamNext),
		Form:  req,
	}, err)
}

func (handler *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	_, username := shared.CurrentUser(r.Context())

	handler.renderer.HTML(w, http.StatusOK, render.PageSignup, render.View{
		Title:    "Sign up",
		Username: username,
		Form:     dto.SignupRequest{},
	})
}

func (handler *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Signup")
	defer scope.End()

	r = r.WithContext(ctx)
	req := dto.SignupRequest{}

	err := validator.ValidateForm(r, &req)
	if err == nil {
		var session dto.Session

		session, err = handler.service.Register(ctx, req)
		if err == nil {
			log.Info().Str("username", session.Identity.Username).Msg("account created")
			cookie.Set(w, handler.config, session.Token, session.ExpiresAt)
			response.Redirect(w, r, constant.PathBookings)

			return
		}
	}

	scope.TraceError(err)

	req.Password1, req.Password2 = constant.Empty, constant.Empty
	handler.renderForm(w, r, render.PageSignup, render.View{Title: "Sign up", Form: req}, err)
}

// Logout revokes the session, if any, and always drops the cookie.
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	if token := cookie.Read(r, handler.config); token != constant.Empty {
		if err := handler.service.Logout(ctx, token); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to revoke session")
		}
	}

	cookie.Clear(w, handler.config)
	response.Redirect(w, r, constant.PathIndex)
}

func (handler *Handler) renderForm(w http.ResponseWriter, r *http.Request, page string, view render.View, err error) {
	if !failure.IsCode(err, http.StatusBadRequest) {
		response.WithPageError(w, r, handler.renderer, view, err)

		return
	}

	view.Errors = failure.GetFields(err)
	if len(view.Errors) == 0 {
		view.Message = err.Error()
	}

	handler.renderer.HTML(w, http.StatusBadRequest, page, view)
}
