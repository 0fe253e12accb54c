package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/infras/otel"
	authService "tonyspizza/internal/domains/auth/service"
	"tonyspizza/shared"
	"tonyspizza/shared/constant"
	"tonyspizza/shared/failure"
	"tonyspizza/transport/http/cookie"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/response"
)

// Auth resolves the session cookie into the request identity and guards the
// routes that need one.
type Auth interface {
	Session(next http.Handler) http.Handler
	RequireLogin(next http.Handler) http.Handler
}

type authImpl struct {
	auth     authService.Auth
	otel     otel.Otel
	cfg      *config.Config
	renderer render.Renderer
}

func NewAuthMiddleware(auth authService.Auth, otel otel.Otel, cfg *config.Config, renderer render.Renderer) Auth {
	return &authImpl{
		auth:     auth,
		otel:     otel,
		cfg:      cfg,
		renderer: renderer,
	}
}

// Session resolves the cookie into the request identity. A missing or
// rejected session leaves the request anonymous and a rejected cookie is
// cleared. Any other failure to resolve it ends the request with the error page.
func (m *authImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token := cookie.Read(request, m.cfg)
		if token == "" {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelMiddlewareScopeName, "session.middleware")

		identity, err := m.auth.CurrentIdentity(ctx, token)

		switch {
		case failure.IsCode(err, http.StatusUnauthorized):
			scope.End()
			cookie.Clear(writer, m.cfg)
			next.ServeHTTP(writer, request)

			return
		case err != nil:
			scope.TraceError(err)
			scope.End()
			log.Error().Err(err).Msg("failed to resolve session")
			response.WithPageError(writer, request, m.renderer, render.View{}, err)

			return
		case !identity.Authenticated():
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttribute("user.id", identity.UserID)
		scope.End()

		ctx = context.WithValue(request.Context(), constant.ContextKeyUserID, identity.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUsername, identity.Username)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, identity.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequireLogin redirects anonymous requests to the login page before anything is read or written.
func (m *authImpl) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if userID, _ := shared.CurrentUser(request.Context()); userID == "" {
			response.RedirectToLogin(writer, request)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
