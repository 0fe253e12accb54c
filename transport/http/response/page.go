package response

import (
	"net/http"
	"net/url"

	"tonyspizza/shared/constant"
	"tonyspizza/shared/failure"
	"tonyspizza/shared/logger"
	"tonyspizza/transport/http/render"
)

// Redirect answers with 303 See Other so the browser follows up with a GET.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// RedirectToLogin sends an anonymous visitor to the login page, remembering where they were headed.
func RedirectToLogin(writer http.ResponseWriter, request *http.Request) {
	query := url.Values{constant.RequestParamNext: {request.URL.RequestURI()}}

	Redirect(writer, request, constant.PathLogin+"?"+query.Encode())
}

// WithPageError answers a failed page request according to the error's code.
// Anything that is not a client failure is logged with its stack and shown as
// the generic error page.
func WithPageError(writer http.ResponseWriter, request *http.Request, renderer render.Renderer, view render.View, err error) {
	switch code := failure.GetCode(err); code {
	case http.StatusUnauthorized:
		RedirectToLogin(writer, request)
	case http.StatusNotFound, http.StatusForbidden:
		view.Title = "Not found"
		renderer.HTML(writer, http.StatusNotFound, render.PageNotFound, view)
	case http.StatusBadRequest, http.StatusConflict:
		view.Title = "Bad request"
		view.Message = err.Error()
		renderer.HTML(writer, code, render.PageError, view)
	default:
		logger.ErrorWithStack(err)

		view.Title = "Server error"
		renderer.HTML(writer, http.StatusInternalServerError, render.PageError, view)
	}
}
