package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"tonyspizza/config"
	"tonyspizza/shared/constant"
	"tonyspizza/shared/logger"
)

const (
	layoutFile   = "templates/base.html"
	layoutName   = "base"
	fallbackBody = "Internal Server Error"

	defaultAppName = "Tony's Pizza"
)

// Page names. Each one is a file under templates/.
const (
	PageIndex         = "index"
	PageTableList     = "table_list"
	PageBookingList   = "booking_list"
	PageBookingCreate = "booking_create"
	PageBookingUpdate = "booking_update"
	PageBookingDelete = "booking_delete"
	PageLogin         = "login"
	PageSignup        = "signup"
	PageNotFound      = "not_found"
	PageError         = "error"
)

var pages = []string{
	PageIndex,
	PageTableList,
	PageBookingList,
	PageBookingCreate,
	PageBookingUpdate,
	PageBookingDelete,
	PageLogin,
	PageSignup,
	PageNotFound,
	PageError,
}

//go:embed templates/*.html
var templateFS embed.FS

// View is the context every page is rendered with.
type View struct {
	AppName  string
	Title    string
	Username string
	Message  string
	Next     string
	Form     any
	Errors   map[string]string
	Data     any
}

// Renderer turns a page name and its view into an HTML response.
type Renderer interface {
	HTML(w http.ResponseWriter, status int, name string, view View)
}

type renderer struct {
	cfg   *config.Config
	pages map[string]*template.Template
}

func New(cfg *config.Config) Renderer {
	r := &renderer{
		cfg:   cfg,
		pages: make(map[string]*template.Template, len(pages)),
	}

	for _, name := range pages {
		tmpl, err := template.New(layoutName).
			Funcs(funcs()).
			ParseFS(templateFS, layoutFile, fmt.Sprintf("templates/%s.html", name))
		if err != nil {
			log.Fatal().Err(err).Str("page", name).Msg("Failed to parse template")
		}

		r.pages[name] = tmpl
	}

	return r
}

// HTML renders into a buffer first so a template failure still yields a clean 500.
func (r *renderer) HTML(w http.ResponseWriter, status int, name string, view View) {
	tmpl, ok := r.pages[name]
	if !ok {
		logger.ErrorWithStack(fmt.Errorf("unknown page %q", name))
		http.Error(w, fallbackBody, http.StatusInternalServerError)

		return
	}

	if view.AppName == "" {
		view.AppName = r.cfg.App.Name
	}

	if view.AppName == "" {
		view.AppName = defaultAppName
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutName, view); err != nil {
		logger.ErrorWithStack(err)
		http.Error(w, fallbackBody, http.StatusInternalServerError)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeHTML)
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Str("page", name).Msg("failed to write page")
	}
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"bookingPath": func(id, action string) string {
			return fmt.Sprintf(constant.PathBookingForms, id, action)
		},
		"fieldError": func(errors map[string]string, field string) string {
			return errors[field]
		},
	}
}
