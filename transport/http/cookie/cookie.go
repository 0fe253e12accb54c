package cookie

import (
	"net/http"
	"time"

	"tonyspizza/config"
)

const defaultName = "sessionid"

func name(cfg *config.Config) string {
	if cfg.Session.CookieName != "" {
		return cfg.Session.CookieName
	}

	return defaultName
}

// Read returns the session token sent with the request, or "".
func Read(r *http.Request, cfg *config.Config) string {
	c, err := r.Cookie(name(cfg))
	if err != nil {
		return ""
	}

	return c.Value
}

// Set writes the session cookie. It is never readable from scripts and is not
// sent on cross-site form posts.
func Set(w http.ResponseWriter, cfg *config.Config, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name(cfg),
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   max(int(time.Until(expiresAt).Seconds()), 1),
		HttpOnly: true,
		Secure:   cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func Clear(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     name(cfg),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
