package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tonyspizza/config"
	"tonyspizza/transport/http/cookie"
)

func TestSetAndRead(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.CookieName = "tp_session"
	cfg.Session.SecureCookie = true

	rec := httptest.NewRecorder()
	cookie.Set(rec, cfg, "signed-token", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	sent := cookies[0]
	assert.Equal(t, "tp_session", sent.Name)
	assert.Equal(t, "signed-token", sent.Value)
	assert.True(t, sent.HttpOnly)
	assert.True(t, sent.Secure)
	assert.Equal(t, http.SameSiteLaxMode, sent.SameSite)
	assert.Equal(t, "/", sent.Path)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sent)

	assert.Equal(t, "signed-token", cookie.Read(req, cfg))
}

func TestReadWithoutCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Empty(t, cookie.Read(req, &config.Config{}))
}

func TestClear(t *testing.T) {
	rec := httptest.NewRecorder()
	cookie.Clear(rec, &config.Config{})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionid", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
