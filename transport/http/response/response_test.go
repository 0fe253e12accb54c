package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"tonyspizza/config"
	"tonyspizza/shared/failure"
	"tonyspizza/transport/http/render"
	"tonyspizza/transport/http/response"
)

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithMessage(rec, http.StatusOK, "OK")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())
}

func TestDefaultMessages(t *testing.T) {
	tests := []struct {
		name    string
		respond func(http.ResponseWriter)
		code    int
		body    string
	}{
		{"limit exceeded", response.WithRequestLimitExceeded, http.StatusTooManyRequests, `{"message":"REQUEST LIMIT EXCEEDED"}`},
		{"preparing shutdown", response.WithPreparingShutdown, http.StatusServiceUnavailable, `{"message":"SERVER PREPARING TO SHUT DOWN"}`},
		{"unhealthy", response.WithUnhealthy, http.StatusServiceUnavailable, `{"message":"SERVER UNHEALTHY"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			tt.respond(rec)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestRedirectToLogin(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bookings/create/", nil)

	response.RedirectToLogin(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/accounts/login/?next=%2Fbookings%2Fcreate%2F", rec.Header().Get("Location"))
}

func TestWithPageError(t *testing.T) {
	renderer := render.New(&config.Config{})

	tests := []struct {
		name     string
		err      error
		code     int
		location string
		contains string
	}{
		{
			name:     "unauthorized redirects to login",
			err:      failure.Unauthorized("session expired"),
			code:     http.StatusSeeOther,
			location: "/accounts/login/?next=%2Fbookings%2F",
		},
		{
			name:     "not found page",
			err:      fmt.Errorf("lookup: %w", failure.NotFound("booking not found")),
			code:     http.StatusNotFound,
			contains: "Page not found",
		},
		{
			name:     "bad request shows the message",
			err:      failure.BadRequestFromString("failed to parse form"),
			code:     http.StatusBadRequest,
			contains: "failed to parse form",
		},
		{
			name:     "infrastructure errors are hidden",
			err:      errors.New("pq: connection refused"),
			code:     http.StatusInternalServerError,
			contains: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/bookings/", nil)

			response.WithPageError(rec, req, renderer, render.View{}, tt.err)

			assert.Equal(t, tt.code, rec.Code)

			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}

			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}

			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}
