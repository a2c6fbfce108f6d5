package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/server/health"
	"github.com/stretchr/testify/assert"
)

func TestRouter_Healthz(t *testing.T) {
	h := newRouter(logging.Nop(), map[string]health.Checker{
		"postgres": health.CheckerFunc(func(context.Context) error { return nil }),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"postgres":{"status":"ok"}}`, rec.Body.String())
}

func TestRouter_HealthzDown(t *testing.T) {
	h := newRouter(logging.Nop(), map[string]health.Checker{
		"redis": health.CheckerFunc(func(context.Context) error { return errors.New("refused") }),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_UnknownPath(t *testing.T) {
	h := newRouter(logging.Nop(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boards", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
