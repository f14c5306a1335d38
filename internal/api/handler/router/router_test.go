package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-ops-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ops-api/pkg/middleware"
)

func TestRouter(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:   "/v1/cron/:type/run",
		Method: http.MethodPost,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler:"+httprouter.ParamsFromContext(r.Context()).ByName("type"))
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("primeiro"), tag("segundo")},
	}))

	t.Run("Middlewares na ordem declarada", func(t *testing.T) {
		order = nil
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/ranking-snapshot/run", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"primeiro", "segundo", "handler:ranking-snapshot"}, order)
	})

	t.Run("Rota inexistente responde JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), apiErrors.ErrRouteNotFound))
	})

	t.Run("Método não permitido responde JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()

		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/ranking-snapshot/run", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrMethodNotAllowed)
	})
}

func TestRouter_GravaPadraoDaRota(t *testing.T) {
	var seen string
	rt := New(WithRoutes(Route{
		Path:   "/v1/cron/:type/run",
		Method: http.MethodPost,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.RoutePattern(r.Context())
		}),
	}))

	var outer string
	h := middleware.PrometheusMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt.ServeHTTP(w, r)
		outer = middleware.RoutePattern(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/cron/ranking-snapshot/run", nil))

	assert.Equal(t, "/v1/cron/:type/run", seen)
	assert.Equal(t, "/v1/cron/:type/run", outer, "middleware externo enxerga o padrão")
}
