package middleware

import (
	"context"
	"net/http"
)

type routePatternKey struct{}

type routePattern struct {
	value string
}

func withRoutePattern(r *http.Request) (*http.Request, *routePattern) {
	pattern := &routePattern{}
	return r.WithContext(context.WithValue(r.Context(), routePatternKey{}, pattern)), pattern
}

// SetRoutePattern grava o padrão da rota casada pelo router (ex.: /v1/cron/:type/run)
// para que middlewares externos rotulem a requisição sem usar o path cru
func SetRoutePattern(ctx context.Context, pattern string) {
	if holder, ok := ctx.Value(routePatternKey{}).(*routePattern); ok {
		holder.value = pattern
	}
}

// RoutePattern retorna o padrão gravado por SetRoutePattern, ou vazio se nenhuma rota casou
func RoutePattern(ctx context.Context) string {
	if holder, ok := ctx.Value(routePatternKey{}).(*routePattern); ok {
		return holder.value
	}
	return ""
}
