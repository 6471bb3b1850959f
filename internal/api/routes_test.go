package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verlyx/hub-server/internal/config"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()

	s := &RESTServer{config: &config.Config{}}
	r := chi.NewRouter()
	s.setupAPIRoutes(r)

	routes := make(map[string]bool)
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	return routes
}

func TestUpdateRoutesAcceptPatchAndPut(t *testing.T) {
	routes := registeredRoutes(t)

	for _, route := range []string{
		"/users/me",
		"/companies/{id}/",
		"/companies/{id}/members/{userId}",
		"/my-companies/{id}/",
		"/projects/{id}/",
		"/tasks/{id}/",
		"/comments/{id}/",
		"/pdf/templates/{id}/",
		"/ai/conversations/{id}/",
	} {
		assert.True(t, routes["PATCH "+route], "PATCH %s not mounted", route)
		assert.True(t, routes["PUT "+route], "PUT %s not mounted", route)
	}
}
