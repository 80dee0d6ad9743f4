package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(name))
	})
}

func TestRouterProvider_DispatchesByMethod(t *testing.T) {
	router := NewRouterProvider()
	router.Get("/feedback", namedHandler("list"))
	router.Post("/feedback", namedHandler("submit"))
	router.Delete("/feedback", namedHandler("delete"))

	routes := router.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/feedback", routes[0].Url)

	for method, want := range map[string]string{
		http.MethodGet:    "list",
		http.MethodPost:   "submit",
		http.MethodDelete: "delete",
	} {
		w := httptest.NewRecorder()
		routes[0].Handler.ServeHTTP(w, httptest.NewRequest(method, "/feedback", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, w.Body.String())
	}
}

func TestRouterProvider_UnregisteredMethodIs405(t *testing.T) {
	router := NewRouterProvider()
	router.Get("/export", namedHandler("export"))

	w := httptest.NewRecorder()
	router.GetRoutes()[0].Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/export", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterProvider_SeparatePaths(t *testing.T) {
	router := NewRouterProvider()
	router.Get("/theme", namedHandler("get-theme"))
	router.Put("/theme", namedHandler("put-theme"))
	router.Patch("/feedback/archive", namedHandler("archive"))

	routes := router.GetRoutes()
	require.Len(t, routes, 2)
}
