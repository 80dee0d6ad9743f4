package providers

import (
	"net/http"

	"sfd/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Put(url string, handler http.Handler)
	Patch(url string, handler http.Handler)
	Delete(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
	muxes  map[string]*methodMux
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) Put(url string, handler http.Handler) {
	rp.add(http.MethodPut, url, handler)
}

func (rp *RouterProvider) Patch(url string, handler http.Handler) {
	rp.add(http.MethodPatch, url, handler)
}

func (rp *RouterProvider) Delete(url string, handler http.Handler) {
	rp.add(http.MethodDelete, url, handler)
}

func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	if mux, ok := rp.muxes[url]; ok {
		mux.handlers[method] = handler
		return
	}
	mux := &methodMux{handlers: map[string]http.Handler{method: handler}}
	rp.muxes[url] = mux
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: mux,
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{
		muxes: make(map[string]*methodMux),
	}
}

// methodMux dispatches by HTTP method for a single path; unregistered
// methods get 405.
type methodMux struct {
	handlers map[string]http.Handler
}

func (m *methodMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if handler, ok := m.handlers[r.Method]; ok {
		handler.ServeHTTP(w, r)
		return
	}
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
