package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// rootMux adapts *chi.Mux to Router
type rootMux struct{ m *chi.Mux }

// subMux adapts a nested chi.Router to Router while keeping the top-level mux
type subMux struct {
	parent *chi.Mux
	r      chi.Router
}

// asHTTP wraps a platform Handler into a stdlib HandlerFunc
func asHTTP(h Handler) http.HandlerFunc { return http.HandlerFunc(h) }

// AdaptChi adapts a *chi.Mux to a Router
func AdaptChi(m *chi.Mux) Router { return rootMux{m: m} }

func (a rootMux) Get(p string, h Handler)     { a.m.Method(http.MethodGet, p, asHTTP(h)) }
func (a rootMux) Post(p string, h Handler)    { a.m.Method(http.MethodPost, p, asHTTP(h)) }
func (a rootMux) Put(p string, h Handler)     { a.m.Method(http.MethodPut, p, asHTTP(h)) }
func (a rootMux) Patch(p string, h Handler)   { a.m.Method(http.MethodPatch, p, asHTTP(h)) }
func (a rootMux) Delete(p string, h Handler)  { a.m.Method(http.MethodDelete, p, asHTTP(h)) }
func (a rootMux) Head(p string, h Handler)    { a.m.Method(http.MethodHead, p, asHTTP(h)) }
func (a rootMux) Options(p string, h Handler) { a.m.Method(http.MethodOptions, p, asHTTP(h)) }

func (a rootMux) Handle(p string, h http.Handler)           { a.m.Handle(p, h) }
func (a rootMux) Use(mw ...func(http.Handler) http.Handler) { a.m.Use(mw...) }
func (a rootMux) Group(fn func(Router)) {
	a.m.Group(func(sub chi.Router) { fn(subMux{parent: a.m, r: sub}) })
}

func (a rootMux) Route(pattern string, fn func(Router)) {
	a.m.Route(pattern, func(sub chi.Router) { fn(subMux{parent: a.m, r: sub}) })
}
func (a rootMux) Mux() http.Handler { return a.m }

// nested router methods

func (a subMux) Get(p string, h Handler)     { a.r.Method(http.MethodGet, p, asHTTP(h)) }
func (a subMux) Post(p string, h Handler)    { a.r.Method(http.MethodPost, p, asHTTP(h)) }
func (a subMux) Put(p string, h Handler)     { a.r.Method(http.MethodPut, p, asHTTP(h)) }
func (a subMux) Patch(p string, h Handler)   { a.r.Method(http.MethodPatch, p, asHTTP(h)) }
func (a subMux) Delete(p string, h Handler)  { a.r.Method(http.MethodDelete, p, asHTTP(h)) }
func (a subMux) Head(p string, h Handler)    { a.r.Method(http.MethodHead, p, asHTTP(h)) }
func (a subMux) Options(p string, h Handler) { a.r.Method(http.MethodOptions, p, asHTTP(h)) }

func (a subMux) Handle(p string, h http.Handler)           { a.r.Handle(p, h) }
func (a subMux) Use(mw ...func(http.Handler) http.Handler) { a.r.Use(mw...) }
func (a subMux) Group(fn func(Router)) {
	a.r.Group(func(sub chi.Router) { fn(subMux{parent: a.parent, r: sub}) })
}

func (a subMux) Route(pattern string, fn func(Router)) {
	a.r.Route(pattern, func(sub chi.Router) { fn(subMux{parent: a.parent, r: sub}) })
}
func (a subMux) Mux() http.Handler { return a.r } // chi.Router implements http.Handler
