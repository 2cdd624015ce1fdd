// Package module wires compare into the API using modkit
package module

import (
	"net/http"

	modkit "keywordscout/internal/modkit"
	"keywordscout/internal/modkit/httpkit"
	str "keywordscout/internal/platform/strings"
	dom "keywordscout/internal/services/compare/domain"
	cmphttp "keywordscout/internal/services/compare/http"
	cmpsvc "keywordscout/internal/services/compare/service"
)

// Ports exposed by the compare module
type Ports struct {
	Runner dom.RunnerPort
}

// Module implements the compare module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *cmpsvc.Service
}

// New constructs the compare module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("compare"),
		modkit.WithPrefix("/compare"),
	}, opts...)...)

	if deps.Trends == nil {
		panic("compare module: Deps.Trends analyzer is required")
	}
	svc := cmpsvc.New(deps.Trends)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Runner: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		cmphttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
