// Package module wires the discovery pipeline into the API using modkit
package module

import (
	"net/http"

	"keywordscout/internal/core/opportunity"
	modkit "keywordscout/internal/modkit"
	"keywordscout/internal/modkit/httpkit"
	str "keywordscout/internal/platform/strings"
	dom "keywordscout/internal/services/discovery/domain"
	dischttp "keywordscout/internal/services/discovery/http"
	discsvc "keywordscout/internal/services/discovery/service"
)

// Ports exposed by the discovery module
type Ports struct {
	Runner dom.RunnerPort
}

// Module implements the discovery module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *discsvc.Service
}

// New constructs the discovery module. The analytics port comes from deps;
// an optional SuggestPort may be injected via WithPorts(Ports from caller)
func New(deps modkit.Deps, suggest dom.SuggestPort, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("discovery"),
		modkit.WithPrefix("/discovery"),
	}, opts...)...)

	if deps.Trends == nil {
		panic("discovery module: Deps.Trends analyzer is required")
	}

	o := FromConfig(deps.Cfg)
	svc, err := discsvc.New(suggest, deps.Trends, cachePortOrNil(deps), discsvc.Config{
		MaxVariants:   o.MaxVariants,
		MinKeywordLen: o.MinKeywordLen,
		MaxSuggest:    o.MaxSuggest,
		BatchSize:     o.BatchSize,
		BatchDelay:    o.BatchDelay,
		CacheEnabled:  o.CacheEnabled,
		MinGrade:      opportunity.Grade(o.MinGrade),
	})
	if err != nil {
		panic(err)
	}

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
		dischttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

func cachePortOrNil(deps modkit.Deps) dom.CachePort {
	if deps.Cache == nil {
		return nil
	}
	return deps.Cache
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
