// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"keywordscout/internal/adapters/cachefile"
	"keywordscout/internal/core/version"
	"keywordscout/internal/modkit/httpkit"
)

// StatsSource is satisfied by the cache store
type StatsSource interface {
	Stats() cachefile.Stats
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Cache       StatsSource // nil when caching is disabled
	HasAnalyzer bool
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"` // ok skipped fail
	Error  string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// health reports process liveness
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ready reports whether the cache and the analytics client are wired
func (h *handlers) ready(_ *http.Request) (any, error) {
	cache := ReadyCheck{Name: "cache", Status: "skipped"}
	if h.deps.Cache != nil {
		// Stats walks the index; an unreadable cache dir shows up as zero rows
		// rather than an error, so presence of the source is the check
		_ = h.deps.Cache.Stats()
		cache.Status = "ok"
	}

	analyzer := ReadyCheck{Name: "analyzer", Status: "fail", Error: "no analytics client configured"}
	if h.deps.HasAnalyzer {
		analyzer = ReadyCheck{Name: "analyzer", Status: "ok"}
	}

	overall := "ok"
	if analyzer.Status == "fail" {
		overall = "fail"
	} else if cache.Status != "ok" {
		overall = "degraded"
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{cache, analyzer},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// version reports build info stamped at link time
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// service reports uptime
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}
