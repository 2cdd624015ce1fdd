// Package http provides http transport for discovery
package http

import (
	stdhttp "net/http"

	"keywordscout/internal/modkit/httpkit"
	dom "keywordscout/internal/services/discovery/domain"
)

// Register mounts discovery endpoints on the given router
func Register(r httpkit.Router, runner dom.RunnerPort) {
	h := &handlers{runner: runner}

	// run the pipeline for one seed
	httpkit.PostJSON[dom.Request](r, "/run", h.run)

	// cache administration
	httpkit.Get(r, "/cache/stats", h.cacheStats)
	httpkit.Delete(r, "/cache", h.clearCache)
	httpkit.Post(r, "/cache/sweep", h.sweepCache)
}

type handlers struct{ runner dom.RunnerPort }

// run executes a discovery run for the posted seed
func (h *handlers) run(r *stdhttp.Request, in dom.Request) (any, error) {
	return h.runner.Discover(r.Context(), in)
}

// cacheStats reports entry counts and cache location
func (h *handlers) cacheStats(r *stdhttp.Request) (any, error) {
	return h.runner.CacheStats(), nil
}

// clearCache removes every cached result
func (h *handlers) clearCache(r *stdhttp.Request) (any, error) {
	n, err := h.runner.ClearCache()
	if err != nil {
		return nil, err
	}
	return map[string]int{"removed": n}, nil
}

// sweepCache removes only expired entries
func (h *handlers) sweepCache(r *stdhttp.Request) (any, error) {
	n, err := h.runner.SweepCache()
	if err != nil {
		return nil, err
	}
	return map[string]int{"removed": n}, nil
}
