// Package http provides http transport for compare
package http

import (
	stdhttp "net/http"

	"keywordscout/internal/modkit/httpkit"
	dom "keywordscout/internal/services/compare/domain"
)

// Register mounts compare endpoints on the given router
func Register(r httpkit.Router, runner dom.RunnerPort) {
	h := &handlers{runner: runner}

	// rank up to five keywords against each other
	httpkit.PostJSON[dom.Request](r, "/run", h.run)
}

type handlers struct{ runner dom.RunnerPort }

// run executes a comparison for the posted keyword set
func (h *handlers) run(r *stdhttp.Request, in dom.Request) (any, error) {
	return h.runner.Compare(r.Context(), in)
}
