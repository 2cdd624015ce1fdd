// Package api provides the HTTP API for the application
package api

import (
	"keywordscout/internal/platform/config"
	"keywordscout/internal/platform/logger"
	phttp "keywordscout/internal/platform/net/http"

	"keywordscout/internal/modkit"
	"keywordscout/internal/modkit/httpkit"
	"keywordscout/internal/modkit/module"

	cmpmod "keywordscout/internal/services/compare/module"
	dom "keywordscout/internal/services/discovery/domain"
	discmod "keywordscout/internal/services/discovery/module"
	metamod "keywordscout/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Deps           modkit.Deps
	Suggest        dom.SuggestPort // optional autocomplete source
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := opt.Deps
	deps.Cfg = opt.Config

	mods := []module.Module{
		metamod.New(deps),
		discmod.New(deps, opt.Suggest),
		cmpmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountUnder(r, "/api/v1", httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
