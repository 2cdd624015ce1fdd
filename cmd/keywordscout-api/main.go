package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"keywordscout/internal/adapters/cachefile"
	"keywordscout/internal/adapters/datalab"
	"keywordscout/internal/adapters/suggest"
	"keywordscout/internal/modkit"
	"keywordscout/internal/platform/config"
	"keywordscout/internal/platform/logger"
	phttp "keywordscout/internal/platform/net/http"

	"keywordscout/internal/services/api"
	discdom "keywordscout/internal/services/discovery/domain"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	dlCfg := root.Prefix("DATALAB_")
	sgCfg := root.Prefix("SUGGEST_")
	cacheCfg := root.Prefix("CACHE_")

	// bring up logging early
	l := logger.Get()

	store, err := cachefile.New(cachefile.Options{
		Dir: cacheCfg.MayString("DIR", cachefile.DefaultDir),
		TTL: time.Duration(cacheCfg.MayInt("TTL_HOURS", 24)) * time.Hour,
	})
	if err != nil {
		l.Panic().Err(err).Msg("cache store init failed")
	}

	analyzer := datalab.NewAnalyzer(datalab.Options{
		BaseURL:      dlCfg.MayString("BASE_URL", ""),
		ClientID:     dlCfg.MustString("CLIENT_ID"),
		ClientSecret: dlCfg.MustString("CLIENT_SECRET"),
		MaxRPS:       dlCfg.MayFloat64("MAX_RPS", 2),
	})

	// remote autocomplete only when an endpoint is configured
	var suggester discdom.SuggestPort = suggest.NewOffline()
	if base := sgCfg.MayString("BASE_URL", ""); base != "" {
		suggester = suggest.NewRemote(suggest.Options{BaseURL: base})
	}

	deps := modkit.Deps{
		Log:    *l,
		Cfg:    root,
		Cache:  store,
		Trends: analyzer,
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			Deps:           deps,
			Suggest:        suggester,
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
