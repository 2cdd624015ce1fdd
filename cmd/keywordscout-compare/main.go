package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"keywordscout/internal/adapters/datalab"
	"keywordscout/internal/platform/config"
	"keywordscout/internal/platform/logger"

	cmpdom "keywordscout/internal/services/compare/domain"
	cmpsvc "keywordscout/internal/services/compare/service"
)

func main() {
	_ = godotenv.Load()
	flag.Parse()

	keywords := flag.Args()
	if len(keywords) == 0 {
		fmt.Fprintln(os.Stderr, "usage: keywordscout-compare <keyword> [keyword ...]  (max 5)")
		os.Exit(2)
	}

	root := config.New()
	dlCfg := root.Prefix("DATALAB_")
	l := logger.Get()

	analyzer := datalab.NewAnalyzer(datalab.Options{
		BaseURL:      dlCfg.MayString("BASE_URL", ""),
		ClientID:     dlCfg.MustString("CLIENT_ID"),
		ClientSecret: dlCfg.MustString("CLIENT_SECRET"),
		MaxRPS:       dlCfg.MayFloat64("MAX_RPS", 2),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := cmpsvc.New(analyzer).Compare(ctx, cmpdom.Request{Keywords: keywords})
	if err != nil {
		l.Fatal().Err(err).Msg("comparison failed")
	}
	fmt.Print(rep.Summary())
}
