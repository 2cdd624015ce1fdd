package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"keywordscout/internal/adapters/cachefile"
	"keywordscout/internal/adapters/datalab"
	"keywordscout/internal/adapters/suggest"
	"keywordscout/internal/core/opportunity"
	"keywordscout/internal/platform/config"
	"keywordscout/internal/platform/logger"

	discdom "keywordscout/internal/services/discovery/domain"
	discsvc "keywordscout/internal/services/discovery/service"
)

func main() {
	_ = godotenv.Load()

	var (
		seed     = flag.String("seed", "", "seed keyword to expand (required)")
		minGrade = flag.String("min-grade", "C", "minimum opportunity grade to keep (S/A/B/C/D)")
		top      = flag.Int("top", 10, "rows to print (0 = all)")
		refresh  = flag.Bool("refresh", false, "bypass the cache and re-analyze")
		asJSON   = flag.Bool("json", false, "emit the full result as JSON on stdout")
	)
	flag.Parse()

	if *seed == "" {
		fmt.Fprintln(os.Stderr, "usage: keywordscout-discover -seed <keyword> [-min-grade C] [-top 10] [-refresh] [-json]")
		os.Exit(2)
	}

	root := config.New()
	dlCfg := root.Prefix("DATALAB_")
	sgCfg := root.Prefix("SUGGEST_")
	cacheCfg := root.Prefix("CACHE_")
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

	var suggester discdom.SuggestPort = suggest.NewOffline()
	if base := sgCfg.MayString("BASE_URL", ""); base != "" {
		suggester = suggest.NewRemote(suggest.Options{BaseURL: base})
	}

	o := discsvc.Config{
		BatchSize:    root.Prefix("CORE_DISCOVERY_").MayInt("BATCH_SIZE", 5),
		BatchDelay:   time.Duration(root.Prefix("CORE_DISCOVERY_").MayInt("BATCH_DELAY_MS", 1000)) * time.Millisecond,
		CacheEnabled: true,
	}
	svc, err := discsvc.New(suggester, analyzer, store, o)
	if err != nil {
		l.Panic().Err(err).Msg("discovery service init failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := svc.Discover(ctx, discdom.Request{
		Seed:     *seed,
		MinGrade: *minGrade,
		Refresh:  *refresh,
		Progress: func(stage discdom.Stage, current, total int, percent float64) {
			fmt.Fprintf(os.Stderr, "[%5.1f%%] %-11s %d/%d\n", percent, stage, current, total)
		},
	})
	if err != nil {
		l.Fatal().Err(err).Msg("discovery failed")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			l.Fatal().Err(err).Msg("encode result")
		}
		return
	}

	printTable(res, *top)
}

func printTable(res *discdom.Result, top int) {
	source := "live"
	if res.CacheHit {
		source = "cache"
	}
	fmt.Printf("seed: %s  (run %s, %s)\n", res.Seed, res.RunID, source)
	fmt.Printf("candidates: %d generated, %d analyzed, %d group failures\n",
		res.GeneratedCount, res.AnalyzedCount, res.FailedGroups)
	fmt.Printf("elapsed: %s  success rate: %.0f%%\n\n",
		res.ProcessingTime().Round(time.Millisecond), res.SuccessRate()*100)

	rows := res.Top(top)
	if len(rows) == 0 {
		fmt.Println("no opportunities at the requested grade")
		return
	}

	fmt.Printf("%-4s %-32s %-6s %7s %8s %6s %7s\n",
		"#", "keyword", "grade", "total", "demand", "gap", "momtm")
	for i, s := range rows {
		fmt.Printf("%-4d %-32s %-6s %7.2f %8.1f %6.1f %7.1f\n",
			i+1, s.Keyword, s.Grade, s.Total, s.Factors.Demand, s.Factors.Gap, s.Factors.Momentum)
	}

	dist := res.GradeDistribution()
	fmt.Printf("\ngrades:")
	for _, g := range []opportunity.Grade{opportunity.GradeS, opportunity.GradeA, opportunity.GradeB, opportunity.GradeC, opportunity.GradeD} {
		if n := dist[g]; n > 0 {
			fmt.Printf(" %s=%d", g, n)
		}
	}
	fmt.Println()
}
