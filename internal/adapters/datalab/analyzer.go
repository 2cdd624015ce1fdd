package datalab

import (
	"context"
	"strings"

	"keywordscout/internal/core/trend"
	perr "keywordscout/internal/platform/errors"
	"keywordscout/internal/platform/logger"
)

// Analyzer turns raw series from the analytics endpoint into derived trends.
// It implements the discovery and compare TrendAnalyzer ports
type Analyzer struct {
	client *Client
	log    logger.Logger
}

// NewAnalyzer builds an Analyzer with its own client
func NewAnalyzer(o Options) *Analyzer {
	return &Analyzer{client: NewClient(o), log: *logger.Named("datalab")}
}

// NewAnalyzerWithClient is for tests and callers that share a client
func NewAnalyzerWithClient(c *Client) *Analyzer {
	return &Analyzer{client: c, log: *logger.Named("datalab")}
}

// Analyze fetches series for 1..MaxGroupKeywords keywords and returns trends
// sorted by composite score descending. Keywords the provider returned no
// data for are logged and skipped, never errors
func (a *Analyzer) Analyze(ctx context.Context, keywords []string) ([]trend.Trend, error) {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	if len(cleaned) == 0 {
		return nil, perr.Validationf("at least one keyword is required")
	}
	if len(cleaned) > MaxGroupKeywords {
		return nil, perr.Validationf("at most %d keywords per analysis, got %d", MaxGroupKeywords, len(cleaned))
	}

	resp, err := a.client.Search(ctx, cleaned)
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]groupResult, len(resp.Results))
	for _, g := range resp.Results {
		byTitle[g.Title] = g
	}

	out := make([]trend.Trend, 0, len(cleaned))
	for _, kw := range cleaned {
		g, ok := byTitle[kw]
		if !ok || len(g.Data) == 0 {
			a.log.Info().Str("keyword", kw).Msg("no series data, skipping")
			continue
		}
		pts := make([]trend.Point, len(g.Data))
		for i, d := range g.Data {
			pts[i] = trend.Point{Period: d.Period, Ratio: d.Ratio}
		}
		out = append(out, trend.New(kw, pts))
	}

	trend.SortByScore(out)
	return out, nil
}
