// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	"keywordscout/internal/adapters/cachefile"
	"keywordscout/internal/core/trend"
	"keywordscout/internal/platform/config"
	"keywordscout/internal/platform/logger"
)

// TrendAnalyzer is the shared analytics port injected into modules.
// Implemented by the datalab adapter; tests swap in fakes
type TrendAnalyzer interface {
	Analyze(ctx context.Context, keywords []string) ([]trend.Trend, error)
}

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	Cache  *cachefile.Store
	Trends TrendAnalyzer
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional collaborators
func (d Deps) ZeroOK() bool { return true }
