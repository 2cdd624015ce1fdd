package domain

import (
	"context"

	"keywordscout/internal/adapters/cachefile"
	"keywordscout/internal/core/trend"
)

// SuggestPort is the autocomplete capability consumed by the pipeline.
// Implementations may be remote or offline; failures degrade, never abort
type SuggestPort interface {
	Suggest(ctx context.Context, seed string, max int) ([]string, error)
}

// AnalyzePort fetches trend series for a group of keywords
type AnalyzePort interface {
	Analyze(ctx context.Context, keywords []string) ([]trend.Trend, error)
}

// CachePort is the result cache consumed by the pipeline
type CachePort interface {
	Save(seed string, result any, metadata map[string]any) error
	Load(seed string) (*cachefile.Entry, bool, error)
	ClearExpired() (int, error)
	ClearAll() (int, error)
	Stats() cachefile.Stats
}

// RunnerPort is the discovery service surface exposed to transports and other modules
type RunnerPort interface {
	Discover(ctx context.Context, req Request) (*Result, error)
	CacheStats() cachefile.Stats
	ClearCache() (int, error)
	SweepCache() (int, error)
}
