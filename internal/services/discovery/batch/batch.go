// Package batch splits keyword lists into analyzer-sized groups and runs them
// with pacing between calls so the upstream quota is respected
package batch

import (
	"context"
	"time"

	"keywordscout/internal/core/trend"
	"keywordscout/internal/platform/logger"
)

// MaxGroupSize is the hard per-call keyword ceiling of the analytics endpoint
const MaxGroupSize = 5

// Analyzer is the upstream call made once per group
type Analyzer interface {
	Analyze(ctx context.Context, keywords []string) ([]trend.Trend, error)
}

// Config tunes group size and inter-group pacing
type Config struct {
	Size  int
	Delay time.Duration
}

// Group is one contiguous slice of the input keywords
type Group struct {
	Number   int // 1-based
	Total    int
	Keywords []string
}

// GroupResult captures the outcome of a single group, success or failure
type GroupResult struct {
	Group   Group
	Trends  []trend.Trend
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is invoked before each group is dispatched
type ProgressFunc func(done, total int)

// Processor runs grouped analyzer calls with failure isolation
type Processor struct {
	analyzer Analyzer
	cfg      Config
	log      *logger.Logger

	// injectable for tests
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New constructs a Processor. Size is clamped to [1, MaxGroupSize] with a
// warning when the caller asked for more than the endpoint allows
func New(a Analyzer, cfg Config) *Processor {
	log := logger.Named("batch")
	if cfg.Size > MaxGroupSize {
		log.Warn().Int("requested", cfg.Size).Int("max", MaxGroupSize).
			Msg("group size exceeds endpoint limit, clamping")
		cfg.Size = MaxGroupSize
	}
	if cfg.Size < 1 {
		cfg.Size = MaxGroupSize
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Processor{
		analyzer: a,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

// Split partitions keywords into contiguous groups of at most cfg.Size
func (p *Processor) Split(keywords []string) []Group {
	if len(keywords) == 0 {
		return nil
	}
	total := (len(keywords) + p.cfg.Size - 1) / p.cfg.Size
	groups := make([]Group, 0, total)
	for i := 0; i < len(keywords); i += p.cfg.Size {
		end := i + p.cfg.Size
		if end > len(keywords) {
			end = len(keywords)
		}
		groups = append(groups, Group{
			Number:   len(groups) + 1,
			Total:    total,
			Keywords: keywords[i:end],
		})
	}
	return groups
}

// Run analyzes every group in order. A failing group records its error and
// the remaining groups still run. Context cancellation is checked between
// groups; on cancel the results so far are returned with ctx.Err recorded
// for the group that never ran
func (p *Processor) Run(ctx context.Context, keywords []string, onProgress ProgressFunc) []GroupResult {
	groups := p.Split(keywords)
	results := make([]GroupResult, 0, len(groups))

	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			p.log.Warn().Int("group", g.Number).Msg("batch aborted by context")
			results = append(results, GroupResult{Group: g, Err: err})
			return results
		}
		if onProgress != nil {
			onProgress(i, len(groups))
		}

		start := p.now()
		trends, err := p.analyzer.Analyze(ctx, g.Keywords)
		res := GroupResult{Group: g, Trends: trends, Err: err, Elapsed: p.now().Sub(start)}
		if err != nil {
			p.log.Warn().Err(err).Int("group", g.Number).Int("total", g.Total).
				Msg("group analysis failed, continuing")
		}
		results = append(results, res)

		if i < len(groups)-1 && p.cfg.Delay > 0 {
			if err := p.sleep(ctx, p.cfg.Delay); err != nil {
				next := groups[i+1]
				results = append(results, GroupResult{Group: next, Err: err})
				return results
			}
		}
	}
	return results
}

// Merge flattens successful group results and counts the failed groups
func Merge(results []GroupResult) ([]trend.Trend, int) {
	var trends []trend.Trend
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		trends = append(trends, r.Trends...)
	}
	return trends, failed
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
