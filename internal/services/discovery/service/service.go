// Package service implements the discovery pipeline orchestrator
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"keywordscout/internal/adapters/cachefile"
	"keywordscout/internal/core/candidates"
	"keywordscout/internal/core/keynorm"
	"keywordscout/internal/core/opportunity"
	perr "keywordscout/internal/platform/errors"
	"keywordscout/internal/platform/logger"
	"keywordscout/internal/services/discovery/batch"
	dom "keywordscout/internal/services/discovery/domain"
)

// Config for the discovery service
type Config struct {
	MaxVariants   int
	MinKeywordLen int
	MaxSuggest    int
	BatchSize     int
	BatchDelay    time.Duration
	CacheEnabled  bool
	MinGrade      opportunity.Grade
	OnProgress    dom.ProgressFunc // default sink; Request.Progress adds a per-call one
}

// Service runs the five-stage pipeline: cache check, candidate generation,
// trend analysis, opportunity scoring, grade filtering
type Service struct {
	gen     *candidates.Generator
	suggest dom.SuggestPort
	proc    *batch.Processor
	scorer  *opportunity.Scorer
	cache   dom.CachePort
	cfg     Config
	log     *logger.Logger

	// seeds serialize per key so concurrent same-seed calls do not race the cache
	seedMu sync.Mutex
	seeds  map[string]*sync.Mutex

	now func() time.Time
}

// New constructs the discovery service. cache may be nil when caching is
// disabled; suggest may be nil when no autocomplete source is configured
func New(suggest dom.SuggestPort, analyze dom.AnalyzePort, cache dom.CachePort, cfg Config) (*Service, error) {
	if cfg.MaxVariants <= 0 {
		cfg.MaxVariants = candidates.DefaultMaxVariants
	}
	if cfg.MinKeywordLen <= 0 {
		cfg.MinKeywordLen = 3
	}
	if cfg.MaxSuggest <= 0 {
		cfg.MaxSuggest = 10
	}
	if cfg.MinGrade == "" {
		cfg.MinGrade = opportunity.GradeC
	}
	if cache == nil {
		cfg.CacheEnabled = false
	}

	scorer, err := opportunity.New(opportunity.Weights{})
	if err != nil {
		return nil, err
	}

	return &Service{
		gen:     candidates.NewWithOptions(candidates.Options{MaxVariants: cfg.MaxVariants}),
		suggest: suggest,
		proc:    batch.New(analyze, batch.Config{Size: cfg.BatchSize, Delay: cfg.BatchDelay}),
		scorer:  scorer,
		cache:   cache,
		cfg:     cfg,
		log:     logger.Named("discovery"),
		seeds:   map[string]*sync.Mutex{},
		now:     time.Now,
	}, nil
}

// Discover runs the pipeline for one seed. The only fatal input condition is
// a blank seed; degraded stages log and continue
func (s *Service) Discover(ctx context.Context, req dom.Request) (*dom.Result, error) {
	seed := strings.TrimSpace(req.Seed)
	if seed == "" {
		return nil, perr.Validationf("seed keyword is required")
	}

	minGrade := s.cfg.MinGrade
	if req.MinGrade != "" {
		g, err := opportunity.ParseGrade(req.MinGrade)
		if err != nil {
			return nil, err
		}
		minGrade = g
	}

	unlock := s.lockSeed(seed)
	defer unlock()

	runID := uuid.NewString()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)
	emit := s.emitter(ctx, req.Progress)

	started := s.now()
	log.Info().Str("seed", seed).Str("min_grade", string(minGrade)).Msg("discovery run started")

	// stage 1: cache check
	emit(dom.StageCacheCheck, dom.StageCacheCheck.Percent())
	if s.cfg.CacheEnabled && !req.Refresh {
		if res, ok := s.loadCached(seed); ok {
			res.CacheHit = true
			emit(dom.StageDone, dom.StageDone.Percent())
			log.Info().Str("seed", seed).Msg("discovery served from cache")
			return res, nil
		}
	}

	// stage 2: candidate generation
	emit(dom.StageGenerate, dom.StageGenerate.Percent())
	kws, err := s.gen.Expand(seed)
	if err != nil {
		return nil, err
	}
	if s.suggest != nil {
		sugg, serr := s.suggest.Suggest(ctx, seed, s.cfg.MaxSuggest)
		if serr != nil {
			log.Warn().Err(serr).Msg("autocomplete degraded, continuing without suggestions")
		}
		kws = mergeKeywords(kws, sugg, s.cfg.MaxVariants+s.cfg.MaxSuggest)
	}
	kws = candidates.FilterQuality(kws, s.cfg.MinKeywordLen)

	result := &dom.Result{
		Seed:           seed,
		RunID:          runID,
		GeneratedCount: len(kws),
		StartedAt:      started,
	}
	if len(kws) == 0 {
		result.CompletedAt = s.now()
		emit(dom.StageDone, dom.StageDone.Percent())
		log.Warn().Str("seed", seed).Msg("no candidates survived generation")
		return result, nil
	}

	// stage 3: batched trend analysis. Group completions interpolate the
	// percent from this stage's mark toward the next one
	emit(dom.StageAnalyze, dom.StageAnalyze.Percent())
	base := dom.StageAnalyze.Percent()
	span := dom.StageScore.Percent() - base
	groupResults := s.proc.Run(ctx, kws, func(done, total int) {
		emit(dom.StageAnalyze, base+span*float64(done)/float64(total))
	})
	trends, failed := batch.Merge(groupResults)
	result.AnalyzedCount = len(trends)
	result.FailedGroups = failed
	if err := ctx.Err(); err != nil {
		result.CompletedAt = s.now()
		return result, perr.Wrap(err, perr.ErrorCodeUnavailable, "discovery aborted")
	}

	// stage 4: opportunity scoring
	emit(dom.StageScore, dom.StageScore.Percent())
	scores := s.scorer.ScoreAll(trends)

	// stage 5: grade filter
	emit(dom.StageFilter, dom.StageFilter.Percent())
	result.Opportunities = opportunity.Filter(scores, minGrade)
	result.CompletedAt = s.now()

	if s.cfg.CacheEnabled {
		s.saveCached(result)
	}

	emit(dom.StageDone, dom.StageDone.Percent())
	log.Info().
		Str("seed", seed).
		Int("generated", result.GeneratedCount).
		Int("analyzed", result.AnalyzedCount).
		Int("failed_groups", result.FailedGroups).
		Int("opportunities", len(result.Opportunities)).
		Dur("elapsed", result.ProcessingTime()).
		Msg("discovery run finished")
	return result, nil
}

// CacheStats implements domain.RunnerPort
func (s *Service) CacheStats() cachefile.Stats {
	if s.cache == nil {
		return cachefile.Stats{}
	}
	return s.cache.Stats()
}

// ClearCache implements domain.RunnerPort
func (s *Service) ClearCache() (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.ClearAll()
}

// SweepCache implements domain.RunnerPort
func (s *Service) SweepCache() (int, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.ClearExpired()
}

// emitter wraps the configured progress sinks with panic recovery so a
// misbehaving callback cannot take down a run. Sinks always see the stage
// index and TotalStages; only the percent varies within a stage
func (s *Service) emitter(ctx context.Context, hook dom.ProgressFunc) func(dom.Stage, float64) {
	sinks := make([]dom.ProgressFunc, 0, 2)
	if s.cfg.OnProgress != nil {
		sinks = append(sinks, s.cfg.OnProgress)
	}
	if hook != nil {
		sinks = append(sinks, hook)
	}
	log := logger.C(ctx)
	return func(stage dom.Stage, percent float64) {
		for _, sink := range sinks {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Error().Any("panic", r).Str("stage", string(stage)).
							Msg("progress callback panicked, suppressed")
					}
				}()
				sink(stage, stage.Index(), dom.TotalStages, percent)
			}()
		}
	}
}

func (s *Service) lockSeed(seed string) func() {
	key := keynorm.Key(seed)
	s.seedMu.Lock()
	mu, ok := s.seeds[key]
	if !ok {
		mu = &sync.Mutex{}
		s.seeds[key] = mu
	}
	s.seedMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

func (s *Service) loadCached(seed string) (*dom.Result, bool) {
	entry, ok, err := s.cache.Load(seed)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn().Err(err).Str("seed", seed).Msg("cache load degraded")
		}
		return nil, false
	}
	var res dom.Result
	if err := entry.Decode(&res); err != nil {
		s.log.Warn().Err(err).Str("seed", seed).Msg("cache entry undecodable, ignoring")
		return nil, false
	}
	return &res, true
}

func (s *Service) saveCached(res *dom.Result) {
	meta := map[string]any{
		"processing_time": res.ProcessingTime().String(),
		"success_rate":    res.SuccessRate(),
		"average_score":   res.AverageScore(),
	}
	if err := s.cache.Save(res.Seed, res, meta); err != nil {
		s.log.Warn().Err(err).Str("seed", res.Seed).Msg("cache save degraded")
	}
}

// mergeKeywords unions two candidate sources preserving order, dedup by
// normalized key, capped at max
func mergeKeywords(base, extra []string, max int) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, kw := range append(append([]string(nil), base...), extra...) {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := keynorm.Key(kw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
