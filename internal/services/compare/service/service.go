// Package service implements head-to-head keyword comparison
package service

import (
	"context"
	"strings"
	"time"

	"keywordscout/internal/core/keynorm"
	perr "keywordscout/internal/platform/errors"
	"keywordscout/internal/platform/logger"
	dom "keywordscout/internal/services/compare/domain"
	"keywordscout/internal/services/discovery/batch"
)

// Service analyzes a small keyword set in one analyzer call and ranks the
// results by composite trend score
type Service struct {
	analyze batch.Analyzer
	log     *logger.Logger
	now     func() time.Time
}

// New constructs the compare service
func New(analyze batch.Analyzer) *Service {
	return &Service{
		analyze: analyze,
		log:     logger.Named("compare"),
		now:     time.Now,
	}
}

// Compare analyzes 1 to 5 keywords. Blank and duplicate entries are dropped
// before validation so "Tent , tent" counts as one keyword
func (s *Service) Compare(ctx context.Context, req dom.Request) (*dom.Report, error) {
	kws := dedup(req.Keywords)
	if len(kws) == 0 {
		return nil, perr.Validationf("at least one keyword is required")
	}
	if len(kws) > dom.MaxKeywords {
		return nil, perr.Validationf("at most %d keywords can be compared, got %d", dom.MaxKeywords, len(kws))
	}

	started := s.now()
	trends, err := s.analyze.Analyze(ctx, kws)
	if err != nil {
		return nil, err
	}

	report := &dom.Report{
		Keywords:    kws,
		Trends:      trends,
		Analyzed:    len(trends),
		Failed:      len(kws) - len(trends),
		StartedAt:   started,
		CompletedAt: s.now(),
	}
	if rows := report.Ranking(); len(rows) > 0 {
		report.Best = rows[0].Keyword
	}

	s.log.Info().
		Int("keywords", len(kws)).
		Int("analyzed", report.Analyzed).
		Str("best", report.Best).
		Dur("elapsed", report.ProcessingTime()).
		Msg("comparison finished")
	return report, nil
}

func dedup(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
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
	}
	return out
}
