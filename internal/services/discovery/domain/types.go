// Package domain defines the types and interfaces for the discovery service
package domain

import (
	"sort"
	"time"

	"keywordscout/internal/core/opportunity"
)

// Stage identifies a pipeline phase for progress reporting
type Stage string

// Pipeline stages in execution order
const (
	StageCacheCheck Stage = "cache_check"
	StageGenerate   Stage = "generate"
	StageAnalyze    Stage = "analyze"
	StageScore      Stage = "score"
	StageFilter     Stage = "filter"
	StageDone       Stage = "done"
)

// TotalStages counts the reported stages, done included
const TotalStages = 6

// Index is the 1-based position of the stage in the pipeline, 0 when unknown
func (s Stage) Index() int {
	switch s {
	case StageCacheCheck:
		return 1
	case StageGenerate:
		return 2
	case StageAnalyze:
		return 3
	case StageScore:
		return 4
	case StageFilter:
		return 5
	case StageDone:
		return 6
	default:
		return 0
	}
}

// Percent is the overall progress on reaching the stage,
// Index/TotalStages scaled to 100
func (s Stage) Percent() float64 {
	return float64(s.Index()) / TotalStages * 100
}

// ProgressFunc receives stage transitions as (stage, stageIndex, TotalStages,
// overallPercent). percent is the stage's Percent, except inside analyze where
// it interpolates toward the next stage as keyword groups finish
type ProgressFunc func(stage Stage, current, total int, percent float64)

// Request carries per-call options for a discovery run
type Request struct {
	Seed     string `json:"seed" validate:"required,keyword"`
	MinGrade string `json:"min_grade,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"` // bypass the cache and overwrite it

	// Progress is an optional per-call hook, never part of the wire form
	Progress ProgressFunc `json:"-"`
}

// Result is the outcome of one discovery run
type Result struct {
	Seed           string              `json:"seed"`
	RunID          string              `json:"run_id"`
	GeneratedCount int                 `json:"generated_count"`
	AnalyzedCount  int                 `json:"analyzed_count"`
	FailedGroups   int                 `json:"failed_groups"`
	Opportunities  []opportunity.Score `json:"opportunities"`
	CacheHit       bool                `json:"cache_hit"`
	StartedAt      time.Time           `json:"started_at"`
	CompletedAt    time.Time           `json:"completed_at"`
}

// ProcessingTime is the wall-clock duration of the run
func (r *Result) ProcessingTime() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// SuccessRate is the fraction of generated candidates that produced metrics,
// in [0,1]. Zero generated candidates yields 0
func (r *Result) SuccessRate() float64 {
	if r.GeneratedCount == 0 {
		return 0
	}
	return float64(r.AnalyzedCount) / float64(r.GeneratedCount)
}

// GradeDistribution counts opportunities per grade
func (r *Result) GradeDistribution() map[opportunity.Grade]int {
	return opportunity.Distribution(r.Opportunities)
}

// Best returns the top-scored opportunity, or nil when the run found none
func (r *Result) Best() *opportunity.Score {
	if len(r.Opportunities) == 0 {
		return nil
	}
	best := r.Opportunities[0]
	for _, s := range r.Opportunities[1:] {
		if s.Total > best.Total {
			best = s
		}
	}
	return &best
}

// AverageScore is the mean opportunity total, 0 when empty
func (r *Result) AverageScore() float64 {
	if len(r.Opportunities) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.Opportunities {
		sum += s.Total
	}
	return sum / float64(len(r.Opportunities))
}

// Top returns the n highest-scored opportunities without mutating the result
func (r *Result) Top(n int) []opportunity.Score {
	out := append([]opportunity.Score(nil), r.Opportunities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
