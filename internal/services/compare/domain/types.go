// Package domain defines the types and interfaces for the compare service
package domain

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"keywordscout/internal/core/trend"
)

// MaxKeywords is the comparison ceiling, matching the analyzer group limit
const MaxKeywords = 5

// Request is the compare call input
type Request struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=5,dive,keyword"`
}

// Entry is one ranked row of a report
type Entry struct {
	Rank    int     `json:"rank"`
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// Report is the outcome of one comparison
type Report struct {
	Keywords    []string      `json:"keywords"`
	Trends      []trend.Trend `json:"trends"`
	Best        string        `json:"best"`
	Analyzed    int           `json:"analyzed"`
	Failed      int           `json:"failed"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
}

// ProcessingTime is the wall-clock duration of the comparison
func (r *Report) ProcessingTime() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// SuccessRate is the fraction of requested keywords that produced metrics
func (r *Report) SuccessRate() float64 {
	if len(r.Keywords) == 0 {
		return 0
	}
	return float64(r.Analyzed) / float64(len(r.Keywords))
}

// Ranking returns keyword/score rows ordered by composite score descending
func (r *Report) Ranking() []Entry {
	rows := make([]Entry, 0, len(r.Trends))
	for _, t := range r.Trends {
		rows = append(rows, Entry{Keyword: t.Keyword, Score: t.Metrics.Score})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Keyword < rows[j].Keyword
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Summary renders a short text block for CLI output
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "compared %d keywords in %s\n", len(r.Keywords), r.ProcessingTime().Round(time.Millisecond))
	for _, row := range r.Ranking() {
		marker := " "
		if row.Keyword == r.Best {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %d. %-30s %6.2f\n", marker, row.Rank, row.Keyword, row.Score)
	}
	if r.Failed > 0 {
		fmt.Fprintf(&b, "%d keyword(s) returned no data\n", r.Failed)
	}
	return b.String()
}

// RunnerPort is the compare service surface
type RunnerPort interface {
	Compare(ctx context.Context, req Request) (*Report, error)
}
