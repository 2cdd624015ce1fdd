// Package opportunity turns trend metrics into graded blog-topic opportunities
package opportunity

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"keywordscout/internal/core/trend"
	perr "keywordscout/internal/platform/errors"
)

// Grade buckets a total score into a letter
type Grade string

// Grade letters, best to worst
const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// total-score thresholds per grade
const (
	thresholdS = 80
	thresholdA = 65
	thresholdB = 50
	thresholdC = 35
)

// Rank orders grades numerically, S highest
func (g Grade) Rank() int {
	switch g {
	case GradeS:
		return 5
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether g meets the min grade threshold
func (g Grade) AtLeast(min Grade) bool { return g.Rank() >= min.Rank() }

// ParseGrade maps a letter to a Grade, case insensitive
func ParseGrade(s string) (Grade, error) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if g.Rank() == 0 {
		return "", perr.Validationf("unknown grade %q", s)
	}
	return g, nil
}

// gradeFor buckets a total score
func gradeFor(total float64) Grade {
	switch {
	case total >= thresholdS:
		return GradeS
	case total >= thresholdA:
		return GradeA
	case total >= thresholdB:
		return GradeB
	case total >= thresholdC:
		return GradeC
	default:
		return GradeD
	}
}

// Weights distribute the four factors into the total. Must sum to 1.0
// within a 0.01 tolerance
type Weights struct {
	Demand      float64 `json:"demand"`
	Momentum    float64 `json:"momentum"`
	Gap         float64 `json:"gap"`
	Suitability float64 `json:"suitability"`
}

// DefaultWeights are the house defaults
func DefaultWeights() Weights {
	return Weights{Demand: 0.30, Momentum: 0.35, Gap: 0.20, Suitability: 0.15}
}

// Validate checks the unit-sum constraint
func (w Weights) Validate() error {
	sum := w.Demand + w.Momentum + w.Gap + w.Suitability
	if math.Abs(sum-1.0) > 0.01 {
		return perr.Validationf("factor weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// blogFriendly lists modifier words that signal an article-shaped query
var blogFriendly = []string{
	"how to", "review", "guide", "tips", "comparison", "recommendation", "best",
}

// Factors are the four 0..100 sub-scores derived from a trend
type Factors struct {
	Demand      float64 `json:"demand"`
	Momentum    float64 `json:"momentum"`
	Gap         float64 `json:"gap"`
	Suitability float64 `json:"suitability"`
}

// Score is one graded opportunity. All fields are derived at construction
// and never mutated afterwards
type Score struct {
	Keyword string  `json:"keyword"`
	Factors Factors `json:"factors"`
	Weights Weights `json:"weights"`
	Total   float64 `json:"total"`
	Grade   Grade   `json:"grade"`
}

// Scorer grades trends with a fixed weight set. Safe for concurrent use
type Scorer struct {
	weights Weights
}

// New constructs a Scorer; zero-value weights fall back to the defaults.
// Invalid weights are a validation error
func New(w Weights) (*Scorer, error) {
	if w == (Weights{}) {
		w = DefaultWeights()
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Score grades a single trend
func (s *Scorer) Score(t trend.Trend) Score {
	f := deriveFactors(t)
	w := s.weights
	total := round2(f.Demand*w.Demand + f.Momentum*w.Momentum + f.Gap*w.Gap + f.Suitability*w.Suitability)
	return Score{
		Keyword: t.Keyword,
		Factors: f,
		Weights: w,
		Total:   total,
		Grade:   gradeFor(total),
	}
}

// ScoreAll grades every trend and returns them sorted by total descending,
// keyword ascending on ties
func (s *Scorer) ScoreAll(trends []trend.Trend) []Score {
	out := make([]Score, 0, len(trends))
	for _, t := range trends {
		out = append(out, s.Score(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out
}

// deriveFactors maps trend metrics onto the four factor scales
func deriveFactors(t trend.Trend) Factors {
	m := t.Metrics

	// momentum folds percent change into 50 +/- half-magnitude, capped at the rails
	momentum := 50.0
	if m.Momentum >= 0 {
		momentum += math.Min(50, m.Momentum/2)
	} else {
		momentum -= math.Min(50, -m.Momentum/2)
	}

	return Factors{
		Demand:      clamp(m.Average),
		Momentum:    clamp(momentum),
		Gap:         clamp(m.Recent * 0.8),
		Suitability: suitability(t.Keyword),
	}
}

// suitability rates how well the keyword shape fits a blog article title
func suitability(keyword string) float64 {
	score := 50.0

	n := utf8.RuneCountInString(keyword)
	switch {
	case n >= 5 && n <= 15:
		score += 20
	case n >= 3 && n <= 20:
		score += 10
	}

	if strings.Contains(strings.TrimSpace(keyword), " ") {
		score += 15
	}

	lower := strings.ToLower(keyword)
	for _, mod := range blogFriendly {
		if strings.Contains(lower, mod) {
			score += 15
			break
		}
	}

	return clamp(score)
}

// Reason renders a short human-readable rationale for a score
func Reason(s Score) string {
	strongest, weakest := Strongest(s), Weakest(s)
	return fmt.Sprintf("grade %s (%.1f): strong %s, weak %s", s.Grade, s.Total, strongest, weakest)
}

// Strongest names the highest factor
func Strongest(s Score) string {
	name, _ := extreme(s.Factors, func(a, b float64) bool { return a > b })
	return name
}

// Weakest names the lowest factor
func Weakest(s Score) string {
	name, _ := extreme(s.Factors, func(a, b float64) bool { return a < b })
	return name
}

func extreme(f Factors, better func(a, b float64) bool) (string, float64) {
	name, val := "demand", f.Demand
	for _, c := range []struct {
		name string
		val  float64
	}{
		{"momentum", f.Momentum},
		{"gap", f.Gap},
		{"suitability", f.Suitability},
	} {
		if better(c.val, val) {
			name, val = c.name, c.val
		}
	}
	return name, val
}

// Filter keeps scores at or above the min grade, preserving order
func Filter(scores []Score, min Grade) []Score {
	out := make([]Score, 0, len(scores))
	for _, s := range scores {
		if s.Grade.AtLeast(min) {
			out = append(out, s)
		}
	}
	return out
}

// Top returns the first n scores (input is already sorted by ScoreAll)
func Top(scores []Score, n int) []Score {
	if n < 0 {
		n = 0
	}
	if n > len(scores) {
		n = len(scores)
	}
	return scores[:n]
}

// Distribution counts scores per grade
func Distribution(scores []Score) map[Grade]int {
	out := make(map[Grade]int, 5)
	for _, s := range scores {
		out[s.Grade]++
	}
	return out
}

func clamp(x float64) float64 { return math.Max(0, math.Min(100, x)) }

func round2(x float64) float64 { return math.Round(x*100) / 100 }
