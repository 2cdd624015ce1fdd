// Package trend derives search-interest metrics from relative-ratio time series
package trend

import (
	"math"
	"sort"
)

// Direction classifies where a keyword's interest is heading
type Direction string

// Direction values. Thresholds are +/-20 momentum points
const (
	DirectionRising  Direction = "rising"
	DirectionStable  Direction = "stable"
	DirectionFalling Direction = "falling"
)

// window sizes for the momentum comparison
const (
	recentWindow      = 7
	momentumMinPoints = recentWindow * 2
	velocityMinPoints = 3
)

// composite score weights and the falling-direction penalty
const (
	weightAverage  = 0.4
	weightRecent   = 0.3
	weightMomentum = 0.3
	fallingPenalty = 0.7
)

// Point is one sample of a relative interest series. Ratio is the provider's
// 0..100 scale relative to the series peak
type Point struct {
	Period string  `json:"period"`
	Ratio  float64 `json:"ratio"`
}

// Metrics are the derived values for one keyword series. Computed once at
// construction and never mutated afterwards
type Metrics struct {
	Average   float64   `json:"average"`
	Recent    float64   `json:"recent"`
	Momentum  float64   `json:"momentum"`
	Velocity  float64   `json:"velocity"`
	Score     float64   `json:"score"`
	Direction Direction `json:"direction"`
}

// Trend couples a keyword with its series and derived metrics
type Trend struct {
	Keyword string  `json:"keyword"`
	Points  []Point `json:"points"`
	Metrics Metrics `json:"metrics"`
}

// New derives metrics for a keyword series. The input slice is not retained
// mutable: callers must not modify Points after construction
func New(keyword string, points []Point) Trend {
	return Trend{Keyword: keyword, Points: points, Metrics: Compute(points)}
}

// Compute derives all metrics from a series
func Compute(points []Point) Metrics {
	ratios := make([]float64, len(points))
	for i, p := range points {
		ratios[i] = p.Ratio
	}

	avg := round2(mean(ratios))
	recent := round2(mean(tail(ratios, recentWindow)))
	mom := momentum(ratios)
	dir := direction(mom)
	vel := velocity(ratios)

	score := avg*weightAverage + recent*weightRecent + ((mom+100)/2)*weightMomentum
	if dir == DirectionFalling {
		score *= fallingPenalty
	}

	return Metrics{
		Average:   avg,
		Recent:    recent,
		Momentum:  mom,
		Velocity:  vel,
		Score:     round2(score),
		Direction: dir,
	}
}

// momentum compares the last window against the one before it as a percent
// change. Series shorter than two windows, or with a zero prior mean, read 0
func momentum(ratios []float64) float64 {
	if len(ratios) < momentumMinPoints {
		return 0
	}
	last := mean(tail(ratios, recentWindow))
	prior := mean(tail(ratios[:len(ratios)-recentWindow], recentWindow))
	if prior == 0 {
		return 0
	}
	return round2((last - prior) / prior * 100)
}

func direction(momentum float64) Direction {
	switch {
	case momentum > 20:
		return DirectionRising
	case momentum < -20:
		return DirectionFalling
	default:
		return DirectionStable
	}
}

// velocity is the least-squares slope of ratio over sample index.
// Under 3 points the fit is meaningless and reads 0
func velocity(ratios []float64) float64 {
	n := float64(len(ratios))
	if len(ratios) < velocityMinPoints {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ratios {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return round2((n*sumXY - sumX*sumY) / den)
}

// SortByScore orders trends by composite score descending, in place.
// Ties break on keyword for stable output
func SortByScore(trends []Trend) {
	sort.SliceStable(trends, func(i, j int) bool {
		if trends[i].Metrics.Score != trends[j].Metrics.Score {
			return trends[i].Metrics.Score > trends[j].Metrics.Score
		}
		return trends[i].Keyword < trends[j].Keyword
	})
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// tail returns the last n elements, or all of them when shorter
func tail(xs []float64, n int) []float64 {
	if len(xs) <= n {
		return xs
	}
	return xs[len(xs)-n:]
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
