package opportunity

import (
	"strings"
	"testing"

	"keywordscout/internal/core/trend"
	perr "keywordscout/internal/platform/errors"
)

func trendWith(keyword string, m trend.Metrics) trend.Trend {
	return trend.Trend{Keyword: keyword, Metrics: m}
}

func mustScorer(t *testing.T, w Weights) *Scorer {
	t.Helper()
	s, err := New(w)
	if err != nil {
		t.Fatalf("New scorer: %v", err)
	}
	return s
}

func TestWeightsValidate(t *testing.T) {
	cases := []struct {
		name string
		w    Weights
		ok   bool
	}{
		{"defaults", DefaultWeights(), true},
		{"within tolerance", Weights{0.30, 0.35, 0.20, 0.145}, true},
		{"sum too high", Weights{0.5, 0.5, 0.5, 0.5}, false},
		{"sum too low", Weights{0.1, 0.1, 0.1, 0.1}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.w.Validate()
			if c.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !c.ok {
				if err == nil {
					t.Fatalf("Validate() = nil, want error")
				}
				if !perr.IsCode(err, perr.ErrorCodeValidation) {
					t.Fatalf("code = %v, want Validation", perr.CodeOf(err))
				}
			}
		})
	}
}

func TestNew_ZeroWeightsUseDefaults(t *testing.T) {
	s := mustScorer(t, Weights{})
	got := s.Score(trendWith("x", trend.Metrics{}))
	if got.Weights != DefaultWeights() {
		t.Fatalf("weights snapshot = %+v, want defaults", got.Weights)
	}
}

func TestNew_RejectsInvalidWeights(t *testing.T) {
	if _, err := New(Weights{0.9, 0.9, 0.9, 0.9}); err == nil {
		t.Fatalf("New accepted invalid weights")
	}
}

func TestScore_KnownTotal(t *testing.T) {
	s := mustScorer(t, DefaultWeights())

	// "padding review": 14 runes (+20), has a space (+15), "review" (+15) -> 100
	got := s.Score(trendWith("padding review", trend.Metrics{
		Average:  60,
		Recent:   50,
		Momentum: 40,
	}))

	want := Factors{Demand: 60, Momentum: 70, Gap: 40, Suitability: 100}
	if got.Factors != want {
		t.Fatalf("factors = %+v, want %+v", got.Factors, want)
	}
	// 60*0.30 + 70*0.35 + 40*0.20 + 100*0.15
	if got.Total != 65.5 {
		t.Fatalf("Total = %v, want 65.5", got.Total)
	}
	if got.Grade != GradeA {
		t.Fatalf("Grade = %v, want A", got.Grade)
	}
}

func TestMomentumFactorRails(t *testing.T) {
	s := mustScorer(t, DefaultWeights())
	cases := []struct {
		momentum float64
		want     float64
	}{
		{0, 50},
		{40, 70},
		{100, 100},
		{300, 100}, // capped at the top rail
		{-40, 30},
		{-100, 0},
		{-250, 0}, // capped at the bottom rail
	}
	for _, c := range cases {
		got := s.Score(trendWith("x", trend.Metrics{Momentum: c.momentum}))
		if got.Factors.Momentum != c.want {
			t.Fatalf("momentum factor for %v = %v, want %v", c.momentum, got.Factors.Momentum, c.want)
		}
	}
}

func TestDemandAndGapClamp(t *testing.T) {
	s := mustScorer(t, DefaultWeights())
	got := s.Score(trendWith("x", trend.Metrics{Average: 150, Recent: 130}))
	if got.Factors.Demand != 100 {
		t.Fatalf("Demand = %v, want clamped 100", got.Factors.Demand)
	}
	if got.Factors.Gap != 100 {
		t.Fatalf("Gap = %v, want clamped 100", got.Factors.Gap)
	}
}

func TestSuitability(t *testing.T) {
	cases := []struct {
		keyword string
		want    float64
	}{
		{"ab", 50},                          // too short for any length bonus
		{"seo", 60},                         // 3 runes -> +10
		{"boots", 70},                       // 5 runes -> +20
		{"padding review", 100},             // +20 +15 space +15 modifier
		{"winter boots care", 75},           // 17 runes -> +10, +15 space, no modifier
		{"best x", 100},                     // +20 +15 +15
		{strings.Repeat("k", 25), 50},       // over both length bands
		{"how to " + strings.Repeat("k", 20), 80}, // 27 runes, space + modifier only
	}
	for _, c := range cases {
		if got := suitability(c.keyword); got != c.want {
			t.Fatalf("suitability(%q) = %v, want %v", c.keyword, got, c.want)
		}
	}
}

func TestScoreAll_SortedAndGraded(t *testing.T) {
	s := mustScorer(t, DefaultWeights())
	trends := []trend.Trend{
		trendWith("low", trend.Metrics{Average: 5, Recent: 5}),
		trendWith("high", trend.Metrics{Average: 90, Recent: 90, Momentum: 80}),
		trendWith("mid", trend.Metrics{Average: 50, Recent: 50, Momentum: 10}),
	}

	scores := s.ScoreAll(trends)
	if len(scores) != 3 {
		t.Fatalf("len = %d", len(scores))
	}
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Total < scores[i].Total {
			t.Fatalf("not sorted desc at %d: %v < %v", i, scores[i-1].Total, scores[i].Total)
		}
	}
	if scores[0].Keyword != "high" {
		t.Fatalf("best = %q, want high", scores[0].Keyword)
	}
}

func TestGradeBuckets(t *testing.T) {
	cases := []struct {
		total float64
		want  Grade
	}{
		{95, GradeS}, {80, GradeS},
		{79.99, GradeA}, {65, GradeA},
		{64.99, GradeB}, {50, GradeB},
		{49.99, GradeC}, {35, GradeC},
		{34.99, GradeD}, {0, GradeD},
	}
	for _, c := range cases {
		if got := gradeFor(c.total); got != c.want {
			t.Fatalf("gradeFor(%v) = %v, want %v", c.total, got, c.want)
		}
	}
}

func TestGradeRankAndAtLeast(t *testing.T) {
	if !GradeS.AtLeast(GradeC) || !GradeC.AtLeast(GradeC) || GradeD.AtLeast(GradeC) {
		t.Fatalf("AtLeast ordering broke")
	}
	if GradeS.Rank() <= GradeA.Rank() || Grade("?").Rank() != 0 {
		t.Fatalf("Rank ordering broke")
	}
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade(" b ")
	if err != nil || g != GradeB {
		t.Fatalf("ParseGrade(b) = %v, %v", g, err)
	}
	if _, err := ParseGrade("z"); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("ParseGrade(z) code = %v, want Validation", perr.CodeOf(err))
	}
}

func TestFilterTopDistribution(t *testing.T) {
	s := mustScorer(t, DefaultWeights())
	scores := s.ScoreAll([]trend.Trend{
		trendWith("high", trend.Metrics{Average: 90, Recent: 90, Momentum: 80}),
		trendWith("mid", trend.Metrics{Average: 50, Recent: 50}),
		trendWith("low", trend.Metrics{Average: 1, Recent: 1, Momentum: -90}),
	})

	kept := Filter(scores, GradeC)
	for _, sc := range kept {
		if !sc.Grade.AtLeast(GradeC) {
			t.Fatalf("Filter kept %v", sc.Grade)
		}
	}

	top := Top(scores, 2)
	if len(top) != 2 || top[0].Keyword != "high" {
		t.Fatalf("Top(2) = %+v", top)
	}
	if got := Top(scores, 99); len(got) != len(scores) {
		t.Fatalf("Top over length should return all")
	}

	dist := Distribution(scores)
	total := 0
	for _, n := range dist {
		total += n
	}
	if total != len(scores) {
		t.Fatalf("Distribution counts %d, want %d", total, len(scores))
	}
}

func TestStrongestWeakestAndReason(t *testing.T) {
	s := mustScorer(t, DefaultWeights())
	sc := s.Score(trendWith("padding review", trend.Metrics{Average: 20, Recent: 30, Momentum: 10}))

	if got := Strongest(sc); got != "suitability" {
		t.Fatalf("Strongest = %q, want suitability", got)
	}
	if got := Weakest(sc); got != "demand" {
		t.Fatalf("Weakest = %q, want demand", got)
	}
	r := Reason(sc)
	if !strings.Contains(r, string(sc.Grade)) || !strings.Contains(r, "suitability") {
		t.Fatalf("Reason = %q", r)
	}
}
