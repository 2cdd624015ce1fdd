package trend

import (
	"testing"
)

func series(ratios ...float64) []Point {
	pts := make([]Point, len(ratios))
	for i, r := range ratios {
		pts[i] = Point{Period: "2026-08-01", Ratio: r}
	}
	return pts
}

func flat(n int, ratio float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = ratio
	}
	return out
}

func TestCompute_RisingTwoWindows(t *testing.T) {
	// prior week flat 50, last week flat 75 -> +50% momentum
	pts := series(append(flat(7, 50), flat(7, 75)...)...)
	m := Compute(pts)

	if m.Average != 62.5 {
		t.Fatalf("Average = %v, want 62.5", m.Average)
	}
	if m.Recent != 75 {
		t.Fatalf("Recent = %v, want 75", m.Recent)
	}
	if m.Momentum != 50 {
		t.Fatalf("Momentum = %v, want 50", m.Momentum)
	}
	if m.Direction != DirectionRising {
		t.Fatalf("Direction = %v, want rising", m.Direction)
	}
	if m.Velocity != 2.69 {
		t.Fatalf("Velocity = %v, want 2.69", m.Velocity)
	}
	// 62.5*0.4 + 75*0.3 + ((50+100)/2)*0.3
	if m.Score != 70 {
		t.Fatalf("Score = %v, want 70", m.Score)
	}
}

func TestCompute_FallingAppliesPenalty(t *testing.T) {
	pts := series(append(flat(7, 80), flat(7, 40)...)...)
	m := Compute(pts)

	if m.Momentum != -50 {
		t.Fatalf("Momentum = %v, want -50", m.Momentum)
	}
	if m.Direction != DirectionFalling {
		t.Fatalf("Direction = %v, want falling", m.Direction)
	}
	// (60*0.4 + 40*0.3 + 25*0.3) * 0.7
	if m.Score != 30.45 {
		t.Fatalf("Score = %v, want 30.45", m.Score)
	}
}

func TestCompute_ShortSeries(t *testing.T) {
	pts := series(10, 20, 30, 40, 50)
	m := Compute(pts)

	if m.Momentum != 0 {
		t.Fatalf("Momentum = %v, want 0 under two windows", m.Momentum)
	}
	if m.Direction != DirectionStable {
		t.Fatalf("Direction = %v, want stable", m.Direction)
	}
	if m.Average != 30 || m.Recent != 30 {
		t.Fatalf("Average/Recent = %v/%v, want 30/30", m.Average, m.Recent)
	}
	if m.Velocity != 10 {
		t.Fatalf("Velocity = %v, want 10", m.Velocity)
	}
	// 30*0.4 + 30*0.3 + 50*0.3
	if m.Score != 36 {
		t.Fatalf("Score = %v, want 36", m.Score)
	}
}

func TestCompute_VelocityNeedsThreePoints(t *testing.T) {
	if m := Compute(series(10, 90)); m.Velocity != 0 {
		t.Fatalf("Velocity = %v, want 0 for 2 points", m.Velocity)
	}
}

func TestCompute_ZeroPriorWindow(t *testing.T) {
	pts := series(append(flat(7, 0), flat(7, 50)...)...)
	m := Compute(pts)
	if m.Momentum != 0 {
		t.Fatalf("Momentum = %v, want 0 for zero prior mean", m.Momentum)
	}
	if m.Direction != DirectionStable {
		t.Fatalf("Direction = %v, want stable", m.Direction)
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	m := Compute(nil)
	if m.Average != 0 || m.Recent != 0 || m.Momentum != 0 || m.Velocity != 0 {
		t.Fatalf("empty series metrics not zero: %+v", m)
	}
	// the momentum term contributes its neutral midpoint even at zero
	if m.Score != 15 {
		t.Fatalf("Score = %v, want 15", m.Score)
	}
}

func TestCompute_Rounding(t *testing.T) {
	// thirds force repeating decimals everywhere
	m := Compute(series(1, 1, 2))
	if m.Average != 1.33 {
		t.Fatalf("Average = %v, want 1.33", m.Average)
	}
	if got := m.Velocity; got != 0.5 {
		t.Fatalf("Velocity = %v, want 0.5", got)
	}
	// 1.33*0.4 + 1.33*0.3 + 15, rounded
	if m.Score != 15.93 {
		t.Fatalf("Score = %v, want 15.93", m.Score)
	}
}

func TestSortByScore(t *testing.T) {
	a := New("a", series(append(flat(7, 80), flat(7, 40)...)...)) // 30.45
	b := New("b", series(append(flat(7, 50), flat(7, 75)...)...)) // 70
	c := New("c", series(10, 20, 30, 40, 50))                     // 36

	trends := []Trend{a, c, b}
	SortByScore(trends)

	want := []string{"b", "c", "a"}
	for i, kw := range want {
		if trends[i].Keyword != kw {
			t.Fatalf("sorted[%d] = %q, want %q", i, trends[i].Keyword, kw)
		}
	}
}

func TestNew_CarriesKeywordAndPoints(t *testing.T) {
	pts := series(5, 6, 7)
	tr := New("warm boots", pts)
	if tr.Keyword != "warm boots" || len(tr.Points) != 3 {
		t.Fatalf("New() lost data: %+v", tr)
	}
	if tr.Metrics != Compute(pts) {
		t.Fatalf("New() metrics differ from Compute")
	}
}
