package candidates

import (
	"strings"
	"testing"

	"keywordscout/internal/core/keynorm"
	perr "keywordscout/internal/platform/errors"
)

func TestExpand_SeedFirstAndDeterministic(t *testing.T) {
	g := New()

	got, err := g.Expand("padding")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != DefaultMaxVariants {
		t.Fatalf("len = %d, want %d", len(got), DefaultMaxVariants)
	}
	if got[0] != "padding" {
		t.Fatalf("first variant = %q, want bare seed", got[0])
	}
	// catalogue order: how_to first, front variant before back variant
	if got[1] != "how to padding" || got[2] != "padding how to" {
		t.Fatalf("variant order broke: %q, %q", got[1], got[2])
	}

	// same seed, same output
	again, _ := g.Expand("padding")
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("expansion not deterministic at %d: %q vs %q", i, got[i], again[i])
		}
	}
}

func TestExpand_MinimumVariety(t *testing.T) {
	g := New()
	got, err := g.Expand("padding")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) < 20 {
		t.Fatalf("expected at least 20 unique variants, got %d", len(got))
	}
	n := keynorm.New()
	seen := map[string]bool{}
	for _, kw := range got {
		k := n.Key(kw)
		if seen[k] {
			t.Fatalf("duplicate after normalization: %q", kw)
		}
		seen[k] = true
		if !strings.Contains(n.Key(kw), "padding") {
			t.Fatalf("variant %q lost the seed", kw)
		}
	}
}

func TestExpand_BlankSeed(t *testing.T) {
	g := New()
	for _, seed := range []string{"", "   ", "\t\n"} {
		_, err := g.Expand(seed)
		if err == nil {
			t.Fatalf("Expand(%q) expected error", seed)
		}
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("Expand(%q) code = %v, want Validation", seed, perr.CodeOf(err))
		}
	}
}

func TestExpand_Cap(t *testing.T) {
	g := NewWithOptions(Options{MaxVariants: 5})
	got, err := g.Expand("winter jacket")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("cap not applied: len = %d", len(got))
	}
}

func TestExpand_DedupFoldsCase(t *testing.T) {
	// seed already matching a generated variant must not duplicate
	g := New()
	got, err := g.Expand("How To padding")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	n := keynorm.New()
	count := 0
	for _, kw := range got {
		if n.Key(kw) == "how to padding" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("normalized dedup failed, %d copies of %q", count, "how to padding")
	}
}

func TestExpandAll(t *testing.T) {
	g := NewWithOptions(Options{MaxVariants: 10})

	got := g.ExpandAll([]string{"padding", "  ", "padding", "boots"}, 4)
	if len(got) == 0 {
		t.Fatalf("ExpandAll returned nothing")
	}
	// blanks skipped, repeated seed contributes nothing new
	n := keynorm.New()
	seen := map[string]bool{}
	for _, kw := range got {
		k := n.Key(kw)
		if seen[k] {
			t.Fatalf("ExpandAll produced duplicate %q", kw)
		}
		seen[k] = true
	}
	if got[0] != "padding" {
		t.Fatalf("first union entry = %q, want first seed", got[0])
	}
}

func TestFilterQuality(t *testing.T) {
	in := []string{"ok keyword", "ab", "   ", "x", "warm boots"}
	got := FilterQuality(in, 3)
	want := []string{"ok keyword", "warm boots"}
	if len(got) != len(want) {
		t.Fatalf("FilterQuality = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("FilterQuality[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// default minimum kicks in for zero
	if got := FilterQuality([]string{"ab", "abc"}, 0); len(got) != 1 || got[0] != "abc" {
		t.Fatalf("default minLen misapplied: %v", got)
	}
}
