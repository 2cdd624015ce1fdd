// Package candidates expands a seed keyword into long-tail variants using a
// fixed modifier catalogue grouped by search intent
package candidates

import (
	"strings"

	"keywordscout/internal/core/keynorm"
	perr "keywordscout/internal/platform/errors"
)

// Category names a modifier intent group
type Category string

// Intent categories in catalogue order. Expansion walks them in this order so
// output is deterministic for a given seed
const (
	CategoryHowTo      Category = "how_to"
	CategoryReview     Category = "review"
	CategoryComparison Category = "comparison"
	CategoryProblem    Category = "problem"
	CategoryTiming     Category = "timing"
	CategoryPrice      Category = "price"
	CategoryQuality    Category = "quality"
	CategoryLocation   Category = "location"
	CategoryDIY        Category = "diy"
	CategoryBeginner   Category = "beginner"
)

// catalogueOrder fixes iteration order; Go maps would shuffle it
var catalogueOrder = []Category{
	CategoryHowTo, CategoryReview, CategoryComparison, CategoryProblem,
	CategoryTiming, CategoryPrice, CategoryQuality, CategoryLocation,
	CategoryDIY, CategoryBeginner,
}

// Catalogue maps each category to its modifier words
var Catalogue = map[Category][]string{
	CategoryHowTo:      {"how to", "method", "guide", "tutorial", "steps", "usage"},
	CategoryReview:     {"review", "experience", "opinion", "honest review", "after a month", "worth it"},
	CategoryComparison: {"vs", "comparison", "alternative", "versus", "difference", "which"},
	CategoryProblem:    {"not working", "problem", "fix", "error", "troubleshooting", "issues"},
	CategoryTiming:     {"2026", "this year", "season", "latest", "trend", "new"},
	CategoryPrice:      {"price", "cheap", "budget", "cost", "deal", "discount"},
	CategoryQuality:    {"best", "top", "recommendation", "ranking", "popular", "premium"},
	CategoryLocation:   {"near me", "online", "store", "korea", "seoul", "local"},
	CategoryDIY:        {"diy", "homemade", "self", "at home", "without tools", "easy"},
	CategoryBeginner:   {"beginner", "for beginners", "basics", "starter", "simple", "first time"},
}

// DefaultMaxVariants caps expansion output when Options leaves it unset
const DefaultMaxVariants = 30

// Options configures a Generator
type Options struct {
	// MaxVariants caps the number of returned candidates per seed
	MaxVariants int
}

// Generator expands seeds against the catalogue. Safe for concurrent use
type Generator struct {
	maxVariants int
	norm        *keynorm.Normalizer
}

// New constructs a Generator with default options
func New() *Generator { return NewWithOptions(Options{}) }

// NewWithOptions constructs a Generator from explicit options
func NewWithOptions(opt Options) *Generator {
	mv := opt.MaxVariants
	if mv <= 0 {
		mv = DefaultMaxVariants
	}
	return &Generator{maxVariants: mv, norm: keynorm.New()}
}

// Expand returns the seed plus "modifier seed" and "seed modifier" variants,
// deduplicated on normalized form, capped at MaxVariants. The bare seed is
// always first. A blank seed is a validation error
func (g *Generator) Expand(seed string) ([]string, error) {
	seed = strings.TrimSpace(seed)
	if seed == "" {
		return nil, perr.Validationf("seed keyword must not be empty")
	}

	out := make([]string, 0, g.maxVariants)
	seen := make(map[string]struct{}, g.maxVariants)

	add := func(kw string) bool {
		if len(out) >= g.maxVariants {
			return false
		}
		key := g.norm.Key(kw)
		if key == "" {
			return true
		}
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		out = append(out, kw)
		return true
	}

	add(seed)
	for _, cat := range catalogueOrder {
		for _, mod := range Catalogue[cat] {
			if !add(mod+" "+seed) || !add(seed+" "+mod) {
				return out, nil
			}
		}
	}
	return out, nil
}

// ExpandAll unions expansions across several seeds, skipping blanks silently.
// perSeed <= 0 falls back to the generator cap
func (g *Generator) ExpandAll(seeds []string, perSeed int) []string {
	if perSeed <= 0 || perSeed > g.maxVariants {
		perSeed = g.maxVariants
	}
	out := make([]string, 0, len(seeds)*perSeed)
	seen := make(map[string]struct{})
	for _, s := range seeds {
		vars, err := g.Expand(s)
		if err != nil {
			continue // blank seed, skip
		}
		if len(vars) > perSeed {
			vars = vars[:perSeed]
		}
		for _, v := range vars {
			key := g.norm.Key(v)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// FilterQuality drops candidates shorter than minLen runes after trimming.
// minLen <= 0 defaults to 3
func FilterQuality(keywords []string, minLen int) []string {
	if minLen <= 0 {
		minLen = 3
	}
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" || len([]rune(kw)) < minLen {
			continue
		}
		out = append(out, kw)
	}
	return out
}
