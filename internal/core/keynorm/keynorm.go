// Package keynorm provides a deterministic keyword normalizer used for
// candidate dedup and cache key derivation
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKD decomposition so precomposed accents split off
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 NFC recomposition of whatever survived
// 7 Collapse whitespace to single spaces and trim
package keynorm

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline: decompose
		// first so mark removal also strips accents that arrive precomposed
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
			norm.NFC,                           // recompose the remainder
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// std backs the package-level Key for callers that do not hold a Normalizer
var std = New()

// Key normalizes s with the package default Normalizer
func Key(s string) string { return std.Key(s) }

// Key returns the normalized form of a keyword following the pipeline above.
// Two spellings that fold to the same Key are the same keyword for dedup and
// cache lookup purposes
func (n *Normalizer) Key(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-6 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 7 collapse whitespace and trim
	return collapseSpaces(ns)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims.
// Keywords are single line so newlines fold to plain spaces too
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
