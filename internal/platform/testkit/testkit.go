// Package testkit holds small assertion helpers shared across platform tests
package testkit

import (
	"strings"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic fails the test when fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails the test unless haystack contains needle. The haystack
// rides along in the failure message, truncated so giant log captures stay
// readable
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	const keep = 2048
	shown := haystack
	if len(shown) > keep {
		shown = shown[:keep] + "\n... (truncated)"
	}
	t.Fatalf("expected output to contain %q\noutput:\n%s", needle, shown)
}
