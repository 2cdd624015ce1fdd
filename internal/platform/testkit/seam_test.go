package testkit

import (
	"sync"
	"testing"
	"time"
)

// package-level seams of the kind Swap is meant to patch
var (
	scoreFn    = func(volume, competition int) int { return volume - competition }
	defaultTTL = 24
)

func TestSwap_FunctionAndRestore(t *testing.T) {
	// run swap in a subtest so Cleanup runs before we validate restoration
	t.Run("swap-in-subtest", func(t *testing.T) {
		orig := scoreFn(10, 3)
		if orig != 7 {
			t.Fatalf("precondition failed, scoreFn(10,3)=%d want 7", orig)
		}
		Swap(t, &scoreFn, func(volume, competition int) int { return 100 })
		if got := scoreFn(10, 3); got != 100 {
			t.Fatalf("swap did not take effect, got %d want 100", got)
		}
	})

	// after subtest completes, Cleanup restored the original
	if got := scoreFn(10, 3); got != 7 {
		t.Fatalf("swap did not restore original, got %d want 7", got)
	}
}

func TestSwap_NonFunctionType(t *testing.T) {
	t.Parallel()

	// swap a plain value and ensure it restores
	t.Run("ttl", func(t *testing.T) {
		if defaultTTL != 24 {
			t.Fatalf("precondition failed, got %d", defaultTTL)
		}
		Swap(t, &defaultTTL, 1)
		if defaultTTL != 1 {
			t.Fatalf("swap failed, got %d want 1", defaultTTL)
		}
	})
	if defaultTTL != 24 {
		t.Fatalf("swap did not restore original, got %d want 24", defaultTTL)
	}
}

func TestSerial_GuardsConcurrentSubtests(t *testing.T) {
	t.Parallel()

	var seqMu sync.Mutex
	seq := make([]string, 0, 4)

	record := func(s string) {
		seqMu.Lock()
		seq = append(seq, s)
		seqMu.Unlock()
	}

	t.Run("sweep", func(t *testing.T) {
		t.Parallel()
		Serial(t)
		record("sweep-start")
		time.Sleep(50 * time.Millisecond)
		record("sweep-end")
	})

	t.Run("stats", func(t *testing.T) {
		t.Parallel()
		Serial(t)
		record("stats-start")
		time.Sleep(50 * time.Millisecond)
		record("stats-end")
	})

	t.Cleanup(func() {
		// the two serialized subtests must not interleave: one finishes
		// entirely before the other starts, in either order
		seqMu.Lock()
		defer seqMu.Unlock()
		if len(seq) != 4 {
			t.Fatalf("unexpected sequence length %d, seq=%v", len(seq), seq)
		}
		pos := map[string]int{}
		for i, s := range seq {
			pos[s] = i
		}
		sweepFirst := pos["sweep-start"] < pos["sweep-end"] && pos["sweep-end"] < pos["stats-start"]
		statsFirst := pos["stats-start"] < pos["stats-end"] && pos["stats-end"] < pos["sweep-start"]
		if !(sweepFirst || statsFirst) {
			t.Fatalf("expected grouped execution, got seq=%v", seq)
		}
	})
}
