package keynorm

import (
	"testing"
)

// Test table covers each stage and combined pipelines.
func TestKey_Table(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "winter jacket",
			out:  "winter jacket",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'p', 'a', 'd', 0x80, ' ', 'r', 'e', 'v'}),
			out:  "pad rev",
		},
		{
			name: "case fold",
			in:   "PaDdInG Review",
			out:  "padding review",
		},
		{
			name: "remove zero-widths",
			in:   "pad\u200Bdi\u200Dng", // ZERO WIDTH SPACE + ZERO WIDTH JOINER
			out:  "padding",
		},
		{
			name: "remove combining marks",
			in:   "cafe\u0301 guide", // combining acute accent
			out:  "cafe guide",
		},
		{
			name: "strip precomposed accents",
			in:   "caf\u00e9 guide", // precomposed e-acute
			out:  "cafe guide",
		},
		{
			name: "width fold fullwidth",
			in:   "ＰＡＤＤＩＮＧ tips", // fullwidth letters
			out:  "padding tips",
		},
		{
			name: "nfkc ligature",
			in:   "oﬃce chair", // ffi ligature
			out:  "office chair",
		},
		{
			name: "collapse whitespace",
			in:   "best\t\tpadding\n2026   review",
			out:  "best padding 2026 review",
		},
		{
			name: "trim edges",
			in:   "  padding review  \t\n",
			out:  "padding review",
		},
		{
			name: "idempotent",
			in:   n.Key("Ｐadding\t\tRe\u200Dview  "),
			out:  "padding review",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := n.Key(tc.in)
			if got != tc.out {
				t.Fatalf("Key(%q) = %q, want %q", tc.in, got, tc.out)
			}
			// Idempotence check: folding again should be identical
			got2 := n.Key(got)
			if got2 != got {
				t.Fatalf("Key not idempotent: %q -> %q", got, got2)
			}
		})
	}
}

func TestKey_PackageLevel(t *testing.T) {
	// the package-level helper and a constructed Normalizer must agree
	in := "Café  Ｒeview​"
	if got, want := Key(in), New().Key(in); got != want || got != "cafe review" {
		t.Fatalf("Key(%q) = %q, Normalizer gives %q, want %q", in, got, want, "cafe review")
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := " \t a \n b   c \r\n "
	want := "a b c"
	got := collapseSpaces(in)
	if got != want {
		t.Fatalf("collapseSpaces(%q) = %q, want %q", in, got, want)
	}
}
