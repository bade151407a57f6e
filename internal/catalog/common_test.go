package catalog

import "testing"

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$25.00/hr", 25},
		{"Rp 150", 150},
		{"Free", 0},
		{"", 0},
		{"35", 35},
		{"from $12.50 per session", 12.5},
	}
	for _, tc := range cases {
		if got := parsePrice(tc.in); got != tc.want {
			t.Fatalf("parsePrice(%q) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" Go ", "go", "", "Backend"})
	if len(got) != 2 || got[0] != "go" || got[1] != "backend" {
		t.Fatalf("unexpected tags: %v", got)
	}
}

func TestNormalizeLevel(t *testing.T) {
	if normalizeLevel("Advanced") != "advanced" {
		t.Fatalf("case-insensitive level parse failed")
	}
	if normalizeLevel("grandmaster") != "beginner" {
		t.Fatalf("unknown levels must default to beginner")
	}
}

func TestStableExternalIDFromURL(t *testing.T) {
	a := stableExternalIDFromURL("https://example.com/workshops/go-101")
	b := stableExternalIDFromURL("https://example.com/workshops/go-101")
	if a == "" || a != b {
		t.Fatalf("expected a stable non-empty id, got %q / %q", a, b)
	}
	if stableExternalIDFromURL("") != "" {
		t.Fatalf("empty url must yield empty id")
	}
}

func TestExtractWorkshopExternalID(t *testing.T) {
	if got := extractWorkshopExternalID("https://www.workshophub.io/workshops/watercolor-basics-214"); got != "watercolor-basics-214" {
		t.Fatalf("unexpected id: %q", got)
	}
}
