package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/rlowe/croon/internal/search"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero is a placeholder", 0, "-"},
		{"seconds only", 45 * time.Second, "0:45"},
		{"minutes and seconds", 3*time.Minute + 7*time.Second, "3:07"},
		{"over an hour", time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{"exactly one hour", time.Hour, "1:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short text unchanged", "hello", 10, "hello"},
		{"exact width unchanged", "hello", 5, "hello"},
		{"long text gets ellipsis", "a very long track title", 10, "a very ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncateWideRunes(t *testing.T) {
	// CJK characters are two display columns wide; truncation must count
	// columns, not runes
	got := truncate("こんにちは世界こんにちは世界", 10)
	if strings.HasSuffix(got, "界") {
		t.Errorf("truncate left full-width text over budget: %q", got)
	}
}

func TestRenderResultsListsEveryRow(t *testing.T) {
	results := []search.Result{
		{ID: "a", Title: "First Song", ChannelTitle: "Chan A", Duration: 3 * time.Minute},
		{ID: "b", Title: "Second Song", ChannelTitle: "Chan B"},
	}

	out := renderResults(results)
	for _, want := range []string{"First Song", "Second Song", "Chan A", "Chan B", "3:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered results missing %q:\n%s", want, out)
		}
	}
}
