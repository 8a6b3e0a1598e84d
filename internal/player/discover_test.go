package player

import (
	"context"
	"testing"
)

// probeSet makes a Prober that accepts only the listed binaries.
func probeSet(available ...string) Prober {
	set := make(map[string]bool, len(available))
	for _, name := range available {
		set[name] = true
	}
	return func(_ context.Context, name string) bool {
		return set[name]
	}
}

func TestDiscoverPlatformOrder(t *testing.T) {
	tests := []struct {
		name      string
		goos      string
		available []string
		want      string
	}{
		{
			name:      "darwin prefers afplay",
			goos:      "darwin",
			available: []string{"afplay", "mpv"},
			want:      "afplay",
		},
		{
			name:      "darwin falls through to cvlc",
			goos:      "darwin",
			available: []string{"cvlc", "mpv"},
			want:      "cvlc",
		},
		{
			name:      "linux prefers mpv",
			goos:      "linux",
			available: []string{"mpv", "cvlc", "aplay"},
			want:      "mpv",
		},
		{
			name:      "linux falls through to mplayer",
			goos:      "linux",
			available: []string{"mplayer"},
			want:      "mplayer",
		},
		{
			name:      "unrecognized platform uses the default list",
			goos:      "plan9",
			available: []string{"cvlc"},
			want:      "cvlc",
		},
		{
			name:      "no player available",
			goos:      "linux",
			available: nil,
			want:      "",
		},
		{
			name:      "darwin-only player is not probed on linux",
			goos:      "linux",
			available: []string{"afplay"},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := discover(context.Background(), tt.goos, probeSet(tt.available...))
			if got != tt.want {
				t.Errorf("discover(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestDiscoverFailFastOnFirstSuccess(t *testing.T) {
	var probed []string
	probe := func(_ context.Context, name string) bool {
		probed = append(probed, name)
		return name == "mpv"
	}

	got := discover(context.Background(), "linux", probe)
	if got != "mpv" {
		t.Fatalf("discover = %q, want mpv", got)
	}
	// mpv heads the linux list; nothing else should have been probed
	if len(probed) != 1 {
		t.Errorf("probed %v, want probing to stop after the first success", probed)
	}
}
