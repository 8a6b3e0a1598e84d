package player

import (
	"context"
	"os/exec"
	"runtime"
)

// Prober reports whether the named player binary responds to a trivial
// version check. Injectable for tests.
type Prober func(ctx context.Context, name string) bool

// candidatesFor returns the ordered player candidate list for a platform.
// macOS ships afplay, so it leads there; everywhere else (including
// unrecognized platforms) mpv is preferred.
func candidatesFor(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"afplay", "cvlc", "mpv"}
	default:
		return []string{"mpv", "cvlc", "aplay", "mplayer"}
	}
}

// Discover probes the platform's candidate players in order and returns
// the name of the first one whose version check exits 0. Returns the empty
// string when no player is available; it never returns an error.
func Discover(ctx context.Context) string {
	return discover(ctx, runtime.GOOS, probeVersion)
}

func discover(ctx context.Context, goos string, probe Prober) string {
	for _, name := range candidatesFor(goos) {
		if probe(ctx, name) {
			return name
		}
	}
	return ""
}

// probeVersion spawns `name --version` with all I/O suppressed. A missing
// executable or non-zero exit simply disqualifies the candidate.
func probeVersion(ctx context.Context, name string) bool {
	cmd := exec.CommandContext(ctx, name, "--version")
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
