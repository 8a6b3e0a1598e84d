// Package player discovers local media-player executables and drives a
// single playback process per track. All invocations use exec.Command with
// explicit argument slices; nothing is passed through a shell.
package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// State classifies how a playback attempt ended.
type State int

const (
	// StateCompleted means the player process ran and exited on its own.
	StateCompleted State = iota
	// StateFailed means the process could not be started or ended with a
	// non-exit error.
	StateFailed
	// StateKilled means the process was terminated by a stop request.
	StateKilled
)

// String returns a human-readable representation of the State.
func (s State) String() string {
	switch s {
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	case StateKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Outcome is the result of playing one track. Playback failures are
// ordinary values, not errors: a track that did not play must not abort
// the surrounding sequence.
type Outcome struct {
	State    State
	ExitCode int   // valid when State is StateCompleted
	Err      error // set when State is StateFailed
}

// Registrar receives ownership of the live player process for the duration
// of one track, so an asynchronous stop request can target it.
type Registrar interface {
	// Register hands over the started process.
	Register(cmd *exec.Cmd)
	// Clear releases ownership once the process has ended.
	Clear()
}

// Runner plays a single URL with a named player and reports the outcome.
type Runner interface {
	Play(reg Registrar, playerName, url string) Outcome
}

// ExecRunner runs player binaries as child processes.
type ExecRunner struct {
	logger zerolog.Logger
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(logger zerolog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.With().Str("component", "player").Logger()}
}

// BuildArgs returns the exact argument vector for a player binary.
//
// aplay expects raw PCM on stdin rather than a URL argument, so it gets no
// URL at all; see Play for its I/O wiring. Unknown players get the URL as
// their only argument.
func BuildArgs(playerName, url string) []string {
	switch playerName {
	case "cvlc":
		return []string{url, "--intf", "dummy", "--play-and-exit"}
	case "mpv":
		return []string{url, "--no-video", "--really-quiet"}
	case "afplay":
		return []string{url}
	case "aplay":
		return []string{"-f", "cd"}
	default:
		return []string{url}
	}
}

// Play spawns playerName against url and blocks until the process ends.
//
// The started process is registered with reg so a stop request can kill it
// mid-track, and cleared before Play returns. Play never returns a Go
// error: spawn failures come back as Outcome{State: StateFailed} and a
// kill shows up as StateKilled.
func (r *ExecRunner) Play(reg Registrar, playerName, url string) Outcome {
	args := BuildArgs(playerName, url)
	cmd := exec.Command(playerName, args...)

	if playerName == "aplay" {
		// aplay reads PCM from stdin. Leave stdin open as a pipe and
		// stream stderr to the user; stdout stays discarded. Known
		// limitation: this shape cannot consume a remote URL.
		if _, err := cmd.StdinPipe(); err != nil {
			return Outcome{State: StateFailed, Err: fmt.Errorf("failed to open stdin pipe: %w", err)}
		}
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Start(); err != nil {
		return Outcome{State: StateFailed, Err: classifyStartError(playerName, err)}
	}

	r.logger.Debug().
		Str("player", playerName).
		Int("pid", cmd.Process.Pid).
		Msg("Player process started")

	reg.Register(cmd)
	defer reg.Clear()

	err := cmd.Wait()
	if err == nil {
		return Outcome{State: StateCompleted, ExitCode: 0}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process died from a signal, which in
		// this design only happens via a stop request.
		if code := exitErr.ExitCode(); code >= 0 {
			return Outcome{State: StateCompleted, ExitCode: code}
		}
		return Outcome{State: StateKilled}
	}

	return Outcome{State: StateFailed, Err: fmt.Errorf("player %s: %w", playerName, err)}
}

// classifyStartError converts spawn errors into user-facing messages.
func classifyStartError(playerName string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("player executable %q not found: %w", playerName, err)
	}
	return fmt.Errorf("failed to start player %s: %w", playerName, err)
}
