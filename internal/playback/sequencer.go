// Package playback drives ordered playback of track queues against an
// external media-player process, isolating per-track failures and honoring
// asynchronous stop requests.
package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/rlowe/croon/internal/player"
	"github.com/rlowe/croon/internal/store"
)

// ErrNoPlayer is returned when no audio player is discoverable at all.
// Unlike per-track failures, this aborts the whole sequence.
var ErrNoPlayer = errors.New("no audio player found on this system")

// Resolver turns a track id into a direct playable stream URL.
type Resolver interface {
	Resolve(ctx context.Context, trackID string) (string, error)
}

// Recorder logs started playback attempts. Recording failures never affect
// playback.
type Recorder interface {
	Record(ctx context.Context, trackID, title, result string) error
}

// Config holds sequencer dependencies.
type Config struct {
	Resolver Resolver
	Runner   player.Runner
	// Discover finds a usable player binary; called once per PlayAll.
	Discover func(ctx context.Context) string
	// History is optional; nil disables play-history recording.
	History Recorder
	// Out receives user-facing progress messages. Defaults to stdout.
	Out    io.Writer
	Logger zerolog.Logger
}

// Sequencer plays an ordered queue of tracks one at a time.
type Sequencer struct {
	resolver Resolver
	runner   player.Runner
	discover func(ctx context.Context) string
	history  Recorder
	out      io.Writer
	logger   zerolog.Logger
}

// NewSequencer creates a Sequencer from the given configuration.
func NewSequencer(cfg Config) *Sequencer {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	discover := cfg.Discover
	if discover == nil {
		discover = player.Discover
	}

	return &Sequencer{
		resolver: cfg.Resolver,
		runner:   cfg.Runner,
		discover: discover,
		history:  cfg.History,
		out:      out,
		logger:   cfg.Logger.With().Str("component", "sequencer").Logger(),
	}
}

// PlayAll drives tracks[startIndex:] strictly in order through the player.
//
// Per-track problems (resolution failure, missing URL, spawn failure) are
// reported and skipped; the sequence moves on. The player binary is
// discovered once per call, and its total absence is the one fatal
// condition. A stop request on sess kills the in-flight process and halts
// the loop before the next track starts.
func (q *Sequencer) PlayAll(ctx context.Context, sess *Session, tracks []store.Track, startIndex int) error {
	if startIndex < 0 {
		startIndex = 0
	}

	playerName := q.discover(ctx)
	if playerName == "" {
		return ErrNoPlayer
	}

	q.logger.Debug().
		Str("player", playerName).
		Int("tracks", len(tracks)-startIndex).
		Msg("Starting playback sequence")

	for i := startIndex; i < len(tracks); i++ {
		if sess.Stopped() {
			q.logger.Info().Int("position", i).Msg("Stop requested, ending sequence")
			return nil
		}

		track := tracks[i]
		url, err := q.resolveURL(ctx, track)
		if err != nil {
			q.reportf("Skipping %s: %v", trackLabel(track), err)
			continue
		}
		if url == "" {
			q.reportf("Skipping %s: no playable URL", trackLabel(track))
			continue
		}

		q.reportf("Playing %s", trackLabel(track))
		outcome := q.runner.Play(sess, playerName, url)
		q.record(ctx, track, outcome)

		switch outcome.State {
		case player.StateFailed:
			// One bad track never kills the sequence
			q.reportf("Playback failed for %s: %v", trackLabel(track), outcome.Err)
		case player.StateKilled:
			q.reportf("Playback stopped")
		case player.StateCompleted:
			if outcome.ExitCode != 0 {
				q.reportf("Player exited with status %d for %s", outcome.ExitCode, trackLabel(track))
			}
		}
	}

	return nil
}

// resolveURL determines a playable URL for the track: a stored URL wins,
// otherwise the track id is resolved on demand.
func (q *Sequencer) resolveURL(ctx context.Context, track store.Track) (string, error) {
	if !track.Playable() {
		return "", nil
	}
	if track.URL != "" {
		return track.URL, nil
	}

	url, err := q.resolver.Resolve(ctx, track.ID)
	if err != nil {
		q.logger.Debug().Err(err).Str("track_id", track.ID).Msg("Stream resolution failed")
		return "", err
	}
	return url, nil
}

// record writes a play-history entry. Best effort.
func (q *Sequencer) record(ctx context.Context, track store.Track, outcome player.Outcome) {
	if q.history == nil {
		return
	}
	if err := q.history.Record(ctx, track.ID, track.Title, outcome.State.String()); err != nil {
		q.logger.Debug().Err(err).Msg("Failed to record play history")
	}
}

func (q *Sequencer) reportf(format string, args ...interface{}) {
	fmt.Fprintf(q.out, format+"\n", args...)
}

func trackLabel(t store.Track) string {
	if t.Title != "" {
		return t.Title
	}
	if t.ID != "" {
		return t.ID
	}
	return "(untitled)"
}
