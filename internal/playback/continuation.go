package playback

import (
	"context"

	"github.com/rlowe/croon/internal/store"
)

// PlaylistLister provides the persisted playlists in their natural order.
type PlaylistLister interface {
	List() ([]store.Playlist, error)
}

// ContinueFrom resumes playlist playback after an ad-hoc single track has
// finished. It scans the persisted playlists in store order for the first
// one containing trackID; if the match is not the playlist's last track,
// the remainder of that playlist is played.
//
// Continuation is best effort: any failure (unreadable store, playback
// error) is swallowed, and nothing runs at all when a stop was requested.
// When a track appears in several playlists only the first is continued.
func (q *Sequencer) ContinueFrom(ctx context.Context, sess *Session, lister PlaylistLister, trackID string) {
	if trackID == "" || sess.Stopped() {
		return
	}

	playlists, err := lister.List()
	if err != nil {
		q.logger.Debug().Err(err).Msg("Continuation lookup failed")
		return
	}

	for _, p := range playlists {
		for i, t := range p.Tracks {
			if t.ID != trackID {
				continue
			}
			if i+1 >= len(p.Tracks) {
				// Matched the last track; nothing to continue
				return
			}

			q.reportf("Continuing playlist %q", p.Name)
			q.logger.Info().
				Str("playlist", p.Name).
				Int("from", i+1).
				Msg("Continuing playlist after ad-hoc track")

			if err := q.PlayAll(ctx, sess, p.Tracks, i+1); err != nil {
				q.logger.Debug().Err(err).Msg("Continuation playback failed")
			}
			return
		}
	}
}
