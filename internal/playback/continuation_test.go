package playback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rlowe/croon/internal/store"
)

// fakeLister serves playlists from memory.
type fakeLister struct {
	playlists []store.Playlist
	err       error
}

func (l *fakeLister) List() ([]store.Playlist, error) {
	return l.playlists, l.err
}

func continuationFixture() []store.Playlist {
	return []store.Playlist{
		{
			ID:   "pl-1",
			Name: "road-trip",
			Tracks: []store.Track{
				{ID: "t1", Title: "one"},
				{ID: "t2", Title: "two"},
				{ID: "t3", Title: "three"},
			},
		},
		{
			ID:   "pl-2",
			Name: "also-has-t2",
			Tracks: []store.Track{
				{ID: "t2", Title: "two"},
				{ID: "t9", Title: "nine"},
			},
		},
	}
}

func TestContinueFromPlaysRemainder(t *testing.T) {
	resolver := &fakeResolver{urls: map[string]string{"t3": "url3"}}
	runner := &fakeRunner{}
	seq, out := newTestSequencer(resolver, runner, "mpv")

	lister := &fakeLister{playlists: continuationFixture()}
	seq.ContinueFrom(context.Background(), NewSession(), lister, "t2")

	// Exactly [t3]: the suffix after the matched position in the first
	// matching playlist
	if len(runner.played) != 1 || runner.played[0] != "url3" {
		t.Errorf("played %v, want [url3]", runner.played)
	}
	if !strings.Contains(out.String(), `Continuing playlist "road-trip"`) {
		t.Errorf("expected continuation report, got:\n%s", out.String())
	}
}

func TestContinueFromLastTrackDoesNothing(t *testing.T) {
	resolver := &fakeResolver{urls: map[string]string{}}
	runner := &fakeRunner{}
	seq, _ := newTestSequencer(resolver, runner, "mpv")

	lister := &fakeLister{playlists: []store.Playlist{
		{
			ID:     "pl-1",
			Name:   "short",
			Tracks: []store.Track{{ID: "t1"}, {ID: "t2"}},
		},
	}}

	seq.ContinueFrom(context.Background(), NewSession(), lister, "t2")

	if len(runner.played) != 0 {
		t.Errorf("played %v tracks after the playlist's last track", len(runner.played))
	}
}

func TestContinueFromFirstMatchingPlaylistWins(t *testing.T) {
	// t2 is in both playlists; only the first (road-trip) continues
	resolver := &fakeResolver{urls: map[string]string{
		"t3": "url3",
		"t9": "url9",
	}}
	runner := &fakeRunner{}
	seq, _ := newTestSequencer(resolver, runner, "mpv")

	lister := &fakeLister{playlists: continuationFixture()}
	seq.ContinueFrom(context.Background(), NewSession(), lister, "t2")

	if len(runner.played) != 1 || runner.played[0] != "url3" {
		t.Errorf("played %v, want only road-trip's remainder [url3]", runner.played)
	}
}

func TestContinueFromUnknownTrackDoesNothing(t *testing.T) {
	resolver := &fakeResolver{urls: map[string]string{}}
	runner := &fakeRunner{}
	seq, _ := newTestSequencer(resolver, runner, "mpv")

	lister := &fakeLister{playlists: continuationFixture()}
	seq.ContinueFrom(context.Background(), NewSession(), lister, "missing")

	if len(runner.played) != 0 {
		t.Errorf("played %v tracks for a track in no playlist", len(runner.played))
	}
}

func TestContinueFromStoreErrorIsSwallowed(t *testing.T) {
	resolver := &fakeResolver{urls: map[string]string{}}
	runner := &fakeRunner{}
	seq, out := newTestSequencer(resolver, runner, "mpv")

	lister := &fakeLister{err: errors.New("store unreadable")}

	// Must not panic, must not play anything, must not surface the error
	seq.ContinueFrom(context.Background(), NewSession(), lister, "t2")

	if len(runner.played) != 0 {
		t.Errorf("played %v tracks despite unreadable store", len(runner.played))
	}
	if strings.Contains(out.String(), "unreadable") {
		t.Errorf("continuation error leaked to user output:\n%s", out.String())
	}
}

func TestContinueFromStoppedSessionDoesNothing(t *testing.T) {
	resolver := &fakeResolver{urls: map[string]string{"t3": "url3"}}
	runner := &fakeRunner{}
	seq, _ := newTestSequencer(resolver, runner, "mpv")

	sess := NewSession()
	sess.Stop()

	lister := &fakeLister{playlists: continuationFixture()}
	seq.ContinueFrom(context.Background(), sess, lister, "t2")

	if len(runner.played) != 0 {
		t.Errorf("played %v tracks after a stop request", len(runner.played))
	}
}

func TestContinueFromEmptyTrackIDDoesNothing(t *testing.T) {
	resolver := &fakeResolver{urls: map[string]string{}}
	runner := &fakeRunner{}
	seq, _ := newTestSequencer(resolver, runner, "mpv")

	lister := &fakeLister{playlists: continuationFixture()}
	seq.ContinueFrom(context.Background(), NewSession(), lister, "")

	if len(runner.played) != 0 {
		t.Errorf("played %v tracks for an empty track id", len(runner.played))
	}
}
