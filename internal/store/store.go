package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Track is a single playable entry in a playlist.
//
// A track carries a video id, a pre-resolved stream URL, or both. Tracks
// with neither are unplayable; playback skips them rather than failing.
type Track struct {
	ID      string    `json:"id,omitempty"`
	Title   string    `json:"title"`
	URL     string    `json:"url,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Playable reports whether the track has enough information to be played.
func (t Track) Playable() bool {
	return t.ID != "" || t.URL != ""
}

// Playlist is a named, ordered collection of tracks. Track order is
// playback order.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tracks    []Track   `json:"tracks"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists all playlists as a single JSON document on disk.
//
// Every mutation reads the full collection, modifies it in memory, and
// rewrites the whole file. Concurrent CLI invocations can therefore lose
// updates; single-process sequential access is the assumed pattern.
type Store struct {
	filePath string
}

var (
	// ErrNotFound is returned when no playlist matches the given id or name.
	ErrNotFound = errors.New("playlist not found")

	// ErrIndexOutOfRange is returned when a track index does not exist in
	// the target playlist.
	ErrIndexOutOfRange = errors.New("track index out of range")
)

// collection is the on-disk representation of all playlists.
type collection struct {
	Playlists []Playlist `json:"playlists"`
}

// New creates a Store backed by the given file path. The file and its
// directory are created lazily on first write.
func New(filePath string) *Store {
	return &Store{filePath: filePath}
}

// List returns all playlists in their stored order. A missing store file
// yields an empty list, not an error.
func (s *Store) List() ([]Playlist, error) {
	c, err := s.load()
	if err != nil {
		return nil, err
	}
	return c.Playlists, nil
}

// Get returns the first playlist whose id or name matches idOrName.
// Names are not required to be unique; first match wins.
func (s *Store) Get(idOrName string) (*Playlist, error) {
	c, err := s.load()
	if err != nil {
		return nil, err
	}

	p := findPlaylist(c, idOrName)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, idOrName)
	}

	// Return a copy so callers cannot mutate store state
	cp := *p
	cp.Tracks = append([]Track(nil), p.Tracks...)
	return &cp, nil
}

// Create adds a new empty playlist with a generated id and returns it.
func (s *Store) Create(name string) (*Playlist, error) {
	c, err := s.load()
	if err != nil {
		return nil, err
	}

	p := Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		Tracks:    []Track{},
		CreatedAt: time.Now(),
	}

	c.Playlists = append(c.Playlists, p)
	if err := s.save(c); err != nil {
		return nil, err
	}

	return &p, nil
}

// AddTrack appends a track to the playlist matching idOrName, stamping
// AddedAt at append time.
func (s *Store) AddTrack(idOrName string, track Track) error {
	c, err := s.load()
	if err != nil {
		return err
	}

	p := findPlaylist(c, idOrName)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, idOrName)
	}

	track.AddedAt = time.Now()
	p.Tracks = append(p.Tracks, track)

	return s.save(c)
}

// RemoveTrack removes the track at the given zero-based index from the
// playlist matching idOrName and returns it.
func (s *Store) RemoveTrack(idOrName string, index int) (*Track, error) {
	c, err := s.load()
	if err != nil {
		return nil, err
	}

	p := findPlaylist(c, idOrName)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, idOrName)
	}

	if index < 0 || index >= len(p.Tracks) {
		return nil, fmt.Errorf("%w: %d (playlist %q has %d tracks)", ErrIndexOutOfRange, index, p.Name, len(p.Tracks))
	}

	removed := p.Tracks[index]
	p.Tracks = append(p.Tracks[:index], p.Tracks[index+1:]...)

	if err := s.save(c); err != nil {
		return nil, err
	}

	return &removed, nil
}

// Delete removes the playlist matching idOrName. Deleting a playlist that
// does not exist is a no-op.
func (s *Store) Delete(idOrName string) error {
	c, err := s.load()
	if err != nil {
		return err
	}

	for i := range c.Playlists {
		if matches(&c.Playlists[i], idOrName) {
			c.Playlists = append(c.Playlists[:i], c.Playlists[i+1:]...)
			return s.save(c)
		}
	}

	return nil
}

// findPlaylist returns a pointer into the collection for the first playlist
// matching idOrName, or nil.
func findPlaylist(c *collection, idOrName string) *Playlist {
	for i := range c.Playlists {
		if matches(&c.Playlists[i], idOrName) {
			return &c.Playlists[i]
		}
	}
	return nil
}

func matches(p *Playlist, idOrName string) bool {
	return p.ID == idOrName || p.Name == idOrName
}

// load reads the full collection from disk. A missing file is treated as
// an empty collection.
func (s *Store) load() (*collection, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &collection{}, nil
		}
		return nil, fmt.Errorf("failed to read playlist store: %w", err)
	}

	var c collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse playlist store: %w", err)
	}

	return &c, nil
}

// save writes the full collection to disk.
// Writes atomically via temp file + rename.
func (s *Store) save(c *collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.filePath)
}
