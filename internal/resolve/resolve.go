// Package resolve turns opaque track ids into direct playable audio stream
// URLs, classifying failures so the CLI can surface them verbatim.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"
)

// Kind classifies why a resolution attempt failed.
type Kind int

const (
	// KindExtraction is a generic stream-extraction failure.
	KindExtraction Kind = iota
	// KindSignInRequired means the video demands a signed-in or
	// age-verified viewer.
	KindSignInRequired
	// KindUnavailable means the video does not exist or was removed.
	KindUnavailable
	// KindPrivate means the video exists but is private.
	KindPrivate
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindSignInRequired:
		return "sign-in required"
	case KindUnavailable:
		return "video unavailable"
	case KindPrivate:
		return "video is private"
	default:
		return "stream extraction failed"
	}
}

// Error is a classified resolution failure.
type Error struct {
	Kind    Kind
	TrackID string
	Err     error
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("resolve %s: %s: %v", e.TrackID, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver resolves track ids to stream URLs.
type Resolver struct {
	client youtube.Client
	logger zerolog.Logger
}

// New creates a Resolver.
func New(logger zerolog.Logger) *Resolver {
	return &Resolver{
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve fetches the video metadata for trackID and returns the stream
// URL of its best audio format. Failures come back as a classified *Error.
// No retries: a failed resolution is the caller's to skip.
func (r *Resolver) Resolve(ctx context.Context, trackID string) (string, error) {
	video, err := r.client.GetVideoContext(ctx, trackID)
	if err != nil {
		return "", &Error{Kind: Classify(err), TrackID: trackID, Err: err}
	}

	format := bestAudioFormat(video)
	if format == nil {
		return "", &Error{
			Kind:    KindExtraction,
			TrackID: trackID,
			Err:     errors.New("no audio format available"),
		}
	}

	url, err := r.client.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return "", &Error{Kind: Classify(err), TrackID: trackID, Err: err}
	}

	r.logger.Debug().
		Str("track_id", trackID).
		Str("mime_type", format.MimeType).
		Int("bitrate", format.Bitrate).
		Msg("Resolved stream URL")

	return url, nil
}

// bestAudioFormat picks the highest-bitrate audio-only format, falling
// back to any format with audio channels.
func bestAudioFormat(video *youtube.Video) *youtube.Format {
	candidates := video.Formats.Type("audio")
	if len(candidates) == 0 {
		candidates = video.Formats.WithAudioChannels()
	}
	if len(candidates) == 0 {
		return nil
	}

	best := &candidates[0]
	for i := range candidates {
		if candidates[i].Bitrate > best.Bitrate {
			best = &candidates[i]
		}
	}
	return best
}

// Classify maps an extraction error onto a Kind.
func Classify(err error) Kind {
	status, reason, ok := playabilityStatus(err)
	if ok {
		switch status {
		case "LOGIN_REQUIRED":
			if containsFold(reason, "private") {
				return KindPrivate
			}
			return KindSignInRequired
		case "ERROR", "UNPLAYABLE":
			return KindUnavailable
		}
	}

	msg := err.Error()
	switch {
	case containsFold(msg, "login required"), containsFold(msg, "sign in"), containsFold(msg, "age"):
		return KindSignInRequired
	case containsFold(msg, "private"):
		return KindPrivate
	case containsFold(msg, "unavailable"), containsFold(msg, "not found"):
		return KindUnavailable
	default:
		return KindExtraction
	}
}

// playabilityStatus extracts the status/reason pair from the extraction
// library's playability error, which surfaces both as a value and behind
// a pointer depending on the code path.
func playabilityStatus(err error) (status, reason string, ok bool) {
	var ptr *youtube.ErrPlayabiltyStatus
	if errors.As(err, &ptr) {
		return ptr.Status, ptr.Reason, true
	}
	var val youtube.ErrPlayabiltyStatus
	if errors.As(err, &val) {
		return val.Status, val.Reason, true
	}
	return "", "", false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
