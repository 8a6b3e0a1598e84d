package playback

import (
	"os/exec"
	"sync"
)

// Session holds the ephemeral state of one playback run: the stop flag and
// ownership of the single live player process. It replaces ambient global
// state so sequential sessions and tests stay independent.
//
// Session is safe for use from a signal-handling goroutine: Stop may be
// called at any time relative to Register/Clear.
type Session struct {
	mu      sync.Mutex
	cmd     *exec.Cmd
	stopped bool
}

// NewSession creates an empty playback session.
func NewSession() *Session {
	return &Session{}
}

// Register hands the session exclusive ownership of a live player process.
// If a stop was already requested, the process is killed immediately.
func (s *Session) Register(cmd *exec.Cmd) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cmd = cmd
	if s.stopped {
		s.killLocked()
	}
}

// Clear releases ownership of the current process. A stop request arriving
// after Clear is a no-op on that process.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cmd = nil
}

// Stop requests termination of the playback run. It sets the stop flag so
// the sequencer halts at the next loop boundary, and kills the in-flight
// player process if one is registered. Setting the flag alone is not
// enough: the sequencer may be blocked waiting on the current process, and
// the kill is what unblocks it.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.killLocked()
}

// Stopped reports whether a stop has been requested.
func (s *Session) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopped
}

// killLocked terminates the registered process, if any.
// Must be called with the lock held.
func (s *Session) killLocked() {
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}
