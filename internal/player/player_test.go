package player

import (
	"os/exec"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name       string
		playerName string
		url        string
		want       []string
	}{
		{
			name:       "cvlc gets dummy interface and play-and-exit",
			playerName: "cvlc",
			url:        "http://example.com/stream",
			want:       []string{"http://example.com/stream", "--intf", "dummy", "--play-and-exit"},
		},
		{
			name:       "mpv gets no-video and really-quiet",
			playerName: "mpv",
			url:        "X",
			want:       []string{"X", "--no-video", "--really-quiet"},
		},
		{
			name:       "afplay gets the bare url",
			playerName: "afplay",
			url:        "http://example.com/stream",
			want:       []string{"http://example.com/stream"},
		},
		{
			name:       "aplay expects PCM on stdin, no url argument",
			playerName: "aplay",
			url:        "http://example.com/stream",
			want:       []string{"-f", "cd"},
		},
		{
			name:       "unknown player falls back to the bare url",
			playerName: "mplayer",
			url:        "http://example.com/stream",
			want:       []string{"http://example.com/stream"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildArgs(tt.playerName, tt.url)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildArgs(%q, %q) = %v, want %v", tt.playerName, tt.url, got, tt.want)
			}
		})
	}
}

// testRegistrar records registration events and optionally reacts to them.
type testRegistrar struct {
	mu         sync.Mutex
	registered *exec.Cmd
	cleared    bool
	onRegister func(cmd *exec.Cmd)
}

func (r *testRegistrar) Register(cmd *exec.Cmd) {
	r.mu.Lock()
	r.registered = cmd
	r.mu.Unlock()
	if r.onRegister != nil {
		r.onRegister(cmd)
	}
}

func (r *testRegistrar) Clear() {
	r.mu.Lock()
	r.cleared = true
	r.mu.Unlock()
}

func TestPlayCompletedOnCleanExit(t *testing.T) {
	runner := NewExecRunner(zerolog.Nop())
	reg := &testRegistrar{}

	// `true <url>` exits 0 regardless of arguments
	outcome := runner.Play(reg, "true", "http://example.com/stream")

	if outcome.State != StateCompleted {
		t.Fatalf("outcome = %v (%v), want StateCompleted", outcome.State, outcome.Err)
	}
	if outcome.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", outcome.ExitCode)
	}
	if reg.registered == nil {
		t.Error("process was never registered")
	}
	if !reg.cleared {
		t.Error("process ownership was not cleared after playback")
	}
}

func TestPlayCompletedWithNonZeroExit(t *testing.T) {
	runner := NewExecRunner(zerolog.Nop())
	reg := &testRegistrar{}

	outcome := runner.Play(reg, "false", "http://example.com/stream")

	if outcome.State != StateCompleted {
		t.Fatalf("outcome = %v (%v), want StateCompleted", outcome.State, outcome.Err)
	}
	if outcome.ExitCode == 0 {
		t.Error("exit code = 0, want non-zero")
	}
}

func TestPlayFailedWhenExecutableMissing(t *testing.T) {
	runner := NewExecRunner(zerolog.Nop())
	reg := &testRegistrar{}

	outcome := runner.Play(reg, "definitely-not-a-player-3720", "http://example.com/stream")

	if outcome.State != StateFailed {
		t.Fatalf("outcome = %v, want StateFailed", outcome.State)
	}
	if outcome.Err == nil {
		t.Fatal("failed outcome carries no error")
	}
	if reg.registered != nil {
		t.Error("a process that never started was registered")
	}
}

func TestPlayKilledWhenProcessIsTerminated(t *testing.T) {
	runner := NewExecRunner(zerolog.Nop())
	reg := &testRegistrar{
		onRegister: func(cmd *exec.Cmd) {
			go func() {
				time.Sleep(50 * time.Millisecond)
				_ = cmd.Process.Kill()
			}()
		},
	}

	// `sleep 30` stands in for a long-running player; the registrar's kill
	// plays the stop signal's role
	outcome := runner.Play(reg, "sleep", "30")

	if outcome.State != StateKilled {
		t.Fatalf("outcome = %v (err=%v, code=%d), want StateKilled", outcome.State, outcome.Err, outcome.ExitCode)
	}
	if !reg.cleared {
		t.Error("process ownership was not cleared after kill")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCompleted, "completed"},
		{StateFailed, "failed"},
		{StateKilled, "killed"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
