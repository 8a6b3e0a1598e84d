package playback

import (
	"os/exec"
	"testing"
	"time"
)

func TestSessionStopSetsFlag(t *testing.T) {
	sess := NewSession()

	if sess.Stopped() {
		t.Fatal("new session reports stopped")
	}

	sess.Stop()

	if !sess.Stopped() {
		t.Fatal("session does not report stopped after Stop")
	}
}

func TestSessionStopKillsRegisteredProcess(t *testing.T) {
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start sleep: %v", err)
	}

	sess := NewSession()
	sess.Register(cmd)
	sess.Stop()

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
		// killed promptly
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("Stop did not kill the registered process")
	}
}

func TestSessionRegisterAfterStopKillsImmediately(t *testing.T) {
	// A stop request racing ahead of Register must still take the process
	// down
	sess := NewSession()
	sess.Stop()

	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start sleep: %v", err)
	}

	sess.Register(cmd)

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("Register on a stopped session did not kill the process")
	}
}

func TestSessionStopAfterClearIsNoOp(t *testing.T) {
	cmd := exec.Command("sleep", "0.1")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start sleep: %v", err)
	}

	sess := NewSession()
	sess.Register(cmd)

	if err := cmd.Wait(); err != nil {
		t.Fatalf("sleep exited with error: %v", err)
	}

	sess.Clear()
	// Must not panic or kill anything
	sess.Stop()
}

func TestSessionStopWithoutProcess(t *testing.T) {
	sess := NewSession()
	// No process registered; Stop must be safe
	sess.Stop()
	sess.Clear()
}
