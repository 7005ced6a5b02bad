package memory_test

import (
	"errors"
	"testing"

	"github.com/telemock/callsim/internal/adapter/driven/audio/memory"
)

func TestPlayerLifecycle(t *testing.T) {
	p := memory.NewPlayer()

	if p.IsPlaying() {
		t.Fatalf("new player should not be playing")
	}
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := p.Start(); err != nil {
		t.Fatalf("second start should be a no-op: %v", err)
	}
	if !p.IsPlaying() {
		t.Fatalf("player should be playing")
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.IsPlaying() {
		t.Fatalf("player should be stopped")
	}
}

func TestPlayerReleasePoisons(t *testing.T) {
	p := memory.NewPlayer()
	if err := p.Start(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := p.Release(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.IsPlaying() {
		t.Fatalf("release should stop playback")
	}

	if err := p.Start(); !errors.Is(err, memory.ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
	if err := p.Stop(); !errors.Is(err, memory.ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
	if err := p.Release(); !errors.Is(err, memory.ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
}

func TestFactoryAllocatesDistinctInstances(t *testing.T) {
	a := memory.Factory()
	b := memory.Factory()
	if a.InstanceID() == b.InstanceID() {
		t.Fatalf("factory must allocate distinct instances")
	}
}
