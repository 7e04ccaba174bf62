package tui

import (
	"testing"
	"time"
)

func TestShake_RunsForDuration(t *testing.T) {
	s := NewShake(500 * time.Millisecond)

	if cmd := s.Start(); cmd == nil {
		t.Fatal("expected Start to schedule a tick")
	}
	if !s.IsActive() || s.Offset() != 1 {
		t.Fatalf("expected active shake with offset 1, got active=%v offset=%d", s.IsActive(), s.Offset())
	}

	frames := 0
	for s.IsActive() {
		s.Update(ShakeMsg{Seq: 1})
		frames++
		if frames > 20 {
			t.Fatal("shake did not stop")
		}
	}
	if frames != 10 {
		t.Errorf("expected 10 frames, got %d", frames)
	}
	if s.Offset() != 0 {
		t.Errorf("expected zero offset after stop, got %d", s.Offset())
	}
}

func TestShake_IgnoresStaleTicks(t *testing.T) {
	s := NewShake(500 * time.Millisecond)
	s.Start()
	s.Start()

	s.Update(ShakeMsg{Seq: 1})
	if s.Offset() != 1 {
		t.Errorf("stale tick advanced the frame")
	}

	s.Update(ShakeMsg{Seq: 2})
	if s.Offset() != 0 {
		t.Errorf("expected frame 1 offset 0, got %d", s.Offset())
	}
}
