package timer

import (
	"testing"
	"time"
)

func TestAdvance_RunsDueInOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(0, 300*time.Millisecond, func() { got = append(got, "c") })
	s.After(0, 100*time.Millisecond, func() { got = append(got, "a") })
	s.After(50*time.Millisecond, 50*time.Millisecond, func() { got = append(got, "b") })

	if n := s.Advance(99 * time.Millisecond); n != 0 {
		t.Fatalf("expected nothing due at 99ms, ran %d", n)
	}
	if n := s.Advance(150 * time.Millisecond); n != 2 {
		t.Fatalf("expected 2 callbacks at 150ms, ran %d", n)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
	if s.Pending() != 1 {
		t.Fatalf("expected 1 pending, got %d", s.Pending())
	}
	s.Advance(time.Second)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("expected c last, got %v", got)
	}
}

func TestAdvance_RescheduleWaitsForNextCall(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.After(0, 0, func() {
		runs++
		s.After(0, 0, func() { runs++ })
	})
	s.Advance(0)
	if runs != 1 {
		t.Fatalf("nested callback ran in the same advance: runs=%d", runs)
	}
	s.Advance(0)
	if runs != 2 {
		t.Fatalf("expected nested callback on second advance, runs=%d", runs)
	}
}

func TestClear(t *testing.T) {
	s := NewScheduler()
	fired := false
	s.After(0, 10*time.Millisecond, func() { fired = true })
	s.Clear()
	s.Advance(time.Second)
	if fired {
		t.Fatal("cleared callback should not run")
	}
}
