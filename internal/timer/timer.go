package timer

import (
	"sort"
	"time"
)

// entry is one deferred callback.
type entry struct {
	due time.Duration
	seq uint64 // insertion order, breaks ties between equal due times
	fn  func()
}

// Scheduler runs deferred callbacks against the game clock.
// It is not safe for concurrent use; the game loop owns it.
type Scheduler struct {
	pending []entry
	nextSeq uint64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once the clock reaches now+delay.
func (s *Scheduler) After(now, delay time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.pending = append(s.pending, entry{due: now + delay, seq: s.nextSeq, fn: fn})
	s.nextSeq++
}

// Advance runs every callback due at or before now, earliest first.
// Callbacks scheduled while advancing wait for the next call.
func (s *Scheduler) Advance(now time.Duration) int {
	if len(s.pending) == 0 {
		return 0
	}
	var due []entry
	kept := s.pending[:0]
	for _, e := range s.pending {
		if e.due <= now {
			due = append(due, e)
		} else {
			kept = append(kept, e)
		}
	}
	s.pending = kept
	if len(due) == 0 {
		return 0
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, e := range due {
		e.fn()
	}
	return len(due)
}

// Clear drops every pending callback.
func (s *Scheduler) Clear() {
	s.pending = s.pending[:0]
}

// Pending returns the number of callbacks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}
