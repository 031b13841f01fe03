package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// Stats accumulates session counters from controller events.
type Stats struct {
	Shots     int
	Bounces   int
	BurnedOut int
	Expired   int
	Hits      int
	Deaths    int
	Restarts  int

	// MostBounces is the highest bounce count any projectile reached before
	// it was retired or hit the tank.
	MostBounces int

	lifeStart   time.Duration
	LongestLife time.Duration
}

// NewStats returns zeroed stats with the first life starting at t=0.
func NewStats() *Stats {
	return &Stats{}
}

// Record folds one event into the counters.
func (s *Stats) Record(e session.Event) {
	switch e.Kind {
	case session.EventFired:
		s.Shots++
	case session.EventBounced:
		s.Bounces++
		s.MostBounces = max(s.MostBounces, e.Bounces)
	case session.EventBurnedOut:
		// The final bounce retires the projectile instead of reflecting it.
		s.Bounces++
		s.BurnedOut++
		s.MostBounces = max(s.MostBounces, e.Bounces)
	case session.EventExpired:
		s.Expired++
	case session.EventHit:
		s.Hits++
		s.MostBounces = max(s.MostBounces, e.Bounces)
	case session.EventGameOver:
		s.Deaths++
		s.LongestLife = max(s.LongestLife, e.At-s.lifeStart)
	case session.EventRestart:
		s.Restarts++
		s.lifeStart = e.At
	}
}

// CurrentLife returns how long the tank has survived as of now.
func (s *Stats) CurrentLife(now time.Duration) time.Duration {
	return now - s.lifeStart
}

// Report renders the counters as a plain-text block.
func (s *Stats) Report(now time.Duration) string {
	var sb strings.Builder
	sb.WriteString("Tank Ricochet session report\n")
	fmt.Fprintf(&sb, "played:       %s\n", now.Round(time.Millisecond))
	fmt.Fprintf(&sb, "shots:        %d\n", s.Shots)
	fmt.Fprintf(&sb, "bounces:      %d (most on one shot: %d)\n", s.Bounces, s.MostBounces)
	fmt.Fprintf(&sb, "burned out:   %d\n", s.BurnedOut)
	fmt.Fprintf(&sb, "expired:      %d\n", s.Expired)
	fmt.Fprintf(&sb, "hits taken:   %d\n", s.Hits)
	fmt.Fprintf(&sb, "deaths:       %d\n", s.Deaths)
	fmt.Fprintf(&sb, "restarts:     %d\n", s.Restarts)
	fmt.Fprintf(&sb, "longest life: %s\n", s.LongestLife.Round(time.Millisecond))
	return sb.String()
}
