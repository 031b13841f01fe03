package session

import (
	"time"

	"github.com/Garsondee/Tank-Ricochet/internal/physics"
)

// EventKind names something the controller did.
type EventKind int

const (
	EventFired     EventKind = iota // projectile spawned
	EventArmed                      // projectile became able to deal damage
	EventBounced                    // projectile hit a wall and survived
	EventBurnedOut                  // projectile removed on reaching the bounce cap
	EventExpired                    // projectile removed by the lifetime sweep
	EventHit                        // armed projectile struck the tank
	EventGameOver                   // HP reached zero
	EventRestart                    // scene re-initialized
)

func (k EventKind) String() string {
	switch k {
	case EventFired:
		return "fired"
	case EventArmed:
		return "armed"
	case EventBounced:
		return "bounced"
	case EventBurnedOut:
		return "burned_out"
	case EventExpired:
		return "expired"
	case EventHit:
		return "hit"
	case EventGameOver:
		return "game_over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is emitted to the session's event handler as gameplay happens.
type Event struct {
	Kind       EventKind
	At         time.Duration
	Projectile physics.BodyID // zero for tank/session events
	Bounces    int            // projectile bounce count after the event
	HP         int            // tank HP after the event
}
