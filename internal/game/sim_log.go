package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Tank-Ricochet/internal/session"
)

// SimLogEntry is one recorded event during a headless simulation.
type SimLogEntry struct {
	Tick     int
	Subject  string  // "P7" for a projectile, "tank", or "--" for the session
	Category string  // shot, tank, session, move
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // bounces for shots, hp for tank and session entries
}

// String renders the entry as one log line:
//
//	[0042] P3     shot.bounced       bounce 2 at 700ms
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[%04d] %-6s %-18s %s", e.Tick, e.Subject, e.Category+"."+e.Key, e.Value)
}

// LogQuery selects entries from a SimLog. Empty strings match anything, and
// To == 0 leaves the tick window open-ended.
type LogQuery struct {
	Subject  string
	Category string
	Key      string
	Contains string // substring of Value
	From     int
	To       int
}

func (q LogQuery) match(e SimLogEntry) bool {
	switch {
	case q.Subject != "" && e.Subject != q.Subject,
		q.Category != "" && e.Category != q.Category,
		q.Key != "" && e.Key != q.Key,
		q.Contains != "" && !strings.Contains(e.Value, q.Contains),
		e.Tick < q.From,
		q.To != 0 && e.Tick > q.To:
		return false
	}
	return true
}

// SimLog records what happened in a headless run. Verbose logs also carry a
// position line per body per tick.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, subject, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick: tick, Subject: subject, Category: category, Key: key, Value: value, NumVal: numVal,
	})
}

// AddVerbose is Add, dropped unless the log is verbose.
func (sl *SimLog) AddVerbose(tick int, subject, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, subject, category, key, value, numVal)
	}
}

func (sl *SimLog) Verbose() bool { return sl.verbose }

// AddEvent files a session event: projectile lifecycle under "shot", damage
// under "tank", game over and restart under "session".
func (sl *SimLog) AddEvent(tick int, e session.Event) {
	shot := fmt.Sprintf("P%d", e.Projectile)
	switch e.Kind {
	case session.EventFired, session.EventArmed, session.EventBounced,
		session.EventBurnedOut, session.EventExpired:
		sl.Add(tick, shot, "shot", e.Kind.String(),
			fmt.Sprintf("bounce %d at %s", e.Bounces, e.At), float64(e.Bounces))
	case session.EventHit:
		sl.Add(tick, "tank", "tank", e.Kind.String(),
			fmt.Sprintf("hp %d by %s after %d bounces", e.HP, shot, e.Bounces), float64(e.HP))
	default:
		sl.Add(tick, "--", "session", e.Kind.String(),
			fmt.Sprintf("hp %d at %s", e.HP, e.At), float64(e.HP))
	}
}

// Entries returns every entry in recording order.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Select returns the entries matching q in recording order.
func (sl *SimLog) Select(q LogQuery) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries have the category and key.
func (sl *SimLog) Count(category, key string) int {
	n := 0
	q := LogQuery{Category: category, Key: key}
	for _, e := range sl.entries {
		if q.match(e) {
			n++
		}
	}
	return n
}

// Last returns the newest entry with the category and key.
func (sl *SimLog) Last(category, key string) (SimLogEntry, bool) {
	q := LogQuery{Category: category, Key: key}
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if q.match(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// Has reports whether an entry with the category and key mentions substr.
func (sl *SimLog) Has(category, key, substr string) bool {
	q := LogQuery{Category: category, Key: key, Contains: substr}
	for _, e := range sl.entries {
		if q.match(e) {
			return true
		}
	}
	return false
}

// Render prints the entries matching q, one per line.
func (sl *SimLog) Render(q LogQuery) string {
	var sb strings.Builder
	for _, e := range sl.Select(q) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Format prints the whole log.
func (sl *SimLog) Format() string {
	return sl.Render(LogQuery{})
}

// Summary describes the session at tick for test output.
func (sl *SimLog) Summary(tick int, c *session.Controller) string {
	t := c.Tank()
	ps := c.Projectiles()
	armed := 0
	for _, p := range ps {
		if p.Armed {
			armed++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- T=%04d %s ---\n", tick, c.State())
	fmt.Fprintf(&sb, "tank (%.1f,%.1f) hp %d/%d\n", t.X, t.Y, t.HP, t.MaxHP)
	fmt.Fprintf(&sb, "projectiles %d live, %d armed\n", len(ps), armed)
	fmt.Fprintf(&sb, "fired %d  bounced %d  burned_out %d  expired %d  hits %d\n",
		sl.Count("shot", "fired"), sl.Count("shot", "bounced"), sl.Count("shot", "burned_out"),
		sl.Count("shot", "expired"), sl.Count("tank", "hit"))
	return sb.String()
}
