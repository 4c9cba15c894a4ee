package game

import (
	"fmt"
	"slices"
)

// Event categories and keys recorded by the engine.
const (
	CatRun    = "run"
	CatCombat = "combat"
	CatSpawn  = "spawn"

	KeyStart      = "start"
	KeyReset      = "reset"
	KeyGameOver   = "game_over"
	KeyShot       = "shot"
	KeyKill       = "kill"
	KeyPlayerHit  = "player_hit"
	KeyEnemySpawn = "enemy"
)

// SimLogEntry is one recorded gameplay event.
type SimLogEntry struct {
	Tick     int
	Subject  string  // "player", "enemy", or "--" for run-level events
	Category string  // run, combat, spawn
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value (score, distance...)
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] player  combat  kill   enemy at (412,220) score=300
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-7s %-7s %-11s %s",
		e.Tick, e.Subject, e.Category, e.Key, e.Value)
}

// EventSink receives engine events as they happen.
type EventSink interface {
	Record(SimLogEntry)
}

// SimLog collects every event of a session. It is unbounded, so it is meant
// for tests and headless runs; the on-screen feed uses EventFeed instead.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-shot entries are kept
// too.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Record implements EventSink.
func (sl *SimLog) Record(e SimLogEntry) {
	if e.Key == KeyShot && !sl.verbose {
		return
	}
	sl.entries = append(sl.entries, e)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// EventFilter selects SimLog entries.
type EventFilter func(SimLogEntry) bool

// OfKind matches a category and key. An empty string matches anything.
func OfKind(category, key string) EventFilter {
	return func(e SimLogEntry) bool {
		return (category == "" || e.Category == category) && (key == "" || e.Key == key)
	}
}

// InTicks matches entries recorded in [from, to].
func InTicks(from, to int) EventFilter {
	return func(e SimLogEntry) bool { return e.Tick >= from && e.Tick <= to }
}

// Select returns the entries that pass every filter, oldest first.
func (sl *SimLog) Select(filters ...EventFilter) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if matchesAll(e, filters) {
			out = append(out, e)
		}
	}
	return out
}

func matchesAll(e SimLogEntry, filters []EventFilter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

// Count returns how many entries have the given category and key.
func (sl *SimLog) Count(category, key string) int {
	return len(sl.Select(OfKind(category, key)))
}

// FirstTick returns the tick of the first entry matching category+key, or -1.
func (sl *SimLog) FirstTick(category, key string) int {
	i := slices.IndexFunc(sl.entries, OfKind(category, key))
	if i < 0 {
		return -1
	}
	return sl.entries[i].Tick
}

// Before returns up to window ticks of entries leading to and including tick.
func (sl *SimLog) Before(tick, window int) []SimLogEntry {
	return sl.Select(InTicks(tick-window, tick))
}
