package game

const feedMaxEntries = 6

// EventFeed is a ring buffer of the latest notable events, drawn in the
// corner of the arena.
type EventFeed struct {
	entries []SimLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed holding at most capacity entries.
func NewEventFeed(capacity int) *EventFeed {
	if capacity <= 0 {
		capacity = feedMaxEntries
	}
	return &EventFeed{entries: make([]SimLogEntry, capacity)}
}

// Record implements EventSink. Shots and spawns are too frequent to show.
func (f *EventFeed) Record(e SimLogEntry) {
	switch e.Key {
	case KeyShot, KeyEnemySpawn:
		return
	}
	f.entries[f.head] = e
	f.head = (f.head + 1) % len(f.entries)
	if f.count < len(f.entries) {
		f.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []SimLogEntry {
	n := len(f.entries)
	result := make([]SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		result[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return result
}

// Len returns the number of buffered entries.
func (f *EventFeed) Len() int {
	return f.count
}
