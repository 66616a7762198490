package core

import "fmt"

// EventType represents the type of change observed in the notes root.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a persisted note, as observed by a watcher.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and with it the lifecycle event
// contract, so events can feed a supervised pipeline directly).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
