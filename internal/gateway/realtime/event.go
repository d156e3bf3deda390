// Package realtime carries session stage events from the generation flow to
// websocket watchers, optionally across instances through redis.
package realtime

import "time"

type EventKind string

const (
	// EventStage is emitted when a result reaches a new stage.
	EventStage EventKind = "stage"
	// EventProgress is emitted before and after every generation call.
	EventProgress EventKind = "progress"
)

type Event struct {
	SessionID string    `json:"sessionId"`
	Kind      EventKind `json:"kind"`
	Stage     string    `json:"stage,omitempty"`
	Label     string    `json:"label,omitempty"`
	Done      bool      `json:"done,omitempty"`
	Failed    bool      `json:"failed,omitempty"`
	At        time.Time `json:"at"`
}
