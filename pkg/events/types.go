package events

import "time"

// EventType identifies the kind of event emitted by the runtime.
type EventType string

const (
	EventTaskDefined    EventType = "task.defined"
	EventTaskInvoke     EventType = "task.invoke"
	EventTaskExecute    EventType = "task.execute"
	EventTaskEnd        EventType = "task.end"
	EventTaskError      EventType = "task.error"
	EventParamsResolved EventType = "params.resolved"
	EventParamPrompted  EventType = "params.prompted"
	EventParamsMissing  EventType = "params.missing"
)

// Event represents a single runtime event.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Task      string         `json:"task,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// NewEvent creates a new Event with the current timestamp. A "task" entry
// in data is lifted into Event.Task.
func NewEvent(typ EventType, data map[string]any) Event {
	e := Event{Type: typ, Timestamp: time.Now(), Data: data}
	if name, ok := data["task"].(string); ok {
		e.Task = name
	}
	return e
}
