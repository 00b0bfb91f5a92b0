package events

import (
	"sync"
	"time"
)

// Recorder keeps the runtime events of one run in publish order. It
// satisfies the EventPublisher interfaces of the task and params packages.
type Recorder struct {
	mu         sync.RWMutex
	history    []Event
	maxHistory int
}

// NewRecorder creates a recorder keeping at most maxHistory events; zero
// keeps everything.
func NewRecorder(maxHistory int) *Recorder {
	return &Recorder{
		history:    make([]Event, 0, 64),
		maxHistory: maxHistory,
	}
}

// PublishEvent records an event built from a type name and payload.
func (r *Recorder) PublishEvent(eventType string, data map[string]any) {
	r.Publish(NewEvent(EventType(eventType), data))
}

// Publish records event, dropping the oldest one when the limit is reached.
func (r *Recorder) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, event)
	if r.maxHistory > 0 && len(r.history) > r.maxHistory {
		r.history = append(r.history[:0], r.history[len(r.history)-r.maxHistory:]...)
	}
}

// History returns the events recorded at or after since.
func (r *Recorder) History(since time.Time) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Event
	for _, e := range r.history {
		if !e.Timestamp.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// TaskHistory returns the events of one task recorded at or after since.
func (r *Recorder) TaskHistory(task string, since time.Time) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Event
	for _, e := range r.history {
		if e.Task == task && !e.Timestamp.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// Tasks returns the names of tasks with events at or after since, in the
// order each first appeared.
func (r *Recorder) Tasks(since time.Time) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range r.History(since) {
		if e.Task != "" && !seen[e.Task] {
			seen[e.Task] = true
			names = append(names, e.Task)
		}
	}
	return names
}
