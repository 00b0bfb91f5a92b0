package events

import (
	"slices"
	"testing"
	"time"
)

func TestRecorderHistory(t *testing.T) {
	rec := NewRecorder(0)

	t1 := time.Now()
	rec.Publish(NewEvent(EventTaskExecute, map[string]any{"task": "first"}))
	time.Sleep(10 * time.Millisecond)
	t2 := time.Now()
	rec.Publish(NewEvent(EventTaskEnd, map[string]any{"task": "second"}))

	if all := rec.History(t1); len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}

	since := rec.History(t2)
	if len(since) != 1 {
		t.Fatalf("expected 1 event since t2, got %d", len(since))
	}
	if since[0].Task != "second" {
		t.Errorf("expected 'second', got %q", since[0].Task)
	}
}

func TestRecorderHistoryLimit(t *testing.T) {
	rec := NewRecorder(2)
	for _, name := range []string{"a", "b", "c"} {
		rec.PublishEvent("task.end", map[string]any{"task": name})
	}

	all := rec.History(time.Time{})
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].Task != "b" || all[1].Task != "c" {
		t.Errorf("expected oldest event dropped, got %s, %s", all[0].Task, all[1].Task)
	}
}

func TestRecorderTaskHistory(t *testing.T) {
	rec := NewRecorder(0)
	rec.PublishEvent("task.invoke", map[string]any{"task": "a"})
	rec.PublishEvent("task.invoke", map[string]any{"task": "b"})
	rec.PublishEvent("params.resolved", map[string]any{"task": "a"})

	got := rec.TaskHistory("a", time.Time{})
	if len(got) != 2 || got[1].Type != EventParamsResolved {
		t.Errorf("unexpected history %v", got)
	}
	if later := rec.TaskHistory("a", time.Now().Add(time.Hour)); len(later) != 0 {
		t.Errorf("expected no events in the future, got %v", later)
	}
}

func TestRecorderTasks(t *testing.T) {
	rec := NewRecorder(0)
	rec.PublishEvent("task.invoke", map[string]any{"task": "deploy"})
	rec.PublishEvent("task.invoke", map[string]any{"task": "build"})
	rec.PublishEvent("task.error", map[string]any{"error": "no task"})
	rec.PublishEvent("task.end", map[string]any{"task": "deploy"})

	if got := rec.Tasks(time.Time{}); !slices.Equal(got, []string{"deploy", "build"}) {
		t.Errorf("unexpected tasks %v", got)
	}
}

func TestNewEventWithoutTask(t *testing.T) {
	event := NewEvent(EventTaskError, map[string]any{"error": "boom"})
	if event.Task != "" {
		t.Errorf("expected no task, got %q", event.Task)
	}
	if event.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}
