package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/cgast/leaves/pkg/events"
)

// printTrace writes the events recorded since start, grouped by task in the
// order the tasks were first seen.
func printTrace(w io.Writer, heading *color.Color, rec *events.Recorder, start time.Time) {
	tasks := rec.Tasks(start)
	if len(tasks) == 0 {
		return
	}
	heading.Fprintln(w, "=== Trace ===")
	for _, name := range tasks {
		heading.Fprintln(w, name)
		for _, e := range rec.TaskHistory(name, start) {
			fmt.Fprintf(w, "  %s  %-16s %s\n", e.Timestamp.Format("15:04:05.000"), e.Type, traceDetail(e.Data))
		}
	}
}

// traceDetail renders event data as sorted key=value pairs, without the
// task name already shown in the heading.
func traceDetail(data map[string]any) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(data)) {
		if k == "task" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", k, data[k]))
	}
	return strings.Join(parts, " ")
}
