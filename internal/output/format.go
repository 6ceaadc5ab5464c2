// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskhub/internal/service"
)

// FormatTask formats one task row.
// Format: "{ID:>4}  {STATUS:<4}  {PRIORITY:<6}  {DEADLINE:<10}  {TITLE}[ (!)]\n"
func FormatTask(w io.Writer, task service.Task) {
	status := "todo"
	if task.Completed {
		status = "done"
	}
	attention := ""
	if task.NeedsAttention {
		attention = " (!)"
	}
	fmt.Fprintf(w, "%4d  %-4s  %-6s  %-10s  %s%s\n",
		task.ID, status, string(task.Priority), formatDeadline(task), normalizeTitle(task.Title), attention)
}

// FormatDetail formats the full record for the show command.
func FormatDetail(w io.Writer, task service.Task) {
	status := "todo"
	if task.Completed {
		status = "done"
	}
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", status)
	fmt.Fprintf(w, "priority:    %s\n", task.Priority)
	fmt.Fprintf(w, "deadline:    %s\n", formatDeadline(task))
	if task.NeedsAttention {
		fmt.Fprintln(w, "attention:   needs attention")
	}
	if task.Description != "" {
		fmt.Fprintf(w, "description: %s\n", normalizeTitle(task.Description))
	}
}

// FormatReminderBanner prints the non-blocking due-soon warning.
func FormatReminderBanner(w io.Writer, tasks []service.Task) {
	if len(tasks) == 0 {
		return
	}
	fmt.Fprintf(w, "Reminder: you have %d task(s) due within 1 day\n", len(tasks))
	for _, t := range tasks {
		attention := ""
		if t.NeedsAttention {
			attention = " (!)"
		}
		fmt.Fprintf(w, "  - %s (deadline %s)%s\n", normalizeTitle(t.Title), formatDeadline(t), attention)
	}
}

func formatDeadline(task service.Task) string {
	if task.Deadline.IsZero() {
		return "-"
	}
	return task.Deadline.Format(service.DateFormat)
}

// normalizeTitle normalizes text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
