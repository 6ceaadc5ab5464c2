package resthub

import (
	"fmt"
	"time"

	"taskhub/internal/service"
)

// Wire schemas are declared up front and validated on decode; handlers never
// reach into untyped maps.

// boolish accepts JSON true/false as well as 0/1, which is how the backend
// encodes is_completed.
type boolish bool

func (b *boolish) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*b = true
	case "false", "0", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean: %s", data)
	}
	return nil
}

// wireTask is a task record as the backend serializes it.
type wireTask struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	IsCompleted    boolish `json:"is_completed"`
	Priority       string  `json:"priority"`
	DeadlineDate   string  `json:"deadline_date"`
	NeedsAttention bool    `json:"needs_attention"`
}

// toTask validates the wire record and converts it to the domain type.
func (w wireTask) toTask() (service.Task, error) {
	if w.ID == 0 {
		return service.Task{}, fmt.Errorf("task record missing id")
	}
	t := service.Task{
		ID:             w.ID,
		Title:          w.Title,
		Description:    w.Description,
		Completed:      bool(w.IsCompleted),
		Priority:       service.Priority(w.Priority),
		NeedsAttention: w.NeedsAttention,
	}
	if w.DeadlineDate != "" {
		d, err := parseDate(w.DeadlineDate)
		if err != nil {
			return service.Task{}, fmt.Errorf("task %d: %w", w.ID, err)
		}
		t.Deadline = d
	}
	return t, nil
}

// parseDate accepts the formats the backend has been seen to emit.
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{service.DateFormat, time.RFC3339, "2006-01-02 15:04:05"} {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// listEnvelope is the response shape of GET /tasks and GET /tasks/reminder.
type listEnvelope struct {
	Success bool       `json:"success"`
	Data    []wireTask `json:"data"`
}

// detailEnvelope is the response shape of GET /tasks/{id}.
type detailEnvelope struct {
	Success bool     `json:"success"`
	Data    wireTask `json:"data"`
}

// okEnvelope is the response shape of mutating calls.
type okEnvelope struct {
	Success bool `json:"success"`
}

// authEnvelope is the response shape of POST /login and POST /register.
// refresh_token is optional; some deployments issue only an access token.
type authEnvelope struct {
	Data struct {
		Token        string       `json:"token"`
		RefreshToken string       `json:"refresh_token"`
		User         service.User `json:"user"`
	} `json:"data"`
}

// profileEnvelope is the response shape of GET /auth/profile.
type profileEnvelope struct {
	Data service.User `json:"data"`
}
