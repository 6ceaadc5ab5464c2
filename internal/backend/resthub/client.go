// Package resthub implements service.Service against the TaskHub REST API.
package resthub

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"taskhub/internal/httpclient"
	"taskhub/internal/service"
)

// Client talks to the TaskHub backend through the authenticated HTTP client.
type Client struct {
	api *httpclient.Client
}

// New creates a backend client.
func New(api *httpclient.Client) *Client {
	return &Client{api: api}
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (service.Session, error) {
	var env authEnvelope
	req := &httpclient.Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body:   map[string]string{"email": email, "password": password},
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return service.Session{}, err
	}
	return sessionFrom(env)
}

// Register implements service.Service.
func (c *Client) Register(ctx context.Context, name, email, password string) (service.Session, error) {
	var env authEnvelope
	req := &httpclient.Request{
		Method: http.MethodPost,
		Path:   "/register",
		Body:   map[string]string{"name": name, "email": email, "password": password},
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return service.Session{}, err
	}
	return sessionFrom(env)
}

func sessionFrom(env authEnvelope) (service.Session, error) {
	if env.Data.Token == "" {
		return service.Session{}, fmt.Errorf("auth response missing token")
	}
	return service.Session{
		Token:        env.Data.Token,
		RefreshToken: env.Data.RefreshToken,
		User:         env.Data.User,
	}, nil
}

// Logout implements service.Service.
func (c *Client) Logout(ctx context.Context) error {
	req := &httpclient.Request{Method: http.MethodPost, Path: "/auth/logout"}
	return c.api.Do(ctx, req, nil)
}

// Profile implements service.Service.
func (c *Client) Profile(ctx context.Context) (service.User, error) {
	var env profileEnvelope
	req := &httpclient.Request{Method: http.MethodGet, Path: "/auth/profile"}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return service.User{}, err
	}
	return env.Data, nil
}

// Tasks implements service.Service. Absent filter fields are omitted from
// the query; deadline bounds are serialized as YYYY-MM-DD regardless of
// locale, and a sort request becomes the sort=deadline/order pair.
func (c *Client) Tasks(ctx context.Context, f service.Filter) ([]service.Task, error) {
	var env listEnvelope
	req := &httpclient.Request{
		Method: http.MethodGet,
		Path:   "/tasks",
		Query:  filterQuery(f),
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return tasksFrom(env.Data)
}

// Task implements service.Service.
func (c *Client) Task(ctx context.Context, id int64) (service.Task, error) {
	var env detailEnvelope
	req := &httpclient.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/tasks/%d", id),
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return service.Task{}, err
	}
	return env.Data.toTask()
}

// Create implements service.Service.
func (c *Client) Create(ctx context.Context, d service.Draft) error {
	status := d.Status
	if status == "" {
		status = service.StatusTodo
	}
	body := map[string]string{
		"title":       d.Title,
		"status":      string(status),
		"description": d.Description,
		"priority":    string(d.Priority),
	}
	if !d.Deadline.IsZero() {
		body["deadline_date"] = d.Deadline.Format(service.DateFormat)
	}
	var env okEnvelope
	req := &httpclient.Request{Method: http.MethodPost, Path: "/tasks", Body: body}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return err
	}
	return checkOK(env)
}

// Update implements service.Service. Only non-nil patch fields are sent.
func (c *Client) Update(ctx context.Context, id int64, p service.Patch) error {
	body := map[string]string{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Status != nil {
		body["status"] = string(*p.Status)
	}
	if p.Priority != nil {
		body["priority"] = string(*p.Priority)
	}
	if p.Deadline != nil {
		body["deadline_date"] = p.Deadline.Format(service.DateFormat)
	}
	var env okEnvelope
	req := &httpclient.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/tasks/%d", id),
		Body:   body,
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return err
	}
	return checkOK(env)
}

// Complete implements service.Service.
func (c *Client) Complete(ctx context.Context, id int64) error {
	var env okEnvelope
	req := &httpclient.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/tasks/%d/complete", id),
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return err
	}
	return checkOK(env)
}

// Delete implements service.Service.
func (c *Client) Delete(ctx context.Context, id int64) error {
	var env okEnvelope
	req := &httpclient.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/tasks/%d", id),
	}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return err
	}
	return checkOK(env)
}

// Reminders implements service.Service.
func (c *Client) Reminders(ctx context.Context) ([]service.Task, error) {
	var env listEnvelope
	req := &httpclient.Request{Method: http.MethodGet, Path: "/tasks/reminder"}
	if err := c.api.Do(ctx, req, &env); err != nil {
		return nil, err
	}
	return tasksFrom(env.Data)
}

func tasksFrom(records []wireTask) ([]service.Task, error) {
	tasks := make([]service.Task, 0, len(records))
	for _, w := range records {
		t, err := w.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func checkOK(env okEnvelope) error {
	if !env.Success {
		return fmt.Errorf("backend reported failure")
	}
	return nil
}

// filterQuery serializes the filter, omitting absent fields rather than
// sending them empty.
func filterQuery(f service.Filter) url.Values {
	if f.IsZero() {
		return nil
	}
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if !f.DeadlineFrom.IsZero() {
		q.Set("deadline_from", f.DeadlineFrom.Format(service.DateFormat))
	}
	if !f.DeadlineTo.IsZero() {
		q.Set("deadline_to", f.DeadlineTo.Format(service.DateFormat))
	}
	if f.SortOrder != "" {
		q.Set("sort", "deadline")
		q.Set("order", string(f.SortOrder))
	}
	return q
}
