// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskhub/internal/service"
)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	nextID int64
	tasks  []service.Task
	user   service.User

	// Error injection for testing
	LoginErr     error
	RegisterErr  error
	ProfileErr   error
	TasksErr     error
	TaskErr      error
	CreateErr    error
	UpdateErr    error
	CompleteErr  error
	DeleteErr    error
	RemindersErr error

	// Optional hooks; when set they take over the corresponding call.
	TasksFn    func(ctx context.Context, f service.Filter) ([]service.Task, error)
	CompleteFn func(ctx context.Context, id int64) error
	CreateFn   func(ctx context.Context, d service.Draft) error

	// Call counters
	TasksCalls     int
	CompleteCalls  int
	RemindersCalls int

	// LastFilter records the filter of the most recent Tasks call.
	LastFilter service.Filter

	// DueSoon is what Reminders returns.
	DueSoon []service.Task
}

// NewFakeService creates a FakeService with a signed-in user.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		user:   service.User{ID: 1, Name: "Test User", Email: "test@example.com"},
	}
}

// AddTask adds a task and returns its id.
func (f *FakeService) AddTask(title string, priority service.Priority) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:       id,
		Title:    title,
		Priority: priority,
	})
	return id
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, email, password string) (service.Session, error) {
	if f.LoginErr != nil {
		return service.Session{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	u := f.user
	u.Email = email
	return service.Session{Token: "fake-access", RefreshToken: "fake-refresh", User: u}, nil
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, name, email, password string) (service.Session, error) {
	if f.RegisterErr != nil {
		return service.Session{}, f.RegisterErr
	}
	return service.Session{
		Token:        "fake-access",
		RefreshToken: "fake-refresh",
		User:         service.User{ID: 2, Name: name, Email: email},
	}, nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error { return nil }

// Profile implements service.Service.
func (f *FakeService) Profile(ctx context.Context) (service.User, error) {
	if f.ProfileErr != nil {
		return service.User{}, f.ProfileErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.user, nil
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	f.mu.Lock()
	f.TasksCalls++
	f.LastFilter = filter
	f.mu.Unlock()

	if f.TasksFn != nil {
		return f.TasksFn(ctx, filter)
	}
	if f.TasksErr != nil {
		return nil, f.TasksErr
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	var matched []service.Task
	for _, t := range f.tasks {
		if filter.Status == service.StatusTodo && t.Completed {
			continue
		}
		if filter.Status == service.StatusDone && !t.Completed {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		matched = append(matched, t)
	}
	return matched, nil
}

// Task implements service.Service.
func (f *FakeService) Task(ctx context.Context, id int64) (service.Task, error) {
	if f.TaskErr != nil {
		return service.Task{}, f.TaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// Create implements service.Service.
func (f *FakeService) Create(ctx context.Context, d service.Draft) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, d)
	}
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Deadline:    d.Deadline,
	})
	return nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id int64, p service.Patch) error {
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if p.Title != nil {
			f.tasks[i].Title = *p.Title
		}
		if p.Status != nil {
			f.tasks[i].Completed = *p.Status == service.StatusDone
		}
		if p.Priority != nil {
			f.tasks[i].Priority = *p.Priority
		}
		if p.Deadline != nil {
			f.tasks[i].Deadline = *p.Deadline
		}
		return nil
	}
	return ErrNotFound
}

// Complete implements service.Service.
func (f *FakeService) Complete(ctx context.Context, id int64) error {
	f.mu.Lock()
	f.CompleteCalls++
	f.mu.Unlock()

	if f.CompleteFn != nil {
		return f.CompleteFn(ctx, id)
	}
	if f.CompleteErr != nil {
		return f.CompleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = true
			return nil
		}
	}
	return ErrNotFound
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id int64) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Reminders implements service.Service.
func (f *FakeService) Reminders(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.RemindersCalls++
	f.mu.Unlock()

	if f.RemindersErr != nil {
		return nil, f.RemindersErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.DueSoon))
	copy(out, f.DueSoon)
	return out, nil
}
