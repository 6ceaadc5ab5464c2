// Package tasklist owns the in-memory task collection and mediates all
// list operations against the backend.
package tasklist

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"taskhub/internal/service"
)

// ErrPending is returned when a completion toggle is already in flight for
// the same task.
var ErrPending = errors.New("operation already in progress for this task")

// ErrBusy is returned when a create is already in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Pending marks which single task currently has a completion toggle in
// flight. Zero value means none.
type Pending struct {
	TaskID     int64
	InProgress bool
}

// Synchronizer holds the current task snapshot. The snapshot is replaced
// wholesale on each successful fetch; failed fetches leave it unchanged.
type Synchronizer struct {
	svc service.Service
	log log.FieldLogger

	mu         sync.Mutex
	tasks      []service.Task
	fetchSeq   uint64 // last issued fetch
	appliedSeq uint64 // last fetch whose response was applied
	fetching   bool
	submitting bool
	pending    Pending
	reminded   bool
}

// New creates a Synchronizer over the given backend.
func New(svc service.Service, logger log.FieldLogger) *Synchronizer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Synchronizer{svc: svc, log: logger}
}

// Tasks returns a copy of the current snapshot.
func (s *Synchronizer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Fetching reports whether a fetch is outstanding.
func (s *Synchronizer) Fetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching
}

// Pending returns the completion-toggle marker.
func (s *Synchronizer) Pending() Pending {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Refresh fetches the list with the given filter and replaces the snapshot.
// Responses are stamped with a sequence number; a slow response overtaken by
// a newer applied one is discarded instead of overwriting fresher data.
func (s *Synchronizer) Refresh(ctx context.Context, f service.Filter) error {
	s.mu.Lock()
	s.fetchSeq++
	seq := s.fetchSeq
	s.fetching = true
	s.mu.Unlock()

	tasks, err := s.svc.Tasks(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetching = false
	if err != nil {
		return err
	}
	if seq < s.appliedSeq {
		s.log.WithField("seq", seq).Debug("discarding stale fetch response")
		return nil
	}
	s.appliedSeq = seq
	s.tasks = tasks
	return nil
}

// Create submits a complete draft. There is no optimistic insert; the caller
// refreshes on success. A second create while one is outstanding is rejected.
func (s *Synchronizer) Create(ctx context.Context, d service.Draft) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrBusy
	}
	s.submitting = true
	s.mu.Unlock()

	err := s.svc.Create(ctx, d)

	s.mu.Lock()
	s.submitting = false
	s.mu.Unlock()
	return err
}

// ToggleComplete marks a task completed. The pending marker is set before
// the request goes out so a duplicate toggle on the same task is rejected,
// and cleared on both success and failure. The row's local state is never
// changed; the caller refreshes to observe the result.
func (s *Synchronizer) ToggleComplete(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.pending.InProgress && s.pending.TaskID == id {
		s.mu.Unlock()
		return ErrPending
	}
	s.pending = Pending{TaskID: id, InProgress: true}
	s.mu.Unlock()

	err := s.svc.Complete(ctx, id)

	s.mu.Lock()
	s.pending = Pending{}
	s.mu.Unlock()
	return err
}

// Delete removes a task after the confirm gate approves. The request is
// never issued without confirmation; a declined gate returns false, nil.
func (s *Synchronizer) Delete(ctx context.Context, id int64, confirm func() bool) (bool, error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := s.svc.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// CheckReminders runs the best-effort due-soon query. It fires at most once
// per Synchronizer; failures are logged and never surfaced to the caller.
func (s *Synchronizer) CheckReminders(ctx context.Context) []service.Task {
	s.mu.Lock()
	if s.reminded {
		s.mu.Unlock()
		return nil
	}
	s.reminded = true
	s.mu.Unlock()

	tasks, err := s.svc.Reminders(ctx)
	if err != nil {
		s.log.WithError(err).Warn("failed to fetch reminders")
		return nil
	}
	return tasks
}
