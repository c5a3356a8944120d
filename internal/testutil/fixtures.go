package testutil

import (
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// TaskOption customizes a fixture task.
type TaskOption func(*domain.Task)

func WithColumn(c domain.Column) TaskOption {
	return func(t *domain.Task) {
		t.Column = c
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithDueDate(d string) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = d
	}
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) {
		t.Tags = domain.NormalizeTags(tags)
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithCreatedAt(ts time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = ts
	}
}

// NewTestTask returns a valid Todo/Medium task with a fresh id.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:        domain.NewTaskID(),
		Column:    domain.ColumnTodo,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Tags:      []string{},
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestLogEntry returns a log entry stamped at ts.
func NewTestLogEntry(typ domain.LogType, title string, ts time.Time) domain.LogEntry {
	return domain.LogEntry{Type: typ, Title: title, Detail: "detail " + title, TS: ts}
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// SteppingClock returns a clock that advances by step on every call,
// starting at start.
func SteppingClock(start time.Time, step time.Duration) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(step)
		return now
	}
}
