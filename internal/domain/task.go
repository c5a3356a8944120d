package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for due dates.
const DateLayout = "2006-01-02"

type Task struct {
	ID          string    `json:"id"`
	Column      Column    `json:"column"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	DueDate     string    `json:"dueDate"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	Priority    Priority
	Column      Column
	DueDate     string
	Tags        []string
}

// TaskPatch is a partial update. Nil fields keep the existing value.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *Priority
	Column      *Column
	DueDate     *string
	Tags        *[]string
}

// NewTaskID returns a fresh random task identifier.
func NewTaskID() string {
	return uuid.New().String()
}

// NewTask validates and normalizes input into a task with a new id and
// creation time.
func NewTask(in TaskInput, now time.Time) (*Task, error) {
	t := &Task{
		ID:          NewTaskID(),
		Column:      CoalesceColumn(in.Column, ColumnTodo),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Priority:    CoalescePriority(in.Priority, PriorityMedium),
		DueDate:     strings.TrimSpace(in.DueDate),
		Tags:        NormalizeTags(in.Tags),
		CreatedAt:   now.UTC(),
	}
	if err := t.validateFields(); err != nil {
		return nil, err
	}
	return t, nil
}

// Apply merges p over a copy of t. ID and CreatedAt are never changed. The
// result is re-validated; on error t is left untouched.
func (t *Task) Apply(p TaskPatch) (*Task, error) {
	next := t.Clone()
	next.Title = strings.TrimSpace(StrFromPtrWithDefault(next.Title, p.Title))
	next.Description = strings.TrimSpace(StrFromPtrWithDefault(next.Description, p.Description))
	next.Priority = PriorityFromPtrWithDefault(next.Priority, p.Priority)
	next.Column = ColumnFromPtrWithDefault(next.Column, p.Column)
	next.DueDate = strings.TrimSpace(StrFromPtrWithDefault(next.DueDate, p.DueDate))
	if p.Tags != nil {
		next.Tags = NormalizeTags(*p.Tags)
	}
	if err := next.validateFields(); err != nil {
		return nil, err
	}
	return next, nil
}

// Validate checks every task invariant, including identity fields. It is used
// to reject malformed persisted documents.
func (t *Task) Validate() error {
	if t.ID == "" {
		return newValidationError("id", "is required")
	}
	if t.CreatedAt.IsZero() {
		return newValidationError("createdAt", "is required")
	}
	if err := t.validateFields(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(t.Tags))
	for _, tag := range t.Tags {
		if tag == "" || tag != strings.ToLower(tag) || seen[tag] {
			return newValidationError("tags", "must be unique lowercase values")
		}
		seen[tag] = true
	}
	return nil
}

func (t *Task) validateFields() error {
	if t.Title == "" {
		return newValidationError("title", "is required")
	}
	if !t.Column.Valid() {
		return newValidationError("column", "%q is not one of Todo, Doing, Done", t.Column)
	}
	if !t.Priority.Valid() {
		return newValidationError("priority", "%q is not one of High, Medium, Low", t.Priority)
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DateLayout, t.DueDate); err != nil {
			return newValidationError("dueDate", "%q must use YYYY-MM-DD", t.DueDate)
		}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	c.Tags = slices.Clone(t.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c
}

// Due returns the parsed due date in loc, if one is set.
func (t *Task) Due(loc *time.Location) (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsOverdue reports whether the due date falls strictly before the calendar
// day containing now, in now's location.
func (t *Task) IsOverdue(now time.Time) bool {
	due, ok := t.Due(now.Location())
	if !ok {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return due.Before(today)
}

// NormalizeTags trims and lowercases tags, dropping empties and duplicates
// while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, raw := range tags {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// CoalesceColumn returns c, or fallback when c is empty.
func CoalesceColumn(c, fallback Column) Column {
	return Column(CoalesceStr(string(c), string(fallback)))
}

// CoalescePriority returns p, or fallback when p is empty.
func CoalescePriority(p, fallback Priority) Priority {
	return Priority(CoalesceStr(string(p), string(fallback)))
}
