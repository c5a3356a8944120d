package service

import (
	"context"
	"iter"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// TaskStore is the authoritative task sequence. Every mutation is persisted
// and logged before it returns.
type TaskStore interface {
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	// MoveTask reports false when the task was already in column.
	MoveTask(ctx context.Context, id string, column domain.Column) (*domain.Task, bool, error)
	// DeleteTask reports false when no task had the id.
	DeleteTask(ctx context.Context, id string) (bool, error)
	GetTask(id string) (*domain.Task, error)
	ListTasks(filter TaskFilter) []domain.Task
	ColumnCounts() map[domain.Column]int
	Progress() int
	ResetToDefaults(ctx context.Context) error
	Tasks() []domain.Task
}

// ActivityFeed is the read side of the activity log.
type ActivityFeed interface {
	List() iter.Seq[domain.LogEntry]
	Len() int
}

// Authenticator guards access to the board.
type Authenticator interface {
	Login(ctx context.Context, email, password string, remember bool) error
	Logout(ctx context.Context)
	IsAuthenticated(ctx context.Context) bool
	CurrentEmail(ctx context.Context) string
	RememberedEmail(ctx context.Context) (string, bool)
}

var (
	_ TaskStore     = (*BoardService)(nil)
	_ ActivityFeed  = (*ActivityLog)(nil)
	_ Authenticator = (*SessionGate)(nil)
)
