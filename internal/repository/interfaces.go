package repository

import (
	"context"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// Document keys of the four persisted records.
const (
	KeyAuth     = "tb_auth"
	KeyRemember = "tb_remember"
	KeyTasks    = "tb_tasks"
	KeyLog      = "tb_log"
)

// BoardRepo persists the task and activity log sequences. Loads report false
// when the document is absent or fails schema validation; saves never fail.
type BoardRepo interface {
	LoadTasks(ctx context.Context) ([]domain.Task, bool)
	SaveTasks(ctx context.Context, tasks []domain.Task)
	LoadLog(ctx context.Context) ([]domain.LogEntry, bool)
	SaveLog(ctx context.Context, entries []domain.LogEntry)
	// SaveBoard writes both sequences together.
	SaveBoard(ctx context.Context, tasks []domain.Task, entries []domain.LogEntry)
}

// SessionRepo persists the authentication record and the remembered email.
type SessionRepo interface {
	LoadSession(ctx context.Context) (domain.Session, bool)
	SaveSession(ctx context.Context, s domain.Session)
	ClearSession(ctx context.Context)
	LoadRemembered(ctx context.Context) (domain.RememberedEmail, bool)
	SaveRemembered(ctx context.Context, r domain.RememberedEmail)
	ClearRemembered(ctx context.Context)
}
