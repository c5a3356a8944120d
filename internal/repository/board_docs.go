package repository

import (
	"context"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/storage"
)

// DocumentBoardRepo implements BoardRepo over the storage adapter.
type DocumentBoardRepo struct {
	store *storage.Adapter
}

func NewDocumentBoardRepo(store *storage.Adapter) *DocumentBoardRepo {
	return &DocumentBoardRepo{store: store}
}

func (r *DocumentBoardRepo) LoadTasks(ctx context.Context) ([]domain.Task, bool) {
	var tasks []domain.Task
	if !r.store.Read(ctx, KeyTasks, &tasks) || tasks == nil {
		return nil, false
	}
	if !validTasks(tasks) {
		return nil, false
	}
	return tasks, true
}

func (r *DocumentBoardRepo) SaveTasks(ctx context.Context, tasks []domain.Task) {
	r.store.Write(ctx, KeyTasks, nonNilTasks(tasks))
}

func (r *DocumentBoardRepo) LoadLog(ctx context.Context) ([]domain.LogEntry, bool) {
	var entries []domain.LogEntry
	if !r.store.Read(ctx, KeyLog, &entries) || entries == nil {
		return nil, false
	}
	for _, e := range entries {
		if e.Validate() != nil {
			return nil, false
		}
	}
	if over := len(entries) - domain.MaxLogEntries; over > 0 {
		entries = entries[over:]
	}
	return entries, true
}

func (r *DocumentBoardRepo) SaveLog(ctx context.Context, entries []domain.LogEntry) {
	r.store.Write(ctx, KeyLog, nonNilEntries(entries))
}

func (r *DocumentBoardRepo) SaveBoard(ctx context.Context, tasks []domain.Task, entries []domain.LogEntry) {
	r.store.WriteAll(ctx, map[string]any{
		KeyTasks: nonNilTasks(tasks),
		KeyLog:   nonNilEntries(entries),
	})
}

// validTasks rejects the whole sequence if any task breaks an invariant or
// two tasks share an id.
func validTasks(tasks []domain.Task) bool {
	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		if tasks[i].Validate() != nil || seen[tasks[i].ID] {
			return false
		}
		seen[tasks[i].ID] = true
	}
	return true
}

// nonNilTasks keeps an empty board encoded as [] rather than null.
func nonNilTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return []domain.Task{}
	}
	return tasks
}

func nonNilEntries(entries []domain.LogEntry) []domain.LogEntry {
	if entries == nil {
		return []domain.LogEntry{}
	}
	return entries
}
