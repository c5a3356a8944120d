package service

import (
	"context"
	"iter"
	"slices"
	"sync"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

// ActivityLog is the bounded, append-only history of board mutations. It is
// persisted independently of the tasks.
type ActivityLog struct {
	mu      sync.Mutex
	entries []domain.LogEntry // oldest first
	repo    repository.BoardRepo
	opts    options
}

// NewActivityLog loads the stored log, starting empty when none is stored or
// the stored document is malformed.
func NewActivityLog(ctx context.Context, repo repository.BoardRepo, opts ...Option) *ActivityLog {
	entries, ok := repo.LoadLog(ctx)
	if !ok {
		entries = []domain.LogEntry{}
	}
	return &ActivityLog{entries: entries, repo: repo, opts: buildOptions(opts)}
}

// Append records an event, evicting the oldest entry beyond the cap, and
// persists the log.
func (l *ActivityLog) Append(ctx context.Context, typ domain.LogType, title, detail string) domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := domain.LogEntry{Type: typ, Title: title, Detail: detail, TS: l.opts.now().UTC()}
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - domain.MaxLogEntries; over > 0 {
		l.entries = slices.Delete(l.entries, 0, over)
	}
	l.repo.SaveLog(ctx, l.entries)
	return entry
}

// List yields entries newest first. Each iteration reads the log as it is
// when iteration starts.
func (l *ActivityLog) List() iter.Seq[domain.LogEntry] {
	return func(yield func(domain.LogEntry) bool) {
		snapshot := l.Entries()
		for i := len(snapshot) - 1; i >= 0; i-- {
			if !yield(snapshot[i]) {
				return
			}
		}
	}
}

// Entries returns a copy of the log, oldest first.
func (l *ActivityLog) Entries() []domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the log and persists the empty log.
func (l *ActivityLog) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = []domain.LogEntry{}
	l.repo.SaveLog(ctx, l.entries)
}

// truncate empties the in-memory log; the caller persists it.
func (l *ActivityLog) truncate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = []domain.LogEntry{}
}
