package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
)

// BoardService owns the ordered task sequence. Every mutation persists the
// tasks and appends to the activity log before returning. The log append
// happens under mu, so mu is always taken before the log's own lock.
type BoardService struct {
	mu       sync.Mutex
	tasks    []domain.Task
	repo     repository.BoardRepo
	activity *ActivityLog
	opts     options
}

// NewBoardService loads the stored tasks. When none are stored, or the stored
// document is malformed, the board starts from the default seed, which is
// persisted so that seed ids are stable across runs.
func NewBoardService(ctx context.Context, repo repository.BoardRepo, activity *ActivityLog, opts ...Option) *BoardService {
	s := &BoardService{repo: repo, activity: activity, opts: buildOptions(opts)}
	tasks, ok := repo.LoadTasks(ctx)
	if !ok {
		tasks = domain.DefaultTasks(s.opts.now())
		repo.SaveTasks(ctx, tasks)
	}
	s.tasks = tasks
	return s
}

func (s *BoardService) CreateTask(ctx context.Context, in domain.TaskInput) (_ *domain.Task, err error) {
	start := time.Now()
	fields := map[string]any{"column": string(in.Column)}
	defer func() { observe(ctx, s.opts.observer, "create_task", start, err, fields) }()

	task, err := domain.NewTask(in, s.opts.now())
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	fields["task_id"] = task.ID

	s.mu.Lock()
	s.tasks = append(s.tasks, *task)
	s.repo.SaveTasks(ctx, s.tasks)
	s.activity.Append(ctx, domain.LogCreated, task.Title, domain.CreatedDetail(task.Column))
	s.mu.Unlock()
	return task.Clone(), nil
}

func (s *BoardService) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (_ *domain.Task, err error) {
	start := time.Now()
	defer func() { observe(ctx, s.opts.observer, "update_task", start, err, map[string]any{"task_id": id}) }()

	s.mu.Lock()
	idx := indexOfTask(s.tasks, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("update task %s: %w", id, domain.ErrNotFound)
	}
	next, err := s.tasks[idx].Apply(patch)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	s.tasks[idx] = *next
	s.repo.SaveTasks(ctx, s.tasks)
	s.activity.Append(ctx, domain.LogEdited, next.Title, domain.EditedDetail(next.Column))
	s.mu.Unlock()
	return next.Clone(), nil
}

func (s *BoardService) MoveTask(ctx context.Context, id string, column domain.Column) (_ *domain.Task, moved bool, err error) {
	start := time.Now()
	fields := map[string]any{"task_id": id, "to": string(column)}
	defer func() {
		fields["moved"] = moved
		observe(ctx, s.opts.observer, "move_task", start, err, fields)
	}()

	if !column.Valid() {
		return nil, false, fmt.Errorf("move task %s: %w", id,
			&domain.ValidationError{Field: "column", Message: fmt.Sprintf("%q is not one of Todo, Doing, Done", column)})
	}

	s.mu.Lock()
	idx := indexOfTask(s.tasks, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, false, fmt.Errorf("move task %s: %w", id, domain.ErrNotFound)
	}
	from := s.tasks[idx].Column
	if from == column {
		current := s.tasks[idx].Clone()
		s.mu.Unlock()
		return current, false, nil
	}
	s.tasks[idx].Column = column
	current := s.tasks[idx].Clone()
	s.repo.SaveTasks(ctx, s.tasks)
	s.activity.Append(ctx, domain.LogMoved, current.Title, domain.MoveDetail(from, column))
	s.mu.Unlock()
	return current, true, nil
}

// DeleteTask removes the task with id. Unknown ids are ignored and reported
// as false.
func (s *BoardService) DeleteTask(ctx context.Context, id string) (deleted bool, err error) {
	start := time.Now()
	defer func() {
		observe(ctx, s.opts.observer, "delete_task", start, err, map[string]any{"task_id": id, "deleted": deleted})
	}()

	s.mu.Lock()
	idx := indexOfTask(s.tasks, id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	removed := s.tasks[idx]
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.repo.SaveTasks(ctx, s.tasks)
	s.activity.Append(ctx, domain.LogDeleted, removed.Title, domain.DeletedDetail(removed.Column))
	s.mu.Unlock()
	return true, nil
}

func (s *BoardService) GetTask(id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := indexOfTask(s.tasks, id)
	if idx < 0 {
		return nil, fmt.Errorf("get task %s: %w", id, domain.ErrNotFound)
	}
	return s.tasks[idx].Clone(), nil
}

// ListTasks returns copies of the tasks in filter.Column that match the
// search text and priority.
func (s *BoardService) ListTasks(filter TaskFilter) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterTasks(s.tasks, filter)
}

// Tasks returns copies of every task in board order.
func (s *BoardService) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = *s.tasks[i].Clone()
	}
	return out
}

// ColumnCounts returns unfiltered per-column totals.
func (s *BoardService) ColumnCounts() map[domain.Column]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[domain.Column]int, len(domain.Columns))
	for _, c := range domain.Columns {
		counts[c] = 0
	}
	for _, t := range s.tasks {
		counts[t.Column]++
	}
	return counts
}

// Progress is the share of tasks in Done, as a whole percentage.
func (s *BoardService) Progress() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := 0
	for _, t := range s.tasks {
		if t.Column == domain.ColumnDone {
			done++
		}
	}
	return progressPct(done, len(s.tasks))
}

// ResetToDefaults replaces the board with a fresh seed and clears the
// activity log. Both documents are written together.
func (s *BoardService) ResetToDefaults(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { observe(ctx, s.opts.observer, "reset_board", start, err, nil) }()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("reset board: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = domain.DefaultTasks(s.opts.now())
	s.activity.truncate()
	s.repo.SaveBoard(ctx, s.tasks, []domain.LogEntry{})
	return nil
}
