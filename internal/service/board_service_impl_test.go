package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskTitles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestNewBoardService_SeedsWhenNothingStored(t *testing.T) {
	f := newBoardFixture(t)

	tasks := f.board.Tasks()
	assert.Equal(t, []string{"Design system setup", "Authentication flow", "Project scaffolding"}, taskTitles(tasks))
	assert.Equal(t, 0, f.activity.Len())

	_, stored := f.backend.Raw(repository.KeyTasks)
	assert.True(t, stored, "seed is persisted so ids survive a restart")
}

func TestNewBoardService_LoadsStoredTasks(t *testing.T) {
	backend := testutil.NewFailingBackend()
	first := newBoardFixtureOn(t, backend)
	created, err := first.board.CreateTask(context.Background(), domain.TaskInput{Title: "Persist me"})
	require.NoError(t, err)

	second := newBoardFixtureOn(t, backend)
	got, err := second.board.GetTask(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persist me", got.Title)
	assert.Len(t, second.board.Tasks(), 4)
	assert.Equal(t, 1, second.activity.Len())
}

func TestNewBoardService_MalformedTasksFallBackToSeed(t *testing.T) {
	backend := testutil.NewFailingBackend()
	backend.Put(repository.KeyTasks, []byte(`[{"id":"x","column":"Later","title":""}]`))

	f := newBoardFixtureOn(t, backend)
	assert.Len(t, f.board.Tasks(), 3)
}

func TestNewBoardService_UnreadableStoreFallsBackToSeed(t *testing.T) {
	backend := testutil.NewFailingBackend()
	backend.FailReads = true

	f := newBoardFixtureOn(t, backend)
	assert.Len(t, f.board.Tasks(), 3)
	assert.Equal(t, 0, f.activity.Len())
}

func TestCreateTask_AppliesDefaultsPersistsAndLogs(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	before := f.backend.WriteCount()

	task, err := f.board.CreateTask(ctx, domain.TaskInput{
		Title:       "  Write docs  ",
		Description: " for the CLI ",
		Tags:        []string{"Docs", "docs", " CLI "},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, "for the CLI", task.Description)
	assert.Equal(t, domain.ColumnTodo, task.Column)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, []string{"docs", "cli"}, task.Tags)
	assert.True(t, task.CreatedAt.Equal(testNow))

	assert.Equal(t, before+2, f.backend.WriteCount(), "tasks and log each written once")

	entries := f.activity.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LogCreated, entries[0].Type)
	assert.Equal(t, "Write docs", entries[0].Title)
	assert.Equal(t, "Added to Todo", entries[0].Detail)
}

func TestCreateTask_RejectsInvalidInputWithoutSideEffects(t *testing.T) {
	cases := []struct {
		name  string
		in    domain.TaskInput
		field string
	}{
		{"blank title", domain.TaskInput{Title: "   "}, "title"},
		{"unknown priority", domain.TaskInput{Title: "x", Priority: "Urgent"}, "priority"},
		{"unknown column", domain.TaskInput{Title: "x", Column: "Later"}, "column"},
		{"bad due date", domain.TaskInput{Title: "x", DueDate: "03/01/2025"}, "dueDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBoardFixture(t)
			before := f.backend.WriteCount()

			_, err := f.board.CreateTask(context.Background(), tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)

			assert.Len(t, f.board.Tasks(), 3)
			assert.Equal(t, 0, f.activity.Len())
			assert.Equal(t, before, f.backend.WriteCount())
		})
	}
}

func TestCreateThenDelete_RestoresTasksAndLogsBoth(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	original := f.board.Tasks()

	task, err := f.board.CreateTask(ctx, domain.TaskInput{Title: "Temp", Column: domain.ColumnDoing})
	require.NoError(t, err)
	deleted, err := f.board.DeleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Equal(t, original, f.board.Tasks())

	var got []domain.LogEntry
	for e := range f.activity.List() {
		got = append(got, e)
	}
	require.Len(t, got, 2)
	assert.Equal(t, domain.LogDeleted, got[0].Type)
	assert.Equal(t, "Removed from Doing", got[0].Detail)
	assert.Equal(t, domain.LogCreated, got[1].Type)
}

func TestUpdateTask_MergesPatch(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	orig := f.board.Tasks()[0]

	title := "Design tokens"
	prio := domain.PriorityLow
	updated, err := f.board.UpdateTask(ctx, orig.ID, domain.TaskPatch{Title: &title, Priority: &prio})
	require.NoError(t, err)

	assert.Equal(t, orig.ID, updated.ID)
	assert.True(t, orig.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Design tokens", updated.Title)
	assert.Equal(t, domain.PriorityLow, updated.Priority)
	assert.Equal(t, orig.Description, updated.Description)
	assert.Equal(t, orig.DueDate, updated.DueDate)
	assert.Equal(t, orig.Tags, updated.Tags)

	entries := f.activity.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LogEdited, entries[0].Type)
	assert.Equal(t, "Updated in Todo", entries[0].Detail)
}

func TestUpdateTask_ClearsDueDateAndTags(t *testing.T) {
	f := newBoardFixture(t)
	orig := f.board.Tasks()[0]

	empty := ""
	none := []string{}
	updated, err := f.board.UpdateTask(context.Background(), orig.ID, domain.TaskPatch{DueDate: &empty, Tags: &none})
	require.NoError(t, err)
	assert.Empty(t, updated.DueDate)
	assert.Empty(t, updated.Tags)
}

func TestUpdateTask_BlankTitleLeavesTaskUntouched(t *testing.T) {
	f := newBoardFixture(t)
	orig := f.board.Tasks()[0]
	before := f.backend.WriteCount()

	blank := "  "
	_, err := f.board.UpdateTask(context.Background(), orig.ID, domain.TaskPatch{Title: &blank})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)

	got, err := f.board.GetTask(orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig.Title, got.Title)
	assert.Equal(t, before, f.backend.WriteCount())
	assert.Equal(t, 0, f.activity.Len())
}

func TestUpdateTask_UnknownID(t *testing.T) {
	f := newBoardFixture(t)
	title := "x"
	_, err := f.board.UpdateTask(context.Background(), "missing", domain.TaskPatch{Title: &title})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMoveTask(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	todo := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo})[0]

	moved, ok, err := f.board.MoveTask(ctx, todo.ID, domain.ColumnDoing)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.ColumnDoing, moved.Column)

	entries := f.activity.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, domain.LogMoved, entries[0].Type)
	assert.Equal(t, "Todo → Doing", entries[0].Detail)
	assert.Equal(t, map[domain.Column]int{domain.ColumnTodo: 0, domain.ColumnDoing: 2, domain.ColumnDone: 1}, f.board.ColumnCounts())
}

func TestMoveTask_SameColumnIsNoOp(t *testing.T) {
	f := newBoardFixture(t)
	done := f.board.ListTasks(TaskFilter{Column: domain.ColumnDone})[0]
	before := f.backend.WriteCount()

	task, ok, err := f.board.MoveTask(context.Background(), done.ID, domain.ColumnDone)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.ColumnDone, task.Column)
	assert.Equal(t, before, f.backend.WriteCount())
	assert.Equal(t, 0, f.activity.Len())
}

func TestMoveTask_Errors(t *testing.T) {
	f := newBoardFixture(t)
	id := f.board.Tasks()[0].ID

	_, _, err := f.board.MoveTask(context.Background(), "missing", domain.ColumnDone)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = f.board.MoveTask(context.Background(), id, "Archive")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "column", ve.Field)
}

func TestDeleteTask_UnknownIDIsSilent(t *testing.T) {
	f := newBoardFixture(t)
	before := f.backend.WriteCount()

	deleted, err := f.board.DeleteTask(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, f.board.Tasks(), 3)
	assert.Equal(t, before, f.backend.WriteCount())
	assert.Equal(t, 0, f.activity.Len())
}

func TestListTasks_FiltersBySearchAndPriority(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	_, err := f.board.CreateTask(ctx, domain.TaskInput{Title: "Write design doc", Priority: domain.PriorityLow})
	require.NoError(t, err)

	got := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo, Search: "DESIGN"})
	assert.Equal(t, []string{"Design system setup", "Write design doc"}, taskTitles(got))

	got = f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo, Search: "design", Priority: domain.PriorityHigh})
	assert.Equal(t, []string{"Design system setup"}, taskTitles(got))

	got = f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo, Priority: domain.PriorityAll})
	assert.Len(t, got, 2)

	got = f.board.ListTasks(TaskFilter{Column: domain.ColumnDoing, Search: "design"})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestListTasks_ReturnsCopies(t *testing.T) {
	f := newBoardFixture(t)
	got := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo})
	got[0].Title = "mutated"
	got[0].Tags[0] = "mutated"

	again := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo})
	assert.Equal(t, "Design system setup", again[0].Title)
	assert.Equal(t, "design", again[0].Tags[0])
}

func TestListTasks_SortByDueIsStableWithUndatedLast(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	for _, in := range []domain.TaskInput{
		{Title: "no date A"},
		{Title: "late", DueDate: "2026-09-01"},
		{Title: "tie 1", DueDate: "2026-04-01"},
		{Title: "no date B"},
		{Title: "tie 2", DueDate: "2026-04-01"},
	} {
		_, err := f.board.CreateTask(ctx, in)
		require.NoError(t, err)
	}

	got := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo, SortByDue: true})
	assert.Equal(t, []string{
		"Design system setup", "tie 1", "tie 2", "late", "no date A", "no date B",
	}, taskTitles(got))

	unsorted := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo})
	assert.Equal(t, "Design system setup", unsorted[0].Title)
	assert.Equal(t, "no date A", unsorted[1].Title)
}

func TestProgress(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	assert.Equal(t, 33, f.board.Progress(), "1 of 3 done")

	doing := f.board.ListTasks(TaskFilter{Column: domain.ColumnDoing})[0]
	_, _, err := f.board.MoveTask(ctx, doing.ID, domain.ColumnDone)
	require.NoError(t, err)
	assert.Equal(t, 67, f.board.Progress(), "2 of 3 rounds up")

	todo := f.board.ListTasks(TaskFilter{Column: domain.ColumnTodo})[0]
	_, err = f.board.DeleteTask(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, f.board.Progress())

	for _, task := range f.board.Tasks() {
		_, err := f.board.DeleteTask(ctx, task.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, f.board.Progress(), "empty board")
}

func TestProgressPct_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, 50, progressPct(1, 2))
	assert.Equal(t, 13, progressPct(1, 8), "12.5 rounds up")
	assert.Equal(t, 0, progressPct(0, 5))
	assert.Equal(t, 0, progressPct(0, 0))
}

func TestResetToDefaults(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	oldIDs := make([]string, 0)
	for _, task := range f.board.Tasks() {
		oldIDs = append(oldIDs, task.ID)
	}
	_, err := f.board.CreateTask(ctx, domain.TaskInput{Title: "extra"})
	require.NoError(t, err)
	before := f.backend.WriteCount()

	require.NoError(t, f.board.ResetToDefaults(ctx))

	tasks := f.board.Tasks()
	assert.Equal(t, []string{"Design system setup", "Authentication flow", "Project scaffolding"}, taskTitles(tasks))
	for _, task := range tasks {
		assert.False(t, slices.Contains(oldIDs, task.ID), "reset assigns fresh ids")
	}
	assert.Equal(t, 0, f.activity.Len())
	assert.Equal(t, before+1, f.backend.WriteCount(), "tasks and log written together")

	rawLog, ok := f.backend.Raw(repository.KeyLog)
	require.True(t, ok)
	assert.Equal(t, "[]", string(rawLog))
}

func TestResetToDefaults_CanceledContext(t *testing.T) {
	f := newBoardFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.board.ResetToDefaults(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMutations_SurviveStorageFailure(t *testing.T) {
	f := newBoardFixture(t)
	f.backend.FailWrites = true
	ctx := context.Background()

	task, err := f.board.CreateTask(ctx, domain.TaskInput{Title: "kept in memory"})
	require.NoError(t, err)
	_, moved, err := f.board.MoveTask(ctx, task.ID, domain.ColumnDone)
	require.NoError(t, err)
	assert.True(t, moved)

	got, err := f.board.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnDone, got.Column)
	assert.Equal(t, 2, f.activity.Len())
}

func TestCreateAndReset_LogNeverNamesMissingTasks(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 100 {
			_, err := f.board.CreateTask(ctx, domain.TaskInput{Title: fmt.Sprintf("task-%d", i)})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for range 20 {
			assert.NoError(t, f.board.ResetToDefaults(ctx))
		}
	}()
	wg.Wait()

	titles := taskTitles(f.board.Tasks())
	for e := range f.activity.List() {
		if e.Type == domain.LogCreated {
			assert.Contains(t, titles, e.Title, "created entry outlived a reset")
		}
	}
}

func TestMutations_ConcurrentWithFailingStorage(t *testing.T) {
	backend := testutil.NewFailingBackend()
	f := newBoardFixtureOn(t, backend)
	backend.FailReads = true
	backend.FailWrites = true
	gate := NewSessionGate(repository.NewDocumentSessionRepo(f.store))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 50 {
			_, err := f.board.CreateTask(ctx, domain.TaskInput{Title: fmt.Sprintf("t%d", i)})
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for range 50 {
			assert.Empty(t, gate.CurrentEmail(ctx))
		}
	}()
	wg.Wait()

	assert.Len(t, f.board.Tasks(), 53)
	assert.Equal(t, 50, f.activity.Len())
}
