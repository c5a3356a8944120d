package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

func TestNewTask_Defaults(t *testing.T) {
	task, err := NewTask(TaskInput{Title: "  Write release notes  "}, fixedNow)
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Write release notes", task.Title)
	assert.Equal(t, ColumnTodo, task.Column)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Equal(t, fixedNow, task.CreatedAt)
	assert.Empty(t, task.Tags)
}

func TestNewTask_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := NewTask(TaskInput{Title: title}, fixedNow)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "title %q", title)
		assert.Equal(t, "title", ve.Field)
	}
}

func TestNewTask_RejectsUnknownEnums(t *testing.T) {
	_, err := NewTask(TaskInput{Title: "x", Column: "Backlog"}, fixedNow)
	assert.Error(t, err)

	_, err = NewTask(TaskInput{Title: "x", Priority: "Urgent"}, fixedNow)
	assert.Error(t, err)

	_, err = NewTask(TaskInput{Title: "x", DueDate: "03/01/2025"}, fixedNow)
	assert.Error(t, err)
}

func TestNewTask_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		task, err := NewTask(TaskInput{Title: "x"}, fixedNow)
		require.NoError(t, err)
		require.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{"Design", " setup ", "design", "", "SETUP", "api"})
	assert.Equal(t, []string{"design", "setup", "api"}, got)
}

func TestApply_MergesPresentFieldsOnly(t *testing.T) {
	orig, err := NewTask(TaskInput{
		Title:       "Old",
		Description: "keep me",
		Priority:    PriorityLow,
		Tags:        []string{"a"},
	}, fixedNow)
	require.NoError(t, err)

	title := "New"
	col := ColumnDoing
	next, err := orig.Apply(TaskPatch{Title: &title, Column: &col})
	require.NoError(t, err)

	assert.Equal(t, orig.ID, next.ID)
	assert.Equal(t, orig.CreatedAt, next.CreatedAt)
	assert.Equal(t, "New", next.Title)
	assert.Equal(t, ColumnDoing, next.Column)
	assert.Equal(t, "keep me", next.Description)
	assert.Equal(t, PriorityLow, next.Priority)
	assert.Equal(t, []string{"a"}, next.Tags)

	// The receiver is not modified.
	assert.Equal(t, "Old", orig.Title)
	assert.Equal(t, ColumnTodo, orig.Column)
}

func TestApply_BlankTitleRejected(t *testing.T) {
	orig, err := NewTask(TaskInput{Title: "Old"}, fixedNow)
	require.NoError(t, err)

	blank := "  "
	_, err = orig.Apply(TaskPatch{Title: &blank})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Old", orig.Title)
}

func TestApply_ClearsDueDateAndNormalizesTags(t *testing.T) {
	orig, err := NewTask(TaskInput{Title: "x", DueDate: "2026-01-01"}, fixedNow)
	require.NoError(t, err)

	empty := ""
	tags := []string{"B", "b", "c"}
	next, err := orig.Apply(TaskPatch{DueDate: &empty, Tags: &tags})
	require.NoError(t, err)
	assert.Empty(t, next.DueDate)
	assert.Equal(t, []string{"b", "c"}, next.Tags)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 2, 7, 0, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		due  string
		want bool
	}{
		{"no due date", "", false},
		{"yesterday", "2026-02-06", true},
		{"today", "2026-02-07", false},
		{"tomorrow", "2026-02-08", false},
		{"long ago", "2025-02-20", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{DueDate: tt.due}
			assert.Equal(t, tt.want, task.IsOverdue(now))
		})
	}
}

func TestValidate_RejectsMalformedTask(t *testing.T) {
	good, err := NewTask(TaskInput{Title: "ok", Tags: []string{"a"}}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, good.Validate())

	noID := good.Clone()
	noID.ID = ""
	assert.Error(t, noID.Validate())

	dupTags := good.Clone()
	dupTags.Tags = []string{"a", "a"}
	assert.Error(t, dupTags.Validate())

	upperTag := good.Clone()
	upperTag.Tags = []string{"A"}
	assert.Error(t, upperTag.Validate())
}

func TestDefaultTasks(t *testing.T) {
	first := DefaultTasks(fixedNow)
	second := DefaultTasks(fixedNow)

	require.Len(t, first, 3)
	assert.Equal(t, []Column{ColumnTodo, ColumnDoing, ColumnDone},
		[]Column{first[0].Column, first[1].Column, first[2].Column})
	assert.Equal(t, "Design system setup", first[0].Title)
	assert.Equal(t, "", first[2].DueDate)
	for i := range first {
		assert.NotEqual(t, first[i].ID, second[i].ID, "each seed copy gets new ids")
		assert.NoError(t, first[i].Validate())
	}
}

func TestColumnIndex(t *testing.T) {
	assert.Equal(t, 0, ColumnTodo.Index())
	assert.Equal(t, 2, ColumnDone.Index())
	assert.Equal(t, -1, Column("Archive").Index())
}

func TestAuthError_Messages(t *testing.T) {
	err := error(&AuthError{Reason: AuthInvalidCredentials})
	assert.True(t, IsAuthReason(err, AuthInvalidCredentials))
	assert.False(t, IsAuthReason(err, AuthEmptyEmail))
	assert.Equal(t, "Invalid email or password. Please try again.", err.Error())
	assert.Equal(t, "Email is required.", (&AuthError{Reason: AuthEmptyEmail}).Error())
}

func TestMoveDetail(t *testing.T) {
	assert.Equal(t, "Todo → Doing", MoveDetail(ColumnTodo, ColumnDoing))
	assert.Equal(t, "Removed from Done", DeletedDetail(ColumnDone))
}
