package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/storage"
	"github.com/alexanderramin/taskboard/internal/testutil"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type boardFixture struct {
	backend  *testutil.FailingBackend
	store    *storage.Adapter
	repo     *repository.DocumentBoardRepo
	activity *ActivityLog
	board    *BoardService
}

// newBoardFixture builds a board over a fresh counting backend. The seed is
// persisted during construction, so callers measuring writes should snapshot
// WriteCount first.
func newBoardFixture(t *testing.T, opts ...Option) *boardFixture {
	t.Helper()
	return newBoardFixtureOn(t, testutil.NewFailingBackend(), opts...)
}

func newBoardFixtureOn(t *testing.T, backend *testutil.FailingBackend, opts ...Option) *boardFixture {
	t.Helper()
	ctx := context.Background()
	opts = append([]Option{WithClock(testutil.FixedClock(testNow))}, opts...)
	store := storage.NewAdapter(backend, nil)
	repo := repository.NewDocumentBoardRepo(store)
	activity := NewActivityLog(ctx, repo, opts...)
	return &boardFixture{
		backend:  backend,
		store:    store,
		repo:     repo,
		activity: activity,
		board:    NewBoardService(ctx, repo, activity, opts...),
	}
}
