// Package app assembles the board's services from a resolved configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/taskboard/internal/config"
	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/alexanderramin/taskboard/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Services is the wired core: one board, its activity log and the session
// gate, all sharing one storage adapter.
type Services struct {
	Board    *service.BoardService
	Activity *service.ActivityLog
	Gate     *service.SessionGate
	Store    *storage.Adapter

	shutdown []func(context.Context) error
}

// Open builds the configured backend and wires the services over it.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Services, error) {
	backend, err := storage.OpenBackend(cfg)
	if err != nil {
		return nil, err
	}
	return Build(ctx, backend, cfg, logger), nil
}

// Build wires the services over an existing backend. The backend is closed
// by Services.Close.
func Build(ctx context.Context, backend storage.Backend, cfg *config.Config, logger *log.Logger) *Services {
	store := storage.NewAdapter(backend, logger)
	s := &Services{Store: store}

	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger)}
	if cfg.Trace {
		tp := service.NewLoggingTracerProvider(logger)
		observers = append(observers, service.NewTraceUseCaseObserver(tp))
		s.shutdown = append(s.shutdown, tp.Shutdown)
	}
	obs := service.WithObserver(service.CombineObservers(observers...))

	boardRepo := repository.NewDocumentBoardRepo(store)
	s.Activity = service.NewActivityLog(ctx, boardRepo)
	s.Board = service.NewBoardService(ctx, boardRepo, s.Activity, obs)
	s.Gate = service.NewSessionGate(
		repository.NewDocumentSessionRepo(store),
		obs,
		service.WithLoginDelay(cfg.LoginDelay()),
	)
	return s
}

// Close flushes tracing and releases the backend.
func (s *Services) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range s.shutdown {
		errs = append(errs, fn(ctx))
	}
	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}
