package deviceservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	linkstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/devicelinks"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/devicelink"
)

type LinkStorage interface {
	Add(ctx context.Context, l *devicelink.Link) error
	GetByID(ctx context.Context, linkID devicelink.LinkID) (*devicelink.Link, error)
	GetBySecret(ctx context.Context, secret string) (*devicelink.Link, error)
	GetActiveByAthlete(ctx context.Context, athleteID string) (*devicelink.Link, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]*devicelink.Link, error)
	Persist(ctx context.Context, l *devicelink.Link) error
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	LinkStorage LinkStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.DBContext.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.LinkStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.LinkStorage.CollectEvents()
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:         ctx,
		DBContext:   dbContext,
		LinkStorage: linkstorage.NewPostgresStorage(dbContext, nil),
	}, nil
}
