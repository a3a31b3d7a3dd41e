package athleteservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	athletestorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/athletes"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
)

type AthleteStorage interface {
	Add(ctx context.Context, a *athlete.Athlete) error
	GetByID(ctx context.Context, athleteID string) (*athlete.Athlete, error)
	Persist(ctx context.Context, a *athlete.Athlete) error
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	AthleteStorage AthleteStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.DBContext.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.AthleteStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.AthleteStorage.CollectEvents()
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:            ctx,
		DBContext:      dbContext,
		AthleteStorage: athletestorage.NewPostgresStorage(dbContext, nil),
	}, nil
}
