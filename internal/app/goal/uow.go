package goalservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	goalstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/goals"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/goal"
)

type GoalStorage interface {
	Add(ctx context.Context, g *goal.Goal) error
	GetByID(ctx context.Context, goalID goal.GoalID) (*goal.Goal, error)
	ListByAthlete(ctx context.Context, athleteID string, limit, offset int) ([]*goal.Goal, error)
	Persist(ctx context.Context, g *goal.Goal) error
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	GoalStorage GoalStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.DBContext.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.GoalStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.GoalStorage.CollectEvents()
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:         ctx,
		DBContext:   dbContext,
		GoalStorage: goalstorage.NewPostgresStorage(dbContext, nil),
	}, nil
}
