package trainingservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	athletestorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/athletes"
	workoutstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/workouts"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
	"github.com/ratmirov/go_coach_backend/internal/domain/workout"
)

type WorkoutStorage interface {
	Add(ctx context.Context, w *workout.Workout) error
	GetByID(ctx context.Context, workoutID string) (*workout.Workout, error)
	ListByAthlete(ctx context.Context, athleteID string, limit, offset int) ([]*workout.Workout, error)
	TotalStressSince(ctx context.Context, athleteID string, since time.Time) (float64, error)
	CollectEvents() []domain.Event
	Close() error
}

type AthleteStorage interface {
	GetByID(ctx context.Context, athleteID string) (*athlete.Athlete, error)
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	WorkoutStorage WorkoutStorage
	AthleteStorage AthleteStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.DBContext.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.WorkoutStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if closeErr := a.AthleteStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	workoutEvents := a.WorkoutStorage.CollectEvents()
	athleteEvents := a.AthleteStorage.CollectEvents()

	events := make([]domain.Event, 0, len(workoutEvents)+len(athleteEvents))
	events = append(events, workoutEvents...)
	events = append(events, athleteEvents...)
	return events
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:            ctx,
		DBContext:      dbContext,
		WorkoutStorage: workoutstorage.NewPostgresStorage(dbContext),
		AthleteStorage: athletestorage.NewPostgresStorage(dbContext, nil),
	}, nil
}
