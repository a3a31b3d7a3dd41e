package syncapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	linkstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/devicelinks"
	metricstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/healthmetrics"
	workoutstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/workouts"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/devicelink"
	"github.com/ratmirov/go_coach_backend/internal/domain/healthmetric"
	"github.com/ratmirov/go_coach_backend/internal/domain/workout"
)

type LinkStorage interface {
	GetActiveByAthlete(ctx context.Context, athleteID string) (*devicelink.Link, error)
	CollectEvents() []domain.Event
	Close() error
}

type MetricStorage interface {
	Add(ctx context.Context, m *healthmetric.Metric) error
	GetByDate(ctx context.Context, athleteID string, date time.Time) (*healthmetric.Metric, error)
	CollectEvents() []domain.Event
	Close() error
}

type WorkoutStorage interface {
	Add(ctx context.Context, w *workout.Workout) error
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	LinkStorage    LinkStorage
	MetricStorage  MetricStorage
	WorkoutStorage WorkoutStorage
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

	if closeErr := a.MetricStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if closeErr := a.WorkoutStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	linkEvents := a.LinkStorage.CollectEvents()
	metricEvents := a.MetricStorage.CollectEvents()
	workoutEvents := a.WorkoutStorage.CollectEvents()

	events := make([]domain.Event, 0, len(linkEvents)+len(metricEvents)+len(workoutEvents))
	events = append(events, linkEvents...)
	events = append(events, metricEvents...)
	events = append(events, workoutEvents...)
	return events
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:            ctx,
		DBContext:      dbContext,
		LinkStorage:    linkstorage.NewPostgresStorage(dbContext, nil),
		MetricStorage:  metricstorage.NewPostgresStorage(dbContext),
		WorkoutStorage: workoutstorage.NewPostgresStorage(dbContext),
	}, nil
}
