package wellnessservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	metricstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/healthmetrics"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/healthmetric"
)

type MetricStorage interface {
	Add(ctx context.Context, m *healthmetric.Metric) error
	GetByID(ctx context.Context, metricID string) (*healthmetric.Metric, error)
	GetByDate(ctx context.Context, athleteID string, date time.Time) (*healthmetric.Metric, error)
	ListByAthlete(ctx context.Context, athleteID string, limit, offset int) ([]*healthmetric.Metric, error)
	HRVReadings(ctx context.Context, athleteID string, days int) ([]float64, error)
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	MetricStorage MetricStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.DBContext.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.MetricStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.MetricStorage.CollectEvents()
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:           ctx,
		DBContext:     dbContext,
		MetricStorage: metricstorage.NewPostgresStorage(dbContext),
	}, nil
}
