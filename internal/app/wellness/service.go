package wellnessservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
	"github.com/ratmirov/go_coach_backend/internal/domain/healthmetric"
)

type Service struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

type MetricParams struct {
	Date             time.Time
	RestingHeartRate *int
	HRV              *float64
	SleepMinutes     *int
	SleepScore       *float64
	Steps            *int
	StressAvg        *float64
}

func (s *Service) RecordMetric(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	metricID, athleteID string,
	params MetricParams,
) (m *healthmetric.Metric, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		m = healthmetric.New(
			metricID,
			athleteID,
			params.Date,
			params.RestingHeartRate,
			params.HRV,
			params.SleepMinutes,
			params.SleepScore,
			params.Steps,
			params.StressAvg,
		)

		if err := ctx.MetricStorage.Add(ctx.Context(), m); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) GetMetricByID(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	metricID string,
) (m *healthmetric.Metric, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		m, err = ctx.MetricStorage.GetByID(ctx.Context(), metricID)
		return err
	})
	return
}

func (s *Service) ListMetrics(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	limit, offset int,
) (metrics []*healthmetric.Metric, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		metrics, err = ctx.MetricStorage.ListByAthlete(ctx.Context(), athleteID, limit, offset)
		return err
	})
	return
}

// HRVBaseline compares the latest reading against the trailing window of
// stored readings.
func (s *Service) HRVBaseline(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	windowDays int,
) (summary calc.HRVSummary, err error) {
	if windowDays <= 0 {
		windowDays = calc.DefaultHRVWindowDays
	}

	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		readings, err := ctx.MetricStorage.HRVReadings(ctx.Context(), athleteID, windowDays)
		if err != nil {
			return err
		}

		summary, err = calc.HRVBaseline(readings, windowDays)
		return err
	})
	return
}
