package syncapp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/devicelink"
	"github.com/ratmirov/go_coach_backend/internal/domain/healthmetric"
	"github.com/ratmirov/go_coach_backend/internal/domain/syncdata"
	"github.com/ratmirov/go_coach_backend/internal/domain/workout"
)

var (
	ErrNoActiveLink = errors.New("no active device link")
)

type Service struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// IngestResult reports what a sync push did: the validation verdict plus
// how many records of each kind were stored.
type IngestResult struct {
	Report           syncdata.Report `json:"report"`
	StoredWorkouts   int             `json:"stored_workouts"`
	StoredMetrics    int             `json:"stored_metrics"`
	SkippedWorkouts  int             `json:"skipped_workouts"`
	SkippedMetrics   int             `json:"skipped_metrics"`
	TrainingAccepted int             `json:"training_accepted"`
}

// Ingest validates a pushed batch against an athlete's active device
// link and stores the records that pass. A batch with validation errors
// is rejected whole; duplicate records are skipped, not failed.
func (s *Service) Ingest(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	batch syncdata.Batch,
) (result IngestResult, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		link, err := ctx.LinkStorage.GetActiveByAthlete(ctx.Context(), athleteID)
		if err != nil {
			if errors.Is(err, devicelink.ErrLinkNotFound) {
				return ErrNoActiveLink
			}
			return err
		}
		if !link.IsActive() {
			return ErrNoActiveLink
		}

		batch.UserID = athleteID
		result.Report = syncdata.Validate(batch)
		if !result.Report.IsValid {
			return nil
		}

		for _, rec := range batch.Activities {
			w := workout.New(
				uuid.New().String(),
				athleteID,
				rec.Type,
				rec.StartedAt,
				rec.DurationMinutes,
				deref(rec.AvgHeartRate),
				deref(rec.MaxHeartRate),
				0,
			)
			if rec.TrainingStress != nil {
				w.TrainingStress = *rec.TrainingStress
			}

			if err := ctx.WorkoutStorage.Add(ctx.Context(), w); err != nil {
				if errors.Is(err, workout.ErrWorkoutExists) {
					result.SkippedWorkouts++
					continue
				}
				return err
			}
			result.StoredWorkouts++
		}

		for _, rec := range batch.Health {
			if _, err := ctx.MetricStorage.GetByDate(ctx.Context(), athleteID, rec.Date); err == nil {
				result.SkippedMetrics++
				continue
			} else if !errors.Is(err, healthmetric.ErrMetricNotFound) {
				return err
			}

			m := healthmetric.New(
				uuid.New().String(),
				athleteID,
				rec.Date,
				toInt(rec.RestingHeartRate),
				rec.HRV,
				toInt(rec.SleepMinutes),
				rec.SleepScore,
				toInt(rec.Steps),
				rec.StressAvg,
			)

			if err := ctx.MetricStorage.Add(ctx.Context(), m); err != nil {
				if errors.Is(err, healthmetric.ErrMetricExists) {
					result.SkippedMetrics++
					continue
				}
				return err
			}
			result.StoredMetrics++
		}

		result.TrainingAccepted = len(batch.Training)

		return ctx.Commit()
	})
	return
}

// BuildRequest shapes an outbound fetch window for an athlete's linked
// device. The athlete must hold an active link.
func (s *Service) BuildRequest(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	kinds []syncdata.Kind,
	start, end time.Time,
) (req syncdata.Request, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		if _, err := ctx.LinkStorage.GetActiveByAthlete(ctx.Context(), athleteID); err != nil {
			if errors.Is(err, devicelink.ErrLinkNotFound) {
				return ErrNoActiveLink
			}
			return err
		}

		var err error
		req, err = syncdata.NewRequest(athleteID, kinds, start, end)
		return err
	})
	return
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func toInt(v *float64) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
