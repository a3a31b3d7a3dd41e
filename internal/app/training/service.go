package trainingservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
	"github.com/ratmirov/go_coach_backend/internal/domain/workout"
)

// recoveryLoadWindow is how far back training stress counts toward the
// recovery estimate.
const recoveryLoadWindow = 7 * 24 * time.Hour

type Service struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

type WorkoutParams struct {
	Sport           string
	StartedAt       time.Time
	DurationMinutes float64
	AvgHeartRate    float64
	MaxHeartRate    float64
	ThresholdHR     float64
}

func (s *Service) RecordWorkout(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	workoutID, athleteID string,
	params WorkoutParams,
) (w *workout.Workout, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		w = workout.New(
			workoutID,
			athleteID,
			params.Sport,
			params.StartedAt,
			params.DurationMinutes,
			params.AvgHeartRate,
			params.MaxHeartRate,
			params.ThresholdHR,
		)

		if err := ctx.WorkoutStorage.Add(ctx.Context(), w); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) GetWorkoutByID(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	workoutID string,
) (w *workout.Workout, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		w, err = ctx.WorkoutStorage.GetByID(ctx.Context(), workoutID)
		return err
	})
	return
}

func (s *Service) ListWorkouts(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	limit, offset int,
) (workouts []*workout.Workout, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		workouts, err = ctx.WorkoutStorage.ListByAthlete(ctx.Context(), athleteID, limit, offset)
		return err
	})
	return
}

// RecoveryEstimate describes how long the athlete should rest before the
// next hard session given the recent training load.
type RecoveryEstimate struct {
	TrainingLoad float64 `json:"training_load"`
	Hours        int     `json:"recovery_hours"`
	ReadyAt      string  `json:"ready_at"`
}

func (s *Service) Recovery(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
) (estimate RecoveryEstimate, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		since := time.Now().UTC().Add(-recoveryLoadWindow)
		load, err := ctx.WorkoutStorage.TotalStressSince(ctx.Context(), athleteID, since)
		if err != nil {
			return err
		}

		hours := calc.RecoveryHours(load, a.FitnessScore, a.Age)
		estimate = RecoveryEstimate{
			TrainingLoad: load,
			Hours:        hours,
			ReadyAt:      time.Now().UTC().Add(time.Duration(hours) * time.Hour).Format(time.RFC3339),
		}
		return nil
	})
	return
}
