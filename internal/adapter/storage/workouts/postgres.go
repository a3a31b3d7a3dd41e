package workoutstorage

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/leporo/sqlf"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage/pgutil"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/workout"
	"github.com/samber/lo"
)

type PostgresStorage struct {
	base *pgutil.BasePostgresStorage[*workout.Workout]
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		base: pgutil.NewBasePostgresStorage[*workout.Workout](db),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, w *workout.Workout) error {
	q := sqlf.InsertInto("workouts").
		Set("workout_id", w.WorkoutID).
		Set("athlete_id", w.AthleteID).
		Set("sport", w.Sport).
		Set("started_at", w.StartedAt).
		Set("duration_minutes", w.DurationMinutes).
		Set("avg_heart_rate", w.AvgHeartRate).
		Set("max_heart_rate", w.MaxHeartRate).
		Set("threshold_hr", w.ThresholdHR).
		Set("training_stress", w.TrainingStress).
		Set("created_at", w.CreatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "workouts_pkey") {
			return workout.ErrWorkoutExists
		}
		if pgutil.ViolatesConstraint(err, "workouts_athlete_started_key") {
			return workout.ErrWorkoutExists
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(w.WorkoutID, w)

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[string]*workout.Workout, error) {
	var tmp workout.Workout

	q := sqlf.From("workouts w").
		Select("w.workout_id").To(&tmp.WorkoutID).
		Select("w.athlete_id").To(&tmp.AthleteID).
		Select("w.sport").To(&tmp.Sport).
		Select("w.started_at").To(&tmp.StartedAt).
		Select("w.duration_minutes").To(&tmp.DurationMinutes).
		Select("w.avg_heart_rate").To(&tmp.AvgHeartRate).
		Select("w.max_heart_rate").To(&tmp.MaxHeartRate).
		Select("w.threshold_hr").To(&tmp.ThresholdHR).
		Select("w.training_stress").To(&tmp.TrainingStress).
		Select("w.created_at").To(&tmp.CreatedAt)

	q = modify(q)

	result := make(map[string]*workout.Workout)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		w := tmp
		result[tmp.WorkoutID] = &w
	})

	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}

	return nil, storage.InternalError(err)
}

func (s *PostgresStorage) GetByID(ctx context.Context, workoutID string) (*workout.Workout, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("w.workout_id = ?", workoutID)
	})
	return pgutil.PeekOrErr(result, err, workout.ErrWorkoutNotFound)
}

func (s *PostgresStorage) ListByAthlete(
	ctx context.Context,
	athleteID string,
	limit, offset int,
) ([]*workout.Workout, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("w.athlete_id = ?", athleteID).
			OrderBy("w.started_at DESC").
			Limit(limit).
			Offset(offset)
	})
	if err != nil {
		return nil, err
	}
	workouts := lo.Values(result)
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].StartedAt.After(workouts[j].StartedAt)
	})
	return workouts, nil
}

// TotalStressSince sums the stored stress scores of sessions started at
// or after the given time.
func (s *PostgresStorage) TotalStressSince(ctx context.Context, athleteID string, since time.Time) (float64, error) {
	var total sql.NullFloat64

	q := sqlf.From("workouts w").
		Select("COALESCE(SUM(w.training_stress), 0)").To(&total).
		Where("w.athlete_id = ? AND w.started_at >= ?", athleteID, since)

	if err := q.QueryRowAndClose(ctx, s.base.DB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, storage.InternalError(err)
	}

	return total.Float64, nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
