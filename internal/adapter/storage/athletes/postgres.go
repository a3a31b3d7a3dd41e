package athletestorage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage/pgutil"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
)

type PostgresStorage struct {
	base   *pgutil.BasePostgresStorage[*athlete.Athlete]
	logger *slog.Logger
}

func NewPostgresStorage(db storage.DBContext, logger *slog.Logger) *PostgresStorage {
	return &PostgresStorage{
		base:   pgutil.NewBasePostgresStorage[*athlete.Athlete](db),
		logger: logger,
	}
}

func (s *PostgresStorage) Add(ctx context.Context, a *athlete.Athlete) error {
	q := sqlf.InsertInto("athletes").
		Set("athlete_id", a.AthleteID).
		Set("age", a.Age).
		Set("sex", a.Sex).
		Set("height_cm", a.HeightCm).
		Set("weight_kg", a.WeightKg).
		Set("resting_hr", a.RestingHR).
		Set("max_hr", a.MaxHR).
		Set("activity_level", a.ActivityLevel).
		Set("goal", a.Goal).
		Set("fitness_score", a.FitnessScore).
		Set("created_at", a.CreatedAt).
		Set("updated_at", a.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "athletes_pkey") {
			return athlete.ErrProfileExists
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(a.AthleteID, a)

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[string]*athlete.Athlete, error) {
	var tmp athlete.Athlete

	q := sqlf.From("athletes a").
		Select("a.athlete_id").To(&tmp.AthleteID).
		Select("a.age").To(&tmp.Age).
		Select("a.sex").To(&tmp.Sex).
		Select("a.height_cm").To(&tmp.HeightCm).
		Select("a.weight_kg").To(&tmp.WeightKg).
		Select("a.resting_hr").To(&tmp.RestingHR).
		Select("a.max_hr").To(&tmp.MaxHR).
		Select("a.activity_level").To(&tmp.ActivityLevel).
		Select("a.goal").To(&tmp.Goal).
		Select("a.fitness_score").To(&tmp.FitnessScore).
		Select("a.created_at").To(&tmp.CreatedAt).
		Select("a.updated_at").To(&tmp.UpdatedAt)

	q = modify(q)

	athletes := make(map[string]*athlete.Athlete)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		athletes[tmp.AthleteID] = &athlete.Athlete{
			AthleteID:     tmp.AthleteID,
			Age:           tmp.Age,
			Sex:           tmp.Sex,
			HeightCm:      tmp.HeightCm,
			WeightKg:      tmp.WeightKg,
			RestingHR:     tmp.RestingHR,
			MaxHR:         tmp.MaxHR,
			ActivityLevel: tmp.ActivityLevel,
			Goal:          tmp.Goal,
			FitnessScore:  tmp.FitnessScore,
			CreatedAt:     tmp.CreatedAt,
			UpdatedAt:     tmp.UpdatedAt,
		}
	})

	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storage.InternalError(err)
	}

	return athletes, nil
}

func (s *PostgresStorage) GetByID(ctx context.Context, athleteID string) (*athlete.Athlete, error) {
	athletes, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("a.athlete_id = ?", athleteID)
	})

	a, err := pgutil.PeekOrErr(athletes, err, athlete.ErrProfileNotFound)
	if err != nil {
		return nil, err
	}
	s.base.MarkSeen(a.AthleteID, a)
	return a, nil
}

func (s *PostgresStorage) Persist(ctx context.Context, a *athlete.Athlete) error {
	dbState, err := s.GetByID(ctx, a.AthleteID)
	if err != nil {
		return err
	}

	log, _ := diff.Diff(dbState, a)
	if len(log) == 0 {
		return nil
	}

	q := sqlf.Update("athletes").Where("athlete_id = ?", a.AthleteID)
	q = pgutil.MakeUpdateQuery(q, log)

	res, err := q.ExecAndClose(ctx, s.base.DB)
	return pgutil.AssertUpdated(res, err, athlete.ErrProfileNotFound)
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
