package goalstorage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"

	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage/pgutil"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/goal"
	"github.com/samber/lo"
)

type PostgresStorage struct {
	base   *pgutil.BasePostgresStorage[*goal.Goal]
	logger *slog.Logger
}

func NewPostgresStorage(db storage.DBContext, logger *slog.Logger) *PostgresStorage {
	return &PostgresStorage{
		base:   pgutil.NewBasePostgresStorage[*goal.Goal](db),
		logger: logger,
	}
}

func (s *PostgresStorage) Add(ctx context.Context, g *goal.Goal) error {
	q := sqlf.InsertInto("goals").
		Set("goal_id", g.GoalID).
		Set("athlete_id", g.AthleteID).
		Set("kind", g.Kind).
		Set("description", g.Description).
		Set("target_value", g.TargetValue).
		Set("target_unit", g.TargetUnit).
		Set("deadline", g.Deadline).
		Set("progress", g.Progress).
		Set("status", g.Status).
		Set("created_at", g.CreatedAt).
		Set("updated_at", g.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "goals_pkey") {
			return goal.ErrGoalExists
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(string(g.GoalID), g)

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[goal.GoalID]*goal.Goal, error) {
	var tmp goal.Goal

	q := sqlf.From("goals g").
		Select("g.goal_id").To(&tmp.GoalID).
		Select("g.athlete_id").To(&tmp.AthleteID).
		Select("g.kind").To(&tmp.Kind).
		Select("g.description").To(&tmp.Description).
		Select("g.target_value").To(&tmp.TargetValue).
		Select("g.target_unit").To(&tmp.TargetUnit).
		Select("g.deadline").To(&tmp.Deadline).
		Select("g.progress").To(&tmp.Progress).
		Select("g.status").To(&tmp.Status).
		Select("g.created_at").To(&tmp.CreatedAt).
		Select("g.updated_at").To(&tmp.UpdatedAt)

	q = modify(q)

	goals := make(map[goal.GoalID]*goal.Goal)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		g := tmp
		goals[tmp.GoalID] = &g
	})

	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return goals, nil
	}

	return nil, storage.InternalError(err)
}

func (s *PostgresStorage) GetByID(ctx context.Context, goalID goal.GoalID) (*goal.Goal, error) {
	goals, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("g.goal_id = ?", goalID)
	})

	g, err := pgutil.PeekOrErr(goals, err, goal.ErrGoalNotFound)
	if err != nil {
		return nil, err
	}
	s.base.MarkSeen(string(g.GoalID), g)
	return g, nil
}

func (s *PostgresStorage) ListByAthlete(
	ctx context.Context,
	athleteID string,
	limit, offset int,
) ([]*goal.Goal, error) {
	goals, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("g.athlete_id = ?", athleteID).
			OrderBy("g.created_at DESC").
			Limit(limit).
			Offset(offset)
	})
	if err != nil {
		return nil, err
	}
	result := lo.Values(goals)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *PostgresStorage) Persist(ctx context.Context, g *goal.Goal) error {
	dbState, err := s.GetByID(ctx, g.GoalID)
	if err != nil {
		return err
	}

	log, _ := diff.Diff(dbState, g)
	if len(log) == 0 {
		return nil
	}

	q := sqlf.Update("goals").Where("goal_id = ?", g.GoalID)
	q = pgutil.MakeUpdateQuery(q, log)

	res, err := q.ExecAndClose(ctx, s.base.DB)
	return pgutil.AssertUpdated(res, err, goal.ErrGoalNotFound)
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
