package goalservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/goal"
)

type Service struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) CreateGoal(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	goalID goal.GoalID,
	athleteID string,
	kind, description string,
	targetValue float64,
	targetUnit string,
	deadline *time.Time,
) (g *goal.Goal, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		g = goal.New(goalID, athleteID, kind, description, targetValue, targetUnit, deadline)
		if err := ctx.GoalStorage.Add(ctx.Context(), g); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) GetByID(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	goalID goal.GoalID,
) (g *goal.Goal, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		g, err = ctx.GoalStorage.GetByID(ctx.Context(), goalID)
		return err
	})
	return
}

func (s *Service) ListByAthlete(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	limit, offset int,
) (goals []*goal.Goal, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		goals, err = ctx.GoalStorage.ListByAthlete(ctx.Context(), athleteID, limit, offset)
		return err
	})
	return
}

func (s *Service) UpdateProgress(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	goalID goal.GoalID,
	progress float64,
) (g *goal.Goal, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		g, err = ctx.GoalStorage.GetByID(ctx.Context(), goalID)
		if err != nil {
			return err
		}

		if err := g.UpdateProgress(progress); err != nil {
			return err
		}

		if err := ctx.GoalStorage.Persist(ctx.Context(), g); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) Abandon(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	goalID goal.GoalID,
) error {
	return uow.Atomic(ctx, func(ctx *AtomicContext) error {
		g, err := ctx.GoalStorage.GetByID(ctx.Context(), goalID)
		if err != nil {
			return err
		}

		if err := g.Abandon(); err != nil {
			return err
		}

		if err := ctx.GoalStorage.Persist(ctx.Context(), g); err != nil {
			return err
		}

		return ctx.Commit()
	})
}
