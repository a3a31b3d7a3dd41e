package athleteservice

import (
	"context"
	"log/slog"

	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
)

type Service struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

type ProfileParams struct {
	Age           int
	Sex           calc.Sex
	HeightCm      float64
	WeightKg      float64
	RestingHR     int
	MaxHR         int
	ActivityLevel calc.ActivityLevel
	Goal          calc.Goal
	FitnessScore  int
}

func (s *Service) CreateProfile(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	params ProfileParams,
) (a *athlete.Athlete, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		a, err = athlete.New(
			athleteID,
			params.Age,
			params.Sex,
			params.HeightCm,
			params.WeightKg,
			params.RestingHR,
			params.MaxHR,
			params.ActivityLevel,
			params.Goal,
			params.FitnessScore,
		)
		if err != nil {
			return err
		}

		if err := ctx.AthleteStorage.Add(ctx.Context(), a); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	params ProfileParams,
) (a *athlete.Athlete, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		a, err = ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		a.Age = params.Age
		a.Sex = params.Sex
		a.HeightCm = params.HeightCm
		a.WeightKg = params.WeightKg
		a.RestingHR = params.RestingHR
		a.MaxHR = params.MaxHR
		a.ActivityLevel = params.ActivityLevel
		a.Goal = params.Goal
		a.FitnessScore = params.FitnessScore

		if err := a.Profile().Check(); err != nil {
			return err
		}

		if err := ctx.AthleteStorage.Persist(ctx.Context(), a); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) GetProfile(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
) (a *athlete.Athlete, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		a, err = ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		return err
	})
	return
}

// Zones derives heart rate training zones from the stored profile.
func (s *Service) Zones(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
	method calc.ZoneMethod,
) (zones calc.Zones, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		zones, err = a.Profile().Zones(method)
		return err
	})
	return
}

func (s *Service) VO2Max(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
) (estimate float64, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		estimate, err = a.Profile().VO2Max()
		return err
	})
	return
}

func (s *Service) CaloricNeeds(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
) (plan calc.CaloricPlan, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AthleteStorage.GetByID(ctx.Context(), athleteID)
		if err != nil {
			return err
		}

		plan, err = a.Profile().CaloricNeeds(a.Goal)
		return err
	})
	return
}
