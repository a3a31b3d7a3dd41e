package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	athleteservice "github.com/ratmirov/go_coach_backend/internal/app/athlete"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
)

func (s *Server) MountAthletes() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	s.handler.PUT("/athletes/:user_id", s.PutAthlete, loginRequired)
	s.handler.GET("/athletes/:user_id", s.GetAthlete, loginRequired)
	s.handler.GET("/athletes/:user_id/zones", s.GetZones, loginRequired)
	s.handler.GET("/athletes/:user_id/vo2max", s.GetVO2Max, loginRequired)
	s.handler.GET("/athletes/:user_id/caloric-needs", s.GetCaloricNeeds, loginRequired)
}

func (s *Server) getAthletesUoW() *unitofwork.UnitOfWork[*athleteservice.AtomicContext] {
	return unitofwork.New[*athleteservice.AtomicContext](
		s.db,
		athleteservice.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type putAthleteReq struct {
	UserID        string  `param:"user_id" validate:"required"`
	Age           int     `json:"age" validate:"required,gt=0,lte=120"`
	Sex           string  `json:"sex" validate:"required,oneof=male female"`
	HeightCm      float64 `json:"height_cm" validate:"required,gt=0"`
	WeightKg      float64 `json:"weight_kg" validate:"required,gt=0"`
	RestingHR     int     `json:"resting_hr" validate:"required,gt=0"`
	MaxHR         int     `json:"max_hr" validate:"required,gt=0"`
	ActivityLevel string  `json:"activity_level" validate:"omitempty,oneof=sedentary lightly_active moderately_active very_active extremely_active"`
	Goal          string  `json:"goal" validate:"omitempty,oneof=lose_weight lose_weight_fast maintain gain_weight gain_muscle"`
	FitnessScore  int     `json:"fitness_score" validate:"gte=0,lte=100"`
}

type athleteResp struct {
	AthleteID     string  `json:"athlete_id"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	RestingHR     int     `json:"resting_hr"`
	MaxHR         int     `json:"max_hr"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	FitnessScore  int     `json:"fitness_score"`
}

func toAthleteResp(a *athlete.Athlete) athleteResp {
	return athleteResp{
		AthleteID:     a.AthleteID,
		Age:           a.Age,
		Sex:           string(a.Sex),
		HeightCm:      a.HeightCm,
		WeightKg:      a.WeightKg,
		RestingHR:     a.RestingHR,
		MaxHR:         a.MaxHR,
		ActivityLevel: string(a.ActivityLevel),
		Goal:          string(a.Goal),
		FitnessScore:  a.FitnessScore,
	}
}

func (s *Server) PutAthlete(c echo.Context) error {
	var b putAthleteReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	if b.ActivityLevel == "" {
		b.ActivityLevel = string(calc.ModeratelyActive)
	}
	if b.Goal == "" {
		b.Goal = string(calc.GoalMaintain)
	}

	params := athleteservice.ProfileParams{
		Age:           b.Age,
		Sex:           calc.Sex(b.Sex),
		HeightCm:      b.HeightCm,
		WeightKg:      b.WeightKg,
		RestingHR:     b.RestingHR,
		MaxHR:         b.MaxHR,
		ActivityLevel: calc.ActivityLevel(b.ActivityLevel),
		Goal:          calc.Goal(b.Goal),
		FitnessScore:  b.FitnessScore,
	}

	ctx := c.Request().Context()

	a, err := s.athleteService.UpdateProfile(ctx, s.getAthletesUoW(), b.UserID, params)
	if errors.Is(err, athlete.ErrProfileNotFound) {
		a, err = s.athleteService.CreateProfile(ctx, s.getAthletesUoW(), b.UserID, params)
	}
	if err != nil {
		if errors.Is(err, calc.ErrInvalidProfile) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toAthleteResp(a))
}

type getAthleteReq struct {
	UserID string `param:"user_id" validate:"required"`
}

func (s *Server) GetAthlete(c echo.Context) error {
	var b getAthleteReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	a, err := s.athleteService.GetProfile(c.Request().Context(), s.getAthletesUoW(), b.UserID)
	if err != nil {
		if errors.Is(err, athlete.ErrProfileNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toAthleteResp(a))
}

type getZonesReq struct {
	UserID string `param:"user_id" validate:"required"`
	Method string `query:"method" validate:"omitempty,oneof=karvonen percentage"`
}

type getZonesResp struct {
	Method string     `json:"method"`
	Zones  calc.Zones `json:"zones"`
}

func (s *Server) GetZones(c echo.Context) error {
	var b getZonesReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	if b.Method == "" {
		b.Method = string(calc.MethodKarvonen)
	}

	zones, err := s.athleteService.Zones(
		c.Request().Context(),
		s.getAthletesUoW(),
		b.UserID,
		calc.ZoneMethod(b.Method),
	)
	if err != nil {
		if errors.Is(err, athlete.ErrProfileNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		if errors.Is(err, calc.ErrInvalidProfile) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, getZonesResp{Method: b.Method, Zones: zones})
}

type getVO2MaxResp struct {
	VO2Max float64 `json:"vo2max"`
}

func (s *Server) GetVO2Max(c echo.Context) error {
	var b getAthleteReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	estimate, err := s.athleteService.VO2Max(c.Request().Context(), s.getAthletesUoW(), b.UserID)
	if err != nil {
		if errors.Is(err, athlete.ErrProfileNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		if errors.Is(err, calc.ErrInvalidProfile) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, getVO2MaxResp{VO2Max: estimate})
}

func (s *Server) GetCaloricNeeds(c echo.Context) error {
	var b getAthleteReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	plan, err := s.athleteService.CaloricNeeds(c.Request().Context(), s.getAthletesUoW(), b.UserID)
	if err != nil {
		if errors.Is(err, athlete.ErrProfileNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		if errors.Is(err, calc.ErrInvalidProfile) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, plan)
}
