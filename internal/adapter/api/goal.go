package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	goalservice "github.com/ratmirov/go_coach_backend/internal/app/goal"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/goal"
	"github.com/samber/lo"
)

func (s *Server) MountGoals() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	s.handler.POST("/goals/:goal_id", s.CreateGoal, loginRequired)
	s.handler.GET("/goals/:goal_id", s.GetGoal, loginRequired)
	s.handler.GET("/goals", s.ListGoals, loginRequired)
	s.handler.PATCH("/goals/:goal_id/progress", s.UpdateGoalProgress, loginRequired)
	s.handler.POST("/goals/:goal_id/abandon", s.AbandonGoal, loginRequired)
}

func (s *Server) getGoalsUoW() *unitofwork.UnitOfWork[*goalservice.AtomicContext] {
	return unitofwork.New[*goalservice.AtomicContext](
		s.db,
		goalservice.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type createGoalReq struct {
	GoalID      string     `param:"goal_id" validate:"required,uuid"`
	Kind        string     `json:"kind" validate:"required,oneof=lose_weight gain_muscle performance habit"`
	Description string     `json:"description" validate:"required"`
	TargetValue float64    `json:"target_value" validate:"required,gt=0"`
	TargetUnit  string     `json:"target_unit" validate:"required"`
	Deadline    *time.Time `json:"deadline"`
}

type goalResp struct {
	GoalID      string     `json:"goal_id"`
	AthleteID   string     `json:"athlete_id"`
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	TargetValue float64    `json:"target_value"`
	TargetUnit  string     `json:"target_unit"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Progress    float64    `json:"progress"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toGoalResp(g *goal.Goal) goalResp {
	return goalResp{
		GoalID:      string(g.GoalID),
		AthleteID:   g.AthleteID,
		Kind:        g.Kind,
		Description: g.Description,
		TargetValue: g.TargetValue,
		TargetUnit:  g.TargetUnit,
		Deadline:    g.Deadline,
		Progress:    g.Progress,
		Status:      string(g.Status),
		CreatedAt:   g.CreatedAt,
	}
}

func (s *Server) CreateGoal(c echo.Context) error {
	var b createGoalReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	g, err := s.goalService.CreateGoal(
		c.Request().Context(),
		s.getGoalsUoW(),
		goal.GoalID(b.GoalID),
		user.AccountID,
		b.Kind,
		b.Description,
		b.TargetValue,
		b.TargetUnit,
		b.Deadline,
	)
	if err != nil {
		if errors.Is(err, goal.ErrGoalExists) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, toGoalResp(g))
}

type getGoalReq struct {
	GoalID string `param:"goal_id" validate:"required"`
}

func (s *Server) GetGoal(c echo.Context) error {
	var b getGoalReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	g, err := s.goalService.GetByID(c.Request().Context(), s.getGoalsUoW(), goal.GoalID(b.GoalID))
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toGoalResp(g))
}

type listGoalsReq struct {
	Limit  int `query:"limit" validate:"omitempty,gt=0,lte=100"`
	Offset int `query:"offset" validate:"omitempty,gte=0"`
}

type listGoalsResp struct {
	Goals []goalResp `json:"goals"`
}

func (s *Server) ListGoals(c echo.Context) error {
	var b listGoalsReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}
	if b.Limit == 0 {
		b.Limit = 30
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	goals, err := s.goalService.ListByAthlete(
		c.Request().Context(),
		s.getGoalsUoW(),
		user.AccountID,
		b.Limit,
		b.Offset,
	)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, listGoalsResp{
		Goals: lo.Map(goals, func(g *goal.Goal, _ int) goalResp {
			return toGoalResp(g)
		}),
	})
}

type updateProgressReq struct {
	GoalID   string  `param:"goal_id" validate:"required"`
	Progress float64 `json:"progress" validate:"gte=0,lte=100"`
}

func (s *Server) UpdateGoalProgress(c echo.Context) error {
	var b updateProgressReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	g, err := s.goalService.UpdateProgress(
		c.Request().Context(),
		s.getGoalsUoW(),
		goal.GoalID(b.GoalID),
		b.Progress,
	)
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		if errors.Is(err, goal.ErrGoalClosed) {
			return JsonError(c, http.StatusConflict, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toGoalResp(g))
}

func (s *Server) AbandonGoal(c echo.Context) error {
	var b getGoalReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	err := s.goalService.Abandon(c.Request().Context(), s.getGoalsUoW(), goal.GoalID(b.GoalID))
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		if errors.Is(err, goal.ErrGoalClosed) {
			return JsonError(c, http.StatusConflict, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusNoContent)
}
