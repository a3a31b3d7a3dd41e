package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	trainingservice "github.com/ratmirov/go_coach_backend/internal/app/training"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
	"github.com/ratmirov/go_coach_backend/internal/domain/workout"
	"github.com/samber/lo"
)

func (s *Server) MountTraining() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	s.handler.POST("/workouts/:workout_id", s.RecordWorkout, loginRequired)
	s.handler.GET("/workouts/recovery", s.GetRecovery, loginRequired)
	s.handler.GET("/workouts/:workout_id", s.GetWorkout, loginRequired)
	s.handler.GET("/workouts", s.ListWorkouts, loginRequired)
}

func (s *Server) getTrainingUoW() *unitofwork.UnitOfWork[*trainingservice.AtomicContext] {
	return unitofwork.New[*trainingservice.AtomicContext](
		s.db,
		trainingservice.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type recordWorkoutReq struct {
	WorkoutID       string    `param:"workout_id" validate:"required,uuid"`
	Sport           string    `json:"sport" validate:"required"`
	StartedAt       time.Time `json:"started_at" validate:"required"`
	DurationMinutes float64   `json:"duration_minutes" validate:"required,gt=0"`
	AvgHeartRate    float64   `json:"avg_heart_rate" validate:"omitempty,gt=0"`
	MaxHeartRate    float64   `json:"max_heart_rate" validate:"omitempty,gt=0"`
	ThresholdHR     float64   `json:"threshold_hr" validate:"omitempty,gt=0"`
}

type workoutResp struct {
	WorkoutID       string    `json:"workout_id"`
	AthleteID       string    `json:"athlete_id"`
	Sport           string    `json:"sport"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes float64   `json:"duration_minutes"`
	AvgHeartRate    float64   `json:"avg_heart_rate"`
	MaxHeartRate    float64   `json:"max_heart_rate"`
	TrainingStress  float64   `json:"training_stress"`
}

func toWorkoutResp(w *workout.Workout) workoutResp {
	return workoutResp{
		WorkoutID:       w.WorkoutID,
		AthleteID:       w.AthleteID,
		Sport:           w.Sport,
		StartedAt:       w.StartedAt,
		DurationMinutes: w.DurationMinutes,
		AvgHeartRate:    w.AvgHeartRate,
		MaxHeartRate:    w.MaxHeartRate,
		TrainingStress:  w.TrainingStress,
	}
}

func (s *Server) RecordWorkout(c echo.Context) error {
	var b recordWorkoutReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	w, err := s.trainingService.RecordWorkout(
		c.Request().Context(),
		s.getTrainingUoW(),
		b.WorkoutID,
		user.AccountID,
		trainingservice.WorkoutParams{
			Sport:           b.Sport,
			StartedAt:       b.StartedAt,
			DurationMinutes: b.DurationMinutes,
			AvgHeartRate:    b.AvgHeartRate,
			MaxHeartRate:    b.MaxHeartRate,
			ThresholdHR:     b.ThresholdHR,
		},
	)
	if err != nil {
		if errors.Is(err, workout.ErrWorkoutExists) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, toWorkoutResp(w))
}

type getWorkoutReq struct {
	WorkoutID string `param:"workout_id" validate:"required"`
}

func (s *Server) GetWorkout(c echo.Context) error {
	var b getWorkoutReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	w, err := s.trainingService.GetWorkoutByID(c.Request().Context(), s.getTrainingUoW(), b.WorkoutID)
	if err != nil {
		if errors.Is(err, workout.ErrWorkoutNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toWorkoutResp(w))
}

type listWorkoutsReq struct {
	Limit  int `query:"limit" validate:"omitempty,gt=0,lte=100"`
	Offset int `query:"offset" validate:"omitempty,gte=0"`
}

type listWorkoutsResp struct {
	Workouts []workoutResp `json:"workouts"`
}

func (s *Server) ListWorkouts(c echo.Context) error {
	var b listWorkoutsReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}
	if b.Limit == 0 {
		b.Limit = 30
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	workouts, err := s.trainingService.ListWorkouts(
		c.Request().Context(),
		s.getTrainingUoW(),
		user.AccountID,
		b.Limit,
		b.Offset,
	)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, listWorkoutsResp{
		Workouts: lo.Map(workouts, func(w *workout.Workout, _ int) workoutResp {
			return toWorkoutResp(w)
		}),
	})
}

func (s *Server) GetRecovery(c echo.Context) error {
	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	estimate, err := s.trainingService.Recovery(c.Request().Context(), s.getTrainingUoW(), user.AccountID)
	if err != nil {
		if errors.Is(err, athlete.ErrProfileNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, estimate)
}
