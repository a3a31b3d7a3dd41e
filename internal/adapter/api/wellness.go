package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	wellnessservice "github.com/ratmirov/go_coach_backend/internal/app/wellness"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
	"github.com/ratmirov/go_coach_backend/internal/domain/healthmetric"
	"github.com/samber/lo"
)

func (s *Server) MountWellness() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	s.handler.POST("/wellness/:metric_id", s.RecordWellnessMetric, loginRequired)
	s.handler.GET("/wellness/hrv/baseline", s.GetHRVBaseline, loginRequired)
	s.handler.GET("/wellness/:metric_id", s.GetWellnessMetric, loginRequired)
	s.handler.GET("/wellness", s.ListWellnessMetrics, loginRequired)
}

func (s *Server) getWellnessUoW() *unitofwork.UnitOfWork[*wellnessservice.AtomicContext] {
	return unitofwork.New[*wellnessservice.AtomicContext](
		s.db,
		wellnessservice.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type recordMetricReq struct {
	MetricID         string   `param:"metric_id" validate:"required,uuid"`
	Date             string   `json:"date" validate:"required,datetime=2006-01-02"`
	RestingHeartRate *int     `json:"resting_heart_rate" validate:"omitempty,gt=0"`
	HRV              *float64 `json:"hrv" validate:"omitempty,gt=0"`
	SleepMinutes     *int     `json:"sleep_minutes" validate:"omitempty,gte=0"`
	SleepScore       *float64 `json:"sleep_score" validate:"omitempty,gte=0,lte=100"`
	Steps            *int     `json:"steps" validate:"omitempty,gte=0"`
	StressAvg        *float64 `json:"stress_avg" validate:"omitempty,gte=0,lte=100"`
}

type wellnessMetricResp struct {
	MetricID         string   `json:"metric_id"`
	AthleteID        string   `json:"athlete_id"`
	Date             string   `json:"date"`
	RestingHeartRate *int     `json:"resting_heart_rate,omitempty"`
	HRV              *float64 `json:"hrv,omitempty"`
	SleepMinutes     *int     `json:"sleep_minutes,omitempty"`
	SleepScore       *float64 `json:"sleep_score,omitempty"`
	Steps            *int     `json:"steps,omitempty"`
	StressAvg        *float64 `json:"stress_avg,omitempty"`
}

func toWellnessMetricResp(m *healthmetric.Metric) wellnessMetricResp {
	return wellnessMetricResp{
		MetricID:         m.MetricID,
		AthleteID:        m.AthleteID,
		Date:             m.Date.Format("2006-01-02"),
		RestingHeartRate: m.RestingHeartRate,
		HRV:              m.HRV,
		SleepMinutes:     m.SleepMinutes,
		SleepScore:       m.SleepScore,
		Steps:            m.Steps,
		StressAvg:        m.StressAvg,
	}
}

func (s *Server) RecordWellnessMetric(c echo.Context) error {
	var b recordMetricReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return JsonError(c, http.StatusBadRequest, "invalid date")
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	m, err := s.wellnessService.RecordMetric(
		c.Request().Context(),
		s.getWellnessUoW(),
		b.MetricID,
		user.AccountID,
		wellnessservice.MetricParams{
			Date:             date,
			RestingHeartRate: b.RestingHeartRate,
			HRV:              b.HRV,
			SleepMinutes:     b.SleepMinutes,
			SleepScore:       b.SleepScore,
			Steps:            b.Steps,
			StressAvg:        b.StressAvg,
		},
	)
	if err != nil {
		if errors.Is(err, healthmetric.ErrMetricExists) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusCreated, toWellnessMetricResp(m))
}

type getMetricReq struct {
	MetricID string `param:"metric_id" validate:"required"`
}

func (s *Server) GetWellnessMetric(c echo.Context) error {
	var b getMetricReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	m, err := s.wellnessService.GetMetricByID(c.Request().Context(), s.getWellnessUoW(), b.MetricID)
	if err != nil {
		if errors.Is(err, healthmetric.ErrMetricNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toWellnessMetricResp(m))
}

type listMetricsReq struct {
	Limit  int `query:"limit" validate:"omitempty,gt=0,lte=100"`
	Offset int `query:"offset" validate:"omitempty,gte=0"`
}

type listMetricsResp struct {
	Metrics []wellnessMetricResp `json:"metrics"`
}

func (s *Server) ListWellnessMetrics(c echo.Context) error {
	var b listMetricsReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}
	if b.Limit == 0 {
		b.Limit = 30
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	metrics, err := s.wellnessService.ListMetrics(
		c.Request().Context(),
		s.getWellnessUoW(),
		user.AccountID,
		b.Limit,
		b.Offset,
	)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, listMetricsResp{
		Metrics: lo.Map(metrics, func(m *healthmetric.Metric, _ int) wellnessMetricResp {
			return toWellnessMetricResp(m)
		}),
	})
}

type hrvBaselineReq struct {
	WindowDays int `query:"window_days" validate:"omitempty,gt=0,lte=90"`
}

func (s *Server) GetHRVBaseline(c echo.Context) error {
	var b hrvBaselineReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	summary, err := s.wellnessService.HRVBaseline(
		c.Request().Context(),
		s.getWellnessUoW(),
		user.AccountID,
		b.WindowDays,
	)
	if err != nil {
		if errors.Is(err, calc.ErrInsufficientData) {
			return JsonError(c, http.StatusUnprocessableEntity, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, summary)
}
