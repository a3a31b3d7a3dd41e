package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	athleteservice "github.com/ratmirov/go_coach_backend/internal/app/athlete"
	deviceservice "github.com/ratmirov/go_coach_backend/internal/app/device"
	goalservice "github.com/ratmirov/go_coach_backend/internal/app/goal"
	"github.com/ratmirov/go_coach_backend/internal/app/syncapp"
	trainingservice "github.com/ratmirov/go_coach_backend/internal/app/training"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	wellnessservice "github.com/ratmirov/go_coach_backend/internal/app/wellness"
	slogecho "github.com/samber/slog-echo"
)

type Server struct {
	handler         *echo.Echo
	logger          *slog.Logger
	addr            string
	db              storage.DB
	accountService  *accountapp.Service
	athleteService  *athleteservice.Service
	wellnessService *wellnessservice.Service
	trainingService *trainingservice.Service
	goalService     *goalservice.Service
	deviceService   *deviceservice.Service
	syncService     *syncapp.Service
	msgBus          unitofwork.MessageBus
	validator       *validator.Validate
	maxSyncWindow   time.Duration
}

func NewServer(opt ...Option) *Server {
	e := echo.New()

	e.Server.WriteTimeout = 10 * time.Second
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.IdleTimeout = 10 * time.Second
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.MaxHeaderBytes = 4096

	v := validator.New(validator.WithRequiredStructEnabled())

	s := &Server{
		handler:   e,
		validator: v,
	}

	for _, opt := range opt {
		opt(s)
	}

	e.Use(slogecho.NewWithConfig(s.logger, slogecho.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelInfo,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithSpanID:       true,
		WithTraceID:      true,
	}))
	s.Mount()
	return s
}

func (s *Server) Mount() {
	s.MountAccounts()
	s.MountAthletes()
	s.MountWellness()
	s.MountTraining()
	s.MountGoals()
	s.MountDevices()
	s.MountSync()
}

func (s *Server) Start() error {
	return s.handler.Start(s.addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.handler.Shutdown(ctx)
}

func (s *Server) bind(ctx echo.Context, i interface{}) error {
	if err := ctx.Bind(i); err != nil {
		return fmt.Errorf("bad request")
	}
	if err := s.validator.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return fmt.Errorf("bad request")
		}
		return fmt.Errorf("%s: %s", errs[0].Field(), errs[0].Error())

	}
	return nil
}
