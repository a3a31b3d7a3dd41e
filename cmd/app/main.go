package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/leporo/sqlf"
	"github.com/ratmirov/go_coach_backend/internal/adapter/api"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	athleteservice "github.com/ratmirov/go_coach_backend/internal/app/athlete"
	deviceservice "github.com/ratmirov/go_coach_backend/internal/app/device"
	goalservice "github.com/ratmirov/go_coach_backend/internal/app/goal"
	"github.com/ratmirov/go_coach_backend/internal/app/messagebus"
	"github.com/ratmirov/go_coach_backend/internal/app/syncapp"
	trainingservice "github.com/ratmirov/go_coach_backend/internal/app/training"
	wellnessservice "github.com/ratmirov/go_coach_backend/internal/app/wellness"
	"github.com/ratmirov/go_coach_backend/internal/config"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/account"
	"github.com/ratmirov/go_coach_backend/internal/domain/athlete"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)
	logger := initLogger(cfg)

	bus := messagebus.New(logger)
	bus.Register(account.EventCreated, func(event domain.Event) error {
		logger.Info("account created", "type", event.Type())
		return nil
	})
	bus.Register(account.EventLogin, func(event domain.Event) error {
		logger.Info("account logged in", "type", event.Type())
		return nil
	})
	bus.Register(athlete.EventProfileCreated, func(event domain.Event) error {
		logger.Info("athlete profile created", "type", event.Type())
		return nil
	})

	sqlf.SetDialect(sqlf.PostgreSQL)

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	authorizer := &accountapp.Authorizer{
		Cost:             bcrypt.DefaultCost,
		Secret:           cfg.JWT.Secret,
		AccessTokenTTL:   cfg.JWT.AccessTokenTTL,
		AuthorizationTTL: cfg.JWT.RefreshTokenTTL,
	}

	server := api.NewServer(
		api.Addr(cfg.Server.Host, cfg.Server.Port),
		api.Logger(logger),
		api.AccountService(accountapp.NewService(authorizer, logger)),
		api.AthleteService(athleteservice.New(logger)),
		api.WellnessService(wellnessservice.New(logger)),
		api.TrainingService(trainingservice.New(logger)),
		api.GoalService(goalservice.New(logger)),
		api.DeviceService(deviceservice.New(logger)),
		api.SyncService(syncapp.New(logger)),
		api.SyncWindow(cfg.Sync.MaxWindowDays),
		api.DBContext(storage.DB{DB: db}),
		api.MessageBus(bus),
	)

	ctx := context.Background()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error)

	go func() {
		defer close(errCh)
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server was not shutdown gracefully", "error", err)
		}
	case err := <-errCh:
		if err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("server closed with unexpected error", "error", err)
			}
		}
	}

	bus.Close()
	logger.Info("server shutdown")
}

func initLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.App.Env {
	case config.Development:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		})
	case config.Production:
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelInfo,
		})
	default:
		panic("invalid env")
	}

	return slog.New(handler)
}
