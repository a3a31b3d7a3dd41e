package api

import (
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	athleteservice "github.com/ratmirov/go_coach_backend/internal/app/athlete"
	deviceservice "github.com/ratmirov/go_coach_backend/internal/app/device"
	goalservice "github.com/ratmirov/go_coach_backend/internal/app/goal"
	"github.com/ratmirov/go_coach_backend/internal/app/syncapp"
	trainingservice "github.com/ratmirov/go_coach_backend/internal/app/training"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	wellnessservice "github.com/ratmirov/go_coach_backend/internal/app/wellness"
)

type Option func(*Server)

func Addr(host string, port int) Option {
	return func(s *Server) {
		s.addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

func Logger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

func DBContext(db storage.DB) Option {
	return func(s *Server) {
		s.db = db
	}
}

func AccountService(service *accountapp.Service) Option {
	return func(s *Server) {
		s.accountService = service
	}
}

func AthleteService(service *athleteservice.Service) Option {
	return func(s *Server) {
		s.athleteService = service
	}
}

func WellnessService(service *wellnessservice.Service) Option {
	return func(s *Server) {
		s.wellnessService = service
	}
}

func TrainingService(service *trainingservice.Service) Option {
	return func(s *Server) {
		s.trainingService = service
	}
}

func GoalService(service *goalservice.Service) Option {
	return func(s *Server) {
		s.goalService = service
	}
}

func DeviceService(service *deviceservice.Service) Option {
	return func(s *Server) {
		s.deviceService = service
	}
}

func SyncService(service *syncapp.Service) Option {
	return func(s *Server) {
		s.syncService = service
	}
}

func MessageBus(bus unitofwork.MessageBus) Option {
	return func(s *Server) {
		s.msgBus = bus
	}
}

// SyncWindow caps how wide a sync request's date range may be.
func SyncWindow(maxDays int) Option {
	return func(s *Server) {
		s.maxSyncWindow = time.Duration(maxDays) * 24 * time.Hour
	}
}
