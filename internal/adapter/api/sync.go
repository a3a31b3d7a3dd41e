package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	"github.com/ratmirov/go_coach_backend/internal/app/syncapp"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/syncdata"
)

func (s *Server) MountSync() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	s.handler.POST("/sync/:user_id", s.IngestSyncBatch, loginRequired)
	s.handler.POST("/sync/:user_id/request", s.BuildSyncRequest, loginRequired)
}

func (s *Server) getSyncUoW() *unitofwork.UnitOfWork[*syncapp.AtomicContext] {
	return unitofwork.New[*syncapp.AtomicContext](
		s.db,
		syncapp.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type ingestReq struct {
	UserID     string                    `param:"user_id" validate:"required"`
	Activities []syncdata.ActivityRecord `json:"activities"`
	Health     []syncdata.HealthRecord   `json:"health"`
	Training   []syncdata.TrainingRecord `json:"training"`
}

func (s *Server) IngestSyncBatch(c echo.Context) error {
	var b ingestReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)
	if user.AccountID != b.UserID {
		return JsonError(c, http.StatusForbidden, "cannot sync for another user")
	}

	batch := syncdata.Batch{
		UserID:     b.UserID,
		Activities: b.Activities,
		Health:     b.Health,
		Training:   b.Training,
	}

	result, err := s.syncService.Ingest(c.Request().Context(), s.getSyncUoW(), b.UserID, batch)
	if err != nil {
		if errors.Is(err, syncapp.ErrNoActiveLink) {
			return JsonError(c, http.StatusForbidden, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	status := http.StatusOK
	if !result.Report.IsValid {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, result)
}

type buildRequestReq struct {
	UserID string    `param:"user_id" validate:"required"`
	Kinds  []string  `json:"kinds" validate:"omitempty,dive,oneof=activities health training"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

func (s *Server) BuildSyncRequest(c echo.Context) error {
	var b buildRequestReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)
	if user.AccountID != b.UserID {
		return JsonError(c, http.StatusForbidden, "cannot sync for another user")
	}

	if s.maxSyncWindow > 0 && b.End.Sub(b.Start) > s.maxSyncWindow {
		return JsonError(c, http.StatusBadRequest, "requested window is too wide")
	}

	kinds := make([]syncdata.Kind, 0, len(b.Kinds))
	for _, k := range b.Kinds {
		kinds = append(kinds, syncdata.Kind(k))
	}

	req, err := s.syncService.BuildRequest(c.Request().Context(), s.getSyncUoW(), b.UserID, kinds, b.Start, b.End)
	if err != nil {
		if errors.Is(err, syncapp.ErrNoActiveLink) {
			return JsonError(c, http.StatusForbidden, err)
		}
		if errors.Is(err, syncdata.ErrInvalidRange) || errors.Is(err, syncdata.ErrInvalidDataType) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, req)
}
