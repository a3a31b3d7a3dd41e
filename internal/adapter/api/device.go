package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	deviceservice "github.com/ratmirov/go_coach_backend/internal/app/device"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/devicelink"
	"github.com/samber/lo"
)

func (s *Server) MountDevices() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	s.handler.POST("/devices/:link_id", s.CreateDeviceLink, loginRequired)
	s.handler.POST("/devices/activate", s.ActivateDeviceLink)
	s.handler.POST("/devices/:link_id/revoke", s.RevokeDeviceLink, loginRequired)
	s.handler.GET("/devices", s.ListDeviceLinks, loginRequired)
}

func (s *Server) getDevicesUoW() *unitofwork.UnitOfWork[*deviceservice.AtomicContext] {
	return unitofwork.New[*deviceservice.AtomicContext](
		s.db,
		deviceservice.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type createLinkReq struct {
	LinkID   string `param:"link_id" validate:"required,uuid"`
	Provider string `json:"provider" validate:"required"`
}

type linkResp struct {
	LinkID     string     `json:"link_id"`
	AthleteID  string     `json:"athlete_id"`
	Provider   string     `json:"provider"`
	Secret     string     `json:"secret,omitempty"`
	ValidUntil time.Time  `json:"valid_until"`
	Active     bool       `json:"active"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
}

func toLinkResp(l *devicelink.Link, withSecret bool) linkResp {
	resp := linkResp{
		LinkID:     string(l.LinkID),
		AthleteID:  l.AthleteID,
		Provider:   l.Provider,
		ValidUntil: l.ValidUntil,
		Active:     l.IsActive(),
		RevokedAt:  l.RevokedAt,
	}
	if withSecret {
		resp.Secret = l.Secret
	}
	return resp
}

func (s *Server) CreateDeviceLink(c echo.Context) error {
	var b createLinkReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	l, err := s.deviceService.CreateLink(
		c.Request().Context(),
		s.getDevicesUoW(),
		devicelink.LinkID(b.LinkID),
		user.AccountID,
		b.Provider,
	)
	if err != nil {
		if errors.Is(err, devicelink.ErrLinkExists) {
			return JsonError(c, http.StatusBadRequest, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	// the secret is shown once, at creation
	return c.JSON(http.StatusCreated, toLinkResp(l, true))
}

type activateLinkReq struct {
	Secret string `json:"secret" validate:"required"`
}

func (s *Server) ActivateDeviceLink(c echo.Context) error {
	var b activateLinkReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	l, err := s.deviceService.Activate(c.Request().Context(), s.getDevicesUoW(), b.Secret)
	if err != nil {
		switch {
		case errors.Is(err, devicelink.ErrLinkNotFound),
			errors.Is(err, devicelink.ErrInvalidSecret),
			errors.Is(err, devicelink.ErrSecretExpired):
			return JsonError(c, http.StatusUnauthorized, "invalid or expired pairing secret")
		case errors.Is(err, devicelink.ErrAlreadyActivated),
			errors.Is(err, devicelink.ErrLinkRevoked):
			return JsonError(c, http.StatusConflict, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, toLinkResp(l, false))
}

type revokeLinkReq struct {
	LinkID string `param:"link_id" validate:"required"`
}

func (s *Server) RevokeDeviceLink(c echo.Context) error {
	var b revokeLinkReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	err := s.deviceService.Revoke(c.Request().Context(), s.getDevicesUoW(), devicelink.LinkID(b.LinkID))
	if err != nil {
		if errors.Is(err, devicelink.ErrLinkNotFound) {
			return JsonError(c, http.StatusNotFound, err)
		}
		if errors.Is(err, devicelink.ErrLinkRevoked) {
			return JsonError(c, http.StatusConflict, err)
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type listLinksResp struct {
	Links []linkResp `json:"links"`
}

func (s *Server) ListDeviceLinks(c echo.Context) error {
	user := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	links, err := s.deviceService.ListByAthlete(c.Request().Context(), s.getDevicesUoW(), user.AccountID)
	if err != nil {
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, listLinksResp{
		Links: lo.Map(links, func(l *devicelink.Link, _ int) linkResp {
			return toLinkResp(l, false)
		}),
	})
}
