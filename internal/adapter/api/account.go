package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
	accountapp "github.com/ratmirov/go_coach_backend/internal/app/account"
	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/account"
)

func (s *Server) MountAccounts() {
	loginRequired := LoginRequired(s.accountService.Authorizer)

	authRoutes := s.handler.Group("/auth")

	authRoutes.POST("/login", s.Login)
	authRoutes.POST("/sign-up", s.SignUp)
	authRoutes.POST("/refresh", s.Refresh)
	authRoutes.POST("/logout", s.Logout, loginRequired)
}

func (s *Server) getAccountsUoW() *unitofwork.UnitOfWork[*accountapp.AtomicContext] {
	return unitofwork.New[*accountapp.AtomicContext](
		s.db,
		accountapp.NewAtomicContext,
		s.msgBus,
		s.logger,
	)
}

type loginReq struct {
	Email    string `form:"username" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8"`
}

type loginResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) Login(c echo.Context) error {
	var b loginReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	agent := useragent.Parse(c.Request().UserAgent())

	ipAddress := c.Request().RemoteAddr
	if c.Request().Header.Get("X-Forwarded-For") != "" {
		ipAddress = c.Request().Header.Get("X-Forwarded-For")
	}

	device := account.Device{
		Browser:   agent.Name,
		OS:        agent.OS,
		IPAddress: ipAddress,
		Model:     agent.Device,
	}

	uow := s.getAccountsUoW()

	tokens, err := s.accountService.Login(c.Request().Context(), uow, device, b.Email, b.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			return JsonError(c, http.StatusUnauthorized, "invalid email or password")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, &loginResp{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

type signUpReq struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

func (s *Server) SignUp(c echo.Context) error {
	var b signUpReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	uow := s.getAccountsUoW()

	ctx := c.Request().Context()
	_, err := s.accountService.CreateAccount(ctx, uow, b.AccountID, b.Email, b.Password)
	if err != nil {
		if errors.Is(err, account.ErrAccountExists) || errors.Is(err, account.ErrEmailDuplicate) {
			return JsonError(c, http.StatusBadRequest, "account already exists")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}

	return c.NoContent(http.StatusCreated)
}

func (s *Server) Logout(c echo.Context) error {
	u := c.Get(KeyCurrentUser).(*accountapp.AccessTokenData)

	uow := s.getAccountsUoW()
	if err := s.accountService.Logout(c.Request().Context(), uow, u.AccountID, u.Authorization); err != nil {
		if errors.Is(err, account.ErrUnauthorized) {
			return JsonError(c, http.StatusUnauthorized, "unauthorized")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (s *Server) Refresh(c echo.Context) error {
	var b refreshReq
	if err := s.bind(c, &b); err != nil {
		return JsonError(c, http.StatusBadRequest, err)
	}

	uow := s.getAccountsUoW()

	tokens, err := s.accountService.Refresh(c.Request().Context(), uow, b.RefreshToken)
	if err != nil {
		if errors.Is(err, accountapp.ErrInvalidAuthorization) {
			return JsonError(c, http.StatusUnauthorized, "invalid refresh token")
		}
		return JsonError(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, &loginResp{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}
