package accountapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/account"
)

var (
	ErrInvalidAuthorization = errors.New("invalid authorization")
)

type Service struct {
	logger     *slog.Logger
	Authorizer *Authorizer
}

func NewService(auth *Authorizer, logger *slog.Logger) *Service {
	return &Service{
		logger:     logger,
		Authorizer: auth,
	}
}

func (s *Service) CreateAccount(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	accountID string,
	email string,
	password string,
) (a *account.Account, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a = account.New(accountID, email, password, s.Authorizer)
		if err := ctx.AccountStorage.Add(ctx.Context(), a); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) Login(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	device account.Device,
	email string,
	password string,
) (tokens Tokens, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AccountStorage.GetByEmail(ctx.Context(), email)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return account.ErrInvalidCredentials
			}
			return err
		}

		auth, err := a.Authorize(s.Authorizer, password, device)
		if err != nil {
			return err
		}

		accessToken, err := s.Authorizer.GenerateAccessToken(a, auth)
		if err != nil {
			return err
		}

		if err := ctx.AccountStorage.Persist(ctx.Context(), a); err != nil {
			return err
		}

		tokens = Tokens{
			AccessToken:  accessToken,
			RefreshToken: auth.Secret,
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) Logout(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	accountID string,
	authID string,
) error {
	return uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AccountStorage.GetByID(ctx.Context(), accountID)
		if err != nil {
			return err
		}

		if err := a.Logout(authID); err != nil {
			return err
		}

		if err := ctx.AccountStorage.Persist(ctx.Context(), a); err != nil {
			return err
		}

		return ctx.Commit()
	})
}

func (s *Service) Refresh(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	refreshToken string,
) (tokens Tokens, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		a, err := ctx.AccountStorage.GetByAuthSecret(ctx.Context(), refreshToken)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return ErrInvalidAuthorization
			}
			return err
		}

		auth := a.AuthorizationBySecret(refreshToken)
		if auth == nil || !auth.IsActive() {
			return fmt.Errorf("%w: authorization is not active", ErrInvalidAuthorization)
		}

		tokens.AccessToken, err = s.Authorizer.GenerateAccessToken(a, auth)
		tokens.RefreshToken = auth.Secret
		return err
	})
	return
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}
