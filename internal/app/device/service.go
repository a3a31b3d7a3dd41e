package deviceservice

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/ratmirov/go_coach_backend/internal/app/unitofwork"
	"github.com/ratmirov/go_coach_backend/internal/domain/devicelink"
)

type Service struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

func (s *Service) CreateLink(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	linkID devicelink.LinkID,
	athleteID string,
	provider string,
) (l *devicelink.Link, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		l = devicelink.New(linkID, athleteID, provider, generateSecret())
		if err := ctx.LinkStorage.Add(ctx.Context(), l); err != nil {
			return err
		}
		return ctx.Commit()
	})
	return
}

func (s *Service) Activate(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	secret string,
) (l *devicelink.Link, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		l, err = ctx.LinkStorage.GetBySecret(ctx.Context(), secret)
		if err != nil {
			return err
		}

		if err := l.Activate(secret); err != nil {
			return err
		}

		if err := ctx.LinkStorage.Persist(ctx.Context(), l); err != nil {
			return err
		}

		return ctx.Commit()
	})
	return
}

func (s *Service) Revoke(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	linkID devicelink.LinkID,
) error {
	return uow.Atomic(ctx, func(ctx *AtomicContext) error {
		l, err := ctx.LinkStorage.GetByID(ctx.Context(), linkID)
		if err != nil {
			return err
		}

		if err := l.Revoke(); err != nil {
			return err
		}

		if err := ctx.LinkStorage.Persist(ctx.Context(), l); err != nil {
			return err
		}

		return ctx.Commit()
	})
}

func (s *Service) ListByAthlete(
	ctx context.Context,
	uow *unitofwork.UnitOfWork[*AtomicContext],
	athleteID string,
) (links []*devicelink.Link, err error) {
	err = uow.Atomic(ctx, func(ctx *AtomicContext) error {
		var err error
		links, err = ctx.LinkStorage.ListByAthlete(ctx.Context(), athleteID)
		return err
	})
	return
}

func generateSecret() string {
	var bytes [16]byte
	if n, err := rand.Read(bytes[:]); n != len(bytes) || err != nil {
		panic("failed to generate secret")
	}
	return hex.EncodeToString(bytes[:])
}
