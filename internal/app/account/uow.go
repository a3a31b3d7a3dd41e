package accountapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	accountstorage "github.com/ratmirov/go_coach_backend/internal/adapter/storage/accounts"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/account"
)

type AccountStorage interface {
	Add(ctx context.Context, a *account.Account) error
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	GetByID(ctx context.Context, accountID string) (*account.Account, error)
	GetByAuthSecret(ctx context.Context, secret string) (*account.Account, error)
	Persist(ctx context.Context, a *account.Account) error
	CollectEvents() []domain.Event
	Close() error
}

type AtomicContext struct {
	ctx context.Context
	storage.DBContext
	AccountStorage AccountStorage
}

func (a *AtomicContext) Context() context.Context {
	return a.ctx
}

func (a *AtomicContext) Commit() error {
	return a.DBContext.Commit()
}

func (a *AtomicContext) Close() (err error) {
	if closeErr := a.AccountStorage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	if err != nil {
		err = errors.Join(fmt.Errorf("failed to close storage"), err)
	}

	return err
}

func (a *AtomicContext) CollectEvents() []domain.Event {
	return a.AccountStorage.CollectEvents()
}

func NewAtomicContext(ctx context.Context, dbContext storage.DBContext) (*AtomicContext, error) {
	return &AtomicContext{
		ctx:            ctx,
		DBContext:      dbContext,
		AccountStorage: accountstorage.NewPostgresStorage(dbContext, nil),
	}, nil
}
