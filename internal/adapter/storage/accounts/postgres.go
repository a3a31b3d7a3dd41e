package accountstorage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage/pgutil"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/account"
)

type PostgresStorage struct {
	base   *pgutil.BasePostgresStorage[*account.Account]
	logger *slog.Logger
}

func NewPostgresStorage(db storage.DBContext, logger *slog.Logger) *PostgresStorage {
	return &PostgresStorage{
		base:   pgutil.NewBasePostgresStorage[*account.Account](db),
		logger: logger,
	}
}

func (s *PostgresStorage) Add(ctx context.Context, a *account.Account) error {
	q := sqlf.InsertInto("accounts").
		Set("account_id", a.AccountID).
		Set("email", a.Email).
		Set("password_hash", a.PasswordHash).
		Set("created_at", a.CreatedAt).
		Set("updated_at", a.UpdatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "accounts_pkey") {
			return errors.Join(fmt.Errorf("account exists: %w", err), account.ErrAccountExists)
		}
		if pgutil.ViolatesConstraint(err, "accounts_email_key") {
			return account.ErrEmailDuplicate
		}
		return storage.InternalError(err)
	}

	for _, auth := range a.Authorizations {
		if err := s.addAuth(ctx, a.AccountID, auth); err != nil {
			return err
		}
	}

	s.base.MarkSeen(a.AccountID, a)

	return nil
}

func (s *PostgresStorage) addAuth(ctx context.Context, accountID string, auth *account.Authorization) error {
	q := sqlf.InsertInto("authorizations").
		Set("authorization_id", auth.ID).
		Set("secret", auth.Secret).
		Set("logout_at", auth.LogoutAt).
		Set("created_at", auth.CreatedAt).
		Set("valid_until", auth.ValidUntil).
		Set("account_id", accountID).
		Set("os", auth.Device.OS).
		Set("device_model", auth.Device.Model).
		Set("ip_address", auth.Device.IPAddress).
		Set("browser", auth.Device.Browser)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return account.ErrAuthorizationExists
		}

		return storage.InternalError(err)
	}

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	whereClause string,
	whereArgs ...any,
) ([]*account.Account, error) {

	var tmp accountWithAuthRow

	q := sqlf.From("accounts ac").
		LeftJoin("authorizations a", "ac.account_id = a.account_id").
		Where(whereClause, whereArgs...).
		Select("ac.account_id").To(&tmp.AccountID).
		Select("ac.email").To(&tmp.Email).
		Select("ac.password_hash").To(&tmp.PasswordHash).
		Select("ac.created_at").To(&tmp.CreatedAt).
		Select("ac.updated_at").To(&tmp.UpdatedAt).
		Select("a.authorization_id").To(&tmp.AuthorizationID).
		Select("a.secret").To(&tmp.Secret).
		Select("a.valid_until").To(&tmp.AuthValidUntil).
		Select("a.logout_at").To(&tmp.LogoutAt).
		Select("a.created_at").To(&tmp.AuthCreatedAt).
		Select("a.os").To(&tmp.OS).
		Select("a.browser").To(&tmp.Browser).
		Select("a.device_model").To(&tmp.Model).
		Select("a.ip_address").To(&tmp.IPAddress)

	var fetched []accountWithAuthRow

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		fetched = append(fetched, tmp)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storage.InternalError(err)
	}

	return rowsToDomain(fetched), nil
}

func (s *PostgresStorage) getOne(ctx context.Context, whereClause string, whereArgs ...any) (*account.Account, error) {
	accounts, err := s.get(ctx, whereClause, whereArgs...)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, account.ErrAccountNotFound
	}
	s.base.MarkSeen(accounts[0].AccountID, accounts[0])
	return accounts[0], nil
}

func (s *PostgresStorage) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return s.getOne(ctx, "ac.email = ?", email)
}

func (s *PostgresStorage) GetByID(ctx context.Context, accountID string) (*account.Account, error) {
	return s.getOne(ctx, "ac.account_id = ?", accountID)
}

func (s *PostgresStorage) GetByAuthID(ctx context.Context, id string) (*account.Account, error) {
	return s.getOne(ctx, "a.authorization_id = ?", id)
}

func (s *PostgresStorage) GetByAuthSecret(ctx context.Context, secret string) (*account.Account, error) {
	return s.getOne(ctx, "a.secret = ?", secret)
}

func (s *PostgresStorage) Persist(ctx context.Context, a *account.Account) error {
	dbState, err := s.GetByID(ctx, a.AccountID)
	if err != nil {
		return err
	}

	if log, _ := diff.Diff(dbState, a); len(log) != 0 {
		q := sqlf.Update("accounts").Where("account_id = ?", a.AccountID)
		q = pgutil.MakeUpdateQuery(q, log)

		res, err := q.ExecAndClose(ctx, s.base.DB)
		if err := pgutil.AssertUpdated(res, err, account.ErrAccountNotFound); err != nil {
			return err
		}
	}

	dbAuthSet := make(map[string]*account.Authorization)
	for _, auth := range dbState.Authorizations {
		dbAuthSet[auth.ID] = auth
	}

	for _, auth := range a.Authorizations {
		if src, ok := dbAuthSet[auth.ID]; !ok {
			if err := s.addAuth(ctx, a.AccountID, auth); err != nil {
				return err
			}
		} else {
			if err := s.persistAuth(ctx, src, auth); err != nil {
				return err
			}
		}
	}

	s.base.MarkSeen(a.AccountID, a)

	return nil
}

func (s *PostgresStorage) persistAuth(ctx context.Context, source, changed *account.Authorization) error {
	log, _ := diff.Diff(source, changed)
	if len(log) == 0 {
		return nil
	}
	q := sqlf.Update("authorizations").Where("authorization_id = ?", source.ID)
	q = pgutil.MakeUpdateQuery(q, log)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		return storage.InternalError(err)
	}
	return nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}

type accountWithAuthRow struct {
	AccountID    string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	AuthorizationID *string
	Secret          *string
	LogoutAt        *time.Time
	AuthCreatedAt   *time.Time
	AuthValidUntil  *time.Time

	IPAddress *string
	Browser   *string
	OS        *string
	Model     *string
}

func rowsToDomain(rows []accountWithAuthRow) []*account.Account {
	accountsMap := make(map[string]*account.Account)

	for _, row := range rows {
		if _, ok := accountsMap[row.AccountID]; !ok {
			accountsMap[row.AccountID] = &account.Account{
				AccountID:      row.AccountID,
				Email:          row.Email,
				PasswordHash:   row.PasswordHash,
				CreatedAt:      row.CreatedAt,
				UpdatedAt:      row.UpdatedAt,
				Authorizations: make([]*account.Authorization, 0),
			}
		}
		if row.AuthorizationID != nil {
			auth := &account.Authorization{
				ID:         *row.AuthorizationID,
				Secret:     *row.Secret,
				CreatedAt:  *row.AuthCreatedAt,
				ValidUntil: *row.AuthValidUntil,
				LogoutAt:   row.LogoutAt,
				Device: account.Device{
					Browser:   *row.Browser,
					OS:        *row.OS,
					IPAddress: *row.IPAddress,
					Model:     *row.Model,
				},
			}
			accountsMap[row.AccountID].Authorizations = append(accountsMap[row.AccountID].Authorizations, auth)
		}
	}

	accounts := make([]*account.Account, 0, len(accountsMap))

	for _, a := range accountsMap {
		accounts = append(accounts, a)
	}
	return accounts
}
