package linkstorage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage/pgutil"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/devicelink"
	"github.com/samber/lo"
)

type PostgresStorage struct {
	base   *pgutil.BasePostgresStorage[*devicelink.Link]
	logger *slog.Logger
}

func NewPostgresStorage(db storage.DBContext, logger *slog.Logger) *PostgresStorage {
	return &PostgresStorage{
		base:   pgutil.NewBasePostgresStorage[*devicelink.Link](db),
		logger: logger,
	}
}

func (s *PostgresStorage) Add(ctx context.Context, l *devicelink.Link) error {
	q := sqlf.InsertInto("device_links").
		Set("link_id", l.LinkID).
		Set("athlete_id", l.AthleteID).
		Set("provider", l.Provider).
		Set("secret", l.Secret).
		Set("created_at", l.CreatedAt).
		Set("valid_until", l.ValidUntil).
		Set("activated_at", l.ActivatedAt).
		Set("revoked_at", l.RevokedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "device_links_pkey") {
			return devicelink.ErrLinkExists
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(string(l.LinkID), l)

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[devicelink.LinkID]*devicelink.Link, error) {
	var tmp devicelink.Link

	q := sqlf.From("device_links l").
		Select("l.link_id").To(&tmp.LinkID).
		Select("l.athlete_id").To(&tmp.AthleteID).
		Select("l.provider").To(&tmp.Provider).
		Select("l.secret").To(&tmp.Secret).
		Select("l.created_at").To(&tmp.CreatedAt).
		Select("l.valid_until").To(&tmp.ValidUntil).
		Select("l.activated_at").To(&tmp.ActivatedAt).
		Select("l.revoked_at").To(&tmp.RevokedAt)

	q = modify(q)

	links := make(map[devicelink.LinkID]*devicelink.Link)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		l := tmp
		links[tmp.LinkID] = &l
	})

	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return links, nil
	}

	return nil, storage.InternalError(err)
}

func (s *PostgresStorage) GetByID(ctx context.Context, linkID devicelink.LinkID) (*devicelink.Link, error) {
	links, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("l.link_id = ?", linkID)
	})

	l, err := pgutil.PeekOrErr(links, err, devicelink.ErrLinkNotFound)
	if err != nil {
		return nil, err
	}
	s.base.MarkSeen(string(l.LinkID), l)
	return l, nil
}

func (s *PostgresStorage) GetBySecret(ctx context.Context, secret string) (*devicelink.Link, error) {
	links, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("l.secret = ? AND l.valid_until >= ?", secret, time.Now().UTC())
	})

	return pgutil.PeekOrErr(links, err, devicelink.ErrLinkNotFound)
}

func (s *PostgresStorage) ListByAthlete(ctx context.Context, athleteID string) ([]*devicelink.Link, error) {
	links, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("l.athlete_id = ?", athleteID).OrderBy("l.created_at DESC")
	})
	if err != nil {
		return nil, err
	}
	return lo.Values(links), nil
}

// GetActiveByAthlete returns the activated, unrevoked link an athlete
// syncs through.
func (s *PostgresStorage) GetActiveByAthlete(ctx context.Context, athleteID string) (*devicelink.Link, error) {
	links, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where(
			"l.athlete_id = ? AND l.activated_at IS NOT NULL AND l.revoked_at IS NULL",
			athleteID,
		)
	})

	return pgutil.PeekOrErr(links, err, devicelink.ErrLinkNotFound)
}

func (s *PostgresStorage) Persist(ctx context.Context, l *devicelink.Link) error {
	dbState, err := s.GetByID(ctx, l.LinkID)
	if err != nil {
		return err
	}

	log, _ := diff.Diff(dbState, l)
	if len(log) == 0 {
		return nil
	}

	q := sqlf.Update("device_links").Where("link_id = ?", l.LinkID)
	q = pgutil.MakeUpdateQuery(q, log)

	res, err := q.ExecAndClose(ctx, s.base.DB)
	return pgutil.AssertUpdated(res, err, devicelink.ErrLinkNotFound)
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
