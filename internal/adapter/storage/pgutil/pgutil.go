package pgutil

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leporo/sqlf"
	"github.com/r3labs/diff"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/domain"
)

type eventSource interface {
	PopEvents() []domain.Event
}

// BasePostgresStorage tracks aggregates loaded within a transaction so
// that their domain events can be collected on commit.
type BasePostgresStorage[T eventSource] struct {
	DB     storage.DBContext
	seenMu sync.Mutex
	seen   map[string]T
}

func NewBasePostgresStorage[T eventSource](db storage.DBContext) *BasePostgresStorage[T] {
	return &BasePostgresStorage[T]{
		DB:   db,
		seen: make(map[string]T),
	}
}

func (s *BasePostgresStorage[T]) CollectEvents() []domain.Event {
	var events []domain.Event
	for _, agg := range s.seen {
		events = append(events, agg.PopEvents()...)
	}
	s.clearSeen()
	return events
}

func (s *BasePostgresStorage[T]) Close() {
	s.clearSeen()
}

func (s *BasePostgresStorage[T]) MarkSeen(id string, agg T) {
	s.seenMu.Lock()
	s.seen[id] = agg
	s.seenMu.Unlock()
}

func (s *BasePostgresStorage[T]) clearSeen() {
	s.seenMu.Lock()
	s.seen = make(map[string]T)
	s.seenMu.Unlock()
}

func ViolatesConstraint(err error, constraintName string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) &&
		pgErr.ConstraintName == constraintName
}

func Peek[K comparable, V any](items map[K]V, defaultValue ...V) V {
	for _, item := range items {
		return item
	}

	if len(defaultValue) != 0 {
		return defaultValue[0]
	} else {
		return *new(V)
	}

}

func PeekOrErr[K comparable, V any](items map[K]V, err, notFoundErr error) (V, error) {

	if err != nil {
		return *new(V), err
	}

	if len(items) == 0 {
		return *new(V), notFoundErr
	}

	return Peek(items), nil
}

func MakeUpdateQuery(stmt *sqlf.Stmt, updates diff.Changelog) *sqlf.Stmt {

	for _, upd := range updates {
		if upd.Type != diff.UPDATE && upd.Type != diff.CREATE {
			panic("invalid update type " + upd.Type)
		}
		if len(upd.Path) > 1 {
			panic("cannot process updates in nested structures")
		}

		stmt = stmt.Set(upd.Path[0], upd.To)
	}
	return stmt
}

func AssertUpdated(res sql.Result, err error, notUpdatedError error) error {
	if err != nil {
		return storage.InternalError(err)
	}

	affected, err := res.RowsAffected()

	if err != nil {
		return storage.InternalError(err)
	}

	if affected == 0 {
		return notUpdatedError
	}
	return nil
}
