package metricstorage

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/leporo/sqlf"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage"
	"github.com/ratmirov/go_coach_backend/internal/adapter/storage/pgutil"
	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/healthmetric"
	"github.com/samber/lo"
)

type PostgresStorage struct {
	base *pgutil.BasePostgresStorage[*healthmetric.Metric]
}

func NewPostgresStorage(db storage.DBContext) *PostgresStorage {
	return &PostgresStorage{
		base: pgutil.NewBasePostgresStorage[*healthmetric.Metric](db),
	}
}

func (s *PostgresStorage) Add(ctx context.Context, m *healthmetric.Metric) error {
	q := sqlf.InsertInto("health_metrics").
		Set("metric_id", m.MetricID).
		Set("athlete_id", m.AthleteID).
		Set("date", m.Date).
		Set("resting_heart_rate", m.RestingHeartRate).
		Set("hrv", m.HRV).
		Set("sleep_minutes", m.SleepMinutes).
		Set("sleep_score", m.SleepScore).
		Set("steps", m.Steps).
		Set("stress_avg", m.StressAvg).
		Set("created_at", m.CreatedAt)

	if _, err := q.ExecAndClose(ctx, s.base.DB); err != nil {
		if pgutil.ViolatesConstraint(err, "health_metrics_pkey") {
			return healthmetric.ErrMetricExists
		}
		if pgutil.ViolatesConstraint(err, "health_metrics_athlete_date_key") {
			return healthmetric.ErrMetricExists
		}
		return storage.InternalError(err)
	}

	s.base.MarkSeen(m.MetricID, m)

	return nil
}

func (s *PostgresStorage) get(
	ctx context.Context,
	modify func(stmt *sqlf.Stmt) *sqlf.Stmt,
) (map[string]*healthmetric.Metric, error) {
	var tmp healthmetric.Metric

	q := sqlf.From("health_metrics m").
		Select("m.metric_id").To(&tmp.MetricID).
		Select("m.athlete_id").To(&tmp.AthleteID).
		Select("m.date").To(&tmp.Date).
		Select("m.resting_heart_rate").To(&tmp.RestingHeartRate).
		Select("m.hrv").To(&tmp.HRV).
		Select("m.sleep_minutes").To(&tmp.SleepMinutes).
		Select("m.sleep_score").To(&tmp.SleepScore).
		Select("m.steps").To(&tmp.Steps).
		Select("m.stress_avg").To(&tmp.StressAvg).
		Select("m.created_at").To(&tmp.CreatedAt)

	q = modify(q)

	result := make(map[string]*healthmetric.Metric)

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		m := tmp
		result[tmp.MetricID] = &m
	})

	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}

	return nil, storage.InternalError(err)
}

func (s *PostgresStorage) GetByID(ctx context.Context, metricID string) (*healthmetric.Metric, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("m.metric_id = ?", metricID)
	})
	return pgutil.PeekOrErr(result, err, healthmetric.ErrMetricNotFound)
}

func (s *PostgresStorage) GetByDate(ctx context.Context, athleteID string, date time.Time) (*healthmetric.Metric, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("m.athlete_id = ? AND m.date = ?", athleteID, date)
	})
	return pgutil.PeekOrErr(result, err, healthmetric.ErrMetricNotFound)
}

func (s *PostgresStorage) ListByAthlete(
	ctx context.Context,
	athleteID string,
	limit, offset int,
) ([]*healthmetric.Metric, error) {
	result, err := s.get(ctx, func(stmt *sqlf.Stmt) *sqlf.Stmt {
		return stmt.Where("m.athlete_id = ?", athleteID).
			OrderBy("m.date DESC").
			Limit(limit).
			Offset(offset)
	})
	if err != nil {
		return nil, err
	}
	metrics := lo.Values(result)
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Date.After(metrics[j].Date)
	})
	return metrics, nil
}

// HRVReadings returns the most recent HRV values in chronological order,
// skipping days without a reading.
func (s *PostgresStorage) HRVReadings(ctx context.Context, athleteID string, days int) ([]float64, error) {
	var value float64

	q := sqlf.From("health_metrics m").
		Select("m.hrv").To(&value).
		Where("m.athlete_id = ? AND m.hrv IS NOT NULL", athleteID).
		OrderBy("m.date DESC").
		Limit(days)

	var readings []float64

	err := q.QueryAndClose(ctx, s.base.DB, func(rows *sql.Rows) {
		readings = append(readings, value)
	})

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, storage.InternalError(err)
	}

	lo.Reverse(readings)
	return readings, nil
}

func (s *PostgresStorage) CollectEvents() []domain.Event {
	return s.base.CollectEvents()
}

func (s *PostgresStorage) Close() error {
	s.base.Close()
	return nil
}
