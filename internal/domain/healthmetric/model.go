package healthmetric

import (
	"errors"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
)

var (
	ErrMetricExists   = errors.New("health metric already exists")
	ErrMetricNotFound = errors.New("health metric not found")
)

// Metric is one day of wellness readings for an athlete. Optional
// readings are pointers: a device does not report every metric every day.
type Metric struct {
	domain.Aggregate
	MetricID         string
	AthleteID        string
	Date             time.Time
	RestingHeartRate *int
	HRV              *float64
	SleepMinutes     *int
	SleepScore       *float64
	Steps            *int
	StressAvg        *float64
	CreatedAt        time.Time
}

func New(
	metricID, athleteID string,
	date time.Time,
	restingHR *int,
	hrv *float64,
	sleepMinutes *int,
	sleepScore *float64,
	steps *int,
	stressAvg *float64,
) *Metric {
	return &Metric{
		MetricID:         metricID,
		AthleteID:        athleteID,
		Date:             date,
		RestingHeartRate: restingHR,
		HRV:              hrv,
		SleepMinutes:     sleepMinutes,
		SleepScore:       sleepScore,
		Steps:            steps,
		StressAvg:        stressAvg,
		CreatedAt:        time.Now().UTC(),
	}
}
