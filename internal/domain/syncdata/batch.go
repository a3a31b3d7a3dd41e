package syncdata

import "time"

// ActivityRecord is one recorded activity session. Optional metrics are
// pointers so an absent reading is distinguishable from a zero one.
type ActivityRecord struct {
	ActivityID      string    `json:"activity_id"`
	Type            string    `json:"type"`
	StartedAt       time.Time `json:"started_at"`
	DurationMinutes float64   `json:"duration_minutes"`
	DistanceMeters  *float64  `json:"distance_meters,omitempty"`
	AvgHeartRate    *float64  `json:"avg_heart_rate,omitempty"`
	MaxHeartRate    *float64  `json:"max_heart_rate,omitempty"`
	Calories        *float64  `json:"calories,omitempty"`
	TrainingStress  *float64  `json:"training_stress,omitempty"`
}

// HealthRecord is one day of wellness readings.
type HealthRecord struct {
	Date             time.Time `json:"date"`
	RestingHeartRate *float64  `json:"resting_heart_rate,omitempty"`
	HRV              *float64  `json:"hrv,omitempty"`
	SleepMinutes     *float64  `json:"sleep_minutes,omitempty"`
	SleepScore       *float64  `json:"sleep_score,omitempty"`
	Steps            *float64  `json:"steps,omitempty"`
	StressAvg        *float64  `json:"stress_avg,omitempty"`
}

func (r HealthRecord) hasMetric() bool {
	return r.RestingHeartRate != nil || r.HRV != nil || r.SleepMinutes != nil ||
		r.SleepScore != nil || r.Steps != nil || r.StressAvg != nil
}

// TrainingRecord is one day of device-computed training load.
type TrainingRecord struct {
	Date          time.Time `json:"date"`
	AcuteLoad     *float64  `json:"acute_load,omitempty"`
	ChronicLoad   *float64  `json:"chronic_load,omitempty"`
	RecoveryHours *float64  `json:"recovery_hours,omitempty"`
}

// Batch is one fetched set of records for a user over a time window,
// partitioned by kind. It is consumed once by Validate and not retained.
type Batch struct {
	UserID     string           `json:"user_id"`
	Activities []ActivityRecord `json:"activities,omitempty"`
	Health     []HealthRecord   `json:"health,omitempty"`
	Training   []TrainingRecord `json:"training,omitempty"`
}

// Empty reports whether the batch carries no records at all.
func (b Batch) Empty() bool {
	return len(b.Activities) == 0 && len(b.Health) == 0 && len(b.Training) == 0
}
