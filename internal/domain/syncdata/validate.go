package syncdata

import "fmt"

// Plausibility windows for flagged-but-kept values.
const (
	minPlausibleHR    = 30
	maxPlausibleHR    = 230
	maxSleepMinutes   = 1440
	maxPlausibleHRV   = 300
	maxPlausibleScore = 100
)

// Issue ties a validation finding to a specific record and field.
type Issue struct {
	Kind    Kind   `json:"kind"`
	Record  int    `json:"record"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Report is the validation verdict for one batch. Errors mark records
// that are structurally unusable; anomalies mark implausible values on
// records that are kept anyway. A batch is valid iff it has no errors.
type Report struct {
	IsValid   bool    `json:"is_valid"`
	Warnings  []Issue `json:"warnings"`
	Errors    []Issue `json:"errors"`
	Anomalies []Issue `json:"anomalies"`
}

// Validate checks every record in the batch for required fields and
// plausible value ranges. Issue lists keep per-record input order within
// each kind; an empty batch is a legitimate outcome and reports valid.
func Validate(b Batch) Report {
	r := Report{}

	for i, a := range b.Activities {
		r.checkActivity(i, a)
	}
	for i, h := range b.Health {
		r.checkHealth(i, h)
	}
	for i, t := range b.Training {
		r.checkTraining(i, t)
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

func (r *Report) checkActivity(i int, a ActivityRecord) {
	if a.Type == "" {
		r.addError(KindActivities, i, "type", "missing")
	}
	if a.StartedAt.IsZero() {
		r.addError(KindActivities, i, "started_at", "missing")
	}
	if a.DurationMinutes <= 0 {
		r.addError(KindActivities, i, "duration_minutes", "missing")
	}

	if a.AvgHeartRate == nil && a.MaxHeartRate == nil {
		r.addWarning(KindActivities, i, "avg_heart_rate", "no heart rate data, stress score will be zero")
	}

	r.checkRange(KindActivities, i, "avg_heart_rate", a.AvgHeartRate, minPlausibleHR, maxPlausibleHR)
	r.checkRange(KindActivities, i, "max_heart_rate", a.MaxHeartRate, minPlausibleHR, maxPlausibleHR)
	r.checkNonNegative(KindActivities, i, "distance_meters", a.DistanceMeters)
	r.checkNonNegative(KindActivities, i, "calories", a.Calories)
	r.checkNonNegative(KindActivities, i, "training_stress", a.TrainingStress)

	if a.AvgHeartRate != nil && a.MaxHeartRate != nil && *a.MaxHeartRate < *a.AvgHeartRate {
		r.addAnomaly(KindActivities, i, "max_heart_rate",
			fmt.Sprintf("max heart rate %.0f below average %.0f", *a.MaxHeartRate, *a.AvgHeartRate))
	}
}

func (r *Report) checkHealth(i int, h HealthRecord) {
	if h.Date.IsZero() {
		r.addError(KindHealth, i, "date", "missing")
	}
	if !h.hasMetric() {
		r.addError(KindHealth, i, "metrics", "missing")
	}

	r.checkRange(KindHealth, i, "resting_heart_rate", h.RestingHeartRate, minPlausibleHR, maxPlausibleHR)
	r.checkRange(KindHealth, i, "hrv", h.HRV, 0, maxPlausibleHRV)
	r.checkRange(KindHealth, i, "sleep_minutes", h.SleepMinutes, 0, maxSleepMinutes)
	r.checkRange(KindHealth, i, "sleep_score", h.SleepScore, 0, maxPlausibleScore)
	r.checkRange(KindHealth, i, "stress_avg", h.StressAvg, 0, maxPlausibleScore)
	r.checkNonNegative(KindHealth, i, "steps", h.Steps)
}

func (r *Report) checkTraining(i int, t TrainingRecord) {
	if t.Date.IsZero() {
		r.addError(KindTraining, i, "date", "missing")
	}
	if t.AcuteLoad == nil {
		r.addError(KindTraining, i, "acute_load", "missing")
	}
	if t.ChronicLoad == nil {
		r.addError(KindTraining, i, "chronic_load", "missing")
	}

	r.checkNonNegative(KindTraining, i, "acute_load", t.AcuteLoad)
	r.checkNonNegative(KindTraining, i, "chronic_load", t.ChronicLoad)
	r.checkRange(KindTraining, i, "recovery_hours", t.RecoveryHours, 0, 168)
}

func (r *Report) checkRange(kind Kind, record int, field string, value *float64, min, max float64) {
	if value == nil {
		return
	}
	if *value < min || *value > max {
		r.addAnomaly(kind, record, field,
			fmt.Sprintf("value %g outside plausible range [%g, %g]", *value, min, max))
	}
}

func (r *Report) checkNonNegative(kind Kind, record int, field string, value *float64) {
	if value != nil && *value < 0 {
		r.addAnomaly(kind, record, field, fmt.Sprintf("negative value %g", *value))
	}
}

func (r *Report) addError(kind Kind, record int, field, message string) {
	r.Errors = append(r.Errors, Issue{Kind: kind, Record: record, Field: field, Message: message})
}

func (r *Report) addWarning(kind Kind, record int, field, message string) {
	r.Warnings = append(r.Warnings, Issue{Kind: kind, Record: record, Field: field, Message: message})
}

func (r *Report) addAnomaly(kind Kind, record int, field, message string) {
	r.Anomalies = append(r.Anomalies, Issue{Kind: kind, Record: record, Field: field, Message: message})
}
