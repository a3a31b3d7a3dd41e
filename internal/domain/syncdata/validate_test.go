package syncdata

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

func validActivity() ActivityRecord {
	return ActivityRecord{
		ActivityID:      "act-1",
		Type:            "running",
		StartedAt:       time.Date(2024, 1, 15, 7, 0, 0, 0, time.UTC),
		DurationMinutes: 40,
		AvgHeartRate:    floatPtr(155),
		MaxHeartRate:    floatPtr(172),
	}
}

func TestValidateEmptyBatch(t *testing.T) {
	report := Validate(Batch{UserID: "user-1"})

	if !report.IsValid {
		t.Error("empty batch should be valid")
	}
	if len(report.Errors) != 0 || len(report.Warnings) != 0 || len(report.Anomalies) != 0 {
		t.Errorf("empty batch produced issues: %+v", report)
	}
}

func TestValidateCleanBatch(t *testing.T) {
	batch := Batch{
		UserID:     "user-1",
		Activities: []ActivityRecord{validActivity()},
		Health: []HealthRecord{{
			Date:             time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			RestingHeartRate: floatPtr(52),
			HRV:              floatPtr(68),
			SleepMinutes:     floatPtr(450),
		}},
		Training: []TrainingRecord{{
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			AcuteLoad:   floatPtr(240),
			ChronicLoad: floatPtr(310),
		}},
	}

	report := Validate(batch)
	if !report.IsValid {
		t.Errorf("clean batch invalid: %+v", report.Errors)
	}
	if len(report.Anomalies) != 0 {
		t.Errorf("clean batch anomalies: %+v", report.Anomalies)
	}
}

func TestValidateMissingActivityDuration(t *testing.T) {
	a := validActivity()
	a.DurationMinutes = 0

	report := Validate(Batch{Activities: []ActivityRecord{a}})

	if report.IsValid {
		t.Error("batch with missing duration should be invalid")
	}
	if len(report.Errors) != 1 {
		t.Fatalf("Errors = %+v, want exactly one", report.Errors)
	}
	e := report.Errors[0]
	if e.Kind != KindActivities || e.Record != 0 || e.Field != "duration_minutes" || e.Message != "missing" {
		t.Errorf("error = %+v, want duration_minutes missing on activities record 0", e)
	}
}

func TestValidateMissingHealthFields(t *testing.T) {
	report := Validate(Batch{Health: []HealthRecord{{}}})

	if report.IsValid {
		t.Error("empty health record should be invalid")
	}
	fields := map[string]bool{}
	for _, e := range report.Errors {
		fields[e.Field] = true
	}
	if !fields["date"] || !fields["metrics"] {
		t.Errorf("Errors = %+v, want date and metrics missing", report.Errors)
	}
}

func TestValidateMissingTrainingLoads(t *testing.T) {
	report := Validate(Batch{Training: []TrainingRecord{{
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}}})

	if report.IsValid {
		t.Error("training record without load scores should be invalid")
	}
	if len(report.Errors) != 2 {
		t.Errorf("Errors = %+v, want acute and chronic load missing", report.Errors)
	}
}

func TestValidateAnomaliesKeepRecords(t *testing.T) {
	a := validActivity()
	a.AvgHeartRate = floatPtr(250) // implausible, not fatal
	a.MaxHeartRate = nil

	report := Validate(Batch{
		Activities: []ActivityRecord{a},
		Health: []HealthRecord{{
			Date:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			HRV:          floatPtr(350),
			SleepMinutes: floatPtr(2000),
		}},
	})

	if !report.IsValid {
		t.Errorf("anomalies alone must not invalidate: %+v", report.Errors)
	}
	if len(report.Anomalies) != 3 {
		t.Fatalf("Anomalies = %+v, want 3", report.Anomalies)
	}
}

func TestValidateMaxBelowAvgHeartRate(t *testing.T) {
	a := validActivity()
	a.AvgHeartRate = floatPtr(170)
	a.MaxHeartRate = floatPtr(150)

	report := Validate(Batch{Activities: []ActivityRecord{a}})

	if !report.IsValid {
		t.Error("inconsistent heart rates should flag, not invalidate")
	}
	if len(report.Anomalies) != 1 || report.Anomalies[0].Field != "max_heart_rate" {
		t.Errorf("Anomalies = %+v, want one on max_heart_rate", report.Anomalies)
	}
}

func TestValidateWarnsOnMissingHeartRate(t *testing.T) {
	a := validActivity()
	a.AvgHeartRate = nil
	a.MaxHeartRate = nil

	report := Validate(Batch{Activities: []ActivityRecord{a}})

	if !report.IsValid {
		t.Error("activity without heart rate data is still valid")
	}
	if len(report.Warnings) != 1 {
		t.Errorf("Warnings = %+v, want one", report.Warnings)
	}
}

func TestValidateIssueOrderStablePerKind(t *testing.T) {
	batch := Batch{
		Activities: []ActivityRecord{
			{Type: "running", StartedAt: time.Now()},     // record 0: duration missing
			{StartedAt: time.Now(), DurationMinutes: 30}, // record 1: type missing
			{Type: "cycling", DurationMinutes: 45},       // record 2: started_at missing
		},
	}

	report := Validate(batch)
	if len(report.Errors) != 3 {
		t.Fatalf("Errors = %+v, want 3", report.Errors)
	}
	for i, e := range report.Errors {
		if e.Record != i {
			t.Errorf("Errors[%d].Record = %d, want %d", i, e.Record, i)
		}
	}
}

func TestValidateNegativeValues(t *testing.T) {
	report := Validate(Batch{
		Health: []HealthRecord{{
			Date:  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			Steps: floatPtr(-100),
		}},
		Training: []TrainingRecord{{
			Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			AcuteLoad:   floatPtr(-5),
			ChronicLoad: floatPtr(200),
		}},
	})

	if !report.IsValid {
		t.Errorf("negative values are anomalies, not errors: %+v", report.Errors)
	}
	if len(report.Anomalies) != 2 {
		t.Errorf("Anomalies = %+v, want 2", report.Anomalies)
	}
}
