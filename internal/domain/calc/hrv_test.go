package calc

import (
	"errors"
	"math"
	"testing"
)

func TestHRVBaseline(t *testing.T) {
	tests := []struct {
		name       string
		readings   []float64
		windowDays int
		status     HRVStatus
		confidence Confidence
		zScore     float64
		zDelta     float64
	}{
		{
			name:       "seven stable readings",
			readings:   []float64{70, 71, 69, 70, 72, 71, 70},
			windowDays: 7,
			status:     HRVNormal,
			confidence: ConfidenceHigh,
			zScore:     -0.47,
			zDelta:     0.01,
		},
		{
			name:       "flat series has neutral z-score",
			readings:   []float64{50, 50, 50},
			windowDays: 7,
			status:     HRVNormal,
			confidence: ConfidenceModerate,
			zScore:     0,
			zDelta:     0,
		},
		{
			name:       "drop below baseline flags fatigue",
			readings:   []float64{80, 80, 80, 80, 60},
			windowDays: 7,
			status:     HRVBelowBaseline,
			confidence: ConfidenceModerate,
			zScore:     -2.0,
			zDelta:     0.01,
		},
		{
			name:       "jump above baseline flags recovery",
			readings:   []float64{60, 60, 60, 80},
			windowDays: 7,
			status:     HRVAboveBaseline,
			confidence: ConfidenceModerate,
			zScore:     1.73,
			zDelta:     0.01,
		},
		{
			name: "old readings outside the window are ignored",
			// the last 7 are flat, the spike before them must not matter
			readings:   []float64{120, 120, 120, 70, 70, 70, 70, 70, 70, 70},
			windowDays: 7,
			status:     HRVNormal,
			confidence: ConfidenceHigh,
			zScore:     0,
			zDelta:     0,
		},
		{
			name:       "zero window falls back to default",
			readings:   []float64{70, 71, 69, 70, 72, 71, 70},
			windowDays: 0,
			status:     HRVNormal,
			confidence: ConfidenceHigh,
			zScore:     -0.47,
			zDelta:     0.01,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HRVBaseline(tt.readings, tt.windowDays)
			if err != nil {
				t.Fatalf("HRVBaseline() error = %v", err)
			}
			if got.Status != tt.status {
				t.Errorf("Status = %v, want %v", got.Status, tt.status)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.confidence)
			}
			if math.Abs(got.ZScore-tt.zScore) > tt.zDelta {
				t.Errorf("ZScore = %v, want %v (±%v)", got.ZScore, tt.zScore, tt.zDelta)
			}
			if got.Interpretation == "" {
				t.Error("Interpretation is empty")
			}
		})
	}
}

func TestHRVBaselineValues(t *testing.T) {
	got, err := HRVBaseline([]float64{68, 70, 72}, 7)
	if err != nil {
		t.Fatalf("HRVBaseline() error = %v", err)
	}
	if got.Baseline != 70.0 {
		t.Errorf("Baseline = %v, want 70.0", got.Baseline)
	}
	if got.Current != 72.0 {
		t.Errorf("Current = %v, want 72.0", got.Current)
	}
}

func TestHRVBaselineInsufficientData(t *testing.T) {
	for _, readings := range [][]float64{nil, {70}, {70, 71}} {
		if _, err := HRVBaseline(readings, 7); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("HRVBaseline(%v) error = %v, want ErrInsufficientData", readings, err)
		}
	}
}
