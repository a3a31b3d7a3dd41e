package calc

import (
	"math"
	"testing"
)

func TestTrainingStressScore(t *testing.T) {
	tests := []struct {
		name            string
		durationMinutes float64
		avgHR           float64
		thresholdHR     float64
		expected        float64
	}{
		{
			name:            "one hour at threshold is 100",
			durationMinutes: 60,
			avgHR:           165,
			thresholdHR:     165,
			expected:        100.0,
		},
		{
			name:            "zero duration is no load",
			durationMinutes: 0,
			avgHR:           150,
			thresholdHR:     165,
			expected:        0.0,
		},
		{
			name:            "zero threshold is no load",
			durationMinutes: 60,
			avgHR:           150,
			thresholdHR:     0,
			expected:        0.0,
		},
		{
			name:            "negative duration is no load",
			durationMinutes: -30,
			avgHR:           150,
			thresholdHR:     165,
			expected:        0.0,
		},
		{
			name:            "easy half hour",
			durationMinutes: 30,
			avgHR:           132,
			thresholdHR:     165,
			// 0.5h * 0.8^2 * 100
			expected: 32.0,
		},
		{
			name:            "intensity capped at 1.15",
			durationMinutes: 60,
			avgHR:           215, // ratio 1.30, capped
			thresholdHR:     165,
			// 1h * 1.15^2 * 100 = 132.2499..., rounds down
			expected: 132.2,
		},
		{
			name:            "ninety minutes at threshold",
			durationMinutes: 90,
			avgHR:           165,
			thresholdHR:     165,
			expected:        150.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrainingStressScore(tt.durationMinutes, tt.avgHR, tt.thresholdHR)
			if math.Abs(got-tt.expected) > 0.05 {
				t.Errorf("TrainingStressScore() = %v, want %v", got, tt.expected)
			}
		})
	}
}
