package calc

import (
	"errors"
	"math"
	"testing"
)

func TestEstimateVO2Max(t *testing.T) {
	tests := []struct {
		name      string
		age       int
		sex       Sex
		restingHR int
		level     ActivityLevel
		expected  float64
	}{
		{
			name:      "male moderately active is unscaled",
			age:       30,
			sex:       SexMale,
			restingHR: 60,
			level:     ModeratelyActive,
			// 15.3 * (220-30) / 60
			expected: 48.5,
		},
		{
			name:      "female applies 0.85",
			age:       30,
			sex:       SexFemale,
			restingHR: 60,
			level:     ModeratelyActive,
			expected:  41.2,
		},
		{
			name:      "sedentary scales down",
			age:       30,
			sex:       SexMale,
			restingHR: 60,
			level:     Sedentary,
			expected:  41.2,
		},
		{
			name:      "extremely active scales up",
			age:       30,
			sex:       SexMale,
			restingHR: 60,
			level:     ExtremelyActive,
			expected:  58.1,
		},
		{
			name:      "unknown level defaults to unscaled",
			age:       30,
			sex:       SexMale,
			restingHR: 60,
			level:     ActivityLevel("couch_surfer"),
			expected:  48.5,
		},
		{
			name:      "older athlete with low resting rate",
			age:       50,
			sex:       SexMale,
			restingHR: 48,
			level:     VeryActive,
			// 15.3 * 170 / 48 * 1.1
			expected: 59.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateVO2Max(tt.age, tt.sex, tt.restingHR, tt.level)
			if err != nil {
				t.Fatalf("EstimateVO2Max() error = %v", err)
			}
			if math.Abs(got-tt.expected) > 0.05 {
				t.Errorf("EstimateVO2Max() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEstimateVO2MaxInvalidRestingHR(t *testing.T) {
	for _, hr := range []int{0, -10} {
		if _, err := EstimateVO2Max(30, SexMale, hr, ModeratelyActive); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("EstimateVO2Max(restingHR=%d) error = %v, want ErrInvalidProfile", hr, err)
		}
	}
}
