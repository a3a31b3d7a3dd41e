package calc

import "testing"

func TestRecoveryHours(t *testing.T) {
	tests := []struct {
		name         string
		trainingLoad float64
		fitnessLevel int
		age          int
		expected     int
	}{
		{
			name:         "moderate load fit athlete",
			trainingLoad: 100,
			fitnessLevel: 50,
			age:          30,
			// 50 * 1.05 * 0.7
			expected: 37,
		},
		{
			name:         "zero load clamps to minimum",
			trainingLoad: 0,
			fitnessLevel: 50,
			age:          30,
			expected:     12,
		},
		{
			name:         "huge load clamps to maximum",
			trainingLoad: 300,
			fitnessLevel: 0,
			age:          60,
			expected:     72,
		},
		{
			name:         "young fit athlete recovers fast",
			trainingLoad: 40,
			fitnessLevel: 80,
			age:          20,
			// 20 * 0.95 * 0.7 = 13.3
			expected: 13,
		},
		{
			name:         "unfit floor on fitness factor",
			trainingLoad: 80,
			fitnessLevel: 100,
			age:          25,
			// fitness factor floors at 0.7: 40 * 1.0 * 0.7
			expected: 28,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecoveryHours(tt.trainingLoad, tt.fitnessLevel, tt.age); got != tt.expected {
				t.Errorf("RecoveryHours() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRecoveryHoursAlwaysInRange(t *testing.T) {
	for load := 0.0; load <= 500; load += 25 {
		for fitness := 0; fitness <= 100; fitness += 20 {
			for age := 18; age <= 90; age += 9 {
				got := RecoveryHours(load, fitness, age)
				if got < 12 || got > 72 {
					t.Fatalf("RecoveryHours(%v, %d, %d) = %d, outside [12, 72]", load, fitness, age, got)
				}
			}
		}
	}
}
