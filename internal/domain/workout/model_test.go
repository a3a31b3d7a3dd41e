package workout

import (
	"math"
	"testing"
	"time"
)

func TestNewComputesTrainingStress(t *testing.T) {
	started := time.Date(2026, 8, 1, 7, 0, 0, 0, time.UTC)

	w := New("w-1", "athlete-1", "run", started, 60, 155, 176, 155)
	if math.Abs(w.TrainingStress-100.0) > 1e-9 {
		t.Errorf("TrainingStress = %v, want 100.0", w.TrainingStress)
	}
}

func TestNewWithoutThresholdCarriesZeroStress(t *testing.T) {
	started := time.Date(2026, 8, 1, 7, 0, 0, 0, time.UTC)

	w := New("w-1", "athlete-1", "yoga", started, 45, 0, 0, 0)
	if w.TrainingStress != 0 {
		t.Errorf("TrainingStress = %v, want 0", w.TrainingStress)
	}
}
