package goal

import (
	"errors"
	"testing"
)

func newTestGoal() *Goal {
	return New("goal-1", "athlete-1", KindLoseWeight, "drop five kilos", 65, "kg", nil)
}

func TestUpdateProgress(t *testing.T) {
	g := newTestGoal()

	if err := g.UpdateProgress(40); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if g.Progress != 40 || g.Status != StatusActive {
		t.Errorf("progress = %v status = %v, want 40 active", g.Progress, g.Status)
	}
}

func TestUpdateProgressClamps(t *testing.T) {
	g := newTestGoal()

	if err := g.UpdateProgress(-10); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if g.Progress != 0 {
		t.Errorf("progress = %v, want 0", g.Progress)
	}

	if err := g.UpdateProgress(130); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if g.Progress != 100 {
		t.Errorf("progress = %v, want 100", g.Progress)
	}
}

func TestUpdateProgressCompletesAtFull(t *testing.T) {
	g := newTestGoal()

	if err := g.UpdateProgress(100); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	if g.Status != StatusCompleted {
		t.Errorf("status = %v, want completed", g.Status)
	}

	if err := g.UpdateProgress(50); !errors.Is(err, ErrGoalClosed) {
		t.Errorf("UpdateProgress() on completed goal = %v, want ErrGoalClosed", err)
	}
}

func TestAbandon(t *testing.T) {
	g := newTestGoal()

	if err := g.Abandon(); err != nil {
		t.Fatalf("Abandon() error = %v", err)
	}
	if g.Status != StatusAbandoned {
		t.Errorf("status = %v, want abandoned", g.Status)
	}

	if err := g.Abandon(); !errors.Is(err, ErrGoalClosed) {
		t.Errorf("second Abandon() = %v, want ErrGoalClosed", err)
	}
	if err := g.UpdateProgress(10); !errors.Is(err, ErrGoalClosed) {
		t.Errorf("UpdateProgress() on abandoned goal = %v, want ErrGoalClosed", err)
	}
}
