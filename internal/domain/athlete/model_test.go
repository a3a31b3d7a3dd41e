package athlete

import (
	"errors"
	"testing"

	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
)

func TestNew(t *testing.T) {
	a, err := New("athlete-1", 30, calc.SexMale, 178, 74, 52, 188,
		calc.ModeratelyActive, calc.GoalMaintain, 60)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	events := a.PopEvents()
	if len(events) != 1 || events[0].Type() != EventProfileCreated {
		t.Errorf("events = %v, want one profile created event", events)
	}

	p := a.Profile()
	if p.Age != 30 || p.RestingHR != 52 || p.MaxHR != 188 {
		t.Errorf("Profile() = %+v, does not mirror the aggregate", p)
	}
}

func TestNewRejectsInvalidProfile(t *testing.T) {
	tests := []struct {
		name      string
		age       int
		restingHR int
		maxHR     int
	}{
		{"zero age", 0, 52, 188},
		{"zero resting hr", 30, 0, 188},
		{"max below resting", 30, 188, 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("athlete-1", tt.age, calc.SexMale, 178, 74, tt.restingHR, tt.maxHR,
				calc.ModeratelyActive, calc.GoalMaintain, 60)
			if !errors.Is(err, calc.ErrInvalidProfile) {
				t.Errorf("New() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}
