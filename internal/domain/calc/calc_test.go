package calc

import (
	"errors"
	"testing"
)

func validProfile() Profile {
	return Profile{
		Age:           30,
		Sex:           SexMale,
		HeightCm:      175,
		WeightKg:      70,
		RestingHR:     60,
		MaxHR:         190,
		ActivityLevel: ModeratelyActive,
	}
}

func TestProfileCheck(t *testing.T) {
	if err := validProfile().Check(); err != nil {
		t.Fatalf("Check() on valid profile = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"zero age", func(p *Profile) { p.Age = 0 }},
		{"negative height", func(p *Profile) { p.HeightCm = -1 }},
		{"zero weight", func(p *Profile) { p.WeightKg = 0 }},
		{"zero resting HR", func(p *Profile) { p.RestingHR = 0 }},
		{"inverted HR bounds", func(p *Profile) { p.MaxHR = 55 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			if err := p.Check(); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Check() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestProfileDerivations(t *testing.T) {
	p := validProfile()

	zones, err := p.Zones(MethodKarvonen)
	if err != nil {
		t.Fatalf("Zones() error = %v", err)
	}
	if zones[4].MaxHR != p.MaxHR {
		t.Errorf("zone 5 max = %d, want %d", zones[4].MaxHR, p.MaxHR)
	}

	vo2, err := p.VO2Max()
	if err != nil {
		t.Fatalf("VO2Max() error = %v", err)
	}
	if vo2 != 48.5 {
		t.Errorf("VO2Max() = %v, want 48.5", vo2)
	}

	plan, err := p.CaloricNeeds(GoalMaintain)
	if err != nil {
		t.Fatalf("CaloricNeeds() error = %v", err)
	}
	if plan.BMR != 1649 {
		t.Errorf("BMR = %d, want 1649", plan.BMR)
	}
}
