package calc

import (
	"errors"
	"testing"
)

func TestCaloricNeeds(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		heightCm float64
		age      int
		sex      Sex
		level    ActivityLevel
		goal     Goal
		bmr      int
		tdee     int
		goalCal  int
	}{
		{
			name:     "sedentary male maintaining",
			weightKg: 70,
			heightCm: 175,
			age:      30,
			sex:      SexMale,
			level:    Sedentary,
			goal:     GoalMaintain,
			// 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
			bmr:     1649,
			tdee:    1979,
			goalCal: 1979,
		},
		{
			name:     "moderately active female losing weight",
			weightKg: 60,
			heightCm: 165,
			age:      28,
			sex:      SexFemale,
			level:    ModeratelyActive,
			goal:     GoalLoseWeight,
			// 10*60 + 6.25*165 - 5*28 - 161 = 1330.25
			bmr:     1330,
			tdee:    2062,
			goalCal: 1562,
		},
		{
			name:     "very active male gaining muscle",
			weightKg: 82,
			heightCm: 182,
			age:      24,
			sex:      SexMale,
			level:    VeryActive,
			goal:     GoalGainMuscle,
			// 10*82 + 6.25*182 - 5*24 + 5 = 1842.5
			bmr:     1843,
			tdee:    3178,
			goalCal: 3378,
		},
		{
			name:     "unknown goal leaves TDEE unadjusted",
			weightKg: 70,
			heightCm: 175,
			age:      30,
			sex:      SexMale,
			level:    Sedentary,
			goal:     Goal("get_swole"),
			bmr:      1649,
			tdee:     1979,
			goalCal:  1979,
		},
		{
			name:     "unknown activity level falls back to moderate",
			weightKg: 70,
			heightCm: 175,
			age:      30,
			sex:      SexMale,
			level:    ActivityLevel("unknown"),
			goal:     GoalMaintain,
			bmr:      1649,
			// 1648.75 * 1.55
			tdee:    2556,
			goalCal: 2556,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := CaloricNeeds(tt.weightKg, tt.heightCm, tt.age, tt.sex, tt.level, tt.goal)
			if err != nil {
				t.Fatalf("CaloricNeeds() error = %v", err)
			}
			if plan.BMR != tt.bmr {
				t.Errorf("BMR = %d, want %d", plan.BMR, tt.bmr)
			}
			if plan.TDEE != tt.tdee {
				t.Errorf("TDEE = %d, want %d", plan.TDEE, tt.tdee)
			}
			if plan.GoalCalories != tt.goalCal {
				t.Errorf("GoalCalories = %d, want %d", plan.GoalCalories, tt.goalCal)
			}

			// macro energy must land on the goal within rounding
			macroCal := plan.Macros.ProteinG*4 + plan.Macros.FatG*9 + plan.Macros.CarbsG*4
			if diff := macroCal - plan.GoalCalories; diff < -10 || diff > 10 {
				t.Errorf("macro calories = %d, goal = %d (diff %d)", macroCal, plan.GoalCalories, diff)
			}
		})
	}
}

func TestCaloricNeedsProtein(t *testing.T) {
	plan, err := CaloricNeeds(70, 175, 30, SexMale, Sedentary, GoalMaintain)
	if err != nil {
		t.Fatalf("CaloricNeeds() error = %v", err)
	}
	// 1.6 g per kg
	if plan.Macros.ProteinG != 112 {
		t.Errorf("ProteinG = %d, want 112", plan.Macros.ProteinG)
	}
}

func TestCaloricNeedsInvalidProfile(t *testing.T) {
	cases := []struct {
		name     string
		weightKg float64
		heightCm float64
		age      int
	}{
		{"zero weight", 0, 175, 30},
		{"zero height", 70, 0, 30},
		{"zero age", 70, 175, 0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CaloricNeeds(tt.weightKg, tt.heightCm, tt.age, SexMale, Sedentary, GoalMaintain)
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("CaloricNeeds() error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}
