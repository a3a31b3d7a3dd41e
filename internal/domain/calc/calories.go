package calc

import (
	"fmt"
	"math"
)

var tdeeMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtremelyActive:  1.9,
}

// Daily kcal adjustment applied on top of TDEE per goal.
var goalAdjustments = map[Goal]float64{
	GoalLoseWeight:     -500,
	GoalLoseWeightFast: -750,
	GoalMaintain:       0,
	GoalGainWeight:     300,
	GoalGainMuscle:     200,
}

type Macros struct {
	ProteinG int `json:"protein_g"`
	FatG     int `json:"fat_g"`
	CarbsG   int `json:"carbs_g"`
}

// CaloricPlan is the daily energy budget: basal rate, total expenditure,
// the goal-adjusted target and its macronutrient split. Protein at 4 kcal/g
// plus fat at 9 kcal/g plus carbs at 4 kcal/g lands on the goal calories
// within rounding.
type CaloricPlan struct {
	BMR          int    `json:"bmr"`
	TDEE         int    `json:"tdee"`
	GoalCalories int    `json:"goal_calories"`
	Macros       Macros `json:"macros"`
}

// CaloricNeeds computes the daily caloric plan using the Mifflin-St Jeor
// equation for BMR. Unknown activity levels fall back to moderately active;
// unknown goals leave the TDEE unadjusted. Protein is fixed at 1.6 g per kg
// of body weight, fat at 25% of goal calories, carbs take the remainder.
func CaloricNeeds(weightKg, heightCm float64, age int, sex Sex, level ActivityLevel, goal Goal) (CaloricPlan, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return CaloricPlan{}, fmt.Errorf("%w: weight, height and age must be positive", ErrInvalidProfile)
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := tdeeMultipliers[level]
	if !ok {
		multiplier = tdeeMultipliers[ModeratelyActive]
	}
	tdee := bmr * multiplier

	goalCalories := tdee + goalAdjustments[goal]

	proteinG := weightKg * 1.6
	fatCalories := goalCalories * 0.25
	carbsG := (goalCalories - proteinG*4 - fatCalories) / 4

	return CaloricPlan{
		BMR:          int(math.Round(bmr)),
		TDEE:         int(math.Round(tdee)),
		GoalCalories: int(math.Round(goalCalories)),
		Macros: Macros{
			ProteinG: int(math.Round(proteinG)),
			FatG:     int(math.Round(fatCalories / 9)),
			CarbsG:   int(math.Round(carbsG)),
		},
	}, nil
}
