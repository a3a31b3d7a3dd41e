package calc

import (
	"fmt"
	"math"
)

var vo2ActivityMultipliers = map[ActivityLevel]float64{
	Sedentary:        0.85,
	LightlyActive:    0.95,
	ModeratelyActive: 1.0,
	VeryActive:       1.1,
	ExtremelyActive:  1.2,
}

// EstimateVO2Max predicts maximal oxygen uptake (ml/kg/min) without an
// exercise test, from age, sex and resting heart rate, scaled by habitual
// activity level. Unknown activity levels leave the base estimate unscaled.
func EstimateVO2Max(age int, sex Sex, restingHR int, level ActivityLevel) (float64, error) {
	if restingHR <= 0 {
		return 0, fmt.Errorf("%w: resting heart rate must be positive", ErrInvalidProfile)
	}

	base := 15.3 * float64(220-age) / float64(restingHR)
	if sex != SexMale {
		base *= 0.85
	}

	multiplier, ok := vo2ActivityMultipliers[level]
	if !ok {
		multiplier = 1.0
	}

	return math.Round(base*multiplier*10) / 10, nil
}
