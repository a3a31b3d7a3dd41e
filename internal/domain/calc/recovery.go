package calc

import "math"

const (
	minRecoveryHours = 12
	maxRecoveryHours = 72
)

// RecoveryHours estimates the rest needed after a training load (TSS-like
// units). Base recovery is half an hour per load point, slowed 1% per year
// of age past 25 and sped up by fitness (score 0-100). The result is
// clamped to [12, 72] hours.
func RecoveryHours(trainingLoad float64, fitnessLevel, age int) int {
	base := trainingLoad * 0.5

	ageFactor := 1 + float64(age-25)*0.01
	fitnessFactor := math.Max(0.7, 1.2-float64(fitnessLevel)/100)

	total := int(math.Round(base * ageFactor * fitnessFactor))

	if total < minRecoveryHours {
		return minRecoveryHours
	}
	if total > maxRecoveryHours {
		return maxRecoveryHours
	}
	return total
}
