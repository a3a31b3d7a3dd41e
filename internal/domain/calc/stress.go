package calc

import "math"

// Normalized intensity is capped at 115% of threshold: a practical ceiling
// for sustained efforts above lactate threshold.
const maxIntensityFactor = 1.15

// TrainingStressScore computes TSS from heart-rate data:
//
//	TSS = hours * intensityFactor^2 * 100
//
// where the intensity factor is the ratio of average to threshold heart
// rate. Non-positive duration or threshold means no measurable load and
// yields 0.0 rather than an error.
func TrainingStressScore(durationMinutes, avgHR, thresholdHR float64) float64 {
	if thresholdHR <= 0 || durationMinutes <= 0 {
		return 0.0
	}

	hours := durationMinutes / 60.0
	intensity := math.Min(avgHR/thresholdHR, maxIntensityFactor)

	tss := hours * intensity * intensity * 100
	return math.Round(tss*10) / 10
}
