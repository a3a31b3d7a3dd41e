package calc

import (
	"fmt"
	"math"
)

type HRVStatus string

const (
	HRVAboveBaseline HRVStatus = "above_baseline"
	HRVBelowBaseline HRVStatus = "below_baseline"
	HRVNormal        HRVStatus = "normal"
)

type Confidence string

const (
	ConfidenceHigh     Confidence = "high"
	ConfidenceModerate Confidence = "moderate"
)

// DefaultHRVWindowDays is the trailing window used when the caller does
// not specify one.
const DefaultHRVWindowDays = 7

// HRVSummary describes the latest HRV reading relative to its trailing
// baseline.
type HRVSummary struct {
	Baseline       float64    `json:"baseline"`
	Current        float64    `json:"current"`
	ZScore         float64    `json:"z_score"`
	Status         HRVStatus  `json:"status"`
	Interpretation string     `json:"interpretation"`
	Confidence     Confidence `json:"confidence"`
}

// HRVBaseline computes the trailing-window baseline of RMSSD readings
// (ordered oldest to newest) and classifies the most recent reading
// against it. At least 3 readings are required. A flat series has no
// meaningful deviation and is reported as normal with a zero z-score.
func HRVBaseline(readings []float64, windowDays int) (HRVSummary, error) {
	if len(readings) < 3 {
		return HRVSummary{}, fmt.Errorf("%w: HRV baseline needs at least 3 readings, got %d",
			ErrInsufficientData, len(readings))
	}
	if windowDays <= 0 {
		windowDays = DefaultHRVWindowDays
	}

	window := readings
	if len(readings) > windowDays {
		window = readings[len(readings)-windowDays:]
	}

	var sum float64
	for _, r := range window {
		sum += r
	}
	baseline := sum / float64(len(window))

	var varSum float64
	for _, r := range window {
		d := r - baseline
		varSum += d * d
	}
	stdDev := math.Sqrt(varSum / float64(len(window)))

	current := readings[len(readings)-1]

	var z float64
	if stdDev > 0 {
		z = (current - baseline) / stdDev
	}

	var status HRVStatus
	var interpretation string
	switch {
	case z > 0.5:
		status = HRVAboveBaseline
		interpretation = "Good recovery, ready for training"
	case z < -0.5:
		status = HRVBelowBaseline
		interpretation = "Possible fatigue or stress, consider easier training"
	default:
		status = HRVNormal
		interpretation = "Normal recovery status"
	}

	confidence := ConfidenceModerate
	if len(window) >= 7 {
		confidence = ConfidenceHigh
	}

	return HRVSummary{
		Baseline:       math.Round(baseline*10) / 10,
		Current:        math.Round(current*10) / 10,
		ZScore:         math.Round(z*100) / 100,
		Status:         status,
		Interpretation: interpretation,
		Confidence:     confidence,
	}, nil
}
