package calc

import (
	"fmt"
	"math"
)

type ZoneMethod string

const (
	// MethodKarvonen spreads zones over the heart-rate reserve
	// (max minus resting), anchored at the resting rate.
	MethodKarvonen ZoneMethod = "karvonen"
	// MethodPercentage applies the same bands directly to the max rate.
	MethodPercentage ZoneMethod = "percentage"
)

type Zone struct {
	Name        string `json:"name"`
	MinHR       int    `json:"min_hr"`
	MaxHR       int    `json:"max_hr"`
	Intensity   string `json:"intensity"`
	Description string `json:"description"`
}

// Zones is the five-zone training table, ordered zone 1 through zone 5.
// Bounds increase monotonically and zone 5 tops out at the max heart rate.
type Zones [5]Zone

var zoneBands = [5]struct {
	name        string
	description string
	lower       float64
	upper       float64
}{
	{"Active Recovery", "Very light intensity, active recovery", 0.50, 0.60},
	{"Aerobic Base", "Light intensity, fat burning", 0.60, 0.70},
	{"Aerobic", "Moderate intensity, aerobic development", 0.70, 0.80},
	{"Lactate Threshold", "Hard intensity, lactate threshold", 0.80, 0.90},
	{"VO2 Max", "Very hard intensity, VO2 max", 0.90, 1.00},
}

// HeartRateZones computes the five-zone training table from heart-rate
// bounds. Bounds are rounded to whole bpm; the top of zone 5 is pinned to
// maxHR for both methods so the table always partitions up to the max rate.
func HeartRateZones(restingHR, maxHR int, method ZoneMethod) (Zones, error) {
	if restingHR <= 0 || maxHR <= 0 {
		return Zones{}, fmt.Errorf("%w: heart rate bounds must be positive", ErrInvalidProfile)
	}
	if maxHR <= restingHR {
		return Zones{}, fmt.Errorf("%w: max heart rate must exceed resting heart rate", ErrInvalidProfile)
	}

	var zones Zones
	for i, band := range zoneBands {
		var minHR, maxBound float64
		var unit string

		switch method {
		case MethodPercentage:
			minHR = float64(maxHR) * band.lower
			maxBound = float64(maxHR) * band.upper
			unit = "Max HR"
		default: // karvonen
			reserve := float64(maxHR - restingHR)
			minHR = float64(restingHR) + reserve*band.lower
			maxBound = float64(restingHR) + reserve*band.upper
			unit = "HRR"
		}

		zones[i] = Zone{
			Name:        band.name,
			MinHR:       int(math.Round(minHR)),
			MaxHR:       int(math.Round(maxBound)),
			Intensity:   fmt.Sprintf("%d-%d%% %s", int(band.lower*100), int(band.upper*100), unit),
			Description: band.description,
		}
	}
	zones[4].MaxHR = maxHR

	return zones, nil
}
