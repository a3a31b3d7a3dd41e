// Package calc implements deterministic sports-science calculations over
// athlete baselines and recent readings. Every function is pure: it reads
// only its arguments and allocates only its result, so callers may invoke
// the package concurrently without coordination.
package calc

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidProfile   = errors.New("invalid physiological profile")
	ErrInsufficientData = errors.New("insufficient data")
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtremelyActive  ActivityLevel = "extremely_active"
)

type Goal string

const (
	GoalLoseWeight     Goal = "lose_weight"
	GoalLoseWeightFast Goal = "lose_weight_fast"
	GoalMaintain       Goal = "maintain"
	GoalGainWeight     Goal = "gain_weight"
	GoalGainMuscle     Goal = "gain_muscle"
)

// Profile carries the slow-changing physiological attributes the
// calculations derive from. It is owned by the caller and never mutated.
type Profile struct {
	Age           int
	Sex           Sex
	HeightCm      float64
	WeightKg      float64
	RestingHR     int
	MaxHR         int
	ActivityLevel ActivityLevel
}

// Check reports whether the profile is physiologically sensible.
func (p Profile) Check() error {
	if p.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidProfile)
	}
	if p.HeightCm <= 0 || p.WeightKg <= 0 {
		return fmt.Errorf("%w: height and weight must be positive", ErrInvalidProfile)
	}
	if p.RestingHR <= 0 || p.MaxHR <= 0 {
		return fmt.Errorf("%w: heart rate bounds must be positive", ErrInvalidProfile)
	}
	if p.MaxHR <= p.RestingHR {
		return fmt.Errorf("%w: max heart rate must exceed resting heart rate", ErrInvalidProfile)
	}
	return nil
}

// Zones derives the heart-rate training zone table for this profile.
func (p Profile) Zones(method ZoneMethod) (Zones, error) {
	return HeartRateZones(p.RestingHR, p.MaxHR, method)
}

// VO2Max estimates maximal oxygen uptake for this profile.
func (p Profile) VO2Max() (float64, error) {
	return EstimateVO2Max(p.Age, p.Sex, p.RestingHR, p.ActivityLevel)
}

// CaloricNeeds derives the daily caloric plan for this profile and goal.
func (p Profile) CaloricNeeds(goal Goal) (CaloricPlan, error) {
	return CaloricNeeds(p.WeightKg, p.HeightCm, p.Age, p.Sex, p.ActivityLevel, goal)
}
