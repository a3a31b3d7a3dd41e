package workout

import (
	"errors"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
)

var (
	ErrWorkoutExists   = errors.New("workout already exists")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// Workout is one completed training session with its stored stress score.
type Workout struct {
	domain.Aggregate
	WorkoutID       string
	AthleteID       string
	Sport           string
	StartedAt       time.Time
	DurationMinutes float64
	AvgHeartRate    float64
	MaxHeartRate    float64
	ThresholdHR     float64
	TrainingStress  float64
	CreatedAt       time.Time
}

// New builds a session and computes its training stress score at ingest.
// Sessions without usable duration or threshold data carry zero stress.
func New(
	workoutID, athleteID, sport string,
	startedAt time.Time,
	durationMinutes, avgHR, maxHR, thresholdHR float64,
) *Workout {
	return &Workout{
		WorkoutID:       workoutID,
		AthleteID:       athleteID,
		Sport:           sport,
		StartedAt:       startedAt,
		DurationMinutes: durationMinutes,
		AvgHeartRate:    avgHR,
		MaxHeartRate:    maxHR,
		ThresholdHR:     thresholdHR,
		TrainingStress:  calc.TrainingStressScore(durationMinutes, avgHR, thresholdHR),
		CreatedAt:       time.Now().UTC(),
	}
}
