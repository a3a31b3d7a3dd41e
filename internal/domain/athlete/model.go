package athlete

import (
	"errors"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
	"github.com/ratmirov/go_coach_backend/internal/domain/calc"
)

var (
	ErrProfileExists   = errors.New("athlete profile already exists")
	ErrProfileNotFound = errors.New("athlete profile not found")
)

const EventProfileCreated = "athlete.profile_created"

// Athlete is the physiological profile of one user: the baseline
// attributes every calculation derives from, plus the default goal the
// coaching layer plans against.
type Athlete struct {
	domain.Aggregate `diff:"-"`
	AthleteID        string             `diff:"-"`
	Age              int                `diff:"age"`
	Sex              calc.Sex           `diff:"sex"`
	HeightCm         float64            `diff:"height_cm"`
	WeightKg         float64            `diff:"weight_kg"`
	RestingHR        int                `diff:"resting_hr"`
	MaxHR            int                `diff:"max_hr"`
	ActivityLevel    calc.ActivityLevel `diff:"activity_level"`
	Goal             calc.Goal          `diff:"goal"`
	FitnessScore     int                `diff:"fitness_score"`
	CreatedAt        time.Time          `diff:"-"`
	UpdatedAt        time.Time          `diff:"updated_at"`
}

func New(
	athleteID string,
	age int,
	sex calc.Sex,
	heightCm, weightKg float64,
	restingHR, maxHR int,
	level calc.ActivityLevel,
	goal calc.Goal,
	fitnessScore int,
) (*Athlete, error) {
	a := &Athlete{
		AthleteID:     athleteID,
		Age:           age,
		Sex:           sex,
		HeightCm:      heightCm,
		WeightKg:      weightKg,
		RestingHR:     restingHR,
		MaxHR:         maxHR,
		ActivityLevel: level,
		Goal:          goal,
		FitnessScore:  fitnessScore,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := a.Profile().Check(); err != nil {
		return nil, err
	}
	a.PushEvent(ProfileCreatedEvent{At: a.CreatedAt, AthleteID: athleteID})
	return a, nil
}

// Profile projects the aggregate onto the calculation engine's input.
func (a *Athlete) Profile() calc.Profile {
	return calc.Profile{
		Age:           a.Age,
		Sex:           a.Sex,
		HeightCm:      a.HeightCm,
		WeightKg:      a.WeightKg,
		RestingHR:     a.RestingHR,
		MaxHR:         a.MaxHR,
		ActivityLevel: a.ActivityLevel,
	}
}

type ProfileCreatedEvent struct {
	At        time.Time
	AthleteID string
}

func (e ProfileCreatedEvent) Type() string           { return EventProfileCreated }
func (e ProfileCreatedEvent) PublishedAt() time.Time { return e.At }
