package goal

import (
	"errors"
	"time"

	"github.com/ratmirov/go_coach_backend/internal/domain"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrGoalExists   = errors.New("goal already exists")
	ErrGoalClosed   = errors.New("goal is not active")
)

type GoalID string

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

const (
	KindLoseWeight  = "lose_weight"
	KindGainMuscle  = "gain_muscle"
	KindPerformance = "performance"
	KindHabit       = "habit"
)

// Goal is one target an athlete is working toward. Progress runs 0-100;
// reaching 100 completes the goal.
type Goal struct {
	domain.Aggregate `diff:"-"`
	GoalID           GoalID     `diff:"-"`
	AthleteID        string     `diff:"-"`
	Kind             string     `diff:"kind"`
	Description      string     `diff:"description"`
	TargetValue      float64    `diff:"target_value"`
	TargetUnit       string     `diff:"target_unit"`
	Deadline         *time.Time `diff:"deadline"`
	Progress         float64    `diff:"progress"`
	Status           Status     `diff:"status"`
	CreatedAt        time.Time  `diff:"-"`
	UpdatedAt        time.Time  `diff:"updated_at"`
}

func New(
	goalID GoalID,
	athleteID string,
	kind, description string,
	targetValue float64,
	targetUnit string,
	deadline *time.Time,
) *Goal {
	now := time.Now().UTC()
	return &Goal{
		GoalID:      goalID,
		AthleteID:   athleteID,
		Kind:        kind,
		Description: description,
		TargetValue: targetValue,
		TargetUnit:  targetUnit,
		Deadline:    deadline,
		Progress:    0,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateProgress records progress toward the target. Values are clamped
// to [0, 100]; reaching 100 completes the goal.
func (g *Goal) UpdateProgress(progress float64) error {
	if g.Status != StatusActive {
		return ErrGoalClosed
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	g.Progress = progress
	if progress >= 100 {
		g.Status = StatusCompleted
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *Goal) Abandon() error {
	if g.Status != StatusActive {
		return ErrGoalClosed
	}
	g.Status = StatusAbandoned
	g.UpdatedAt = time.Now().UTC()
	return nil
}
