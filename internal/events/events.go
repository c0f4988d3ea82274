package events

import (
	"context"
	"time"

	"github.com/2beens/gymlog/internal/workouts"
)

const (
	EventTypeWorkoutCreated = "workout.created"
	eventVersion            = "v1"
)

type Publisher interface {
	WorkoutCreated(ctx context.Context, w workouts.Workout) error
	Close() error
}

type WorkoutCreated struct {
	WorkoutID string         `json:"workoutId"`
	Date      string         `json:"date"`
	Exercise  string         `json:"exercise"`
	Sets      []workouts.Set `json:"sets"`
	Duration  *int           `json:"duration"`
	Volume    float64        `json:"volume"`
	CreatedAt time.Time      `json:"createdAt"`
	Version   string         `json:"version"`
}

func NewWorkoutCreated(w workouts.Workout) WorkoutCreated {
	var volume float64
	for _, s := range w.Sets {
		volume += s.Volume()
	}
	return WorkoutCreated{
		WorkoutID: w.ID,
		Date:      w.Date,
		Exercise:  w.Exercise,
		Sets:      w.Sets,
		Duration:  w.Duration.Ptr(),
		Volume:    volume,
		CreatedAt: w.CreatedAt,
		Version:   eventVersion,
	}
}

// NopPublisher drops every event, used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) WorkoutCreated(context.Context, workouts.Workout) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
