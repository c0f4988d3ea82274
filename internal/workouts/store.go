package workouts

import "context"

// Store keeps workouts. All returns them in ascending insertion order.
type Store interface {
	All(ctx context.Context) ([]Workout, error)
	Add(ctx context.Context, w Workout) (*Workout, error)
}
