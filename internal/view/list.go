package view

import (
	"fmt"
	"strings"

	"github.com/2beens/gymlog/internal/client"
)

const RecentWorkoutsLimit = 20

type WorkoutRow struct {
	Date     string
	Exercise string
	Details  string
}

// RenderWorkouts builds rows for the most recent workouts, newest first.
// list is expected in ascending insertion order.
func RenderWorkouts(list []client.Workout) []WorkoutRow {
	start := 0
	if len(list) > RecentWorkoutsLimit {
		start = len(list) - RecentWorkoutsLimit
	}
	recent := list[start:]

	rows := make([]WorkoutRow, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		w := recent[i]
		rows = append(rows, WorkoutRow{
			Date:     w.Date,
			Exercise: w.Exercise,
			Details:  workoutDetails(w),
		})
	}
	return rows
}

func workoutDetails(w client.Workout) string {
	if len(w.Sets) > 0 {
		parts := make([]string, 0, len(w.Sets))
		for _, s := range w.Sets {
			parts = append(parts, fmt.Sprintf("%dx%s", s.Reps, FormatNumber(s.Weight)))
		}
		return strings.Join(parts, ", ")
	}
	if d, ok := w.Duration.Get(); ok && d != 0 {
		return fmt.Sprintf("%d min", d)
	}
	return "-"
}
