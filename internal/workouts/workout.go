package workouts

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/2beens/gymlog/pkg"
)

const DateLayout = "2006-01-02"

var ErrInvalid = errors.New("invalid workout")

type Set struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func (s Set) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

type Workout struct {
	ID        string            `json:"id,omitempty"`
	Date      string            `json:"date"`
	Exercise  string            `json:"exercise"`
	Sets      []Set             `json:"sets"`
	Duration  pkg.Optional[int] `json:"duration"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (w Workout) HasSets() bool {
	return len(w.Sets) > 0
}

// HasDuration reports a positive cardio duration in minutes.
func (w Workout) HasDuration() bool {
	d, ok := w.Duration.Get()
	return ok && d > 0
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// Validate returns the first rule the workout breaks, as a *ValidationError.
func Validate(w Workout) error {
	if strings.TrimSpace(w.Date) == "" {
		return invalid("date is required")
	}
	if _, err := time.Parse(DateLayout, w.Date); err != nil {
		return invalid("date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(w.Exercise) == "" {
		return invalid("exercise is required")
	}
	if !w.HasSets() && !w.HasDuration() {
		return invalid("provide sets or duration")
	}
	for _, s := range w.Sets {
		if s.Reps <= 0 {
			return invalid("reps must be > 0")
		}
		if !(s.Weight >= 0) || math.IsInf(s.Weight, 1) {
			return invalid("weight must be >= 0")
		}
	}
	return nil
}
