package view

import (
	"context"
	"strings"

	"github.com/2beens/gymlog/internal/client"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workouts"
	"github.com/2beens/gymlog/pkg"
)

const (
	AlertExerciseRequired = "Exercise is required"
	AlertDateRequired     = "Date is required"
	AlertNothingToLog     = "Add sets or a cardio duration."
)

type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeRejected  Outcome = "rejected"
	OutcomeTransport Outcome = "transport"
)

// FormValues are the raw entry form fields.
type FormValues struct {
	Date     string
	Exercise string
	Sets     string
	Duration string
}

type SubmitResult struct {
	OK      bool
	Outcome Outcome
	Alert   string
	// Form is what the entry form should show next. After a successful
	// submit sets and duration are cleared, otherwise it is the input as is.
	Form FormValues
}

//go:generate mockgen -source=$GOFILE -destination=submit_mocks_test.go -package=view_test

type workoutCreator interface {
	CreateWorkout(ctx context.Context, w client.NewWorkout) error
}

type Submitter struct {
	creator workoutCreator
}

func NewSubmitter(creator workoutCreator) *Submitter {
	return &Submitter{
		creator: creator,
	}
}

// BuildNewWorkout validates the form the way the entry page does and returns
// the request body to send, or the alert to show instead.
func BuildNewWorkout(form FormValues) (client.NewWorkout, string) {
	date := strings.TrimSpace(form.Date)
	exercise := strings.TrimSpace(form.Exercise)
	setsRaw := strings.TrimSpace(form.Sets)

	duration := pkg.None[int]()
	if form.Duration != "" {
		if d, ok := workouts.ParseIntPrefix(form.Duration); ok {
			duration = pkg.Some(d)
		}
	}

	parsed := workouts.ParseSets(setsRaw)

	if exercise == "" {
		return client.NewWorkout{}, AlertExerciseRequired
	}
	if date == "" {
		return client.NewWorkout{}, AlertDateRequired
	}
	if d, ok := duration.Get(); len(parsed) == 0 && !(ok && d > 0) {
		return client.NewWorkout{}, AlertNothingToLog
	}

	nw := client.NewWorkout{
		Date:     date,
		Exercise: exercise,
		Duration: duration,
	}
	if len(parsed) > 0 {
		nw.Sets = make([]client.Set, 0, len(parsed))
		for _, s := range parsed {
			nw.Sets = append(nw.Sets, client.Set{Reps: s.Reps, Weight: s.Weight})
		}
	}
	return nw, ""
}

func (s *Submitter) Submit(ctx context.Context, form FormValues) (result SubmitResult) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "view.submitter.submit")
	defer span.End()

	nw, alert := BuildNewWorkout(form)
	if alert != "" {
		return SubmitResult{Outcome: OutcomeInvalid, Alert: alert, Form: form}
	}

	if err := s.creator.CreateWorkout(ctx, nw); err != nil {
		span.RecordError(err)
		if apiErr, ok := client.IsAPIError(err); ok {
			return SubmitResult{Outcome: OutcomeRejected, Alert: apiErr.Message, Form: form}
		}
		return SubmitResult{Outcome: OutcomeTransport, Alert: err.Error(), Form: form}
	}

	return SubmitResult{
		OK:      true,
		Outcome: OutcomeOK,
		Form: FormValues{
			Date:     form.Date,
			Exercise: form.Exercise,
		},
	}
}
