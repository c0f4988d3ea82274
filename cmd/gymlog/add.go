package main

import (
	"errors"
	"strings"
	"time"

	"github.com/2beens/gymlog/internal/view"

	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var form view.FormValues

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Log a workout, then print stats and recent workouts",
		Example: `  gymlog add --exercise Bench --sets "5,135;3 225"
  gymlog add --exercise Run --duration 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Sets = commandLineSets(form.Sets)

			c := opts.client()
			result := view.NewSubmitter(c).Submit(cmd.Context(), form)
			if !result.OK {
				printAlert(cmd.ErrOrStderr(), result.Alert)
				return errors.New("workout not logged")
			}

			printOK(cmd.OutOrStdout(), "Logged "+strings.TrimSpace(form.Exercise)+" on "+strings.TrimSpace(form.Date))
			return printSummary(cmd, c, view.Surface{})
		},
	}

	addCmd.Flags().StringVar(&form.Date, "date", view.TodayISO(time.Now()), "workout date, YYYY-MM-DD")
	addCmd.Flags().StringVar(&form.Exercise, "exercise", "", "exercise name")
	addCmd.Flags().StringVar(&form.Sets, "sets", "", `sets as "reps,weight", separated by ';' or new lines`)
	addCmd.Flags().StringVar(&form.Duration, "duration", "", "cardio duration in minutes")

	return addCmd
}

// commandLineSets turns ';' separated sets into one set per line.
func commandLineSets(sets string) string {
	return strings.ReplaceAll(sets, ";", "\n")
}
