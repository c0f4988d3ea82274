package main

import (
	"fmt"

	"github.com/2beens/gymlog/internal/client"
	"github.com/2beens/gymlog/internal/view"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print weekly and monthly volume and the best 1RM per exercise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := opts.client().Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("get stats: %w", err)
			}
			printStats(cmd.OutOrStdout(), view.RenderStats(snapshot, view.Surface{}))
			return nil
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the 20 most recent workouts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := opts.client().Workouts(cmd.Context())
			if err != nil {
				return fmt.Errorf("get workouts: %w", err)
			}
			printWorkouts(cmd.OutOrStdout(), view.RenderWorkouts(list))
			return nil
		},
	}
}

// printSummary loads stats and workouts concurrently and prints both.
// A region that fails to load is reported and the other is still printed.
func printSummary(cmd *cobra.Command, c *client.Client, surface view.Surface) error {
	var (
		snapshot *client.StatsSnapshot
		list     []client.Workout
		statsErr error
		listErr  error
		g        errgroup.Group
	)
	ctx := cmd.Context()

	g.Go(func() error {
		snapshot, statsErr = c.Stats(ctx)
		return nil
	})
	g.Go(func() error {
		list, listErr = c.Workouts(ctx)
		return nil
	})
	_ = g.Wait()

	out := cmd.OutOrStdout()
	if statsErr != nil {
		printAlert(cmd.ErrOrStderr(), view.NoticeStatsUnavailable+" "+statsErr.Error())
	} else {
		printStats(out, view.RenderStats(snapshot, surface))
	}

	if listErr != nil {
		printAlert(cmd.ErrOrStderr(), view.NoticeWorkoutsUnavailable+" "+listErr.Error())
	} else {
		printWorkouts(out, view.RenderWorkouts(list))
	}

	if statsErr != nil || listErr != nil {
		return fmt.Errorf("refresh after add failed")
	}
	return nil
}
