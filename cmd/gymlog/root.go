package main

import (
	"os"
	"time"

	"github.com/2beens/gymlog/internal/client"

	"github.com/spf13/cobra"
)

const defaultAPI = "http://localhost:9000"

type rootOptions struct {
	api     string
	timeout time.Duration
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.api, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gymlog",
		Short: "Log workouts and read training stats from the terminal",
		Long: `gymlog talks to a running gymlog service.
Sets are given as "reps,weight" pairs, one per line or separated by ';'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	api := os.Getenv("GYMLOG_API")
	if api == "" {
		api = defaultAPI
	}
	rootCmd.PersistentFlags().StringVar(&opts.api, "api", api, "base URL of the gymlog service (env GYMLOG_API)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))

	return rootCmd
}
