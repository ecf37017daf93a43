package main

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_ytcloud/internal/cloudserver"
	"github.com/spf13/cobra"
)

// depsFunc builds the pipeline capabilities for one command run and a func releasing them.
type depsFunc func(ctx context.Context, withStore bool) (cloudserver.Deps, func(), error)

type app struct {
	newDeps depsFunc
	verbose bool
	jsonOut bool
}

func newRootCmd(newDeps depsFunc) *cobra.Command {
	a := &app{newDeps: newDeps}
	root := &cobra.Command{
		Use:   "ytcloud",
		Short: "YouTube title word clouds",
		Long: `ytcloud searches YouTube, aggregates the titles of the matching videos
across result pages and ranks the words in them by frequency.

Example usage:
  ytcloud search minecraft              # Top words for the most viewed results
  ytcloud search cats --order date      # Newest results instead
  ytcloud channel UCX6OQ3DkcsbYNE6H8uQQuVA --save
  ytcloud samples                       # Saved samples
  ytcloud sample 3 --top 10             # Re-rank a saved sample offline`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(
		a.searchCmd(),
		a.channelCmd(),
		a.sampleCmd(),
		a.samplesCmd(),
	)
	return root
}

// withDeps runs fn against freshly built capabilities and releases them afterwards.
func (a *app) withDeps(cmd *cobra.Command, withStore bool, fn func(d cloudserver.Deps) error) error {
	d, release, err := a.newDeps(cmd.Context(), withStore)
	if err != nil {
		return err
	}
	defer release()
	return fn(d)
}
