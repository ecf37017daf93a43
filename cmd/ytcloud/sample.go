package main

import (
	"fmt"
	"strconv"

	"github.com/anatolykoptev/go_ytcloud/internal/cloudserver"
	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/spf13/cobra"
)

func (a *app) sampleCmd() *cobra.Command {
	var in engine.SampleCloudInput
	cmd := &cobra.Command{
		Use:   "sample <id>",
		Short: "Re-rank a saved sample without calling YouTube",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sample id %q", args[0])
			}
			in.ID = id
			return a.withDeps(cmd, true, func(d cloudserver.Deps) error {
				out, err := d.SampleCloud(cmd.Context(), in)
				if err != nil {
					return err
				}
				return a.printCloud(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().IntVar(&in.TopK, "top", 0, "ranked words to show, -1 for all (default from TOP_K)")
	return cmd
}

func (a *app) samplesCmd() *cobra.Command {
	var in engine.SampleListInput
	cmd := &cobra.Command{
		Use:     "samples",
		Aliases: []string{"ls"},
		Short:   "List saved samples, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDeps(cmd, true, func(d cloudserver.Deps) error {
				out, err := d.SampleList(cmd.Context(), in)
				if err != nil {
					return err
				}
				return a.printSamples(cmd.OutOrStdout(), out)
			})
		},
	}
	cmd.Flags().IntVar(&in.Limit, "limit", 0, "max samples to list (default 20, at most 100)")
	return cmd
}
