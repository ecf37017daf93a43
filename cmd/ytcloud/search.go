package main

import (
	"strings"

	"github.com/anatolykoptev/go_ytcloud/internal/cloudserver"
	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/spf13/cobra"
)

func (a *app) searchCmd() *cobra.Command {
	var in engine.WordCloudInput
	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Rank title words of a YouTube search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Query = strings.Join(args, " ")
			return a.withDeps(cmd, in.Save, func(d cloudserver.Deps) error {
				out, err := d.WordCloud(cmd.Context(), in)
				if err != nil {
					return err
				}
				return a.printCloud(cmd.OutOrStdout(), out)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Order, "order", "", "result order: viewCount, date, rating, relevance, title, videoCount")
	f.StringVar(&in.Type, "type", "", "result type: video, channel, playlist")
	f.IntVar(&in.PageSize, "page-size", 0, "results per page, 1-50 (default from YOUTUBE_PAGE_SIZE)")
	f.IntVar(&in.MaxPages, "max-pages", 0, "pages to follow, -1 until exhausted (default from YOUTUBE_MAX_PAGES)")
	f.IntVar(&in.TopK, "top", 0, "ranked words to show, -1 for all (default from TOP_K)")
	f.BoolVar(&in.Save, "save", false, "store the fetched titles as a sample")
	return cmd
}

func (a *app) channelCmd() *cobra.Command {
	var in engine.ChannelCloudInput
	cmd := &cobra.Command{
		Use:   "channel <channel-id>",
		Short: "Rank title words of a channel's uploads (needs YOUTUBE_API_KEY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ChannelID = args[0]
			return a.withDeps(cmd, in.Save, func(d cloudserver.Deps) error {
				out, err := d.ChannelCloud(cmd.Context(), in)
				if err != nil {
					return err
				}
				return a.printCloud(cmd.OutOrStdout(), out)
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&in.MaxPages, "max-pages", 0, "pages to follow, -1 until exhausted (default from YOUTUBE_MAX_PAGES)")
	f.IntVar(&in.TopK, "top", 0, "ranked words to show, -1 for all (default from TOP_K)")
	f.BoolVar(&in.Save, "save", false, "store the fetched titles as a sample")
	return cmd
}
