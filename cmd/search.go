// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/soundrip-cli/soundrip/icon"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/query"
	"github.com/soundrip-cli/soundrip/source"
	"github.com/soundrip-cli/soundrip/style"
	"github.com/soundrip-cli/soundrip/util"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("limit", "l", 0, "Maximum number of results to collect (0 uses the configured default)")
	searchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")

	searchCmd.SetOut(os.Stdout)
}

// searchCmd performs a track search against the platform.
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the platform for tracks matching a query",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		q := strings.Join(args, " ")

		if err := query.Remember(q, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Searching for %s...", icon.Get(icon.Progress), style.Bold(q)))

		var tracks []*source.Track
		for track, err := range client.Search(q, lo.Must(cmd.Flags().GetInt("limit"))) {
			if err != nil {
				erase()
				handleErr(err)
			}

			tracks = append(tracks, track)
		}
		erase()

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(tracks))
			return
		}

		if len(tracks) == 0 {
			cmd.Printf("%s nothing found for %s\n", icon.Get(icon.Fail), style.Bold(q))
			return
		}

		cmd.Printf("%s found %s\n\n", icon.Get(icon.Success), style.Bold(util.Quantify(len(tracks), "track", "tracks")))
		for i, track := range tracks {
			cmd.Printf("%s %s\n", style.Faint(fmt.Sprintf("%3d", i+1)), track.String())
			cmd.Printf("    %s\n", style.Faint(track.WebpageURL))
		}
	},
}
