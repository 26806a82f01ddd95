// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/soundrip-cli/soundrip/soundcloud"
	"github.com/soundrip-cli/soundrip/source"
	"github.com/soundrip-cli/soundrip/style"
)

func init() {
	rootCmd.AddCommand(userCmd)

	userCmd.Flags().StringP("collection", "c", "tracks", "The user surface to list (all, tracks, albums, sets, reposts, likes, spotlight)")
	userCmd.Flags().IntP("limit", "l", 0, "Maximum number of records to list (0 lists everything)")
	userCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	lo.Must0(userCmd.RegisterFlagCompletionFunc("collection", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := soundcloud.UserCollectionNames()
		slices.Sort(names)
		return names, cobra.ShellCompDirectiveNoFileComp
	}))

	userCmd.SetOut(os.Stdout)
}

// userCmd lists the public surfaces of a user profile.
var userCmd = &cobra.Command{
	Use:   "user [locator]",
	Short: "List tracks from one of a user's public surfaces",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		tracks, err := client.UserCollection(args[0], lo.Must(cmd.Flags().GetString("collection")))
		handleErr(err)

		listTracks(cmd, tracks, lo.Must(cmd.Flags().GetInt("limit")), lo.Must(cmd.Flags().GetBool("json")))
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)

	relatedCmd.Flags().StringP("relation", "r", "recommended", "The relation to list (albums, sets, recommended)")
	relatedCmd.Flags().IntP("limit", "l", 0, "Maximum number of records to list (0 lists everything)")
	relatedCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	lo.Must0(relatedCmd.RegisterFlagCompletionFunc("relation", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := soundcloud.RelatedCollectionNames()
		slices.Sort(names)
		return names, cobra.ShellCompDirectiveNoFileComp
	}))

	relatedCmd.SetOut(os.Stdout)
}

// relatedCmd lists resources related to a track.
var relatedCmd = &cobra.Command{
	Use:   "related [locator]",
	Short: "List albums, sets or recommendations related to a track",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		tracks, err := client.Related(args[0], lo.Must(cmd.Flags().GetString("relation")))
		handleErr(err)

		listTracks(cmd, tracks, lo.Must(cmd.Flags().GetInt("limit")), lo.Must(cmd.Flags().GetBool("json")))
	},
}

func init() {
	rootCmd.AddCommand(stationCmd)

	stationCmd.Flags().IntP("limit", "l", 0, "Maximum number of records to list (0 lists everything)")
	stationCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")

	stationCmd.SetOut(os.Stdout)
}

// stationCmd lists the generated radio queue of a station.
var stationCmd = &cobra.Command{
	Use:   "station [locator]",
	Short: "List the generated radio queue of a station",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()

		tracks, err := client.Station(args[0])
		handleErr(err)

		listTracks(cmd, tracks, lo.Must(cmd.Flags().GetInt("limit")), lo.Must(cmd.Flags().GetBool("json")))
	},
}

// listTracks drains a lazy track sequence up to limit and renders it.
func listTracks(cmd *cobra.Command, tracks iter.Seq2[*source.Track, error], limit int, asJson bool) {
	var collected []*source.Track
	for track, err := range tracks {
		handleErr(err)

		collected = append(collected, track)
		if limit > 0 && len(collected) >= limit {
			break
		}
	}

	if asJson {
		handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(collected))
		return
	}

	for i, track := range collected {
		cmd.Printf("%s %s\n", style.Faint(fmt.Sprintf("%3d", i+1)), track.String())
		cmd.Printf("    %s\n", style.Faint(track.WebpageURL))
	}
}
