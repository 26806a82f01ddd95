// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/color"
	"github.com/soundrip-cli/soundrip/history"
	"github.com/soundrip-cli/soundrip/icon"
	"github.com/soundrip-cli/soundrip/inline"
	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/open"
	"github.com/soundrip-cli/soundrip/source"
	"github.com/soundrip-cli/soundrip/style"
	"github.com/soundrip-cli/soundrip/util"
)

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	getCmd.Flags().BoolP("set", "s", false, "Treat the locator as a set (playlist) instead of a single track")
	getCmd.Flags().StringP("streams", "f", "", "Criteria for selecting stream descriptors (all, best, index, range, @substring@ or a format id)")
	getCmd.Flags().BoolP("open", "o", false, "Open the resolved resource page with the system handler")

	getCmd.SetOut(os.Stdout)
}

// getCmd resolves a locator into its metadata record and stream descriptors.
var getCmd = &cobra.Command{
	Use:   "get [locator]",
	Short: "Resolve a track or set locator into metadata and playable stream descriptors",
	Long: `Resolve a locator into its metadata record and signed stream URLs.

Supported locators:
  permalink URLs      https://soundcloud.com/artist/title
  secret permalinks   https://soundcloud.com/artist/title/s-token
  api endpoints       https://api-v2.soundcloud.com/tracks/123
  numeric ids         123
  embedded players    https://w.soundcloud.com/player/?url=...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		locator := args[0]

		if lo.Must(cmd.Flags().GetBool("set")) {
			playlist, err := client.ResolvePlaylist(locator)
			handleErr(err)

			if lo.Must(cmd.Flags().GetBool("json")) {
				handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(playlist))
				return
			}

			printPlaylist(cmd, playlist)
			return
		}

		track, err := client.ResolveTrack(locator)
		handleErr(warnIfRestricted(err))

		if viper.GetBool(key.HistorySaveOnResolve) {
			if err := history.Save(track); err != nil {
				log.Warnf("save history: %v", err)
			}
		}

		if filter := lo.Must(cmd.Flags().GetString("streams")); filter != "" {
			fn, err := inline.ParseStreamFilter(filter)
			handleErr(err)

			filtered, err := fn(track.Streams)
			handleErr(err)
			track.Streams = filtered
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(track.WebpageURL))
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(track))
			return
		}

		printTrack(cmd, track)
	},
}

func printTrack(cmd *cobra.Command, track *source.Track) {
	cmd.Printf("%s %s\n", icon.Get(icon.Audio), style.Bold(track.String()))

	if track.Duration > 0 {
		cmd.Printf("  %s %s\n", style.Faint("duration"), formatDuration(track.Duration))
	}
	if count, ok := track.ViewCount.Get(); ok {
		cmd.Printf("  %s %d\n", style.Faint("plays"), count)
	}
	if track.WebpageURL != "" {
		cmd.Printf("  %s %s\n", icon.Get(icon.Link), style.Faint(track.WebpageURL))
	}

	if len(track.Streams) == 0 {
		cmd.Printf("\n%s no streams matched the requested formats\n", icon.Get(icon.Warning))
		return
	}

	cmd.Println()
	for _, stream := range track.Streams {
		label := style.Fg(color.Yellow)(stream.FormatID)
		if stream.Note != "" {
			label += " " + style.Fg(color.Purple)(stream.Note)
		}

		cmd.Printf("%s\n%s\n\n", label, stream.URL)
	}
}

func printPlaylist(cmd *cobra.Command, playlist *source.Playlist) {
	cmd.Printf("%s %s %s\n\n",
		icon.Get(icon.Audio),
		style.Bold(playlist.Title),
		style.Faint(util.Quantify(len(playlist.Tracks), "track", "tracks")),
	)

	for i, track := range playlist.Tracks {
		cmd.Printf("%s %s\n", style.Faint(fmt.Sprintf("%3d", i+1)), track.String())
	}
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	if total >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
	}

	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
