// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/soundrip-cli/soundrip/filesystem"
	"github.com/soundrip-cli/soundrip/inline"
	"github.com/soundrip-cli/soundrip/query"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("query", "q", "", "The search query to execute for track discovery")
	inlineCmd.Flags().StringP("locator", "u", "", "A locator to resolve directly instead of searching")
	inlineCmd.Flags().StringP("track", "t", "", "Criteria for selecting a specific track from the results (first, last, exact, index)")
	inlineCmd.Flags().StringP("streams", "f", "", "Criteria for selecting stream descriptors from resolved tracks")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().BoolP("resolve", "r", false, "Fully resolve selected tracks, including their stream descriptors")
	inlineCmd.Flags().IntP("limit", "l", 0, "Maximum number of search results to collect")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("query", "locator")

	_ = inlineCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Initialize the application for automated execution and data extraction using inline mode.

Track selectors:
  first - first track in the list
  last - last track in the list
  exact - track whose title matches the query exactly
  index:[number] - select track by index (starting from 0)

Stream selectors:
  all - every matched stream descriptor
  best - the single highest ranked descriptor
  [number] - select descriptor by index (starting from 0)
  [from]-[to] - select descriptors by range
  @[substring]@ - select descriptors by format id substring
  anything else - exact format id match

When using the json flag the track selector can be omitted. That way, every track is included`,
	PreRun: func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("query") && !cmd.Flags().Changed("locator") {
			handleErr(cmd.Usage())
			os.Exit(1)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			writer = file
		} else {
			writer = os.Stdout
		}

		trackFlag := lo.Must(cmd.Flags().GetString("track"))
		trackPicker := mo.None[inline.TrackPicker]()
		if trackFlag != "" {
			kind, value := trackFlag, lo.Must(cmd.Flags().GetString("query"))
			if idx, found := cutIndex(trackFlag); found {
				kind, value = "index", idx
			}

			fn, err := inline.ParseTrackPicker(kind, value)
			handleErr(err)
			trackPicker = mo.Some(fn)
		}

		streamFlag := lo.Must(cmd.Flags().GetString("streams"))
		streamFilter := mo.None[inline.StreamFilter]()
		if streamFlag != "" {
			fn, err := inline.ParseStreamFilter(streamFlag)
			handleErr(err)
			streamFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Out:          writer,
			Client:       newClient(),
			Json:         lo.Must(cmd.Flags().GetBool("json")),
			Query:        lo.Must(cmd.Flags().GetString("query")),
			Locator:      lo.Must(cmd.Flags().GetString("locator")),
			TrackPicker:  trackPicker,
			StreamFilter: streamFilter,
			Streams:      lo.Must(cmd.Flags().GetBool("resolve")) || streamFlag != "",
			Limit:        lo.Must(cmd.Flags().GetInt("limit")),
		}

		handleErr(inline.Run(options))
	},
}

// cutIndex recognizes the "index:[number]" selector form.
func cutIndex(flag string) (string, bool) {
	const prefix = "index:"
	if len(flag) > len(prefix) && flag[:len(prefix)] == prefix {
		return flag[len(prefix):], true
	}

	return "", false
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema for structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(inline.WriteSchema(os.Stdout))
	},
}
