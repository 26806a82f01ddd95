// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/soundrip-cli/soundrip/history"
	"github.com/soundrip-cli/soundrip/icon"
	"github.com/soundrip-cli/soundrip/style"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")

	historyCmd.SetOut(os.Stdout)
}

// historyCmd lists previously resolved tracks, most recent first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously resolved tracks",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		records := lo.Values(saved)
		sort.Slice(records, func(i, j int) bool {
			return records[i].ResolvedAt.After(records[j].ResolvedAt)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(records))
			return
		}

		if len(records) == 0 {
			cmd.Printf("%s history is empty\n", icon.Get(icon.Warning))
			return
		}

		for _, record := range records {
			cmd.Printf("%s %s\n", icon.Get(icon.Audio), style.Bold(record.String()))
			cmd.Printf("  %s %s\n", style.Faint(record.ResolvedAt.Format("2006-01-02 15:04")), style.Faint(record.WebpageURL))
		}
	},
}
