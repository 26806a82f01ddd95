// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/soundrip-cli/soundrip/auth"
	"github.com/soundrip-cli/soundrip/color"
	"github.com/soundrip-cli/soundrip/constant"
	"github.com/soundrip-cli/soundrip/icon"
	"github.com/soundrip-cli/soundrip/key"
	"github.com/soundrip-cli/soundrip/log"
	"github.com/soundrip-cli/soundrip/soundcloud"
	"github.com/soundrip-cli/soundrip/style"
	"github.com/soundrip-cli/soundrip/util"
	"github.com/soundrip-cli/soundrip/version"
	"github.com/soundrip-cli/soundrip/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist resolved tracks to the localized history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnResolve, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringSliceP("formats", "F", []string{}, "Requested stream format patterns (protocol_extension, * wildcards)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("formats", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append([]string{"default"}, soundcloud.DefaultFormats...), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.FormatsRequested, rootCmd.PersistentFlags().Lookup("formats")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the soundrip application.
var rootCmd = &cobra.Command{
	Use:   constant.Soundrip,
	Short: "A minimalist command-line interface for resolving streamable audio",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A minimalist command-line interface for resolving streamable audio"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

// newClient builds the platform client and attaches a stored session token
// when one is available in the system keyring.
func newClient() *soundcloud.Client {
	client := soundcloud.New()

	if token, err := auth.GetToken(); err == nil && token != "" {
		if !client.Login(token) {
			fmt.Fprintf(os.Stderr, "%s stored session token was rejected, continuing as guest\n", icon.Get(icon.Warning))
		}
	}

	return client
}

// warnIfRestricted reports geo-restriction without aborting, since the
// metadata record remains usable. It returns the remaining error, if any.
func warnIfRestricted(err error) error {
	var restricted *soundcloud.GeoRestrictedError
	if errors.As(err, &restricted) {
		fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Warning), restricted.Error())
		return nil
	}

	return err
}
