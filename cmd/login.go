// Package cmd implements the command-line interface for soundrip.
package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/soundrip-cli/soundrip/auth"
	"github.com/soundrip-cli/soundrip/icon"
	"github.com/soundrip-cli/soundrip/soundcloud"
)

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringP("token", "t", "", "The OAuth session token to verify and persist")
}

// loginCmd verifies an OAuth session token and persists it to the keyring.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the platform using an OAuth session token",
	Long: `Verify an OAuth session token against the platform and save it to the system keyring.
The token can be copied from the oauth_token cookie of a logged-in browser session.
Authenticated sessions unlock higher quality transcodings on entitled accounts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, _ := cmd.Flags().GetString("token")

		if token == "" {
			prompt := survey.Password{
				Message: "OAuth session token:",
				Help:    "Copied from the oauth_token cookie of a logged-in browser session",
			}
			if err := survey.AskOne(&prompt, &token, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}

		if !soundcloud.New().Login(token) {
			return errors.New("the platform rejected this session token")
		}

		if err := auth.SetToken(token); err != nil {
			return err
		}

		fmt.Printf("%s session token verified and persisted to the system keyring\n", icon.Get(icon.Success))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// logoutCmd removes the persisted session token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the persisted OAuth session token from the system keyring",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := auth.DeleteToken(); err != nil {
			return err
		}

		fmt.Printf("%s session token removed\n", icon.Get(icon.Success))
		return nil
	},
}
