// Package auth persists the platform OAuth session token in the system keyring.
package auth

import (
	"fmt"

	"github.com/soundrip-cli/soundrip/log"
	"github.com/zalando/go-keyring"
)

const (
	// keyringService is the generic service identifier for the system keyring.
	keyringService = "soundrip"
	// keyringUser is the specific key used for storing the platform OAuth token.
	keyringUser = "oauth_token"
)

// SetToken saves the session token to the system keyring.
func SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	err := keyring.Set(keyringService, keyringUser, token)
	if err != nil {
		log.Error("Failed to save token to keyring: " + err.Error())
		return err
	}
	return nil
}

// GetToken retrieves the session token from the system keyring.
func GetToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		// Log debug only, as it's common to not have a token yet
		log.Infof("No token found in keyring: %v", err)
		return "", err
	}
	return token, nil
}

// DeleteToken removes the session token from the system keyring.
func DeleteToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil {
		log.Error("Failed to delete token from keyring: " + err.Error())
		return err
	}
	return nil
}
