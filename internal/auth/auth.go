// Package auth stores the Gemini API key in the OS keychain.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	serviceName = "promise"
	account     = "gemini-api-key"
)

// EnvVars are consulted in order when environment keys are allowed.
var EnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// Source names where a key came from.
type Source string

const (
	SourceNone     Source = ""
	SourceKeychain Source = "Keychain"
	SourceEnv      Source = "Environment Variable"
	SourcePrompt   Source = "Terminal Prompt"
)

// GetKey returns the stored key, falling back to the environment when
// allowEnv is set.
func GetKey(allowEnv bool) (string, Source) {
	key, err := keyring.Get(serviceName, account)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), SourceKeychain
	}
	if allowEnv {
		if key, ok := GetEnvKey(); ok {
			return key, SourceEnv
		}
	}
	return "", SourceNone
}

// SaveKey writes key to the keychain. Blank keys are rejected.
func SaveKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(serviceName, account, key)
}

// DeleteKey removes the stored key. Deleting a missing key is not an error.
func DeleteKey() error {
	err := keyring.Delete(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasStoredKey reports whether the keychain holds a key.
func HasStoredKey() bool {
	key, err := keyring.Get(serviceName, account)
	return err == nil && strings.TrimSpace(key) != ""
}

// PromptForAPIKey reads a key from the terminal without echo.
func PromptForAPIKey(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// GetEnvKey returns the first non-blank key among EnvVars.
func GetEnvKey() (string, bool) {
	for _, name := range EnvVars {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key, true
		}
	}
	return "", false
}
