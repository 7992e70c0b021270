package auth

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const (
	serviceName = "litra"

	claudeAccount = "claude-api-key"
	geminiAccount = "gemini-api-key"
	claudeEnvVar  = "ANTHROPIC_API_KEY"
	geminiEnvVar  = "GEMINI_API_KEY"
)

func accountFor(provider string) string {
	if provider == "gemini" {
		return geminiAccount
	}
	return claudeAccount
}

func envVarFor(provider string) string {
	if provider == "gemini" {
		return geminiEnvVar
	}
	return claudeEnvVar
}

// GetKey retrieves the API key for a provider ("claude" or "gemini").
// The OS keychain wins; the environment variable is consulted only when
// allowEnv is set.
func GetKey(provider string, allowEnv bool) (string, string) {
	key, err := keyring.Get(serviceName, accountFor(provider))
	if err == nil && key != "" {
		return strings.TrimSpace(key), "Keychain"
	}

	if allowEnv {
		if key := strings.TrimSpace(os.Getenv(envVarFor(provider))); key != "" {
			return key, "Environment Variable"
		}
	}

	return "", ""
}

// SaveKey stores the provider's key in the OS keychain.
func SaveKey(provider, key string) error {
	return keyring.Set(serviceName, accountFor(provider), strings.TrimSpace(key))
}

// DeleteKey removes the provider's key from the OS keychain.
func DeleteKey(provider string) error {
	return keyring.Delete(serviceName, accountFor(provider))
}

// GetStatus reports whether the keychain holds a key for the provider.
func GetStatus(provider string) bool {
	key, err := keyring.Get(serviceName, accountFor(provider))
	return err == nil && key != ""
}

// PromptForAPIKey reads an API key from the terminal without echo.
func PromptForAPIKey(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(bytePassword)), nil
}

// GetEnvKey retrieves the provider's key from the environment only.
func GetEnvKey(provider string) (string, bool) {
	key := strings.TrimSpace(os.Getenv(envVarFor(provider)))
	if key == "" {
		return "", false
	}
	return key, true
}
