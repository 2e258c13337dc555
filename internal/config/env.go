package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds all cloud engine credentials loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini []string
}

// LoadEnv loads environment variables from .env file if it exists
// This function implements fail-fast principle - it will exit if critical configuration is missing
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			fmt.Printf("✅ Loaded environment variables from %s\n", envPath)
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables
// Implements fail-fast: returns error immediately if a configured key is malformed
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: geminiKeysFromEnv(),
	}

	// Validate API keys format (basic checks)
	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OPENAI_API_KEY", "sk-", 20); err != nil {
			return nil, err
		}
	}

	for _, key := range apiKeys.Gemini {
		if err := ValidateAPIKey(key, "GEMINI_API_KEY", "AIza", 30); err != nil {
			return nil, err
		}
	}

	return apiKeys, nil
}

// geminiKeysFromEnv merges GEMINI_API_KEY with the comma-separated
// GEMINI_API_KEYS list. Multiple keys rotate on quota pressure.
func geminiKeysFromEnv() []string {
	var keys []string
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		keys = append(keys, key)
	}
	for _, key := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ValidateAPIKeys checks if at least one API key is available
// Returns helpful information about available keys without failing
func ValidateAPIKeys(apiKeys *APIKeys) error {
	var availableKeys []string
	if apiKeys.OpenAI != "" {
		availableKeys = append(availableKeys, "OpenAI")
	}
	if len(apiKeys.Gemini) > 0 {
		availableKeys = append(availableKeys, fmt.Sprintf("Gemini (%d keys)", len(apiKeys.Gemini)))
	}

	if len(availableKeys) > 0 {
		fmt.Printf("✅ API keys available: %s\n", strings.Join(availableKeys, ", "))
	} else {
		fmt.Printf("ℹ️  No API keys configured (cloud engines will be unavailable, local engines still work)\n")
	}

	return nil
}

// RequireAPIKeys validates that at least one API key is available
// This implements fail-fast behavior for operations that specifically need cloud engines
func RequireAPIKeys(apiKeys *APIKeys) error {
	if apiKeys.OpenAI == "" && len(apiKeys.Gemini) == 0 {
		return fmt.Errorf("cloud engines require at least one API key - please set OPENAI_API_KEY or GEMINI_API_KEY in environment or .env file")
	}
	return nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*APIKeys, error) {
	// Load .env file if available
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Get and validate API keys
	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	// Show available keys without failing
	ValidateAPIKeys(apiKeys)

	return apiKeys, nil
}
