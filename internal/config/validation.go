package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidateAPIKey checks the shape of a cloud credential. The name names the
// environment variable so the error points at what to fix.
func ValidateAPIKey(key, name, prefix string, minLength int) error {
	if key == "" {
		return fmt.Errorf("%s is required", name)
	}
	if !strings.HasPrefix(key, prefix) {
		return fmt.Errorf("invalid %s format: must start with '%s'", name, prefix)
	}
	if len(key) < minLength {
		return fmt.Errorf("invalid %s format: too short", name)
	}
	return nil
}

// ValidatePort rejects listen ports outside 1-65535.
func ValidatePort(port string, name string) error {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid %s port: %q", name, port)
	}
	return nil
}
