package config

import (
	"fmt"
	"os"
	"strconv"
)

// Network defaults
const (
	DefaultHTTPHost = "0.0.0.0"
	DefaultHTTPPort = "8080"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port string
	Mode string
}

// GetServerConfig returns server configuration from environment or defaults.
// A malformed HTTP_PORT falls back to the default rather than failing startup.
func GetServerConfig() *ServerConfig {
	port := getEnvOrDefault("HTTP_PORT", DefaultHTTPPort)
	if err := ValidatePort(port, "HTTP"); err != nil {
		fmt.Printf("⚠️  %v, using %s\n", err, DefaultHTTPPort)
		port = DefaultHTTPPort
	}

	return &ServerConfig{
		Host: getEnvOrDefault("HTTP_HOST", DefaultHTTPHost),
		Port: port,
		Mode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

// Address constructs the listen address
func (sc *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%s", sc.Host, sc.Port)
}

// ArtifactStoreConfig holds object storage settings for synthesized audio
type ArtifactStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GetArtifactStoreConfig returns artifact store configuration from environment
func GetArtifactStoreConfig() *ArtifactStoreConfig {
	return &ArtifactStoreConfig{
		Endpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:    getEnvOrDefault("MINIO_BUCKET", "polycap-artifacts"),
		UseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}

// Enabled reports whether an artifact store endpoint is configured
func (ac *ArtifactStoreConfig) Enabled() bool {
	return os.Getenv("MINIO_ENDPOINT") != ""
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable value or default
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
