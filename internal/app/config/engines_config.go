package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"polycap/internal/app/chunk"
	"polycap/internal/app/model"
	"polycap/internal/app/orchestrator"
)

// EnginesConfig represents the complete engine configuration
type EnginesConfig struct {
	Engines      map[string]EngineConfig `yaml:"engines"`
	Orchestrator OrchestratorConfig      `yaml:"orchestrator"`
}

// EngineConfig represents configuration for a single engine
type EngineConfig struct {
	Type        string                 `yaml:"type"`
	Enabled     bool                   `yaml:"enabled"`
	Priority    int                    `yaml:"priority"`
	Auth        map[string]interface{} `yaml:"auth,omitempty"`
	Settings    map[string]interface{} `yaml:"settings,omitempty"`
	Performance PerformanceConfig      `yaml:"performance,omitempty"`
	Languages   []string               `yaml:"languages,omitempty"`
}

// PerformanceConfig represents performance-related engine settings
type PerformanceConfig struct {
	TimeoutSec     int `yaml:"timeout_sec"`
	MaxConcurrency int `yaml:"max_concurrency"`
}

// OrchestratorConfig represents chunking and scheduling settings
type OrchestratorConfig struct {
	Parallel       int            `yaml:"parallel"`
	ChunkLimits    map[string]int `yaml:"chunk_limits"`
	Overlap        int            `yaml:"overlap"`
	AttemptGraceMs int            `yaml:"attempt_grace_ms"`
	MinChunkChars  int            `yaml:"min_chunk_chars"`
	Audio          AudioConfig    `yaml:"audio"`
	Detector       DetectorConfig `yaml:"detector"`
}

// AudioConfig represents audio chunking settings
type AudioConfig struct {
	MaxWindowSec     float64 `yaml:"max_window_sec"`
	OverlapMs        int     `yaml:"overlap_ms"`
	SilenceThreshold float64 `yaml:"silence_threshold"`
	MinSilenceMs     int     `yaml:"min_silence_ms"`
}

// DetectorConfig represents language detection settings
type DetectorConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// Engine type constants
const (
	EngineTypeLocalExtractive = "local_extractive"
	EngineTypeLocalDictionary = "local_dictionary"
	EngineTypeLocalPattern    = "local_pattern"
	EngineTypeLocalWaveform   = "local_waveform"
	EngineTypeOpenAISummarize = "openai_summarize"
	EngineTypeOpenAITranslate = "openai_translate"
	EngineTypeOpenAIWhisper   = "openai_whisper"
	EngineTypeOpenAISpeech    = "openai_speech"
	EngineTypeGeminiSummarize = "gemini_summarize"
	EngineTypeGeminiTranslate = "gemini_translate"
)

// LoadEnginesConfig loads engine configuration from file
func LoadEnginesConfig(configPath string) (*EnginesConfig, error) {
	// Expand environment variables in config path
	expandedPath := os.ExpandEnv(configPath)

	// Check if config file exists
	if _, err := os.Stat(expandedPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", expandedPath)
	}

	// Read config file
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var config EnginesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expand environment variables in configuration values
	expandEnvironmentVariables(&config)

	// Set defaults
	setDefaults(&config)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// expandEnvironmentVariables expands ${VAR} style environment variables in config
func expandEnvironmentVariables(config *EnginesConfig) {
	for name, engine := range config.Engines {
		// Expand environment variables in auth section
		for key, value := range engine.Auth {
			switch v := value.(type) {
			case string:
				engine.Auth[key] = expandEnvValue(v)
			case []interface{}:
				// API key lists expand element-wise
				expanded := make([]interface{}, len(v))
				for i, item := range v {
					if s, ok := item.(string); ok {
						expanded[i] = expandEnvValue(s)
					} else {
						expanded[i] = item
					}
				}
				engine.Auth[key] = expanded
			}
		}

		// Expand environment variables in settings section
		for key, value := range engine.Settings {
			if strValue, ok := value.(string); ok {
				engine.Settings[key] = expandEnvValue(strValue)
			}
		}

		config.Engines[name] = engine
	}
}

// expandEnvValue resolves a ${VAR} reference to its environment value
func expandEnvValue(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")
		return os.Getenv(envVar)
	}
	return value
}

// setDefaults sets default values for missing configuration
func setDefaults(config *EnginesConfig) {
	for name, engine := range config.Engines {
		defaults := GetEngineDefaults(engine.Type)

		if engine.Performance.TimeoutSec == 0 {
			engine.Performance.TimeoutSec = int(defaults.Timeout.Seconds())
		}
		if engine.Performance.MaxConcurrency == 0 {
			engine.Performance.MaxConcurrency = defaults.Concurrency
		}
		if engine.Priority == 0 {
			engine.Priority = defaults.Priority
		}

		config.Engines[name] = engine
	}

	orc := &config.Orchestrator
	if orc.Parallel == 0 {
		orc.Parallel = 4
	}
	if orc.ChunkLimits == nil {
		orc.ChunkLimits = map[string]int{}
	}
	if orc.AttemptGraceMs == 0 {
		orc.AttemptGraceMs = 250
	}
	if orc.MinChunkChars == 0 {
		orc.MinChunkChars = 50
	}
	if orc.Audio.MaxWindowSec == 0 {
		orc.Audio.MaxWindowSec = 30
	}
	if orc.Audio.OverlapMs == 0 {
		orc.Audio.OverlapMs = 500
	}
	if orc.Audio.SilenceThreshold == 0 {
		orc.Audio.SilenceThreshold = 0.015
	}
	if orc.Audio.MinSilenceMs == 0 {
		orc.Audio.MinSilenceMs = 300
	}
}

// Validate validates the configuration
func (c *EnginesConfig) Validate() error {
	if len(c.Engines) == 0 {
		return fmt.Errorf("no engines configured")
	}

	validTypes := map[string]bool{
		EngineTypeLocalExtractive: true,
		EngineTypeLocalDictionary: true,
		EngineTypeLocalPattern:    true,
		EngineTypeLocalWaveform:   true,
		EngineTypeOpenAISummarize: true,
		EngineTypeOpenAITranslate: true,
		EngineTypeOpenAIWhisper:   true,
		EngineTypeOpenAISpeech:    true,
		EngineTypeGeminiSummarize: true,
		EngineTypeGeminiTranslate: true,
	}

	enabledCount := 0
	for name, engine := range c.Engines {
		if engine.Type == "" {
			return fmt.Errorf("engine %s missing type", name)
		}
		if !validTypes[engine.Type] {
			return fmt.Errorf("engine %s has invalid type: %s", name, engine.Type)
		}
		if engine.Performance.TimeoutSec < 0 {
			return fmt.Errorf("engine %s has negative timeout", name)
		}
		if engine.Enabled {
			enabledCount++
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no engines enabled")
	}

	for capability := range c.Orchestrator.ChunkLimits {
		if !model.IsValidCapability(capability) {
			return fmt.Errorf("chunk_limits references unknown capability: %s", capability)
		}
	}
	if c.Orchestrator.Parallel < 0 {
		return fmt.Errorf("orchestrator parallel cannot be negative")
	}
	if c.Orchestrator.Overlap < 0 {
		return fmt.Errorf("orchestrator overlap cannot be negative")
	}

	return nil
}

// ToOrchestratorConfig converts the YAML representation into the runtime config
func (c *EnginesConfig) ToOrchestratorConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()
	orc := c.Orchestrator

	if orc.Parallel > 0 {
		cfg.Parallel = orc.Parallel
	}
	for capability, limit := range orc.ChunkLimits {
		if limit > 0 {
			cfg.ChunkLimits[model.Capability(capability)] = limit
		}
	}
	cfg.Overlap = orc.Overlap
	if orc.AttemptGraceMs > 0 {
		cfg.AttemptGrace = time.Duration(orc.AttemptGraceMs) * time.Millisecond
	}
	if orc.MinChunkChars > 0 {
		cfg.MinChunkChars = orc.MinChunkChars
	}
	cfg.Audio = chunk.AudioChunkConfig{
		MaxWindow:        time.Duration(orc.Audio.MaxWindowSec * float64(time.Second)),
		Overlap:          time.Duration(orc.Audio.OverlapMs) * time.Millisecond,
		SilenceThreshold: orc.Audio.SilenceThreshold,
		MinSilence:       time.Duration(orc.Audio.MinSilenceMs) * time.Millisecond,
	}
	return cfg
}

// EnabledEngines returns the names of enabled engines in stable order
func (c *EnginesConfig) EnabledEngines() []string {
	names := make([]string, 0, len(c.Engines))
	for name, engine := range c.Engines {
		if engine.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// AuthString reads a string auth value for an engine
func (e EngineConfig) AuthString(key string) string {
	if value, ok := e.Auth[key].(string); ok {
		return value
	}
	return ""
}

// AuthStrings reads a string list auth value, accepting a single string too
func (e EngineConfig) AuthStrings(key string) []string {
	switch v := e.Auth[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// SettingString reads a string setting value for an engine
func (e EngineConfig) SettingString(key string) string {
	if value, ok := e.Settings[key].(string); ok {
		return value
	}
	return ""
}

// Timeout returns the engine timeout as a duration
func (e EngineConfig) Timeout() time.Duration {
	return time.Duration(e.Performance.TimeoutSec) * time.Second
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	// Check environment variable first
	if configPath := os.Getenv("POLYCAP_CONFIG"); configPath != "" {
		return configPath
	}

	// Prefer a repo-local config when present
	if _, err := os.Stat("config/engines.yaml"); err == nil {
		return "config/engines.yaml"
	}

	// Default to user config directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config/engines.yaml"
	}
	return filepath.Join(homeDir, ".polycap", "engines.yaml")
}

// CreateDefaultConfig creates a default configuration file
func CreateDefaultConfig(configPath string) error {
	config := defaultConfigYAML()

	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func defaultConfigYAML() string {
	yamlBody := `# polycap engine configuration
#
# Engines are tried in ascending priority order. Every capability should
# keep one local engine enabled so a chain can always terminate offline.

engines:
  extractive:
    type: local_extractive
    enabled: true
    priority: 90

  dictionary:
    type: local_dictionary
    enabled: true
    priority: 90

  pattern:
    type: local_pattern
    enabled: true
    priority: 90

  waveform:
    type: local_waveform
    enabled: true
    priority: 90

  openai-summarize:
    type: openai_summarize
    enabled: false
    priority: 10
    auth:
      api_key: "${OPENAI_API_KEY}"
    settings:
      model: "gpt-4o-mini"
    performance:
      timeout_sec: 30

  openai-translate:
    type: openai_translate
    enabled: false
    priority: 10
    auth:
      api_key: "${OPENAI_API_KEY}"
    settings:
      model: "gpt-4o-mini"
    performance:
      timeout_sec: 30

  openai-whisper:
    type: openai_whisper
    enabled: false
    priority: 10
    auth:
      api_key: "${OPENAI_API_KEY}"
    performance:
      timeout_sec: 60

  openai-speech:
    type: openai_speech
    enabled: false
    priority: 10
    auth:
      api_key: "${OPENAI_API_KEY}"
    settings:
      voice: "alloy"
    performance:
      timeout_sec: 60

  gemini-summarize:
    type: gemini_summarize
    enabled: false
    priority: 20
    auth:
      api_keys:
        - "${GEMINI_API_KEY}"
    settings:
      model: "gemini-2.5-flash"
    performance:
      timeout_sec: 30

  gemini-translate:
    type: gemini_translate
    enabled: false
    priority: 20
    auth:
      api_keys:
        - "${GEMINI_API_KEY}"
    settings:
      model: "gemini-2.5-flash"
    performance:
      timeout_sec: 30

orchestrator:
  parallel: 4
  chunk_limits:
    summarize: 1000
    translate: 1000
    text_to_speech: 5000
  overlap: 0
  attempt_grace_ms: 250
  min_chunk_chars: 50
  audio:
    max_window_sec: 30
    overlap_ms: 500
    silence_threshold: 0.015
    min_silence_ms: 300
  detector:
    min_confidence: 0.4
`
	return yamlBody
}
