package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polycap/internal/app/model"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadEnginesConfig(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-test1234567890abcdef1234")

	path := writeConfigFile(t, `
engines:
  extractive:
    type: local_extractive
    enabled: true
  chat:
    type: openai_summarize
    enabled: true
    priority: 5
    auth:
      api_key: "${TEST_OPENAI_KEY}"
    settings:
      model: "gpt-4o-mini"
    languages:
      - en
      - es
orchestrator:
  parallel: 8
  chunk_limits:
    summarize: 2000
  attempt_grace_ms: 100
`)

	config, err := LoadEnginesConfig(path)
	require.NoError(t, err)
	require.Len(t, config.Engines, 2)

	chat := config.Engines["chat"]
	assert.Equal(t, EngineTypeOpenAISummarize, chat.Type)
	assert.Equal(t, 5, chat.Priority)
	assert.Equal(t, "sk-test1234567890abcdef1234", chat.AuthString("api_key"))
	assert.Equal(t, "gpt-4o-mini", chat.SettingString("model"))
	assert.Equal(t, []string{"en", "es"}, chat.Languages)
	assert.Equal(t, 30*time.Second, chat.Timeout(), "chat timeout should default")

	extractive := config.Engines["extractive"]
	assert.Equal(t, DefaultTerminalPriority, extractive.Priority, "priority should default by type")
	assert.Equal(t, 5*time.Second, extractive.Timeout())

	assert.Equal(t, 8, config.Orchestrator.Parallel)
	assert.Equal(t, 2000, config.Orchestrator.ChunkLimits["summarize"])
	assert.Equal(t, 100, config.Orchestrator.AttemptGraceMs)
	assert.Equal(t, 50, config.Orchestrator.MinChunkChars, "min chunk chars should default")
}

func TestLoadEnginesConfigExpandsKeyLists(t *testing.T) {
	t.Setenv("TEST_GEMINI_KEY_A", "AIza-alpha-1234567890")
	t.Setenv("TEST_GEMINI_KEY_B", "AIza-beta-1234567890")

	path := writeConfigFile(t, `
engines:
  gemini:
    type: gemini_summarize
    enabled: true
    auth:
      api_keys:
        - "${TEST_GEMINI_KEY_A}"
        - "${TEST_GEMINI_KEY_B}"
`)

	config, err := LoadEnginesConfig(path)
	require.NoError(t, err)

	keys := config.Engines["gemini"].AuthStrings("api_keys")
	assert.Equal(t, []string{"AIza-alpha-1234567890", "AIza-beta-1234567890"}, keys)
}

func TestLoadEnginesConfigErrors(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		errorContains string
	}{
		{
			name:          "no engines",
			body:          "engines: {}\n",
			errorContains: "no engines configured",
		},
		{
			name: "missing type",
			body: `
engines:
  broken:
    enabled: true
`,
			errorContains: "missing type",
		},
		{
			name: "invalid type",
			body: `
engines:
  broken:
    type: quantum_oracle
    enabled: true
`,
			errorContains: "invalid type",
		},
		{
			name: "nothing enabled",
			body: `
engines:
  extractive:
    type: local_extractive
    enabled: false
`,
			errorContains: "no engines enabled",
		},
		{
			name: "unknown capability in chunk limits",
			body: `
engines:
  extractive:
    type: local_extractive
    enabled: true
orchestrator:
  chunk_limits:
    telepathy: 100
`,
			errorContains: "unknown capability",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, tc.body)

			_, err := LoadEnginesConfig(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadEnginesConfigMissingFile(t *testing.T) {
	_, err := LoadEnginesConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestToOrchestratorConfig(t *testing.T) {
	path := writeConfigFile(t, `
engines:
  extractive:
    type: local_extractive
    enabled: true
orchestrator:
  parallel: 2
  chunk_limits:
    translate: 800
  overlap: 40
  attempt_grace_ms: 500
  audio:
    max_window_sec: 20
    overlap_ms: 250
    silence_threshold: 0.02
    min_silence_ms: 200
`)

	config, err := LoadEnginesConfig(path)
	require.NoError(t, err)

	cfg := config.ToOrchestratorConfig()

	assert.Equal(t, 2, cfg.Parallel)
	assert.Equal(t, 800, cfg.ChunkLimits[model.CapabilityTranslate])
	assert.Equal(t, 1000, cfg.ChunkLimits[model.CapabilitySummarize], "unset limits keep runtime defaults")
	assert.Equal(t, 40, cfg.Overlap)
	assert.Equal(t, 500*time.Millisecond, cfg.AttemptGrace)
	assert.Equal(t, 20*time.Second, cfg.Audio.MaxWindow)
	assert.Equal(t, 250*time.Millisecond, cfg.Audio.Overlap)
	assert.Equal(t, 0.02, cfg.Audio.SilenceThreshold)
	assert.Equal(t, 200*time.Millisecond, cfg.Audio.MinSilence)
}

func TestEnabledEngines(t *testing.T) {
	config := &EnginesConfig{
		Engines: map[string]EngineConfig{
			"zeta":  {Type: EngineTypeLocalExtractive, Enabled: true},
			"alpha": {Type: EngineTypeLocalDictionary, Enabled: true},
			"mid":   {Type: EngineTypeLocalPattern, Enabled: false},
		},
	}

	assert.Equal(t, []string{"alpha", "zeta"}, config.EnabledEngines())
}

func TestAuthStringsAcceptsSingleString(t *testing.T) {
	engine := EngineConfig{
		Auth: map[string]interface{}{"api_keys": "AIza-solo-1234567890"},
	}

	assert.Equal(t, []string{"AIza-solo-1234567890"}, engine.AuthStrings("api_keys"))
	assert.Nil(t, engine.AuthStrings("missing"))
}

func TestCreateDefaultConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "engines.yaml")

	require.NoError(t, CreateDefaultConfig(path))

	config, err := LoadEnginesConfig(path)
	require.NoError(t, err)
	assert.NotEmpty(t, config.EnabledEngines(), "default config must keep local engines enabled")

	for name, engine := range config.Engines {
		defaults := GetEngineDefaults(engine.Type)
		assert.NotZero(t, engine.Performance.TimeoutSec, "engine %s should have a timeout", name)
		assert.NotZero(t, defaults.Priority)
	}
}

func TestGetEngineDefaults(t *testing.T) {
	whisper := GetEngineDefaults(EngineTypeOpenAIWhisper)
	assert.Equal(t, DefaultAudioAPITimeout, whisper.Timeout)
	assert.Equal(t, DefaultCloudPriority, whisper.Priority)

	local := GetEngineDefaults(EngineTypeLocalWaveform)
	assert.Equal(t, DefaultTerminalPriority, local.Priority)

	unknown := GetEngineDefaults("mystery")
	assert.Equal(t, 30*time.Second, unknown.Timeout)
}

func TestGetDefaultConfigPathHonorsEnv(t *testing.T) {
	t.Setenv("POLYCAP_CONFIG", "/tmp/custom-engines.yaml")

	assert.Equal(t, "/tmp/custom-engines.yaml", GetDefaultConfigPath())
}
