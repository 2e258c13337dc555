// Package app assembles the orchestration core for the CLI and the HTTP
// server: engines from configuration, the fallback chain, the orchestrator
// and the optional artifact store.
package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"polycap/internal/api/v1/services"
	appconfig "polycap/internal/app/config"
	"polycap/internal/app/engine"
	"polycap/internal/app/engines/gemini"
	"polycap/internal/app/engines/local"
	"polycap/internal/app/engines/openai"
	"polycap/internal/app/orchestrator"
)

// Options selects the configuration source and logging verbosity.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Application bundles the assembled core so commands can reach every part.
type Application struct {
	Config       *appconfig.EnginesConfig
	Registry     engine.Registry
	Metrics      engine.Metrics
	Orchestrator *orchestrator.CapabilityOrchestrator
	Artifacts    services.ArtifactStore
	Logger       *zap.Logger
}

// NewApplication creates the application container
func NewApplication(
	config *appconfig.EnginesConfig,
	registry engine.Registry,
	metrics engine.Metrics,
	orc *orchestrator.CapabilityOrchestrator,
	artifacts services.ArtifactStore,
	logger *zap.Logger,
) *Application {
	return &Application{
		Config:       config,
		Registry:     registry,
		Metrics:      metrics,
		Orchestrator: orc,
		Artifacts:    artifacts,
		Logger:       logger,
	}
}

// Close flushes buffered log output.
func (a *Application) Close() {
	_ = a.Logger.Sync()
}

// buildEngine constructs one engine from its configuration entry.
func buildEngine(cfg appconfig.EngineConfig) (engine.Engine, error) {
	switch cfg.Type {
	case appconfig.EngineTypeLocalExtractive:
		return local.NewExtractiveSummarizer(cfg.Priority), nil
	case appconfig.EngineTypeLocalDictionary:
		return local.NewDictionaryTranslator(cfg.Priority), nil
	case appconfig.EngineTypeLocalPattern:
		return local.NewPatternTranscriber(cfg.Priority), nil
	case appconfig.EngineTypeLocalWaveform:
		return local.NewWaveformSynthesizer(cfg.Priority), nil
	case appconfig.EngineTypeOpenAISummarize:
		oc, err := openAIEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		return openai.NewChatSummarizer(oc), nil
	case appconfig.EngineTypeOpenAITranslate:
		oc, err := openAIEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		return openai.NewChatTranslator(oc), nil
	case appconfig.EngineTypeOpenAIWhisper:
		oc, err := openAIEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		return openai.NewWhisperTranscriber(oc), nil
	case appconfig.EngineTypeOpenAISpeech:
		oc, err := openAIEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		return openai.NewSpeechSynthesizer(oc), nil
	case appconfig.EngineTypeGeminiSummarize:
		gc, err := geminiEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		return gemini.NewSummarizer(gc), nil
	case appconfig.EngineTypeGeminiTranslate:
		gc, err := geminiEngineConfig(cfg)
		if err != nil {
			return nil, err
		}
		return gemini.NewTranslator(gc), nil
	default:
		return nil, fmt.Errorf("unknown engine type: %s", cfg.Type)
	}
}

// openAIEngineConfig maps a configuration entry onto the OpenAI engine
// settings, falling back to the environment for credentials.
func openAIEngineConfig(cfg appconfig.EngineConfig) (openai.Config, error) {
	apiKey := cfg.AuthString("api_key")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return openai.Config{}, fmt.Errorf("OpenAI API key is required")
	}

	return openai.Config{
		APIKey:    apiKey,
		BaseURL:   cfg.SettingString("base_url"),
		Model:     cfg.SettingString("model"),
		Voice:     cfg.SettingString("voice"),
		Priority:  cfg.Priority,
		Timeout:   cfg.Timeout(),
		Languages: cfg.Languages,
	}, nil
}

// geminiEngineConfig maps a configuration entry onto the Gemini engine
// settings. Key lists rotate on quota pressure, so all configured keys pass
// through.
func geminiEngineConfig(cfg appconfig.EngineConfig) (gemini.Config, error) {
	keys := cfg.AuthStrings("api_keys")
	if len(keys) == 0 {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			keys = []string{key}
		}
	}
	if len(keys) == 0 {
		return gemini.Config{}, fmt.Errorf("Gemini API key is required")
	}

	return gemini.Config{
		APIKeys:   keys,
		Model:     cfg.SettingString("model"),
		Priority:  cfg.Priority,
		Timeout:   cfg.Timeout(),
		Languages: cfg.Languages,
	}, nil
}
