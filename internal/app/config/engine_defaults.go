package config

import "time"

// Engine default configuration constants
const (
	// Timeout defaults
	DefaultLocalTextTimeout  = 5 * time.Second
	DefaultLocalAudioTimeout = 15 * time.Second
	DefaultChatTimeout       = 30 * time.Second
	DefaultAudioAPITimeout   = 60 * time.Second

	// Concurrency defaults
	DefaultLocalConcurrency = 4
	DefaultCloudConcurrency = 2

	// Priority defaults: cloud engines lead, local terminals close the chain
	DefaultCloudPriority    = 10
	DefaultGeminiPriority   = 20
	DefaultTerminalPriority = 90

	// Model defaults
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultVoice       = "alloy"
)

// EngineDefaults holds default configuration for an engine type
type EngineDefaults struct {
	Timeout     time.Duration
	Concurrency int
	Priority    int
}

// GetEngineDefaults returns default configuration for a given engine type
func GetEngineDefaults(engineType string) EngineDefaults {
	switch engineType {
	case EngineTypeLocalExtractive, EngineTypeLocalDictionary:
		return EngineDefaults{
			Timeout:     DefaultLocalTextTimeout,
			Concurrency: DefaultLocalConcurrency,
			Priority:    DefaultTerminalPriority,
		}
	case EngineTypeLocalPattern, EngineTypeLocalWaveform:
		return EngineDefaults{
			Timeout:     DefaultLocalAudioTimeout,
			Concurrency: DefaultLocalConcurrency,
			Priority:    DefaultTerminalPriority,
		}
	case EngineTypeOpenAISummarize, EngineTypeOpenAITranslate:
		return EngineDefaults{
			Timeout:     DefaultChatTimeout,
			Concurrency: DefaultCloudConcurrency,
			Priority:    DefaultCloudPriority,
		}
	case EngineTypeOpenAIWhisper, EngineTypeOpenAISpeech:
		return EngineDefaults{
			Timeout:     DefaultAudioAPITimeout,
			Concurrency: DefaultCloudConcurrency,
			Priority:    DefaultCloudPriority,
		}
	case EngineTypeGeminiSummarize, EngineTypeGeminiTranslate:
		return EngineDefaults{
			Timeout:     DefaultChatTimeout,
			Concurrency: DefaultCloudConcurrency,
			Priority:    DefaultGeminiPriority,
		}
	default:
		// Sensible defaults for unknown engine types
		return EngineDefaults{
			Timeout:     30 * time.Second,
			Concurrency: 1,
			Priority:    50,
		}
	}
}
