package test

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"polycap/internal/app/attempt"
	appconfig "polycap/internal/app/config"
	"polycap/internal/app/detect"
	"polycap/internal/app/engine"
	"polycap/internal/app/model"
	"polycap/internal/app/observe"
	"polycap/internal/app/orchestrator"
)

// scriptedEngine returns a fixed outcome, standing in for engines in various
// states of health.
type scriptedEngine struct {
	descriptor model.EngineDescriptor
	outcome    model.EngineOutcome
}

func (s *scriptedEngine) Descriptor() model.EngineDescriptor { return s.descriptor }

func (s *scriptedEngine) Invoke(ctx context.Context, request *model.CapabilityRequest) model.EngineOutcome {
	return s.outcome
}

func scripted(id string, priority int, deterministic bool, outcome model.EngineOutcome) *scriptedEngine {
	return &scriptedEngine{
		descriptor: model.EngineDescriptor{
			ID:            id,
			Name:          id,
			Capability:    model.CapabilitySummarize,
			Priority:      priority,
			Timeout:       time.Second,
			Deterministic: deterministic,
		},
		outcome: outcome,
	}
}

func buildOrchestrator(t *testing.T, engines ...engine.Engine) *orchestrator.CapabilityOrchestrator {
	t.Helper()

	registry := engine.NewEngineRegistry()
	for _, e := range engines {
		if err := registry.Register(e); err != nil {
			t.Fatalf("Failed to register engine: %v", err)
		}
	}
	executor := attempt.NewExecutor(observe.NewMemorySink(0), 40*time.Millisecond)
	chain := orchestrator.NewFallbackChain(registry, executor, engine.NewEngineMetrics(), nil)
	return orchestrator.NewCapabilityOrchestrator(registry, chain, detect.NewWhatlangDetector(0), orchestrator.DefaultConfig(), nil)
}

func TestEngineSwitching(t *testing.T) {
	input := &model.CapabilityRequest{
		Capability:     model.CapabilitySummarize,
		Text:           &model.TextPayload{Content: strings.Repeat("Engine selection follows priority order. ", 6)},
		SourceLanguage: "en",
	}

	tests := []struct {
		name           string
		engines        []engine.Engine
		expectedStatus model.ResultStatus
		expectedEngine string
	}{
		{
			name: "Healthy primary serves the request",
			engines: []engine.Engine{
				scripted("cloud", 10, false, model.SuccessText("cloud summary")),
				scripted("local", 90, true, model.SuccessText("local summary")),
			},
			expectedStatus: model.StatusFullSuccess,
			expectedEngine: "cloud",
		},
		{
			name: "Unavailable primary switches to the fallback",
			engines: []engine.Engine{
				scripted("cloud", 10, false, model.Failure(model.FailureUnavailable, "connection refused")),
				scripted("local", 90, true, model.SuccessText("local summary")),
			},
			expectedStatus: model.StatusDegradedSuccess,
			expectedEngine: "local",
		},
		{
			name: "Quota exhaustion walks the whole chain",
			engines: []engine.Engine{
				scripted("cloud-a", 10, false, model.Failure(model.FailureQuotaExceeded, "quota exhausted")),
				scripted("cloud-b", 20, false, model.Failure(model.FailureQuotaExceeded, "quota exhausted")),
				scripted("local", 90, true, model.SuccessText("local summary")),
			},
			expectedStatus: model.StatusDegradedSuccess,
			expectedEngine: "local",
		},
		{
			name: "Ties break by registration order",
			engines: []engine.Engine{
				scripted("first", 10, false, model.SuccessText("first summary")),
				scripted("second", 10, true, model.SuccessText("second summary")),
			},
			expectedStatus: model.StatusFullSuccess,
			expectedEngine: "first",
		},
		{
			name: "Exhausted chain fails without an error",
			engines: []engine.Engine{
				scripted("cloud", 10, false, model.Failure(model.FailureUnavailable, "down")),
				scripted("local", 90, true, model.Failure(model.FailureInvalidOutput, "produced nothing")),
			},
			expectedStatus: model.StatusFailed,
			expectedEngine: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := buildOrchestrator(t, tt.engines...)

			result, err := o.Execute(context.Background(), input)
			if err != nil {
				t.Fatalf("Execute returned an error: %v", err)
			}

			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s (warnings: %v)", tt.expectedStatus, result.Status, result.Warnings)
			}
			if len(result.Provenance) != 1 {
				t.Fatalf("Expected one provenance entry, got %d", len(result.Provenance))
			}
			if result.Provenance[0].SuccessfulEngine != tt.expectedEngine {
				t.Errorf("Expected engine %q to serve the request, got %q", tt.expectedEngine, result.Provenance[0].SuccessfulEngine)
			}
		})
	}
}

func TestEngineConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		expectError   bool
		errorContains string
	}{
		{
			name: "Missing engine type",
			configContent: `
engines:
  broken:
    enabled: true
`,
			expectError:   true,
			errorContains: "missing type",
		},
		{
			name: "Unknown engine type",
			configContent: `
engines:
  exotic:
    type: "quantum_annealer"
    enabled: true
`,
			expectError:   true,
			errorContains: "invalid type",
		},
		{
			name: "No engines enabled",
			configContent: `
engines:
  extractive:
    type: "local_extractive"
    enabled: false
`,
			expectError:   true,
			errorContains: "no engines enabled",
		},
		{
			name: "Chunk limit for unknown capability",
			configContent: `
engines:
  extractive:
    type: "local_extractive"
    enabled: true
orchestrator:
  chunk_limits:
    transmogrify: 1000
`,
			expectError:   true,
			errorContains: "unknown capability",
		},
		{
			name: "Valid local fleet",
			configContent: `
engines:
  extractive:
    type: "local_extractive"
    enabled: true
    priority: 90
  dictionary:
    type: "local_dictionary"
    enabled: true
    priority: 90
`,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpfile, err := os.CreateTemp("", "engines-*.yaml")
			if err != nil {
				t.Fatal(err)
			}
			defer os.Remove(tmpfile.Name())

			if _, err := tmpfile.Write([]byte(tt.configContent)); err != nil {
				t.Fatal(err)
			}
			if err := tmpfile.Close(); err != nil {
				t.Fatal(err)
			}

			config, err := appconfig.LoadEnginesConfig(tmpfile.Name())

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing '%s', got: %v", tt.errorContains, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			enabled := config.EnabledEngines()
			if len(enabled) != 2 {
				t.Errorf("Expected 2 enabled engines, got %v", enabled)
			}
		})
	}
}

func TestCLIBinary(t *testing.T) {
	// Skip if not in integration test mode
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test")
	}

	// Build the binary
	cmd := exec.Command("go", "build", "-o", "test-polycap", "./cmd/polycap/")
	cmd.Dir = ".."
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}
	defer os.Remove("../test-polycap")

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectError    bool
	}{
		{
			name:           "Help lists the capabilities",
			args:           []string{"--help"},
			expectedOutput: "summarize",
		},
		{
			name:           "Version prints",
			args:           []string{"version"},
			expectedOutput: "v0.",
		},
		{
			name:        "Translate without target fails",
			args:        []string{"translate", "-t", "hello"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command("../test-polycap", tt.args...)
			output, err := cmd.CombinedOutput()

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none. Output: %s", output)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v. Output: %s", err, output)
			} else if tt.expectedOutput != "" && !strings.Contains(string(output), tt.expectedOutput) {
				t.Errorf("Expected output containing '%s', got: %s", tt.expectedOutput, output)
			}
		})
	}
}
