//go:build wireinject
// +build wireinject

package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/wire"
	"go.uber.org/zap"

	"polycap/internal/api/server"
	"polycap/internal/api/v1/services"
	"polycap/internal/app/attempt"
	"polycap/internal/app/batch"
	appconfig "polycap/internal/app/config"
	"polycap/internal/app/detect"
	"polycap/internal/app/engine"
	"polycap/internal/app/logging"
	"polycap/internal/app/observe"
	"polycap/internal/app/orchestrator"
	"polycap/internal/config"
)

// provideEnginesConfig loads the engine configuration, falling back to the
// default search path when no explicit path is set
func provideEnginesConfig(opts Options) (*appconfig.EnginesConfig, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = appconfig.GetDefaultConfigPath()
	}
	return appconfig.LoadEnginesConfig(configPath)
}

func provideLogger(opts Options) (*zap.Logger, error) {
	return logging.NewLogger(opts.Verbose)
}

func provideOrchestratorLogger(logger *zap.Logger) orchestrator.Logger {
	return logging.NewZapLogger(logger)
}

// provideSlogLogger builds the request logger used by the HTTP middleware
func provideSlogLogger(opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func provideSink() observe.Sink {
	return observe.NewPromSink()
}

func provideMetrics() engine.Metrics {
	return engine.NewEngineMetrics()
}

func provideOrchestratorConfig(cfg *appconfig.EnginesConfig) orchestrator.Config {
	return cfg.ToOrchestratorConfig()
}

func provideExecutor(cfg orchestrator.Config, sink observe.Sink) *attempt.Executor {
	return attempt.NewExecutor(sink, cfg.AttemptGrace)
}

func provideDetector(cfg *appconfig.EnginesConfig) detect.Detector {
	return detect.NewWhatlangDetector(cfg.Orchestrator.Detector.MinConfidence)
}

// provideRegistry builds every enabled engine from configuration. Cloud
// engines that cannot authenticate are skipped with a warning so a bare
// environment still serves through the local terminals.
func provideRegistry(cfg *appconfig.EnginesConfig, logger *zap.Logger) (engine.Registry, error) {
	registry := engine.NewEngineRegistry()

	for _, name := range cfg.EnabledEngines() {
		engineCfg := cfg.Engines[name]
		built, err := buildEngine(engineCfg)
		if err != nil {
			logger.Warn("Skipping engine", zap.String("engine", name), zap.Error(err))
			continue
		}
		if err := registry.Register(built); err != nil {
			return nil, fmt.Errorf("failed to register engine %s: %w", name, err)
		}
		logger.Info("Registered engine",
			zap.String("engine", built.Descriptor().ID),
			zap.String("type", engineCfg.Type))
	}

	if len(registry.Snapshot()) == 0 {
		return nil, fmt.Errorf("no engines could be built from configuration")
	}

	return registry, nil
}

// provideArtifactStore connects to MinIO when an endpoint is configured. A
// missing or unreachable store resolves to nil; the services layer reports
// that as a result warning instead of failing requests.
func provideArtifactStore(logger *zap.Logger) services.ArtifactStore {
	storeCfg := config.GetArtifactStoreConfig()
	if !storeCfg.Enabled() {
		return nil
	}

	store, err := services.NewMinioArtifactStore(*storeCfg)
	if err != nil {
		logger.Warn("Artifact store unavailable; audio will not persist", zap.Error(err))
		return nil
	}
	return store
}

// InitializeApplication builds the full orchestration core
func InitializeApplication(opts Options) (*Application, error) {
	wire.Build(
		NewApplication,
		provideEnginesConfig,
		provideLogger,
		provideOrchestratorLogger,
		provideSink,
		provideMetrics,
		provideOrchestratorConfig,
		provideExecutor,
		provideDetector,
		provideRegistry,
		provideArtifactStore,
		orchestrator.NewFallbackChain,
		orchestrator.NewCapabilityOrchestrator,
	)
	return &Application{}, nil
}

// InitializeBatchProcessor builds a directory batch processor
func InitializeBatchProcessor(opts Options) (*batch.Processor, error) {
	wire.Build(
		batch.NewProcessor,
		provideEnginesConfig,
		provideLogger,
		provideOrchestratorLogger,
		provideSink,
		provideMetrics,
		provideOrchestratorConfig,
		provideExecutor,
		provideDetector,
		provideRegistry,
		orchestrator.NewFallbackChain,
		orchestrator.NewCapabilityOrchestrator,
	)
	return nil, nil
}

// InitializeServer builds the HTTP server around the orchestration core
func InitializeServer(opts Options, serverConfig server.Config) (*server.Server, error) {
	wire.Build(
		server.NewServer,
		provideEnginesConfig,
		provideLogger,
		provideSlogLogger,
		provideOrchestratorLogger,
		provideSink,
		provideMetrics,
		provideOrchestratorConfig,
		provideExecutor,
		provideDetector,
		provideRegistry,
		provideArtifactStore,
		orchestrator.NewFallbackChain,
		orchestrator.NewCapabilityOrchestrator,
	)
	return nil, nil
}
