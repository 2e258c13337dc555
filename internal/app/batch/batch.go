// Package batch runs one capability over every matching file in a directory,
// with bounded workers, terminal progress bars and an optional xlsx report.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"polycap/internal/app/audio"
	"polycap/internal/app/model"
	"polycap/internal/app/orchestrator"
)

// Options describes one batch run.
type Options struct {
	Capability model.Capability
	InputDir   string
	OutputDir  string // empty means InputDir
	Extension  string // empty means .wav for audio input, .txt otherwise
	Limit      int    // 0 means every file
	Parallel   int

	SourceLanguage string
	TargetLanguage string
	MaxLength      int
	Style          model.SummaryStyle
	Rate           model.SpeechRate

	ReportPath string // empty skips the xlsx report
	Progress   ProgressConfig
}

// FileResult records how one file fared.
type FileResult struct {
	Name       string
	InputPath  string
	OutputPath string
	Status     model.ResultStatus
	Engines    []string
	Warnings   []string
	Duration   time.Duration
	Err        error
}

// Summary aggregates a run's dispositions.
type Summary struct {
	Total    int
	Full     int
	Degraded int
	Failed   int
}

// Processor drives the orchestrator over a directory of inputs.
type Processor struct {
	orchestrator *orchestrator.CapabilityOrchestrator
	logger       orchestrator.Logger
}

func NewProcessor(orc *orchestrator.CapabilityOrchestrator, logger orchestrator.Logger) *Processor {
	if logger == nil {
		logger = &orchestrator.NopLogger{}
	}
	return &Processor{
		orchestrator: orc,
		logger:       logger,
	}
}

type inputFile struct {
	name    string
	path    string
	modTime time.Time
}

// Run processes the directory and returns per-file results in input order.
// Per-file failures land in FileResult; the returned error covers setup only.
func (p *Processor) Run(ctx context.Context, opts Options) ([]FileResult, Summary, error) {
	if err := normalizeOptions(&opts); err != nil {
		return nil, Summary{}, err
	}

	files, err := p.collectFiles(opts)
	if err != nil {
		return nil, Summary{}, err
	}
	if len(files) == 0 {
		return nil, Summary{}, nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, Summary{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	manager := NewProgressManager(opts.Progress)
	bar := manager.CreateBar(len(files), describeRun(opts.Capability))
	defer manager.Wait()

	results := make([]FileResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan bool, opts.Parallel)

	for i, file := range files {
		wg.Add(1)
		go func(i int, file inputFile) {
			defer wg.Done()
			defer bar.Increment()

			sem <- true
			results[i] = p.processFile(ctx, opts, file)
			<-sem
		}(i, file)
	}
	wg.Wait()
	bar.Complete()

	summary := summarize(results)

	if opts.ReportPath != "" {
		if err := WriteReport(results, opts.ReportPath); err != nil {
			return results, summary, err
		}
	}

	return results, summary, nil
}

func normalizeOptions(opts *Options) error {
	if !model.IsValidCapability(string(opts.Capability)) {
		return fmt.Errorf("unknown capability: %s", opts.Capability)
	}
	if opts.InputDir == "" {
		return fmt.Errorf("input directory is required")
	}
	if opts.Capability == model.CapabilityTranslate && opts.TargetLanguage == "" {
		return fmt.Errorf("translate requires a target language")
	}

	if opts.OutputDir == "" {
		opts.OutputDir = opts.InputDir
	}
	if opts.Extension == "" {
		if opts.Capability.TakesAudio() {
			opts.Extension = ".wav"
		} else {
			opts.Extension = ".txt"
		}
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 4
	}
	return nil
}

// collectFiles lists matching inputs oldest first, skipping files that are
// outputs of an earlier run and inputs whose output already exists.
func (p *Processor) collectFiles(opts Options) ([]inputFile, error) {
	entries, err := os.ReadDir(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []inputFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), opts.Extension) {
			continue
		}
		if isDerivedOutput(name) {
			continue
		}

		outputPath := filepath.Join(opts.OutputDir, outputName(name, opts.Capability))
		if _, err := os.Stat(outputPath); err == nil {
			p.logger.Info("file already processed, skipping", "file", name)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, inputFile{
			name:    name,
			path:    filepath.Join(opts.InputDir, name),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	if opts.Limit > 0 && len(files) > opts.Limit {
		files = files[:opts.Limit]
	}
	return files, nil
}

func (p *Processor) processFile(ctx context.Context, opts Options, file inputFile) FileResult {
	started := time.Now()
	out := FileResult{
		Name:      file.name,
		InputPath: file.path,
		Status:    model.StatusFailed,
	}

	if ctx.Err() != nil {
		out.Err = ctx.Err()
		return out
	}

	request, err := p.buildRequest(opts, file)
	if err != nil {
		out.Err = err
		out.Duration = time.Since(started)
		p.logger.Error("batch item unreadable", "file", file.name, "error", err.Error())
		return out
	}

	result, err := p.orchestrator.Execute(ctx, request)
	if err != nil {
		out.Err = err
		out.Duration = time.Since(started)
		p.logger.Error("batch item rejected", "file", file.name, "error", err.Error())
		return out
	}

	out.Status = result.Status
	out.Warnings = result.Warnings
	out.Engines = successfulEngines(result.Provenance)
	out.Duration = time.Since(started)

	if result.Status == model.StatusFailed {
		p.logger.Error("batch item exhausted its engine chain", "file", file.name)
		return out
	}

	outputPath := filepath.Join(opts.OutputDir, outputName(file.name, opts.Capability))
	if err := writeOutput(outputPath, opts.Capability, result); err != nil {
		out.Err = err
		out.Status = model.StatusFailed
		return out
	}

	out.OutputPath = outputPath
	p.logger.Info("batch item done",
		"file", file.name,
		"status", string(result.Status),
		"engines", strings.Join(out.Engines, ","))
	return out
}

func (p *Processor) buildRequest(opts Options, file inputFile) (*model.CapabilityRequest, error) {
	data, err := os.ReadFile(file.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.name, err)
	}

	request := &model.CapabilityRequest{
		Capability:     opts.Capability,
		SourceLanguage: opts.SourceLanguage,
		TargetLanguage: opts.TargetLanguage,
		MaxLength:      opts.MaxLength,
		Style:          opts.Style,
		Rate:           opts.Rate,
	}

	if opts.Capability.TakesAudio() {
		samples, rate, err := audio.ParseWAV(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", file.name, err)
		}
		request.Audio = &model.AudioPayload{Samples: samples, SampleRate: rate}
		return request, nil
	}

	format := model.FormatPlain
	switch strings.ToLower(filepath.Ext(file.name)) {
	case ".html", ".htm":
		format = model.FormatHTML
	}
	request.Text = &model.TextPayload{Content: string(data), Format: format}
	return request, nil
}

func writeOutput(path string, capability model.Capability, result *model.CapabilityResult) error {
	var data []byte
	if capability == model.CapabilityTextToSpeech {
		data = result.Audio
	} else {
		data = []byte(result.Text)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

var outputSuffixes = map[model.Capability]string{
	model.CapabilitySummarize:    ".summary.txt",
	model.CapabilityTranslate:    ".translated.txt",
	model.CapabilitySpeechToText: ".transcript.txt",
	model.CapabilityTextToSpeech: ".speech.wav",
}

func outputName(inputName string, capability model.Capability) string {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	return base + outputSuffixes[capability]
}

// isDerivedOutput recognizes names produced by outputName so reruns over the
// same directory never consume their own results.
func isDerivedOutput(name string) bool {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, marker := range []string{".summary", ".translated", ".transcript", ".speech"} {
		if strings.HasSuffix(base, marker) {
			return true
		}
	}
	return false
}

func describeRun(capability model.Capability) string {
	switch capability {
	case model.CapabilitySummarize:
		return "Summarizing"
	case model.CapabilityTranslate:
		return "Translating"
	case model.CapabilitySpeechToText:
		return "Transcribing"
	case model.CapabilityTextToSpeech:
		return "Synthesizing"
	default:
		return "Processing"
	}
}

func successfulEngines(provenance []model.ChunkProvenance) []string {
	return lo.Uniq(lo.FilterMap(provenance, func(p model.ChunkProvenance, _ int) (string, bool) {
		return p.SuccessfulEngine, p.SuccessfulEngine != ""
	}))
}

func summarize(results []FileResult) Summary {
	counts := lo.CountValuesBy(results, func(r FileResult) model.ResultStatus { return r.Status })
	return Summary{
		Total:    len(results),
		Full:     counts[model.StatusFullSuccess],
		Degraded: counts[model.StatusDegradedSuccess],
		Failed:   counts[model.StatusFailed],
	}
}
