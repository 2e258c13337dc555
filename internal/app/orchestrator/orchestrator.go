// Package orchestrator turns one capability request into one merged result:
// it validates, chunks oversized inputs, resolves every chunk through the
// capability's fallback chain under a bounded worker pool, and reassembles the
// chunk outputs in order. Engine failures never surface as errors; they are
// absorbed into the result's status, provenance and warnings.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"polycap/internal/app/audio"
	"polycap/internal/app/chunk"
	"polycap/internal/app/detect"
	"polycap/internal/app/engine"
	apperrors "polycap/internal/app/errors"
	"polycap/internal/app/extract"
	"polycap/internal/app/model"
)

// refineChunkIndex marks the provenance entry of a summarize refinement pass.
const refineChunkIndex = -1

// CapabilityOrchestrator coordinates chunking, engine selection and merging
// for every capability.
type CapabilityOrchestrator struct {
	registry engine.Registry
	chain    *FallbackChain
	detector detect.Detector
	config   Config
	logger   Logger

	mu    sync.RWMutex
	stats Stats
}

// Stats aggregates request outcomes across the orchestrator's lifetime.
type Stats struct {
	TotalRequests     int64                      `json:"total_requests"`
	FullSuccesses     int64                      `json:"full_successes"`
	DegradedSuccesses int64                      `json:"degraded_successes"`
	Failures          int64                      `json:"failures"`
	CapabilityUsage   map[model.Capability]int64 `json:"capability_usage"`
}

// NewCapabilityOrchestrator creates the orchestrator. A nil detector disables
// language auto-detection; a nil logger discards logs.
func NewCapabilityOrchestrator(registry engine.Registry, chain *FallbackChain, detector detect.Detector, config Config, logger Logger) *CapabilityOrchestrator {
	if logger == nil {
		logger = &NopLogger{}
	}
	return &CapabilityOrchestrator{
		registry: registry,
		chain:    chain,
		detector: detector,
		config:   config.withDefaults(),
		logger:   logger,
		stats: Stats{
			CapabilityUsage: make(map[model.Capability]int64),
		},
	}
}

// Execute runs one capability request end to end. Only request validation
// returns an error; everything after the first engine attempt is reported
// through the result's status.
func (o *CapabilityOrchestrator) Execute(ctx context.Context, request *model.CapabilityRequest) (*model.CapabilityResult, error) {
	start := time.Now()

	if err := o.validate(request); err != nil {
		return nil, err
	}

	o.logger.Info("executing capability request",
		"capability", string(request.Capability),
		"sourceLanguage", request.SourceLanguage,
		"targetLanguage", request.TargetLanguage)

	var result *model.CapabilityResult
	var err error
	if request.Capability.TakesAudio() {
		result, err = o.executeAudio(ctx, request)
	} else {
		result, err = o.executeText(ctx, request)
	}
	if err != nil {
		return nil, err
	}

	result.ProcessingTime = time.Since(start)
	o.recordOutcome(request.Capability, result.Status)

	o.logger.Info("capability request finished",
		"capability", string(request.Capability),
		"status", string(result.Status),
		"chunks", len(result.Provenance),
		"durationMs", result.ProcessingTime.Milliseconds())
	return result, nil
}

// GetStats returns a copy of the orchestrator's aggregate counters.
func (o *CapabilityOrchestrator) GetStats() Stats {
	o.mu.RLock()
	defer o.mu.RUnlock()

	copied := o.stats
	copied.CapabilityUsage = make(map[model.Capability]int64, len(o.stats.CapabilityUsage))
	for k, v := range o.stats.CapabilityUsage {
		copied.CapabilityUsage[k] = v
	}
	return copied
}

func (o *CapabilityOrchestrator) executeText(ctx context.Context, request *model.CapabilityRequest) (*model.CapabilityResult, error) {
	text := request.InputText()
	if request.Text.Format == model.FormatHTML {
		extracted, err := extract.Text(text)
		if err != nil {
			return nil, apperrors.Wrap(err, "invalid html payload")
		}
		if strings.TrimSpace(extracted) == "" {
			return nil, apperrors.Wrap(apperrors.ErrEmptyInput, "html payload has no readable text")
		}
		text = extracted
	}

	language := o.resolveLanguage(request, text)

	spans, err := chunk.SplitText(text, o.config.chunkLimitFor(request), o.overlapFor(request.Capability))
	if err != nil {
		return nil, apperrors.Wrap(err, "chunk input")
	}

	result := &model.CapabilityResult{DetectedLanguage: language}
	result.Warnings = append(result.Warnings, o.terminalWarnings(request.Capability)...)

	chainLang := o.chainLanguage(request, language)
	outcomes := make([]chainResult, len(spans))
	skipped := make([]bool, len(spans))

	var wg sync.WaitGroup
	sem := make(chan bool, o.config.Parallel)

	for i := range spans {
		if request.Capability == model.CapabilitySummarize && len(spans) > 1 &&
			utf8.RuneCountInString(strings.TrimSpace(spans[i].Body())) < o.config.MinChunkChars {
			skipped[i] = true
			outcomes[i] = chainResult{
				provenance: model.ChunkProvenance{ChunkIndex: i},
				warnings: []string{fmt.Sprintf("chunk %d shorter than %d characters, skipped",
					i, o.config.MinChunkChars)},
			}
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sem <- true
			defer func() { <-sem }()

			if ctx.Err() != nil {
				outcomes[i] = cancelledChunk(i)
				return
			}
			outcomes[i] = o.chain.Resolve(ctx, textChunkRequest(request, spans[i].Text), i, chainLang)
		}(i)
	}
	wg.Wait()

	pieces := make([]string, len(spans))
	audioPieces := make([][]byte, len(spans))
	failed := false
	for i, r := range outcomes {
		result.Provenance = append(result.Provenance, r.provenance)
		result.Warnings = append(result.Warnings, r.warnings...)
		if skipped[i] {
			continue
		}
		if !r.outcome.OK() {
			failed = true
			continue
		}
		pieces[i] = r.outcome.Text
		audioPieces[i] = r.outcome.Audio
	}

	if ctx.Err() != nil {
		failed = true
		result.Warnings = append(result.Warnings, "request cancelled before all chunks resolved")
	}
	if failed {
		result.Status = model.StatusFailed
		return result, nil
	}

	switch request.Capability {
	case model.CapabilitySummarize:
		merged := chunk.MergeTranscripts(pieces)
		merged = o.refineSummary(ctx, request, result, merged, len(spans), chainLang)
		result.Text = merged
	case model.CapabilityTranslate:
		merged, mergeErr := chunk.MergeText(spans, pieces)
		if mergeErr != nil {
			return nil, apperrors.Wrap(mergeErr, "merge translation")
		}
		result.Text = merged
	case model.CapabilityTextToSpeech:
		stitched, stitchErr := stitchAudio(audioPieces)
		if stitchErr != nil {
			result.Status = model.StatusFailed
			result.Warnings = append(result.Warnings, stitchErr.Error())
			return result, nil
		}
		result.Audio = stitched
	}

	if result.Degraded() {
		result.Status = model.StatusDegradedSuccess
	} else {
		result.Status = model.StatusFullSuccess
	}
	return result, nil
}

func (o *CapabilityOrchestrator) executeAudio(ctx context.Context, request *model.CapabilityRequest) (*model.CapabilityResult, error) {
	chunks, err := chunk.SplitAudio(request.Audio.Samples, request.Audio.SampleRate, o.config.Audio)
	if err != nil {
		return nil, apperrors.Wrap(err, "chunk audio")
	}

	result := &model.CapabilityResult{DetectedLanguage: request.SourceLanguage}
	result.Warnings = append(result.Warnings, o.terminalWarnings(request.Capability)...)

	outcomes := make([]chainResult, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan bool, o.config.Parallel)

	for i := range chunks {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			sem <- true
			defer func() { <-sem }()

			if ctx.Err() != nil {
				outcomes[i] = cancelledChunk(i)
				return
			}
			outcomes[i] = o.chain.Resolve(ctx, audioChunkRequest(request, chunks[i]), i, request.SourceLanguage)
		}(i)
	}
	wg.Wait()

	pieces := make([]string, len(chunks))
	failed := false
	for i, r := range outcomes {
		result.Provenance = append(result.Provenance, r.provenance)
		result.Warnings = append(result.Warnings, r.warnings...)
		if !r.outcome.OK() {
			failed = true
			continue
		}
		pieces[i] = r.outcome.Text
	}

	if ctx.Err() != nil {
		failed = true
		result.Warnings = append(result.Warnings, "request cancelled before all chunks resolved")
	}
	if failed {
		result.Status = model.StatusFailed
		return result, nil
	}

	result.Text = chunk.MergeTranscripts(pieces)
	if result.Degraded() {
		result.Status = model.StatusDegradedSuccess
	} else {
		result.Status = model.StatusFullSuccess
	}
	return result, nil
}

// refineSummary re-runs the chain once over the merged summary when it came
// out more than twice the requested length. A failed refinement keeps the
// unrefined summary; the chunks already succeeded.
func (o *CapabilityOrchestrator) refineSummary(ctx context.Context, request *model.CapabilityRequest, result *model.CapabilityResult, merged string, chunkCount int, chainLang string) string {
	if chunkCount < 2 {
		return merged
	}
	maxLen := request.MaxLengthFor()
	if utf8.RuneCountInString(merged) <= 2*maxLen {
		return merged
	}

	result.Warnings = append(result.Warnings,
		fmt.Sprintf("merged summary exceeded twice the requested length (%d), refining", maxLen))

	r := o.chain.Resolve(ctx, textChunkRequest(request, merged), refineChunkIndex, chainLang)
	result.Provenance = append(result.Provenance, r.provenance)
	result.Warnings = append(result.Warnings, r.warnings...)

	if !r.outcome.OK() {
		result.Warnings = append(result.Warnings, "refinement pass failed, keeping unrefined summary")
		return merged
	}
	return r.outcome.Text
}

func (o *CapabilityOrchestrator) validate(request *model.CapabilityRequest) error {
	if request == nil {
		return apperrors.Wrap(apperrors.ErrInvalidRequest, "request is nil")
	}
	if !model.IsValidCapability(string(request.Capability)) {
		return apperrors.Wrapf(apperrors.ErrUnknownCapability, "capability %q", string(request.Capability))
	}

	if request.Capability.TakesText() {
		if request.Audio != nil {
			return apperrors.InvalidField("payload", "text capability does not accept audio")
		}
		if request.Text == nil || strings.TrimSpace(request.Text.Content) == "" {
			return apperrors.Wrap(apperrors.ErrEmptyInput, string(request.Capability))
		}
		switch request.Text.Format {
		case "", model.FormatPlain, model.FormatHTML:
		default:
			return apperrors.Unsupported("format", string(request.Text.Format))
		}
	}

	if request.Capability.TakesAudio() {
		if request.Text != nil {
			return apperrors.InvalidField("payload", "speech to text does not accept text")
		}
		if request.Audio == nil || len(request.Audio.Samples) == 0 {
			return apperrors.Wrap(apperrors.ErrEmptyInput, string(request.Capability))
		}
		if request.Audio.SampleRate <= 0 {
			return apperrors.InvalidField("sample rate", "must be positive")
		}
	}

	if request.Capability == model.CapabilityTranslate && request.TargetLanguage == "" {
		return apperrors.RequiredField("target language")
	}

	if request.MaxLength < 0 {
		return apperrors.InvalidField("max length", "must not be negative")
	}
	if request.ChunkLimit < 0 {
		return apperrors.InvalidField("chunk limit", "must not be negative")
	}

	switch request.LengthClass {
	case "", model.LengthShort, model.LengthMedium, model.LengthLong:
	default:
		return apperrors.Unsupported("length class", string(request.LengthClass))
	}
	switch request.Style {
	case "", model.StyleParagraph, model.StyleBullets, model.StyleAbstract:
	default:
		return apperrors.Unsupported("style", string(request.Style))
	}
	switch request.Rate {
	case "", model.RateNormal, model.RateSlow:
	default:
		return apperrors.Unsupported("rate", string(request.Rate))
	}
	return nil
}

// resolveLanguage returns the request's source language: the explicit hint
// wins, otherwise the detector runs over the text.
func (o *CapabilityOrchestrator) resolveLanguage(request *model.CapabilityRequest, text string) string {
	if request.SourceLanguage != "" {
		return request.SourceLanguage
	}
	if o.detector == nil {
		return ""
	}
	lang, confidence := o.detector.Detect(text)
	o.logger.Info("detected source language",
		"language", lang,
		"confidence", fmt.Sprintf("%.2f", confidence))
	return lang
}

// chainLanguage picks the language engines are filtered on: the target for
// translation, the source for everything else.
func (o *CapabilityOrchestrator) chainLanguage(request *model.CapabilityRequest, sourceLanguage string) string {
	if request.Capability == model.CapabilityTranslate {
		return request.TargetLanguage
	}
	return sourceLanguage
}

// overlapFor returns the text chunk overlap for a capability. Only summaries
// benefit from overlapping context; translated or synthesized overlap would
// duplicate content in the merged output.
func (o *CapabilityOrchestrator) overlapFor(capability model.Capability) int {
	if capability == model.CapabilitySummarize {
		return o.config.Overlap
	}
	return 0
}

// terminalWarnings flags capabilities whose lowest-priority engine is not
// deterministic, since such chains can exhaust on engine outages.
func (o *CapabilityOrchestrator) terminalWarnings(capability model.Capability) []string {
	engines := o.registry.EnginesFor(capability)
	if len(engines) == 0 {
		return nil
	}
	last := engines[len(engines)-1].Descriptor()
	if last.Deterministic {
		return nil
	}
	return []string{fmt.Sprintf("capability %s has no deterministic terminal engine", capability)}
}

func (o *CapabilityOrchestrator) recordOutcome(capability model.Capability, status model.ResultStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.stats.TotalRequests++
	o.stats.CapabilityUsage[capability]++
	switch status {
	case model.StatusFullSuccess:
		o.stats.FullSuccesses++
	case model.StatusDegradedSuccess:
		o.stats.DegradedSuccesses++
	case model.StatusFailed:
		o.stats.Failures++
	}
}

// textChunkRequest scopes a request to one chunk's text. Option fields carry
// over; the payload is replaced.
func textChunkRequest(base *model.CapabilityRequest, text string) *model.CapabilityRequest {
	r := *base
	r.Text = &model.TextPayload{Content: text, Format: model.FormatPlain}
	r.Audio = nil
	return &r
}

// audioChunkRequest scopes a request to one audio chunk.
func audioChunkRequest(base *model.CapabilityRequest, c model.AudioChunk) *model.CapabilityRequest {
	r := *base
	r.Audio = &model.AudioPayload{Samples: c.Samples, SampleRate: c.SampleRate}
	r.Text = nil
	return &r
}

func cancelledChunk(index int) chainResult {
	return chainResult{
		outcome:    model.Failure(model.FailureTimeout, "request cancelled before chunk was attempted"),
		provenance: model.ChunkProvenance{ChunkIndex: index},
		warnings:   []string{fmt.Sprintf("chunk %d cancelled before any engine ran", index)},
	}
}

// stitchAudio decodes per-chunk WAV payloads, resamples every piece to the
// first piece's rate and re-encodes one continuous WAV.
func stitchAudio(pieces [][]byte) ([]byte, error) {
	kept := make([][]byte, 0, len(pieces))
	for _, p := range pieces {
		if len(p) > 0 {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, apperrors.New("no audio pieces to merge")
	}
	if len(kept) == 1 {
		return kept[0], nil
	}

	var samples []float64
	rate := 0
	for i, p := range kept {
		s, r, err := audio.ParseWAV(p)
		if err != nil {
			return nil, apperrors.Wrapf(err, "audio piece %d is not a valid wav", i)
		}
		if rate == 0 {
			rate = r
		} else if r != rate {
			s = audio.Resample(s, r, rate)
		}
		samples = append(samples, s...)
	}
	return audio.EncodeWAV(samples, rate), nil
}
