package orchestrator

import (
	"time"

	"polycap/internal/app/chunk"
	"polycap/internal/app/model"
)

// Config defines orchestration tuning for chunking and fan-out
type Config struct {
	// Parallel bounds how many chunks of one request resolve concurrently
	Parallel int `yaml:"parallel" json:"parallel"`

	// ChunkLimits caps chunk sizes per text capability, in bytes
	ChunkLimits map[model.Capability]int `yaml:"chunk_limits" json:"chunk_limits"`

	// Overlap prepends this many bytes of the previous chunk to each text
	// chunk after the first; merging strips it again
	Overlap int `yaml:"overlap" json:"overlap"`

	// AttemptGrace extends every engine timeout before an attempt is abandoned
	AttemptGrace time.Duration `yaml:"attempt_grace" json:"attempt_grace"`

	// Audio tunes speech input windowing
	Audio chunk.AudioChunkConfig `yaml:"audio" json:"audio"`

	// MinChunkChars is the floor below which a summarize chunk skips engines
	MinChunkChars int `yaml:"min_chunk_chars" json:"min_chunk_chars"`
}

// DefaultConfig returns the orchestration defaults
func DefaultConfig() Config {
	return Config{
		Parallel: 4,
		ChunkLimits: map[model.Capability]int{
			model.CapabilitySummarize:    1000,
			model.CapabilityTranslate:    1000,
			model.CapabilityTextToSpeech: 5000,
		},
		Overlap:       0,
		AttemptGrace:  250 * time.Millisecond,
		Audio:         chunk.DefaultAudioChunkConfig(),
		MinChunkChars: chunk.MinChunkChars,
	}
}

// chunkLimitFor resolves the effective chunk limit for a request
func (c Config) chunkLimitFor(request *model.CapabilityRequest) int {
	if request.ChunkLimit > 0 {
		return request.ChunkLimit
	}
	if limit, ok := c.ChunkLimits[request.Capability]; ok && limit > 0 {
		return limit
	}
	return 1000
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Parallel <= 0 {
		c.Parallel = d.Parallel
	}
	if len(c.ChunkLimits) == 0 {
		c.ChunkLimits = d.ChunkLimits
	}
	if c.Overlap < 0 {
		c.Overlap = 0
	}
	if c.AttemptGrace <= 0 {
		c.AttemptGrace = d.AttemptGrace
	}
	if c.MinChunkChars <= 0 {
		c.MinChunkChars = d.MinChunkChars
	}
	return c
}
