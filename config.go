package mempool

import (
	"errors"
	"math"

	"github.com/kelseyhightower/envconfig"
)

// DefaultChunkSize is the number of slots per chunk when none is configured.
const DefaultChunkSize = 65534

// maxChunkSize reserves one index value for the in-flight sentinel.
const maxChunkSize = math.MaxUint32 - 1

// Config validation errors
var (
	ErrChunkSizeTooSmall   = errors.New("chunk_size must be greater than 1")
	ErrChunkSizeTooBig     = errors.New("chunk_size exceeds the free-list index limit")
	ErrNegativeInitialSize = errors.New("initial_capacity cannot be negative")
)

// Config holds pool construction parameters. The zero value is usable:
// a zero ChunkSize falls back to DefaultChunkSize.
type Config struct {
	// ChunkSize is the number of element slots per chunk. Fixed for the
	// pool's lifetime; must be in (1, maxChunkSize].
	ChunkSize int `envconfig:"CHUNK_SIZE" default:"65534"`

	// InitialCapacity pre-creates enough chunks to hold this many elements
	// instead of growing lazily on first overflow. 0 means a single chunk.
	InitialCapacity int `envconfig:"INITIAL_CAPACITY" default:"0"`
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{ChunkSize: DefaultChunkSize}
}

// ConfigFromEnv populates a Config from environment variables with the
// given prefix, e.g. MEMPOOL_CHUNK_SIZE.
func ConfigFromEnv(prefix string) (Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if cfg.ChunkSize <= 1 {
		return ErrChunkSizeTooSmall
	}
	if cfg.ChunkSize > maxChunkSize {
		return ErrChunkSizeTooBig
	}
	if cfg.InitialCapacity < 0 {
		return ErrNegativeInitialSize
	}
	return nil
}
