package config

// Default block and arena sizing, matching the source's `BLOCK_SIZE`
// compile-time default and a modest demonstration-sized arena.
const (
	DefaultBlockSize = 512
	DefaultNumBlocks = 1024
)

// ApplyDefaults fills in any zero-valued fields of cfg with defaults.
func ApplyDefaults(cfg *Config) {
	applyArenaDefaults(cfg)
	applyLoggingDefaults(&cfg.Logging)
}

func applyArenaDefaults(cfg *Config) {
	if cfg.NumBlocks == 0 {
		cfg.NumBlocks = DefaultNumBlocks
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}
