package eclc

import "github.com/caarlos0/env/v6"

// Config holds process-wide knobs a caller can set directly or overlay
// from the environment (SPEC_FULL.md §2.3), mirroring the teacher's own
// indirect dependency on github.com/caarlos0/env/v6. Compile takes no
// Config, and no package in this module reads its fields.
type Config struct {
	// DebugCfg is a debug-dump flag. Nothing in this module reads it.
	DebugCfg bool `env:"ECLC_DEBUG_CFG"`

	// MaxSubs is a subroutine-count limit, 0 meaning no limit. Nothing in
	// this module enforces it.
	MaxSubs int `env:"ECLC_MAX_SUBS"`
}

// DefaultConfig returns the zero-value Config (no debug dump, no sub
// limit).
func DefaultConfig() Config { return Config{} }

// LoadConfigFromEnv overlays ECLC_-prefixed environment variables onto a
// copy of base, returning the result. Useful for CI and fuzzing harnesses
// that want to toggle debug dumps without plumbing flags through every
// call site.
func LoadConfigFromEnv(base Config) (Config, error) {
	cfg := base
	if err := env.Parse(&cfg); err != nil {
		return base, err
	}
	return cfg, nil
}
