package router

// Config holds router configuration with environment variable support.
type Config struct {
	// Fold the case of static pattern parts and request paths before matching.
	CaseInsensitive bool `env:"ROUTER_CASE_INSENSITIVE" envDefault:"false"`

	// Serve variable-free patterns from the exact-match table.
	StaticFastPath bool `env:"ROUTER_STATIC_FAST_PATH" envDefault:"true"`

	// Number of compiled param regexps kept for reuse across nodes.
	RegexCacheSize int `env:"ROUTER_REGEX_CACHE_SIZE" envDefault:"256"`
}

// Default configuration values.
const (
	DefaultRegexCacheSize = 256
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		StaticFastPath: true,
		RegexCacheSize: DefaultRegexCacheSize,
	}
}

// NewFromConfig creates a Router from configuration.
// Additional options can override config values.
func NewFromConfig[R any](cfg Config, opts ...Option[R]) *Router[R] {
	return New(append(ConfigOptions[R](cfg), opts...)...)
}

// ConfigOptions converts cfg into router options, for callers that build the
// router elsewhere and only need to pass the options along.
func ConfigOptions[R any](cfg Config) []Option[R] {
	opts := make([]Option[R], 0, 3)

	if cfg.CaseInsensitive {
		opts = append(opts, WithCaseInsensitive[R]())
	}
	if !cfg.StaticFastPath {
		opts = append(opts, WithoutStaticFastPath[R]())
	}
	if cfg.RegexCacheSize > 0 {
		opts = append(opts, WithRegexCacheSize[R](cfg.RegexCacheSize))
	}

	return opts
}
