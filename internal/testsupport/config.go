package testsupport

import (
	"path/filepath"
	"testing"

	"creditscores/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithServerURL points the client section at the given base URL.
func WithServerURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Client.ServerURL = url
	}
}

// WithCORSOrigins replaces the allowed browser origins.
func WithCORSOrigins(origins ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Server.CORSOrigins = append([]string(nil), origins...)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
