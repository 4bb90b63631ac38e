// Package testsupport builds throwaway configs and Steam userdata trees for
// tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"emustation/internal/config"
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
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.PlatformMapPath = filepath.Join(base, "platforms.json")
	cfgVal.Paths.SteamUserdataDir = filepath.Join(base, "userdata")
	cfgVal.SteamGridDB.APIKey = ""

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

// WithSteamGridDB points the artwork client at baseURL with a test key.
func WithSteamGridDB(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SteamGridDB.APIKey = "test"
		b.cfg.SteamGridDB.BaseURL = baseURL
	}
}

// WithAccounts creates account directories under the config's userdata
// directory, each with an empty collection ledger.
func WithAccounts(ids ...string) ConfigOption {
	return func(b *configBuilder) {
		for _, id := range ids {
			Account(b.t, b.cfg.Paths.SteamUserdataDir, id)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
