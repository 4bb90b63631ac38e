// Package config loads, normalizes, and validates emustation configuration.
//
// Configuration is TOML, read from --config, ~/.config/emustation/config.toml
// or ./emustation.toml in that order. Missing files fall back to Default().
// Loading applies environment fallbacks (STEAMGRIDDB_API_KEY), expands "~"
// in paths, and rejects values the sync engine cannot run with. The returned
// *Config is passed explicitly to every operation; nothing reads it globally.
package config
