package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSteamGridDB()
	c.normalizeShortcuts()
	c.normalizeScanner()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SteamUserdataDir, err = expandPath(strings.TrimSpace(c.Paths.SteamUserdataDir)); err != nil {
		return fmt.Errorf("paths.steam_userdata_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.PlatformMapPath) == "" {
		c.Paths.PlatformMapPath = defaultPlatformMapPath
	}
	if c.Paths.PlatformMapPath, err = expandPath(c.Paths.PlatformMapPath); err != nil {
		return fmt.Errorf("paths.platform_map_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeSteamGridDB() {
	c.SteamGridDB.APIKey = strings.TrimSpace(c.SteamGridDB.APIKey)
	if c.SteamGridDB.APIKey == "" {
		if value, ok := os.LookupEnv("STEAMGRIDDB_API_KEY"); ok {
			c.SteamGridDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.SteamGridDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.SteamGridDB.BaseURL), "/")
	if c.SteamGridDB.BaseURL == "" {
		c.SteamGridDB.BaseURL = defaultSteamGridDBBaseURL
	}
	c.SteamGridDB.UserAgent = strings.TrimSpace(c.SteamGridDB.UserAgent)
	if c.SteamGridDB.UserAgent == "" {
		c.SteamGridDB.UserAgent = defaultSteamGridDBUserAgent
	}
	if c.SteamGridDB.TimeoutSeconds == 0 {
		c.SteamGridDB.TimeoutSeconds = defaultSteamGridDBTimeout
	}
	if c.SteamGridDB.DownloadTimeoutSeconds == 0 {
		c.SteamGridDB.DownloadTimeoutSeconds = defaultSteamGridDBDownload
	}
	if c.SteamGridDB.Concurrency == 0 {
		c.SteamGridDB.Concurrency = defaultSteamGridDBConcurrency
	}
}

func (c *Config) normalizeShortcuts() {
	c.Shortcuts.LaunchOptions = strings.TrimSpace(c.Shortcuts.LaunchOptions)
	if c.Shortcuts.LaunchOptions == "" {
		c.Shortcuts.LaunchOptions = defaultLaunchOptions
	}
}

func (c *Config) normalizeScanner() {
	exts := make([]string, 0, len(c.Scanner.Extensions))
	seen := make(map[string]struct{}, len(c.Scanner.Extensions))
	for _, ext := range c.Scanner.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Scanner.Extensions = exts
	c.Scanner.RequireTag = strings.TrimSpace(c.Scanner.RequireTag)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
