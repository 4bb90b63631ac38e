package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSteamGridDB(); err != nil {
		return err
	}
	if err := c.validateShortcuts(); err != nil {
		return err
	}
	if err := c.validateScanner(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSteamGridDB() error {
	if err := ensurePositiveMap(map[string]int{
		"steamgriddb.timeout_seconds":          c.SteamGridDB.TimeoutSeconds,
		"steamgriddb.download_timeout_seconds": c.SteamGridDB.DownloadTimeoutSeconds,
		"steamgriddb.concurrency":              c.SteamGridDB.Concurrency,
	}); err != nil {
		return err
	}
	if c.SteamGridDB.Concurrency > maxSteamGridDBConcurrency {
		return fmt.Errorf("steamgriddb.concurrency must be at most %d", maxSteamGridDBConcurrency)
	}
	parsed, err := url.Parse(c.SteamGridDB.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("steamgriddb.base_url must be an absolute URL, got %q", c.SteamGridDB.BaseURL)
	}
	return nil
}

func (c *Config) validateShortcuts() error {
	if !strings.Contains(c.Shortcuts.LaunchOptions, RomPlaceholder) {
		return fmt.Errorf("shortcuts.launch_options must contain the %s placeholder", RomPlaceholder)
	}
	return nil
}

func (c *Config) validateScanner() error {
	if len(c.Scanner.Extensions) == 0 {
		return errors.New("scanner.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
