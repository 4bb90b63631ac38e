package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"emustation/internal/config"
	"emustation/internal/logging"
	"emustation/internal/steam"
)

type commandContext struct {
	configFlag   *string
	userdataFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, userdataFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		userdataFlag: userdataFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.userdataFlag != nil && strings.TrimSpace(*c.userdataFlag) != "" {
			expanded, err := config.ExpandPath(strings.TrimSpace(*c.userdataFlag))
			if err != nil {
				c.configErr = err
				return
			}
			cfg.Paths.SteamUserdataDir = expanded
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerValue returns the configured logger, falling back to a no-op logger
// when configuration or log file setup failed.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) userdata() (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	return steam.FindUserdata(cfg.Paths.SteamUserdataDir)
}

// account resolves a single account: the given id, or the only/first account
// when id is empty.
func (c *commandContext) account(id string) (steam.Account, error) {
	userdata, err := c.userdata()
	if err != nil {
		return steam.Account{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		users, err := steam.ListUsers(userdata, c.loggerValue())
		if err != nil {
			return steam.Account{}, err
		}
		if len(users) == 0 {
			return steam.Account{}, errNoAccounts(userdata)
		}
		id = users[0].ID
	}
	return steam.OpenAccount(userdata, id)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
