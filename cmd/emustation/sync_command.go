package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"emustation/internal/artwork"
	"emustation/internal/artwork/steamgriddb"
	"emustation/internal/config"
	"emustation/internal/library"
	"emustation/internal/logging"
	"emustation/internal/platform"
	"emustation/internal/scanner"
	"emustation/internal/services"
	"emustation/internal/steam"
)

type syncOptions struct {
	emulator      string
	roms          string
	platform      string
	launchOptions string
	users         []string
	allUsers      bool
	noArtwork     bool
	jsonOutput    bool
}

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Scan a ROM folder and add its games to Steam",
		Long: `Scan a ROM folder and register every matching game as a non-Steam shortcut
for the selected Steam accounts. Games are grouped into a collection named
after the platform. Running sync again updates existing shortcuts instead of
adding duplicates.

Close Steam before syncing; it rewrites these files on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runSync(cmd, ctx, cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.emulator, "emulator", "e", "", "Path to the emulator executable")
	cmd.Flags().StringVarP(&opts.roms, "roms", "r", "", "Folder to scan for games")
	cmd.Flags().StringVarP(&opts.platform, "platform", "p", "", "Collection name (guessed from the emulator when empty)")
	cmd.Flags().StringVar(&opts.launchOptions, "launch-options", "", "Launch options template; #rom is replaced with the quoted ROM path")
	cmd.Flags().StringArrayVarP(&opts.users, "user", "u", nil, "Steam account id to update (repeatable; default first account)")
	cmd.Flags().BoolVar(&opts.allUsers, "all-users", false, "Update every Steam account")
	cmd.Flags().BoolVar(&opts.noArtwork, "no-artwork", false, "Skip SteamGridDB artwork downloads")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the summary as JSON")
	_ = cmd.MarkFlagRequired("emulator")
	_ = cmd.MarkFlagRequired("roms")

	return cmd
}

func runSync(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, opts syncOptions) error {
	out := cmd.OutOrStdout()
	logger := ctx.loggerValue()

	emulator, err := config.ExpandPath(strings.TrimSpace(opts.emulator))
	if err != nil {
		return err
	}
	roms, err := config.ExpandPath(strings.TrimSpace(opts.roms))
	if err != nil {
		return err
	}

	platformName := strings.TrimSpace(opts.platform)
	if platformName == "" {
		mapping, err := platform.Load(cfg.Paths.PlatformMapPath)
		if err != nil {
			return err
		}
		platformName, _ = mapping.Guess(emulator)
		fmt.Fprintf(out, "Platform: %s (guessed from %s)\n", platformName, platform.ExeKey(emulator))
	}

	entries, err := scanner.Scan(cmd.Context(), roms, scanner.Options{
		Extensions: cfg.Scanner.Extensions,
		RequireTag: cfg.Scanner.RequireTag,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d games in %s\n", len(entries), roms)

	userdata, err := ctx.userdata()
	if err != nil {
		return err
	}
	accounts, err := selectAccounts(ctx, userdata, opts)
	if err != nil {
		return err
	}

	launch := cfg.Shortcuts.LaunchOptions
	if strings.TrimSpace(opts.launchOptions) != "" {
		launch = opts.launchOptions
	}
	fetchArtwork := cfg.Shortcuts.FetchArtwork && !opts.noArtwork

	syncOpts := []library.Option{}
	if fetchArtwork {
		orch, err := newArtworkOrchestrator(cfg, ctx)
		if err != nil {
			return err
		}
		syncOpts = append(syncOpts, library.WithArtwork(orch))
	}
	syncer := library.New(cfg, userdata, logger, syncOpts...)

	progress := func(ev library.Event) {
		if opts.jsonOutput {
			return
		}
		prefix := ""
		if ev.Account != "" {
			prefix = "[" + ev.Account + "] "
		}
		fmt.Fprintln(out, colorizeStatus(out, statusInfo, prefix+ev.Message))
	}

	summary := syncer.Sync(cmd.Context(), library.Request{
		Emulator:      emulator,
		Platform:      platformName,
		LaunchOptions: launch,
		Entries:       entries,
		Accounts:      accounts,
		FetchArtwork:  fetchArtwork,
	}, progress)

	if opts.jsonOutput {
		if err := writeJSON(cmd, summaryJSON(summary)); err != nil {
			return err
		}
	} else if summary.OK() {
		fmt.Fprintln(out, colorizeStatus(out, statusOK, "✓ "+summary.Message()))
		for _, acct := range summary.Accounts {
			if acct.Collection.Skipped {
				fmt.Fprintln(out, colorizeStatus(out, statusWarn,
					fmt.Sprintf("  [%s] collection not updated: %s", acct.Account, acct.Collection.Reason)))
			}
		}
	}
	if !summary.OK() {
		return errors.New(summary.Message())
	}
	return nil
}

func selectAccounts(ctx *commandContext, userdata string, opts syncOptions) ([]string, error) {
	if len(opts.users) > 0 && !opts.allUsers {
		return opts.users, nil
	}
	users, err := steam.ListUsers(userdata, ctx.loggerValue())
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errNoAccounts(userdata)
	}
	if !opts.allUsers {
		return []string{users[0].ID}, nil
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids, nil
}

func newArtworkOrchestrator(cfg *config.Config, ctx *commandContext) (*artwork.Orchestrator, error) {
	logger := ctx.loggerValue()
	var catalog steamgriddb.Catalog
	if cfg.SteamGridDB.APIKey != "" {
		client, err := steamgriddb.New(cfg.SteamGridDB.APIKey, cfg.SteamGridDB.BaseURL,
			steamgriddb.WithUserAgent(cfg.SteamGridDB.UserAgent),
			steamgriddb.WithTimeouts(
				time.Duration(cfg.SteamGridDB.TimeoutSeconds)*time.Second,
				time.Duration(cfg.SteamGridDB.DownloadTimeoutSeconds)*time.Second,
			),
		)
		if err != nil {
			return nil, err
		}
		catalog = client
	} else {
		logging.WarnWithContext(logger, "no SteamGridDB API key configured", "artwork_disabled",
			logging.String(logging.FieldErrorHint, "set steamgriddb.api_key or STEAMGRIDDB_API_KEY"),
			logging.String(logging.FieldImpact, "only artwork already on disk is used"),
		)
	}
	return artwork.New(catalog, logger, artwork.WithConcurrency(cfg.SteamGridDB.Concurrency))
}

func errNoAccounts(userdata string) error {
	return services.Wrap(services.ErrValidation, "steam", "select accounts",
		fmt.Sprintf("no Steam accounts found in %s; log in to Steam once first", userdata), nil)
}

type accountJSON struct {
	Account    string `json:"account"`
	Processed  int    `json:"processed"`
	Created    int    `json:"created"`
	Updated    int    `json:"updated"`
	Icons      int    `json:"icons"`
	Collection string `json:"collection_key,omitempty"`
	Skipped    string `json:"collection_skipped,omitempty"`
}

type syncSummaryJSON struct {
	SessionID string        `json:"session_id"`
	OK        bool          `json:"ok"`
	Processed int           `json:"processed"`
	Message   string        `json:"message"`
	Accounts  []accountJSON `json:"accounts"`
}

func summaryJSON(s library.Summary) syncSummaryJSON {
	out := syncSummaryJSON{
		SessionID: s.SessionID,
		OK:        s.OK(),
		Processed: s.Processed,
		Message:   s.Message(),
		Accounts:  make([]accountJSON, 0, len(s.Accounts)),
	}
	for _, a := range s.Accounts {
		out.Accounts = append(out.Accounts, accountJSON{
			Account:    a.Account,
			Processed:  a.Processed,
			Created:    a.Created,
			Updated:    a.Updated,
			Icons:      a.Icons,
			Collection: a.Collection.Key,
			Skipped:    a.Collection.Reason,
		})
	}
	return out
}
