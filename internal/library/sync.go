package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"emustation/internal/appid"
	"emustation/internal/artwork"
	"emustation/internal/collections"
	"emustation/internal/config"
	"emustation/internal/logging"
	"emustation/internal/services"
	"emustation/internal/shortcuts"
	"emustation/internal/steam"
)

// Stage names reported in progress events and log context.
const (
	StageValidate   = "validate"
	StageLoad       = "load"
	StageArtwork    = "artwork"
	StageMerge      = "merge"
	StageSave       = "save"
	StageCollection = "collection"
)

// Request describes one sync.
type Request struct {
	Emulator      string
	Platform      string
	LaunchOptions string
	Entries       []shortcuts.Entry
	Accounts      []string
	FetchArtwork  bool
}

// Event is a progress notification.
type Event struct {
	Account string
	Stage   string
	Message string
	// Index and Total locate per-entry artwork events; both are zero otherwise.
	Index int
	Total int
}

// ProgressFunc receives progress events in order.
type ProgressFunc func(Event)

// AccountReport summarizes the work done for one account.
type AccountReport struct {
	Account    string
	Processed  int
	Created    int
	Updated    int
	Icons      int
	Collection collections.FileResult
}

// Summary is the user-facing result of a sync.
type Summary struct {
	SessionID string
	Processed int
	Accounts  []AccountReport
	Err       error
}

// OK reports whether the sync completed.
func (s Summary) OK() bool { return s.Err == nil }

// Message is a one-line status suitable for display. Errors are collapsed
// and truncated; the full error is in the logs.
func (s Summary) Message() string {
	if s.Err != nil {
		return "Error: " + services.Summary(s.Err)
	}
	return fmt.Sprintf("Successfully added/updated %d shortcuts", s.Processed)
}

// Syncer runs syncs against one Steam userdata directory.
type Syncer struct {
	cfg      *config.Config
	userdata string
	artwork  *artwork.Orchestrator
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithArtwork sets the orchestrator used when a request asks for artwork.
func WithArtwork(o *artwork.Orchestrator) Option {
	return func(s *Syncer) { s.artwork = o }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Syncer.
func New(cfg *config.Config, userdata string, logger *slog.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		cfg:      cfg,
		userdata: userdata,
		logger:   logging.NewComponentLogger(logger, "sync"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync validates req and processes every account in order. It stops at the
// first account that fails; the summary counts what completed before that.
func (s *Syncer) Sync(ctx context.Context, req Request, progress ProgressFunc) Summary {
	sessionID := uuid.NewString()
	ctx = services.WithSessionID(ctx, sessionID)
	summary := Summary{SessionID: sessionID}
	emit := func(ev Event) {
		if progress != nil {
			progress(ev)
		}
	}

	req.Platform = strings.TrimSpace(req.Platform)
	emit(Event{Stage: StageValidate, Message: "Validating inputs..."})
	accounts, err := s.validate(req)
	if err != nil {
		summary.Err = err
		s.logFailure(ctx, err)
		return summary
	}

	logger := logging.WithContext(ctx, s.logger)
	logger.Info("sync started",
		logging.String("emulator", req.Emulator),
		logging.String("platform", req.Platform),
		logging.Int("entries", len(req.Entries)),
		logging.Int("accounts", len(accounts)),
	)

	for _, acct := range accounts {
		if err := ctx.Err(); err != nil {
			summary.Err = err
			break
		}
		report, err := s.syncAccount(services.WithAccount(ctx, acct.ID), acct, req, emit)
		if err != nil {
			summary.Err = err
			s.logFailure(services.WithAccount(ctx, acct.ID), err)
			break
		}
		summary.Accounts = append(summary.Accounts, report)
		summary.Processed += report.Processed
	}

	if summary.Err == nil {
		logger.Info("sync finished", logging.Int("processed", summary.Processed))
	}
	return summary
}

func (s *Syncer) validate(req Request) ([]steam.Account, error) {
	info, err := os.Stat(req.Emulator)
	if strings.TrimSpace(req.Emulator) == "" || err != nil || info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "sync", StageValidate, "invalid emulator path", err)
	}
	if req.Platform == "" {
		return nil, services.Wrap(services.ErrValidation, "sync", StageValidate, "platform name required", nil)
	}
	if len(req.Entries) == 0 {
		return nil, services.Wrap(services.ErrValidation, "sync", StageValidate, "no games found", nil)
	}
	if len(req.Accounts) == 0 {
		return nil, services.Wrap(services.ErrValidation, "sync", StageValidate, "no Steam user selected", nil)
	}
	seen := map[string]struct{}{}
	var accounts []steam.Account
	for _, id := range req.Accounts {
		acct, err := steam.OpenAccount(s.userdata, id)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[acct.ID]; dup {
			continue
		}
		seen[acct.ID] = struct{}{}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func (s *Syncer) syncAccount(ctx context.Context, acct steam.Account, req Request, emit func(Event)) (AccountReport, error) {
	report := AccountReport{Account: acct.ID}
	logger := logging.WithContext(ctx, s.logger)

	lock, err := s.acquire(acct.ID)
	if err != nil {
		return report, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release account lock", logging.Error(err))
		}
	}()

	emit(Event{Account: acct.ID, Stage: StageLoad, Message: "Reading existing shortcuts..."})
	registry, err := shortcuts.Load(acct.ShortcutsPath(), logging.WithContext(services.WithStage(ctx, StageLoad), s.logger))
	if err != nil {
		return report, err
	}

	entries := append([]shortcuts.Entry(nil), req.Entries...)
	if req.FetchArtwork && s.artwork != nil {
		report.Icons = s.fetchArtwork(services.WithStage(ctx, StageArtwork), acct, req, entries, emit)
	}

	emit(Event{Account: acct.ID, Stage: StageMerge, Message: fmt.Sprintf("Merging %d games...", len(entries))})
	merged, res := shortcuts.Merge(registry, entries, shortcuts.MergeOptions{
		Executable:    req.Emulator,
		LaunchOptions: req.LaunchOptions,
		Now:           s.now(),
	})
	report.Processed = res.Processed
	report.Created = res.Created
	report.Updated = res.Updated

	emit(Event{Account: acct.ID, Stage: StageSave, Message: fmt.Sprintf("Writing %d shortcuts to Steam...", merged.Len())})
	if err := shortcuts.Save(acct.ShortcutsPath(), merged); err != nil {
		return report, err
	}
	logger.Info("shortcuts saved",
		logging.String("path", acct.ShortcutsPath()),
		logging.Int("created", res.Created),
		logging.Int("updated", res.Updated),
		logging.Int("total", merged.Len()),
	)

	emit(Event{Account: acct.ID, Stage: StageCollection, Message: fmt.Sprintf("Adding games to '%s' collection...", req.Platform)})
	colCtx := services.WithStage(ctx, StageCollection)
	col, err := collections.AttachFile(acct.LedgerPath(), res.Identifiers, req.Platform, s.now(), logging.WithContext(colCtx, s.logger))
	if err != nil {
		logging.WarnWithContext(logging.WithContext(colCtx, s.logger), "collection update failed", "collection_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "shortcuts were saved but not grouped into a collection"),
		)
	}
	report.Collection = col
	return report, nil
}

func (s *Syncer) fetchArtwork(ctx context.Context, acct steam.Account, req Request, entries []shortcuts.Entry, emit func(Event)) int {
	reqs := make([]artwork.Request, len(entries))
	for i, e := range entries {
		reqs[i] = artwork.Request{
			Name:    e.DisplayName,
			ID:      appid.Derive(req.Emulator, e.DisplayName),
			GridDir: acct.GridDir(),
		}
	}
	icons := 0
	s.artwork.FetchAll(ctx, reqs, func(i int, res artwork.Result) {
		if res.IconPath != "" {
			entries[i].IconPath = res.IconPath
			icons++
		}
		emit(Event{
			Account: acct.ID,
			Stage:   StageArtwork,
			Message: fmt.Sprintf("Processing %d/%d: %s", i+1, len(reqs), res.Name),
			Index:   i + 1,
			Total:   len(reqs),
		})
	})
	return icons
}

func (s *Syncer) acquire(account string) (*flock.Flock, error) {
	dir := s.cfg.LockDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, account+".lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire account lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "sync", "lock",
			fmt.Sprintf("another sync is already running for account %s", account), nil)
	}
	return lock, nil
}

func (s *Syncer) logFailure(ctx context.Context, err error) {
	logger := logging.WithContext(ctx, s.logger)
	hint := "see the log for details"
	switch {
	case errors.Is(err, services.ErrValidation):
		hint = "check the emulator path, platform name, ROM folder and selected accounts"
	case errors.Is(err, services.ErrNotFound):
		hint = "make sure Steam has been started at least once for this account"
	}
	logging.ErrorWithContext(logger, "sync failed", "sync_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hint),
	)
}
