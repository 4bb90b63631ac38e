package artwork

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"emustation/internal/artwork/steamgriddb"
	"emustation/internal/fileutil"
	"emustation/internal/logging"
	"emustation/internal/services"
)

const defaultCacheSize = 512

// Request asks for artwork for one shortcut.
type Request struct {
	Name    string
	ID      uint32
	GridDir string
}

// Result reports what Fetch did for one request.
type Result struct {
	Request
	// IconPath is set when the icon slot exists after the fetch.
	IconPath   string
	Downloaded int
	Existing   int
	// Err is the lookup failure, if any. It is informational only.
	Err error
}

// ProgressFunc is called once per request, in request order.
type ProgressFunc func(index int, res Result)

// Orchestrator fetches artwork through a catalog. A nil catalog (no API
// key) still reports existing icons but downloads nothing.
type Orchestrator struct {
	catalog     steamgriddb.Catalog
	logger      *slog.Logger
	concurrency int
	games       *lru.Cache[string, int64]

	mu    sync.Mutex
	locks map[uint32]*sync.Mutex
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConcurrency bounds parallel lookups in FetchAll.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// New builds an Orchestrator.
func New(catalog steamgriddb.Catalog, logger *slog.Logger, opts ...Option) (*Orchestrator, error) {
	games, err := lru.New[string, int64](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create game cache: %w", err)
	}
	o := &Orchestrator{
		catalog:     catalog,
		logger:      logging.NewComponentLogger(logger, "artwork"),
		concurrency: 1,
		games:       games,
		locks:       map[uint32]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Fetch downloads any missing slots for req and returns the icon path when
// the icon slot exists afterwards.
func (o *Orchestrator) Fetch(ctx context.Context, req Request) (string, bool) {
	res := o.fetch(ctx, req)
	return res.IconPath, res.IconPath != ""
}

// FetchAll runs Fetch for every request with bounded concurrency. Results
// are returned, and reported to progress, in request order.
func (o *Orchestrator) FetchAll(ctx context.Context, reqs []Request, progress ProgressFunc) []Result {
	results := make([]Result, len(reqs))
	done := make([]bool, len(reqs))
	var (
		mu   sync.Mutex
		next int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			res := o.fetch(gctx, req)
			mu.Lock()
			defer mu.Unlock()
			results[i] = res
			done[i] = true
			for next < len(reqs) && done[next] {
				if progress != nil {
					progress(next, results[next])
				}
				next++
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (o *Orchestrator) fetch(ctx context.Context, req Request) Result {
	lock := o.lockFor(req.ID)
	lock.Lock()
	defer lock.Unlock()

	res := Result{Request: req}
	logger := o.logger.With(logging.String("game", req.Name), logging.AppID(req.ID))
	start := time.Now()

	var missing []Slot
	for _, slot := range Slots {
		if fileutil.Exists(slot.Path(req.GridDir, req.ID)) {
			res.Existing++
			continue
		}
		missing = append(missing, slot)
	}

	if len(missing) == 0 {
		logger.Debug("all artwork already present")
		return o.finish(req, &res)
	}
	if o.catalog == nil {
		logger.Debug("no SteamGridDB API key; skipping artwork download")
		return o.finish(req, &res)
	}

	gameID, err := o.lookup(ctx, req.Name)
	if err != nil {
		res.Err = err
		o.logLookupFailure(logger, err)
		return o.finish(req, &res)
	}

	listings := map[steamgriddb.Kind][]steamgriddb.Image{}
	for _, slot := range missing {
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			break
		}
		if err := o.fillSlot(ctx, req, gameID, slot, listings); err != nil {
			logger.Info("artwork slot skipped", logging.String("slot", slot.Name), logging.Error(err))
			continue
		}
		res.Downloaded++
	}
	logger.Info("artwork fetched",
		logging.Int("downloaded", res.Downloaded),
		logging.Int("existing", res.Existing),
		logging.Duration("elapsed", time.Since(start)),
	)
	return o.finish(req, &res)
}

// finish resolves the icon path; it runs under the identifier lock.
func (o *Orchestrator) finish(req Request, res *Result) Result {
	if icon := IconPath(req.GridDir, req.ID); fileutil.Exists(icon) {
		res.IconPath = icon
	}
	return *res
}

func (o *Orchestrator) fillSlot(ctx context.Context, req Request, gameID int64, slot Slot, listings map[steamgriddb.Kind][]steamgriddb.Image) error {
	images, ok := listings[slot.Kind]
	if !ok {
		var err error
		images, err = o.catalog.Images(ctx, slot.Kind, gameID)
		if err != nil {
			return err
		}
		listings[slot.Kind] = images
	}
	url, ok := slot.pick(images)
	if !ok {
		return fmt.Errorf("no %s available", slot.Name)
	}
	body, err := o.catalog.Download(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return fileutil.WriteStreamAtomic(slot.Path(req.GridDir, req.ID), body)
}

// logLookupFailure reports a failed game search. Every failure leaves the
// shortcut without new artwork; only the level and hint differ.
func (o *Orchestrator) logLookupFailure(logger *slog.Logger, err error) {
	impact := logging.String(logging.FieldImpact, "shortcut is added without new artwork")
	switch {
	case errors.Is(err, steamgriddb.ErrNoResults):
		logger.Info("no SteamGridDB match")
	case errors.Is(err, context.Canceled):
		logger.Debug("artwork lookup canceled")
	case errors.Is(err, services.ErrConfiguration):
		logging.WarnWithContext(logger, "SteamGridDB rejected the API key", "artwork_auth_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check steamgriddb.api_key or STEAMGRIDDB_API_KEY"),
			impact,
		)
	case services.Recoverable(err):
		logging.WarnWithContext(logger, "SteamGridDB unavailable", "artwork_search_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network connectivity and retry the sync later"),
			impact,
		)
	default:
		logging.WarnWithContext(logger, "SteamGridDB search failed", "artwork_search_failed",
			logging.Error(err),
			impact,
		)
	}
}

func (o *Orchestrator) lookup(ctx context.Context, name string) (int64, error) {
	if id, ok := o.games.Get(name); ok {
		if id == 0 {
			return 0, steamgriddb.ErrNoResults
		}
		return id, nil
	}
	game, err := o.catalog.SearchGame(ctx, name)
	if errors.Is(err, steamgriddb.ErrNoResults) {
		o.games.Add(name, 0)
		return 0, err
	}
	if err != nil {
		return 0, err
	}
	o.games.Add(name, game.ID)
	return game.ID, nil
}

func (o *Orchestrator) lockFor(id uint32) *sync.Mutex {
	o.mu.Lock()
	defer o.mu.Unlock()
	lock, ok := o.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		o.locks[id] = lock
	}
	return lock
}
