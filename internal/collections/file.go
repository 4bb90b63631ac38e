package collections

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"emustation/internal/fileutil"
	"emustation/internal/logging"
	"emustation/internal/services"
)

// FileResult reports the outcome of AttachFile.
type FileResult struct {
	AttachResult
	// Skipped is true when the ledger was missing or unreadable and nothing
	// was written.
	Skipped bool
	Reason  string
}

// Load reads and parses the ledger at path. ok is false when the file does
// not exist.
func Load(path string) (ledger *Ledger, ok bool, err error) {
	data, ok, err := fileutil.ReadOptional(path)
	if err != nil || !ok {
		return nil, ok, err
	}
	ledger, err = Parse(data)
	if err != nil {
		return nil, true, err
	}
	return ledger, true, nil
}

// AttachFile applies Attach to the ledger at path and atomically writes the
// result back. A missing or unparseable ledger is logged and left alone;
// collection membership is best effort. Write failures are returned.
func AttachFile(path string, ids []uint32, name string, now time.Time, logger *slog.Logger) (FileResult, error) {
	logger = logging.NewComponentLogger(logger, "collections")

	ledger, ok, err := Load(path)
	switch {
	case err != nil && !ok:
		return FileResult{}, fmt.Errorf("read collection ledger: %w", err)
	case !ok:
		logger.Info("collection ledger not found; skipping collection",
			logging.String("path", path),
			logging.String("collection", name),
		)
		return FileResult{Skipped: true, Reason: "ledger not found"}, nil
	case err != nil:
		logging.WarnWithContext(logger, "collection ledger unreadable; leaving it untouched", "ledger_corrupt",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "start Steam once to let it rewrite the file, then sync again"),
			logging.String(logging.FieldImpact, "games were added but not grouped into a collection"),
		)
		return FileResult{Skipped: true, Reason: "ledger unreadable"}, nil
	}

	res, err := ledger.Attach(ids, name, now)
	if errors.Is(err, services.ErrFormat) {
		logging.WarnWithContext(logger, "collection entry unreadable; leaving the ledger untouched", "collection_corrupt",
			logging.String("path", path),
			logging.String("collection", name),
			logging.Error(err),
			logging.String(logging.FieldImpact, "games were added but not grouped into a collection"),
		)
		return FileResult{Skipped: true, Reason: "collection unreadable"}, nil
	}
	if err != nil {
		return FileResult{}, err
	}
	data, err := ledger.Bytes()
	if err != nil {
		return FileResult{}, err
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return FileResult{}, fmt.Errorf("write collection ledger: %w", err)
	}
	if !res.Changed {
		logger.Info("collection already up to date",
			logging.String("collection", name),
			logging.Int("members", res.Total),
		)
		return FileResult{AttachResult: res}, nil
	}
	logger.Info("collection updated",
		logging.String("collection", name),
		logging.String("key", res.Key),
		logging.Bool("created", res.Created),
		logging.Int("new_members", res.NewMembers),
		logging.Int("members", res.Total),
		logging.String("version", res.Version),
	)
	return FileResult{AttachResult: res}, nil
}
