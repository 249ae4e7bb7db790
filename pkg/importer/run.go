package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/yomikata/pkg/termdb"
)

// ErrNoSource is returned when neither the caller nor import_sources names
// a source for an adapter.
var ErrNoSource = errors.New("no source configured")

// Run imports one adapter into store. An empty source falls back to the URL
// stored in sources, then to the adapter default. The outcome is recorded
// in sources when it is not nil.
func Run(ctx context.Context, a Adapter, source string, sources *SourceDB, store *termdb.Store, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if source == "" && sources != nil {
		url, err := sources.GetURL(a.ID())
		if err != nil && !errors.Is(err, ErrUnknownSource) {
			return Report{}, err
		}
		source = url
	}
	if source == "" {
		source = a.DefaultURL()
	}
	if source == "" {
		return Report{}, fmt.Errorf("%s: %w", a.ID(), ErrNoSource)
	}

	start := time.Now()
	logger.Info("import started", "adapter", a.ID(), "source", source)
	rep, err := a.Import(ctx, source, store)
	if err != nil {
		return Report{}, fmt.Errorf("import %s: %w", a.ID(), err)
	}
	logger.Info("import finished", "adapter", a.ID(), "dictionary", rep.Dictionary,
		"terms", rep.Terms, "elapsed", time.Since(start).Round(time.Millisecond))

	if sources != nil {
		if err := sources.RecordImport(a.ID(), rep); err != nil && !errors.Is(err, ErrUnknownSource) {
			logger.Warn("record import", "adapter", a.ID(), "error", err)
		}
	}
	return rep, nil
}
