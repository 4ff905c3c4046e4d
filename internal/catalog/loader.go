package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"promohub/pkg/models"
)

// Fetcher supplies the raw promotion list. Implemented by the sources in
// internal/source; tests plug in fakes.
type Fetcher interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.RawPromotionRecord, error)
}

// ErrStaleLoad is returned when a newer load started while this one was
// still in flight. The stale result is discarded entirely, never merged.
var ErrStaleLoad = errors.New("catalog: stale load discarded")

// Loader fetches the raw catalog and replaces the store snapshot. A
// generation counter guards overlapping loads: the last *started* load
// wins, not the last one to finish.
type Loader struct {
	source Fetcher
	store  *Store
	gen    atomic.Uint64

	// installMu serializes the check-and-replace step so a stale load can
	// never install its snapshot after a newer one already has.
	installMu sync.Mutex
}

func NewLoader(source Fetcher, store *Store) *Loader {
	return &Loader{source: source, store: store}
}

// Load runs one full catalog load to completion. Errors from the source
// are wrapped and surfaced to the caller; the previous snapshot stays
// untouched on failure.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	gen := l.gen.Add(1)

	log.Printf("[catalog] loading from %s (gen %d)", l.source.Name(), gen)
	raw, err := l.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	l.installMu.Lock()
	defer l.installMu.Unlock()

	if l.gen.Load() != gen {
		log.Printf("[catalog] discarding stale load (gen %d)", gen)
		return nil, ErrStaleLoad
	}

	snap := BuildSnapshot(raw, time.Now())
	l.store.Replace(snap)

	log.Printf("[catalog] loaded %d records, %d active, %d categories",
		snap.RawCount, len(snap.Active), len(snap.Categories))
	return snap, nil
}
