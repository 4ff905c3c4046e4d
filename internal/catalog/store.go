package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"promohub/pkg/models"
)

// Snapshot is one fully built catalog load: the active set plus everything
// derived from it in the same pass. It is immutable after construction, so
// readers can hold on to it without locking.
type Snapshot struct {
	LoadID      uuid.UUID
	LoadedAt    time.Time
	RawCount    int
	Active      []models.NormalizedPromotion
	Categories  []string
	PromoPrices map[int]decimal.Decimal
}

// BuildSnapshot runs the full load pipeline over the raw records:
// normalize, drop inactive entries, collect category options and the
// per-code minimum promo price map. The whole snapshot is derived before
// anything becomes visible, so no reader observes a partial state.
func BuildSnapshot(raw []models.RawPromotionRecord, now time.Time) *Snapshot {
	active := make([]models.NormalizedPromotion, 0, len(raw))
	for _, r := range raw {
		p := Normalize(r, now)
		if p.Active {
			active = append(active, p)
		}
	}

	return &Snapshot{
		LoadID:      uuid.New(),
		LoadedAt:    now,
		RawCount:    len(raw),
		Active:      active,
		Categories:  CategoryOptions(active),
		PromoPrices: BuildPromoPriceMap(raw),
	}
}

// Find returns the active promotion with the given code, if any.
func (s *Snapshot) Find(code int) (models.NormalizedPromotion, bool) {
	for _, p := range s.Active {
		if p.Code == code {
			return p, true
		}
	}
	return models.NormalizedPromotion{}, false
}

// Store holds the current snapshot. Replace swaps it atomically: a load
// fully completes before any reader can observe it.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Replace(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Current returns the latest snapshot. ok is false until the first
// successful load.
func (s *Store) Current() (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}
