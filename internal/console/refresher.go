package console

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/perttu/commission-console/internal/storage"
)

const (
	// RefreshInterval is the time between metadata refresh cycles.
	RefreshInterval = 15 * time.Minute
)

// Refresher keeps manufacturer list-view metadata warm in the preferences
// store so list screens render counts without a fetch per row.
type Refresher struct {
	store   storage.PrefsStore
	backend Backend
	cache   *TierCache
}

// NewRefresher creates a metadata refresher.
func NewRefresher(store storage.PrefsStore, backend Backend, cache *TierCache) *Refresher {
	return &Refresher{
		store:   store,
		backend: backend,
		cache:   cache,
	}
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	log.Info().Dur("interval", RefreshInterval).Msg("starting metadata refresher")

	r.refresh(ctx)

	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("metadata refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh executes one refresh cycle over all visible manufacturers.
func (r *Refresher) refresh(ctx context.Context) {
	log.Debug().Msg("starting refresh cycle")

	manufacturers, err := r.backend.ListManufacturers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list manufacturers")
		return
	}

	hidden, err := r.store.HiddenManufacturers()
	if err != nil {
		log.Error().Err(err).Msg("failed to load visibility prefs")
		return
	}

	visible := manufacturers[:0]
	for _, m := range manufacturers {
		if !hidden[m.ID] {
			visible = append(visible, m)
		}
	}

	if len(visible) == 0 {
		log.Debug().Msg("no visible manufacturers to refresh")
		return
	}

	metas := FetchManufacturerMeta(ctx, r.backend, visible)

	refreshed := 0
	for _, meta := range metas {
		if meta.Err != nil {
			continue
		}
		if err := r.store.SetManufacturerMeta(meta.Manufacturer.ID, meta.CategoryCount); err != nil {
			log.Error().Err(err).Str("manufacturerId", meta.Manufacturer.ID).Msg("failed to save manufacturer meta")
			continue
		}
		if r.cache != nil && meta.TierSystem != nil {
			r.cache.Set(meta.Manufacturer.ID, meta.TierSystem)
		}
		refreshed++
	}

	log.Debug().Int("manufacturers", len(visible)).Int("refreshed", refreshed).Msg("refresh cycle complete")
}
