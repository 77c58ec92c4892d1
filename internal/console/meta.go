package console

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/perttu/commission-console/internal/api"
	"github.com/perttu/commission-console/internal/pricing"
)

// metaConcurrency caps simultaneous in-flight requests when batch-fetching
// per-manufacturer metadata. No ordering guarantee on completion.
const metaConcurrency = 6

// ManufacturerMeta is the metadata collected for one manufacturer in a
// batch fetch. Err records a per-item failure; it never fails the batch.
type ManufacturerMeta struct {
	Manufacturer  api.Manufacturer
	CategoryCount int
	TierSystem    *pricing.TierSystem
	Err           error
}

// FetchManufacturerMeta collects category counts and tier configuration for
// a list of manufacturers with a bounded worker pool. Results are returned
// in input order.
func FetchManufacturerMeta(ctx context.Context, backend Backend, manufacturers []api.Manufacturer) []ManufacturerMeta {
	metas := make([]ManufacturerMeta, len(manufacturers))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(metaConcurrency)

	for i := range manufacturers {
		i := i
		g.Go(func() error {
			m := manufacturers[i]
			meta := ManufacturerMeta{Manufacturer: m}

			categories, err := backend.ListCategories(ctx, m.ID)
			if err != nil {
				log.Warn().Err(err).Str("manufacturerId", m.ID).Msg("failed to fetch categories for meta")
				meta.Err = err
				metas[i] = meta
				return nil
			}
			meta.CategoryCount = len(categories)

			sys, err := backend.GetCommissionSystem(ctx, m.ID)
			if err != nil {
				log.Warn().Err(err).Str("manufacturerId", m.ID).Msg("failed to fetch tier system for meta")
				meta.Err = err
				metas[i] = meta
				return nil
			}
			meta.TierSystem = sys

			metas[i] = meta
			return nil
		})
	}

	// Workers never return errors; Wait only orders completion.
	_ = g.Wait()

	return metas
}
