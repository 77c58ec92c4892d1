// Package console orchestrates the data loading behind the admin views:
// concurrent per-view fetches, bounded batch metadata fetching across
// manufacturers, and tier-config caching.
package console

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/perttu/commission-console/internal/api"
	"github.com/perttu/commission-console/internal/pricing"
	"github.com/perttu/commission-console/internal/scope"
)

// Backend is the subset of the API client the console needs. api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	ListManufacturers(ctx context.Context) ([]api.Manufacturer, error)
	GetManufacturer(ctx context.Context, id string) (api.Manufacturer, error)
	ListCategories(ctx context.Context, manufacturerID string) ([]scope.Category, error)
	ListProducts(ctx context.Context, manufacturerID string) ([]scope.Product, error)
	ListAuthorizations(ctx context.Context, manufacturerID string) ([]scope.Grant, error)
	GetCommissionSystem(ctx context.Context, manufacturerID string) (*pricing.TierSystem, error)
	GetEffectiveTier(ctx context.Context) (*pricing.Assignment, error)
	GetProfitSettings(ctx context.Context, manufacturerID string) (*pricing.ProfitSettings, error)
}

// AuthorizationView is everything the authorization screen needs for one
// manufacturer. TierSystem, Assignment and ProfitSettings may be nil when
// their fetch failed; pricing falls back to defaults.
type AuthorizationView struct {
	Manufacturer   api.Manufacturer
	Categories     []scope.Category
	Tree           *scope.Tree
	Products       []scope.Product
	Grants         []scope.Grant
	TierSystem     *pricing.TierSystem
	Assignment     *pricing.Assignment
	ProfitSettings *pricing.ProfitSettings
}

// LoadAuthorizationView fetches all data for a manufacturer's authorization
// view concurrently. Manufacturer, categories, products and grants are
// critical: any failure fails the load. The tier system, the user's tier
// assignment and profit settings are not: their errors are logged and
// substituted with nil.
func LoadAuthorizationView(ctx context.Context, backend Backend, manufacturerID string) (*AuthorizationView, error) {
	view := &AuthorizationView{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m, err := backend.GetManufacturer(ctx, manufacturerID)
		if err != nil {
			return err
		}
		view.Manufacturer = m
		return nil
	})
	g.Go(func() error {
		categories, err := backend.ListCategories(ctx, manufacturerID)
		if err != nil {
			return err
		}
		view.Categories = categories
		return nil
	})
	g.Go(func() error {
		products, err := backend.ListProducts(ctx, manufacturerID)
		if err != nil {
			return err
		}
		view.Products = products
		return nil
	})
	g.Go(func() error {
		grants, err := backend.ListAuthorizations(ctx, manufacturerID)
		if err != nil {
			return err
		}
		view.Grants = grants
		return nil
	})

	// Non-critical fetches degrade to nil.
	g.Go(func() error {
		sys, err := backend.GetCommissionSystem(ctx, manufacturerID)
		if err != nil {
			log.Warn().Err(err).Str("manufacturerId", manufacturerID).Msg("failed to fetch tier system, using defaults")
			return nil
		}
		view.TierSystem = sys
		return nil
	})
	g.Go(func() error {
		asg, err := backend.GetEffectiveTier(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to fetch tier assignment, using defaults")
			return nil
		}
		view.Assignment = asg
		return nil
	})
	g.Go(func() error {
		settings, err := backend.GetProfitSettings(ctx, manufacturerID)
		if err != nil {
			log.Warn().Err(err).Str("manufacturerId", manufacturerID).Msg("failed to fetch profit settings, no floor applied")
			return nil
		}
		view.ProfitSettings = settings
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.Tree = scope.BuildTree(view.Categories)
	return view, nil
}

// Quote computes display pricing for a product using the view's effective
// tier rule and profit floor.
func (v *AuthorizationView) Quote(product scope.Product) pricing.Quote {
	rule := pricing.EffectiveRule(v.TierSystem, v.Assignment)
	return pricing.QuoteSku(product.BasePrice, rule, v.ProfitSettings)
}

// QuoteSku computes display pricing for an individual SKU of a product.
func (v *AuthorizationView) QuoteSku(sku scope.Sku) pricing.Quote {
	rule := pricing.EffectiveRule(v.TierSystem, v.Assignment)
	return pricing.QuoteSku(sku.Price, rule, v.ProfitSettings)
}

// IsProductAuthorized reports whether an existing grant already covers the
// product.
func (v *AuthorizationView) IsProductAuthorized(product scope.Product) bool {
	return scope.IsProductAuthorized(product, v.Grants)
}
