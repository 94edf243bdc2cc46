package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/where2buy/backend/internal/domain"
	"github.com/where2buy/backend/internal/infrastructure/places"
)

// Fixed search phrases for categories where the item name makes a poor places query
const (
	groceryStoreQuery  = "grocery store super market"
	pharmacyStoreQuery = "pharmacy medical store"
)

// OfflineResolverConfig holds configuration for the offline resolver
type OfflineResolverConfig struct {
	RadiusMeters int
	MaxResults   int
}

// OfflineResolver finds physical stores near the caller for an item
type OfflineResolver struct {
	client       domain.PlacesClient
	radiusMeters int
	maxResults   int
}

// NewOfflineResolver creates a new offline resolver with dependencies
func NewOfflineResolver(client domain.PlacesClient, config OfflineResolverConfig) *OfflineResolver {
	radius := config.RadiusMeters
	if radius <= 0 {
		radius = 5000
	}
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}

	return &OfflineResolver{
		client:       client,
		radiusMeters: radius,
		maxResults:   maxResults,
	}
}

// Resolve looks up nearby stores for one item. It never fails the caller:
// any problem yields empty Shops with Err set.
func (r *OfflineResolver) Resolve(ctx context.Context, item domain.ExtractedItem, location domain.Location) domain.OfflineResolution {
	query := placesQuery(item)

	resp, err := r.client.TextSearch(ctx, query, location, r.radiusMeters)
	if err != nil {
		slog.WarnContext(ctx, "[PLACES] lookup failed",
			"item", item.Query,
			"query", query,
			"error", err)
		return domain.OfflineResolution{
			Shops: []domain.OfflineShop{},
			Err:   fmt.Errorf("%w: %v", domain.ErrOfflineResolution, err),
		}
	}

	if resp.Status == domain.PlacesStatusZeroResults {
		slog.DebugContext(ctx, "[PLACES] no nearby shops",
			"item", item.Query,
			"query", query)
		return domain.OfflineResolution{
			Shops: []domain.OfflineShop{},
			Err:   fmt.Errorf("%w: status %s", domain.ErrOfflineResolution, resp.Status),
		}
	}

	if resp.Status != domain.PlacesStatusOK {
		slog.WarnContext(ctx, "[PLACES] non-OK status",
			"item", item.Query,
			"query", query,
			"status", resp.Status,
			"error_message", resp.ErrorMessage)
		return domain.OfflineResolution{
			Shops: []domain.OfflineShop{},
			Err:   fmt.Errorf("%w: status %s", domain.ErrOfflineResolution, resp.Status),
		}
	}

	return domain.OfflineResolution{
		Shops: places.MapToOfflineShops(resp.Results, r.maxResults),
	}
}

// placesQuery picks the search phrase for an item.
// Grocery and pharmacy items search for the store type instead of the product.
func placesQuery(item domain.ExtractedItem) string {
	switch item.Category {
	case domain.CategoryGrocery:
		return groceryStoreQuery
	case domain.CategoryPharmacy:
		return pharmacyStoreQuery
	default:
		return item.Query + " store"
	}
}
