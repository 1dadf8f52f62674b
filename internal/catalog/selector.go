package catalog

import (
	"context"
	"errors"

	"prospekt-backend/internal/models"
)

// ErrNoOffers is returned when a selection runs over an empty offer set.
// Callers map it to an "unavailable" outcome, they never propagate it.
var ErrNoOffers = errors.New("no offers to select from")

// SelectBest returns the offer with the minimum price. When several offers
// share the minimum, the first one in arrival order wins.
func SelectBest(offers []models.Offer) (models.Offer, error) {
	if len(offers) == 0 {
		return models.Offer{}, ErrNoOffers
	}
	best := offers[0]
	for _, o := range offers[1:] {
		if o.Price < best.Price {
			best = o
		}
	}
	return best, nil
}

// SnapshotBestPrice looks up the cheapest current offer for a product name at
// insert time. The returned price and supermarket are cached onto the new list
// item and are NOT refreshed when the catalog changes; only Optimizer computes
// live prices. Both pointers are nil when nothing matches.
func SnapshotBestPrice(ctx context.Context, c Catalog, productName string) (*float64, *string, error) {
	offers, err := c.FindOffers(ctx, productName)
	if err != nil {
		return nil, nil, err
	}
	best, err := SelectBest(offers)
	if err != nil {
		return nil, nil, nil
	}
	return &best.Price, &best.SupermarketName, nil
}
