package catalog

import (
	"context"
	"sort"

	"prospekt-backend/internal/models"
)

type ComparisonResult struct {
	SearchTerm string         `json:"search_term"`
	Results    []models.Offer `json:"results"`
	Cheapest   *models.Offer  `json:"cheapest"`
}

// Comparer answers "who sells this cheapest" across all supermarkets.
type Comparer struct {
	catalog Catalog
}

func NewComparer(c Catalog) *Comparer {
	return &Comparer{catalog: c}
}

// Compare keeps each supermarket's cheapest matching offer (first one wins a
// per-supermarket price tie) and sorts the survivors ascending by price.
func (c *Comparer) Compare(ctx context.Context, searchTerm string) (*ComparisonResult, error) {
	offers, err := c.catalog.FindOffers(ctx, searchTerm)
	if err != nil {
		return nil, err
	}

	cheapestPer := make(map[string]models.Offer)
	var order []string
	for _, o := range offers {
		existing, ok := cheapestPer[o.SupermarketName]
		if !ok {
			cheapestPer[o.SupermarketName] = o
			order = append(order, o.SupermarketName)
			continue
		}
		if o.Price < existing.Price {
			cheapestPer[o.SupermarketName] = o
		}
	}

	results := make([]models.Offer, 0, len(order))
	for _, name := range order {
		results = append(results, cheapestPer[name])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Price < results[j].Price
	})

	res := &ComparisonResult{SearchTerm: searchTerm, Results: results}
	if len(results) > 0 {
		res.Cheapest = &results[0]
	}
	return res, nil
}
