package catalog

import (
	"context"
	"math"
	"sort"

	"prospekt-backend/internal/models"
)

// UnavailableSeller names the synthetic basket for items with zero catalog
// matches. It never contributes to the total cost.
const UnavailableSeller = "Nicht gefunden"

type BasketItem struct {
	ProductName   string   `json:"product_name"`
	Quantity      int      `json:"quantity"`
	Price         *float64 `json:"price"`
	TotalPrice    *float64 `json:"total_price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
}

// Basket is the subset of a shopping list assigned to one supermarket.
type Basket struct {
	SupermarketID   *string      `json:"supermarket_id"`
	SupermarketName string       `json:"supermarket_name"`
	Items           []BasketItem `json:"items"`
	Total           float64      `json:"total"`
}

type OptimizationResult struct {
	ListID            string   `json:"list_id"`
	ListName          string   `json:"list_name"`
	SupermarketGroups []Basket `json:"supermarket_groups"`
	TotalCost         float64  `json:"total_cost"`
	PotentialSavings  float64  `json:"potential_savings"`
	SupermarketCount  int      `json:"supermarket_count"`
}

// Optimizer assigns every list item to the supermarket selling it cheapest and
// groups the list into per-supermarket baskets. It holds no state between
// calls and never writes anything; the result is a pure function of the list
// and the catalog at call time.
type Optimizer struct {
	catalog Catalog
}

func NewOptimizer(c Catalog) *Optimizer {
	return &Optimizer{catalog: c}
}

func (o *Optimizer) Optimize(ctx context.Context, list models.ShoppingList) (*OptimizationResult, error) {
	baskets := make(map[string]*Basket)
	var order []string // basket creation order, keeps equal totals stable

	var worstTotal float64

	for _, item := range list.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}

		offers, err := o.catalog.FindOffers(ctx, item.ProductName)
		if err != nil {
			return nil, err
		}

		best, err := SelectBest(offers)
		if err != nil {
			// no match: the item goes into the synthetic basket
			b, ok := baskets[UnavailableSeller]
			if !ok {
				b = &Basket{SupermarketID: nil, SupermarketName: UnavailableSeller, Items: []BasketItem{}}
				baskets[UnavailableSeller] = b
				order = append(order, UnavailableSeller)
			}
			b.Items = append(b.Items, BasketItem{
				ProductName: item.ProductName,
				Quantity:    qty,
				Price:       nil,
				TotalPrice:  nil,
			})
			continue
		}

		lineTotal := best.Price * float64(qty)
		b, ok := baskets[best.SupermarketName]
		if !ok {
			smID := best.SupermarketID
			b = &Basket{SupermarketID: &smID, SupermarketName: best.SupermarketName, Items: []BasketItem{}}
			baskets[best.SupermarketName] = b
			order = append(order, best.SupermarketName)
		}
		price := best.Price
		total := lineTotal
		b.Items = append(b.Items, BasketItem{
			ProductName:   item.ProductName,
			Quantity:      qty,
			Price:         &price,
			TotalPrice:    &total,
			OriginalPrice: best.OriginalPrice,
		})
		b.Total += lineTotal

		worst := best.Price
		for _, of := range offers {
			if of.Price > worst {
				worst = of.Price
			}
		}
		worstTotal += worst * float64(qty)
	}

	groups := make([]Basket, 0, len(baskets))
	var totalCost float64
	for _, name := range order {
		if name == UnavailableSeller {
			continue
		}
		groups = append(groups, *baskets[name])
		totalCost += baskets[name].Total
	}
	// supermarkets requiring the larger spend come first
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})
	sellerCount := len(groups)
	if b, ok := baskets[UnavailableSeller]; ok {
		groups = append(groups, *b)
	}

	savings := worstTotal - totalCost
	if savings < 0 {
		savings = 0
	}

	return &OptimizationResult{
		ListID:            list.ID,
		ListName:          list.Name,
		SupermarketGroups: groups,
		TotalCost:         round2(totalCost),
		PotentialSavings:  round2(savings),
		SupermarketCount:  sellerCount,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
