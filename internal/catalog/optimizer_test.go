package catalog

import (
	"context"
	"testing"

	"prospekt-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listWith(items ...models.ShoppingListItem) models.ShoppingList {
	return models.ShoppingList{ID: "list-1", Name: "Wocheneinkauf", Items: items}
}

func item(name string, qty int) models.ShoppingListItem {
	return models.ShoppingListItem{ProductName: name, Quantity: qty}
}

func TestOptimizeEmptyList(t *testing.T) {
	opt := NewOptimizer(&fakeCatalog{})

	res, err := opt.Optimize(context.Background(), listWith())
	require.NoError(t, err)
	assert.Empty(t, res.SupermarketGroups)
	assert.Equal(t, 0.0, res.TotalCost)
	assert.Equal(t, 0.0, res.PotentialSavings)
	assert.Equal(t, 0, res.SupermarketCount)
}

func TestOptimizeButterScenario(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "A", 2.49),
		offer("Butter", "B", 1.99),
	}}
	opt := NewOptimizer(cat)

	res, err := opt.Optimize(context.Background(), listWith(
		item("Butter", 2),
		item("UnknownThing", 1),
	))
	require.NoError(t, err)

	require.Len(t, res.SupermarketGroups, 2)
	assert.Equal(t, "B", res.SupermarketGroups[0].SupermarketName)
	assert.InDelta(t, 3.98, res.SupermarketGroups[0].Total, 1e-9)
	assert.Equal(t, UnavailableSeller, res.SupermarketGroups[1].SupermarketName)
	assert.Nil(t, res.SupermarketGroups[1].SupermarketID)
	require.Len(t, res.SupermarketGroups[1].Items, 1)
	assert.Nil(t, res.SupermarketGroups[1].Items[0].Price)
	assert.Nil(t, res.SupermarketGroups[1].Items[0].TotalPrice)

	assert.InDelta(t, 3.98, res.TotalCost, 1e-9)
	assert.InDelta(t, 1.00, res.PotentialSavings, 1e-9)
	assert.Equal(t, 1, res.SupermarketCount)
}

func TestOptimizeEveryItemInExactlyOneBasket(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "A", 2.49),
		offer("Butter", "B", 1.99),
		offer("Milch", "A", 1.09),
		offer("Milch", "C", 1.19),
		offer("Brot", "C", 1.89),
	}}
	opt := NewOptimizer(cat)

	list := listWith(
		item("Butter", 1),
		item("Milch", 2),
		item("Brot", 1),
		item("Kaviar", 1),
	)
	res, err := opt.Optimize(context.Background(), list)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, g := range res.SupermarketGroups {
		for _, it := range g.Items {
			seen[it.ProductName]++
		}
	}
	for _, it := range list.Items {
		assert.Equal(t, 1, seen[it.ProductName], "item %s", it.ProductName)
	}
}

func TestOptimizeTotalCostMatchesBasketSum(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "A", 2.49),
		offer("Butter", "B", 1.99),
		offer("Milch", "A", 1.09),
		offer("Brot", "C", 1.89),
	}}
	opt := NewOptimizer(cat)

	res, err := opt.Optimize(context.Background(), listWith(
		item("Butter", 3),
		item("Milch", 1),
		item("Brot", 2),
		item("Nix", 1),
	))
	require.NoError(t, err)

	var sum float64
	for _, g := range res.SupermarketGroups {
		if g.SupermarketName == UnavailableSeller {
			assert.Equal(t, 0.0, g.Total)
			continue
		}
		sum += g.Total
	}
	assert.InDelta(t, round2(sum), res.TotalCost, 1e-9)
}

func TestOptimizeBasketsSortedByTotalDescending(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Steak", "A", 9.99),
		offer("Kaugummi", "B", 0.59),
		offer("Brot", "C", 1.89),
	}}
	opt := NewOptimizer(cat)

	res, err := opt.Optimize(context.Background(), listWith(
		item("Kaugummi", 1),
		item("Steak", 1),
		item("Brot", 1),
		item("Fehlt", 1),
	))
	require.NoError(t, err)

	require.Len(t, res.SupermarketGroups, 4)
	for i := 0; i < 2; i++ {
		assert.GreaterOrEqual(t, res.SupermarketGroups[i].Total, res.SupermarketGroups[i+1].Total)
	}
	assert.Equal(t, UnavailableSeller, res.SupermarketGroups[3].SupermarketName)
	assert.Equal(t, 3, res.SupermarketCount)
}

func TestOptimizeSavingsNeverNegative(t *testing.T) {
	// single offer per item makes best == worst, savings clamp at zero
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "A", 2.49),
	}}
	opt := NewOptimizer(cat)

	res, err := opt.Optimize(context.Background(), listWith(item("Butter", 4)))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.PotentialSavings)
}

func TestOptimizeIdempotent(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "A", 2.49),
		offer("Butter", "B", 1.99),
		offer("Milch", "A", 1.09),
	}}
	opt := NewOptimizer(cat)
	list := listWith(item("Butter", 2), item("Milch", 1), item("Fehlt", 1))

	first, err := opt.Optimize(context.Background(), list)
	require.NoError(t, err)
	second, err := opt.Optimize(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptimizeQuantityFloorsAtOne(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{offer("Butter", "A", 2.00)}}
	opt := NewOptimizer(cat)

	res, err := opt.Optimize(context.Background(), listWith(item("Butter", 0)))
	require.NoError(t, err)
	assert.InDelta(t, 2.00, res.TotalCost, 1e-9)
}
