package catalog

import (
	"context"
	"testing"

	"prospekt-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareAscendingByPrice(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "REWE", 2.49),
		offer("Butter", "Lidl", 1.99),
		offer("Butter", "Edeka", 2.29),
	}}

	res, err := NewComparer(cat).Compare(context.Background(), "butter")
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, "Lidl", res.Results[0].SupermarketName)
	assert.Equal(t, "Edeka", res.Results[1].SupermarketName)
	assert.Equal(t, "REWE", res.Results[2].SupermarketName)
	require.NotNil(t, res.Cheapest)
	assert.Equal(t, 1.99, res.Cheapest.Price)
}

func TestCompareDedupsPerSupermarket(t *testing.T) {
	// same supermarket lists two matching offers, only the cheaper survives
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Bio Butter", "REWE", 2.99),
		offer("Butter 250g", "REWE", 2.19),
		offer("Butter", "Lidl", 2.49),
	}}

	res, err := NewComparer(cat).Compare(context.Background(), "butter")
	require.NoError(t, err)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "REWE", res.Results[0].SupermarketName)
	assert.Equal(t, 2.19, res.Results[0].Price)
}

func TestComparePerSupermarketTieKeepsFirst(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter 250g", "REWE", 2.19),
		offer("Bio Butter", "REWE", 2.19),
	}}

	res, err := NewComparer(cat).Compare(context.Background(), "butter")
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Butter 250g", res.Results[0].Name)
}

func TestCompareNoMatch(t *testing.T) {
	res, err := NewComparer(&fakeCatalog{}).Compare(context.Background(), "Trüffel")
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.Nil(t, res.Cheapest)
	assert.Equal(t, "Trüffel", res.SearchTerm)
}
