package catalog

import (
	"context"
	"strings"
	"testing"

	"prospekt-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog implements Catalog in memory with the same contract as the gorm
// store: case-insensitive substring match, capped at 100, arrival order
// preserved.
type fakeCatalog struct {
	offers []models.Offer
}

func (f *fakeCatalog) FindOffers(_ context.Context, productName string) ([]models.Offer, error) {
	needle := strings.ToLower(productName)
	matches := []models.Offer{}
	for _, o := range f.offers {
		if strings.Contains(strings.ToLower(o.Name), needle) {
			matches = append(matches, o)
		}
	}
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return matches, nil
}

func offer(name, supermarket string, price float64) models.Offer {
	return models.Offer{
		ID:              name + "-" + supermarket,
		Name:            name,
		OriginalName:    name,
		Price:           price,
		SupermarketID:   "id-" + supermarket,
		SupermarketName: supermarket,
	}
}

func TestSelectBestEmpty(t *testing.T) {
	_, err := SelectBest(nil)
	assert.ErrorIs(t, err, ErrNoOffers)
}

func TestSelectBestMinimum(t *testing.T) {
	best, err := SelectBest([]models.Offer{
		offer("Butter", "REWE", 2.49),
		offer("Butter", "Lidl", 1.99),
		offer("Butter", "Edeka", 2.29),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lidl", best.SupermarketName)
	assert.Equal(t, 1.99, best.Price)
}

func TestSelectBestTieKeepsArrivalOrder(t *testing.T) {
	best, err := SelectBest([]models.Offer{
		offer("Milch", "A", 1.00),
		offer("Milch", "B", 1.00),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", best.SupermarketName)
}

func TestSnapshotBestPrice(t *testing.T) {
	cat := &fakeCatalog{offers: []models.Offer{
		offer("Butter", "REWE", 2.49),
		offer("Butter", "Lidl", 1.99),
	}}

	price, supermarket, err := SnapshotBestPrice(context.Background(), cat, "butter")
	require.NoError(t, err)
	require.NotNil(t, price)
	require.NotNil(t, supermarket)
	assert.Equal(t, 1.99, *price)
	assert.Equal(t, "Lidl", *supermarket)
}

func TestSnapshotBestPriceNoMatch(t *testing.T) {
	cat := &fakeCatalog{}

	price, supermarket, err := SnapshotBestPrice(context.Background(), cat, "Trüffel")
	require.NoError(t, err)
	assert.Nil(t, price)
	assert.Nil(t, supermarket)
}
