package prospekt

import (
	"testing"

	"prospekt-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Supermarket{}, &models.Offer{}))
	return db
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.99, round2(1.994))
	assert.Equal(t, 2.34, round2(2.337))
	assert.Equal(t, 3.0, round2(3.0))
	assert.Equal(t, 0.0, round2(0.004))
}

func TestSeedOffersReplacesPreviousScan(t *testing.T) {
	db := newTestDB(t)
	sm := models.Supermarket{ID: "sm-1", Name: "REWE", IsActive: true}
	require.NoError(t, db.Create(&sm).Error)

	require.NoError(t, seedOffers(db, sm))

	var offers []models.Offer
	require.NoError(t, db.Find(&offers).Error)
	wantTotal := len(thisWeekSamples) + len(nextWeekSamples)
	require.Len(t, offers, wantTotal)

	firstIDs := make(map[string]bool, len(offers))
	nextWeekCount := 0
	for _, o := range offers {
		firstIDs[o.ID] = true
		assert.Greater(t, o.Price, 0.0)
		assert.Equal(t, sm.ID, o.SupermarketID)
		require.NotNil(t, o.WeekLabel)
		if *o.WeekLabel == "Nächste Woche" {
			nextWeekCount++
		}
	}
	assert.Equal(t, len(nextWeekSamples), nextWeekCount)

	// a second scan must replace, not accumulate
	require.NoError(t, seedOffers(db, sm))
	offers = nil
	require.NoError(t, db.Find(&offers).Error)
	require.Len(t, offers, wantTotal)
	for _, o := range offers {
		assert.False(t, firstIDs[o.ID])
	}
}
