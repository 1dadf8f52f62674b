package catalog

import (
	"context"
	"fmt"

	"prospekt-backend/internal/models"

	"gorm.io/gorm"
)

// maxResults caps a single lookup; callers tolerate truncation silently.
const maxResults = 100

// Catalog resolves a free-text product name to the matching offers across all
// supermarkets. Matching is case-insensitive substring containment, nothing
// fuzzier. An empty result is not an error.
type Catalog interface {
	FindOffers(ctx context.Context, productName string) ([]models.Offer, error)
}

// GormCatalog is the MySQL-backed catalog.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// FindOffers returns offers in a deterministic arrival order (extraction time,
// then id) so that best-price tie-breaks are reproducible across runs.
func (c *GormCatalog) FindOffers(ctx context.Context, productName string) ([]models.Offer, error) {
	var offers []models.Offer
	err := c.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+productName+"%").
		Order("extracted_at ASC, id ASC").
		Limit(maxResults).
		Find(&offers).Error
	if err != nil {
		return nil, fmt.Errorf("find offers for %q: %w", productName, err)
	}
	return offers, nil
}
