package models

import (
	"time"
)

// Supermarket is one of the German chains whose prospekts we track
type Supermarket struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null"`
	LogoURL     *string   `json:"logo_url"`
	WebsiteURL  string    `json:"website_url"`
	ProspektURL string    `json:"prospekt_url"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
}

// Offer is a single priced product listing extracted from a prospekt.
// Offers are immutable snapshots; a supermarket's offers are fully replaced
// (delete-then-insert) on each scan.
type Offer struct {
	ID              string     `json:"id" gorm:"primaryKey;size:36"`
	Name            string     `json:"name" gorm:"index;not null"`
	OriginalName    string     `json:"original_name"`
	Price           float64    `json:"price" gorm:"not null"`
	OriginalPrice   *float64   `json:"original_price"`
	Unit            *string    `json:"unit"`
	PricePerUnit    *string    `json:"price_per_unit"`
	Category        string     `json:"category" gorm:"index"`
	SupermarketID   string     `json:"supermarket_id" gorm:"index;size:36;not null"`
	SupermarketName string     `json:"supermarket_name"`
	SupermarketLogo *string    `json:"supermarket_logo"`
	ProspektURL     *string    `json:"prospekt_url"`
	ValidFrom       *time.Time `json:"valid_from" gorm:"index"`
	ValidUntil      *time.Time `json:"valid_until" gorm:"index"`
	WeekLabel       *string    `json:"week_label"` // "Diese Woche" or "Nächste Woche"
	ExtractedAt     time.Time  `json:"extracted_at"`
}

// ShoppingList groups items a user wants to buy
type ShoppingList struct {
	ID        string             `json:"id" gorm:"primaryKey;size:36"`
	Name      string             `json:"name" gorm:"not null"`
	Items     []ShoppingListItem `json:"items" gorm:"foreignKey:ListID"`
	PLZ       *string            `json:"plz"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ShoppingListItem is one entry of a shopping list. Items carry their own id
// so removals don't shift how the remaining items are addressed; Position only
// orders the list. BestPrice/BestSupermarket are the snapshot taken when the
// item was added, not a live price.
type ShoppingListItem struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	ListID          string    `json:"list_id" gorm:"index;size:36;not null"`
	ProductName     string    `json:"product_name" gorm:"not null"`
	Quantity        int       `json:"quantity" gorm:"default:1"`
	Checked         bool      `json:"checked" gorm:"default:false"`
	BestPrice       *float64  `json:"best_price"`
	BestSupermarket *string   `json:"best_supermarket"`
	Position        int       `json:"position" gorm:"index"`
	CreatedAt       time.Time `json:"created_at"`
}

// PriceAlert fires when a product drops below the target price
type PriceAlert struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	ProductName    string    `json:"product_name" gorm:"not null"`
	TargetPrice    float64   `json:"target_price"`
	CurrentPrice   *float64  `json:"current_price"`
	SupermarketIDs []string  `json:"supermarket_ids" gorm:"serializer:json"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	Triggered      bool      `json:"triggered" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserSettings holds the single user profile (selected markets, postal code)
type UserSettings struct {
	ID                   string    `json:"id" gorm:"primaryKey;size:36"`
	SelectedSupermarkets []string  `json:"selected_supermarkets" gorm:"serializer:json"`
	PLZ                  *string   `json:"plz"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
