package prospekt

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"prospekt-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sampleProduct struct {
	Name      string
	Category  string
	BasePrice float64
}

var thisWeekSamples = []sampleProduct{
	{"Bio Äpfel", "Obst & Gemüse", 1.99},
	{"Bananen", "Obst & Gemüse", 1.49},
	{"Tomaten", "Obst & Gemüse", 2.49},
	{"Hackfleisch gemischt 500g", "Fleisch & Wurst", 4.99},
	{"Hähnchenbrust 400g", "Fleisch & Wurst", 5.99},
	{"Wurst Aufschnitt", "Fleisch & Wurst", 2.29},
	{"Vollmilch 1L", "Milchprodukte", 1.19},
	{"Butter 250g", "Milchprodukte", 2.49},
	{"Gouda Käse", "Milchprodukte", 2.99},
	{"Joghurt Natur", "Milchprodukte", 0.99},
	{"Vollkornbrot", "Brot & Backwaren", 1.89},
	{"Brötchen 6er", "Brot & Backwaren", 1.29},
	{"Cola 1.5L", "Getränke", 1.29},
	{"Mineralwasser 6x1.5L", "Getränke", 2.99},
	{"Orangensaft 1L", "Getränke", 1.99},
	{"Schokolade 100g", "Süßigkeiten & Snacks", 1.29},
	{"Chips 175g", "Süßigkeiten & Snacks", 1.99},
	{"Tiefkühl Pizza", "Tiefkühl", 2.49},
	{"Tiefkühl Gemüse 450g", "Tiefkühl", 1.79},
	{"Waschmittel 1L", "Haushalt", 4.99},
	{"Toilettenpapier 8er", "Haushalt", 3.49},
	{"Shampoo 250ml", "Drogerie", 2.49},
	{"Zahnpasta", "Drogerie", 1.29},
}

var nextWeekSamples = []sampleProduct{
	{"Erdbeeren 500g", "Obst & Gemüse", 2.99},
	{"Lachs Filet 200g", "Fleisch & Wurst", 6.99},
	{"Mozzarella", "Milchprodukte", 1.49},
	{"Croissants 4er", "Brot & Backwaren", 1.99},
	{"Bier 6x0.5L", "Getränke", 4.99},
}

// seedOffers replaces a supermarket's offers with freshly generated demo data
// for the current and the following week. Delete-then-insert, never patched:
// superseded offers do not survive a scan.
func seedOffers(db *gorm.DB, sm models.Supermarket) error {
	if err := db.Where("supermarket_id = ?", sm.ID).Delete(&models.Offer{}).Error; err != nil {
		return fmt.Errorf("clear offers for %s: %w", sm.Name, err)
	}

	now := time.Now().UTC()
	weekEnd := now.Add(7 * 24 * time.Hour)
	if err := insertGenerated(db, sm, thisWeekSamples, now, weekEnd, "Diese Woche"); err != nil {
		return err
	}
	if err := insertGenerated(db, sm, nextWeekSamples, weekEnd, weekEnd.Add(7*24*time.Hour), "Nächste Woche"); err != nil {
		return err
	}

	log.Printf("[Scan] Created %d sample offers for %s", len(thisWeekSamples)+len(nextWeekSamples), sm.Name)
	return nil
}

func insertGenerated(db *gorm.DB, sm models.Supermarket, samples []sampleProduct, from, until time.Time, weekLabel string) error {
	offers := make([]models.Offer, 0, len(samples))
	for _, sp := range samples {
		price := round2(sp.BasePrice * (0.85 + rand.Float64()*0.30))
		var originalPrice *float64
		if rand.Float64() > 0.5 {
			op := round2(price * (1.1 + rand.Float64()*0.2))
			originalPrice = &op
		}
		validFrom := from
		validUntil := until
		label := weekLabel
		offers = append(offers, models.Offer{
			ID:              uuid.NewString(),
			Name:            sp.Name,
			OriginalName:    sp.Name,
			Price:           price,
			OriginalPrice:   originalPrice,
			Category:        sp.Category,
			SupermarketID:   sm.ID,
			SupermarketName: sm.Name,
			SupermarketLogo: sm.LogoURL,
			ProspektURL:     &sm.ProspektURL,
			ValidFrom:       &validFrom,
			ValidUntil:      &validUntil,
			WeekLabel:       &label,
			ExtractedAt:     time.Now().UTC(),
		})
	}
	if err := db.Create(&offers).Error; err != nil {
		return fmt.Errorf("insert offers for %s: %w", sm.Name, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
