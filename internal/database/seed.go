package database

import (
	"log"
	"time"

	"prospekt-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type defaultSupermarket struct {
	Name        string
	LogoURL     string
	WebsiteURL  string
	ProspektURL string
}

var defaultSupermarkets = []defaultSupermarket{
	{"Aldi Nord", "https://upload.wikimedia.org/wikipedia/commons/thumb/6/64/AldiNordLogo.svg/1200px-AldiNordLogo.svg.png", "https://www.aldi-nord.de", "https://www.aldi-nord.de/angebote.html"},
	{"Aldi Süd", "https://upload.wikimedia.org/wikipedia/commons/thumb/1/13/Aldi_S%C3%BCd_2017_logo.svg/1200px-Aldi_S%C3%BCd_2017_logo.svg.png", "https://www.aldi-sued.de", "https://www.aldi-sued.de/de/angebote.html"},
	{"REWE", "https://upload.wikimedia.org/wikipedia/commons/thumb/4/4a/Rewe_-_Logo.svg/1200px-Rewe_-_Logo.svg.png", "https://www.rewe.de", "https://www.rewe.de/angebote/nationale-angebote/"},
	{"Edeka", "https://upload.wikimedia.org/wikipedia/commons/thumb/2/24/Edeka_logo.svg/1200px-Edeka_logo.svg.png", "https://www.edeka.de", "https://www.edeka.de/eh/angebote.jsp"},
	{"Lidl", "https://upload.wikimedia.org/wikipedia/commons/thumb/9/91/Lidl-Logo.svg/1200px-Lidl-Logo.svg.png", "https://www.lidl.de", "https://www.lidl.de/c/billiger-montag/a10006065"},
	{"Kaufland", "https://upload.wikimedia.org/wikipedia/commons/thumb/4/44/Kaufland_201x_logo.svg/1200px-Kaufland_201x_logo.svg.png", "https://www.kaufland.de", "https://www.kaufland.de/angebote/aktuelle-woche.html"},
	{"Penny", "https://upload.wikimedia.org/wikipedia/commons/thumb/4/40/Logo_Penny.svg/1200px-Logo_Penny.svg.png", "https://www.penny.de", "https://www.penny.de/angebote"},
	{"Netto", "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c8/Netto_logo.svg/1200px-Netto_logo.svg.png", "https://www.netto-online.de", "https://www.netto-online.de/angebote"},
}

// SeedDefaultSupermarkets inserts the eight German chains when the table is
// empty. Safe to call at every startup.
func SeedDefaultSupermarkets(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Supermarket{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Initializing default supermarkets...")
	for _, d := range defaultSupermarkets {
		logo := d.LogoURL
		sm := models.Supermarket{
			ID:          uuid.NewString(),
			Name:        d.Name,
			LogoURL:     &logo,
			WebsiteURL:  d.WebsiteURL,
			ProspektURL: d.ProspektURL,
			IsActive:    true,
			CreatedAt:   time.Now().UTC(),
		}
		if err := db.Create(&sm).Error; err != nil {
			return err
		}
	}
	log.Printf("Created %d default supermarkets", len(defaultSupermarkets))
	return nil
}
