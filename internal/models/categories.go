package models

// Categories are the fixed product categories every offer is filed under.
var Categories = []string{
	"Obst & Gemüse",
	"Fleisch & Wurst",
	"Milchprodukte",
	"Brot & Backwaren",
	"Getränke",
	"Süßigkeiten & Snacks",
	"Tiefkühl",
	"Haushalt",
	"Drogerie",
	"Sonstiges",
}
