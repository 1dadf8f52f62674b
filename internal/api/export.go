package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"prospekt-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportOffers writes the current offers as an Excel workbook, one row per
// offer, sorted ascending by price.
func (h *APIHandler) ExportOffers(c *gin.Context) {
	var offers []models.Offer
	if err := h.db.Order("price ASC").Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Angebote"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Produkt", "Preis", "Originalpreis", "Einheit", "Kategorie", "Supermarkt", "Gültig von", "Gültig bis"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}

	for row, o := range offers {
		values := []any{o.Name, o.Price, nil, nil, o.Category, o.SupermarketName, nil, nil}
		if o.OriginalPrice != nil {
			values[2] = *o.OriginalPrice
		}
		if o.Unit != nil {
			values[3] = *o.Unit
		}
		if o.ValidFrom != nil {
			values[6] = o.ValidFrom.Format("2006-01-02")
		}
		if o.ValidUntil != nil {
			values[7] = o.ValidUntil.Format("2006-01-02")
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("angebote-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[Export] Failed to write workbook: %v", err)
	}
}
