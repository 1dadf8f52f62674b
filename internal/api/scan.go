package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"prospekt-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scanRequest struct {
	SupermarketIDs []string `json:"supermarket_ids"`
	ForceRefresh   bool     `json:"force_refresh"`
}

type extractRequest struct {
	ImageBase64   string `json:"image_base64" binding:"required"`
	SupermarketID string `json:"supermarket_id" binding:"required"`
}

// StartScan kicks off the background prospekt scan and returns immediately.
func (h *APIHandler) StartScan(c *gin.Context) {
	var req scanRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.scanner.Start(req.SupermarketIDs, req.ForceRefresh); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "status": h.scanner.Status()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "scanning", "message": "Prospekt-Scan wurde gestartet"})
}

func (h *APIHandler) ScanStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.scanner.Status()})
}

// ExtractFromImage runs the AI extraction over an uploaded prospekt image and
// stores the validated offers. Extraction failures degrade to an empty result.
func (h *APIHandler) ExtractFromImage(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sm models.Supermarket
	if err := h.db.First(&sm, "id = ?", req.SupermarketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supermarket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	candidates, err := h.extractor.Extract(c.Request.Context(), req.ImageBase64, sm.Name)
	if err != nil {
		log.Printf("[Extract] Extraction failed for %s: %v", sm.Name, err)
	}
	if len(candidates) == 0 {
		c.JSON(http.StatusOK, gin.H{"status": "no_products", "message": "Keine Produkte gefunden", "products": []models.Offer{}})
		return
	}

	now := time.Now().UTC()
	validFrom := now
	validUntil := now.Add(7 * 24 * time.Hour)
	saved := make([]models.Offer, 0, len(candidates))
	for _, cand := range candidates {
		offer := models.Offer{
			ID:              uuid.NewString(),
			Name:            cand.Name,
			OriginalName:    cand.Name,
			Price:           cand.Price,
			OriginalPrice:   cand.OriginalPrice,
			Unit:            cand.Unit,
			PricePerUnit:    cand.PricePerUnit,
			Category:        cand.Category,
			SupermarketID:   sm.ID,
			SupermarketName: sm.Name,
			SupermarketLogo: sm.LogoURL,
			ValidFrom:       &validFrom,
			ValidUntil:      &validUntil,
			ExtractedAt:     now,
		}
		if err := h.db.Create(&offer).Error; err != nil {
			log.Printf("[Extract] Error saving offer %q: %v", offer.Name, err)
			continue
		}
		saved = append(saved, offer)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  fmt.Sprintf("%d Produkte extrahiert", len(saved)),
		"products": saved,
	})
}
