package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"prospekt-backend/internal/catalog"
	"prospekt-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type alertCreateRequest struct {
	ProductName    string   `json:"product_name" binding:"required"`
	TargetPrice    float64  `json:"target_price" binding:"required"`
	SupermarketIDs []string `json:"supermarket_ids"`
}

func (h *APIHandler) GetPriceAlerts(c *gin.Context) {
	var alerts []models.PriceAlert
	if err := h.db.Limit(100).Find(&alerts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// CreatePriceAlert stores the alert with the currently cheapest price, marking
// it triggered right away when that price already beats the target.
func (h *APIHandler) CreatePriceAlert(c *gin.Context) {
	var req alertCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentPrice, _, err := catalog.SnapshotBestPrice(c.Request.Context(), h.catalog, req.ProductName)
	if err != nil {
		log.Printf("[Alerts] Price lookup failed for %q: %v", req.ProductName, err)
	}

	ids := req.SupermarketIDs
	if ids == nil {
		ids = []string{}
	}
	alert := models.PriceAlert{
		ID:             uuid.NewString(),
		ProductName:    req.ProductName,
		TargetPrice:    req.TargetPrice,
		CurrentPrice:   currentPrice,
		SupermarketIDs: ids,
		IsActive:       true,
		Triggered:      currentPrice != nil && *currentPrice <= req.TargetPrice,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.db.Create(&alert).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create alert"})
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (h *APIHandler) DeletePriceAlert(c *gin.Context) {
	res := h.db.Delete(&models.PriceAlert{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ---------- Settings ----------

func (h *APIHandler) GetSettings(c *gin.Context) {
	var settings models.UserSettings
	err := h.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now().UTC()
		settings = models.UserSettings{
			ID:                   uuid.NewString(),
			SelectedSupermarkets: []string{},
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := h.db.Create(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create settings"})
			return
		}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *APIHandler) UpdateSettings(c *gin.Context) {
	var req models.UserSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.UserSettings
	err := h.db.First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		req.ID = uuid.NewString()
		req.CreatedAt = time.Now().UTC()
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	} else {
		req.ID = existing.ID
		req.CreatedAt = existing.CreatedAt
	}
	if req.SelectedSupermarkets == nil {
		req.SelectedSupermarkets = []string{}
	}
	req.UpdatedAt = time.Now().UTC()

	if err := h.db.Save(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, req)
}
