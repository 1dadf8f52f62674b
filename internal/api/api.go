package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prospekt-backend/internal/catalog"
	"prospekt-backend/internal/database"
	"prospekt-backend/internal/models"
	"prospekt-backend/internal/services/extractor"
	"prospekt-backend/internal/services/prospekt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type APIHandler struct {
	db        *gorm.DB
	catalog   catalog.Catalog
	optimizer *catalog.Optimizer
	comparer  *catalog.Comparer
	scanner   *prospekt.Scanner
	extractor *extractor.Client
	hub       *Hub
}

func SetupRoutes(r *gin.RouterGroup, db *gorm.DB, scanner *prospekt.Scanner, extr *extractor.Client) *APIHandler {
	cat := catalog.NewGormCatalog(db)
	handler := &APIHandler{
		db:        db,
		catalog:   cat,
		optimizer: catalog.NewOptimizer(cat),
		comparer:  catalog.NewComparer(cat),
		scanner:   scanner,
		extractor: extr,
		hub:       NewHub(),
	}

	// Scan progress goes out over the websocket
	scanner.SetNotify(func(st prospekt.ScanStatus) {
		handler.hub.Broadcast(gin.H{"type": "scan_status", "data": st})
	})

	r.GET("/", handler.Root)

	// Supermarkets
	r.GET("/supermarkets", handler.GetSupermarkets)
	r.POST("/supermarkets", handler.CreateSupermarket)
	r.PUT("/supermarkets/:id/toggle", handler.ToggleSupermarket)

	// Products / offers
	r.GET("/products", handler.GetProducts)
	r.GET("/products/by-supermarket/:id", handler.GetProductsBySupermarket)
	r.GET("/products/compare", handler.CompareProduct)
	r.GET("/categories", handler.GetCategories)
	r.GET("/offers/export", handler.ExportOffers)

	// Scan / extract
	r.POST("/scan", handler.StartScan)
	r.GET("/scan/status", handler.ScanStatus)
	r.POST("/extract", handler.ExtractFromImage)

	// Shopping lists
	lists := r.Group("/lists")
	{
		lists.GET("", handler.GetShoppingLists)
		lists.POST("", handler.CreateShoppingList)
		lists.GET("/:id", handler.GetShoppingList)
		lists.DELETE("/:id", handler.DeleteShoppingList)
		lists.GET("/:id/optimize", handler.OptimizeShoppingList)
		lists.POST("/:id/items", handler.AddListItem)
		lists.PUT("/:id/items/:item_id/toggle", handler.ToggleListItem)
		lists.DELETE("/:id/items/:item_id", handler.RemoveListItem)
		// index-based addressing kept as a convenience over the id-keyed items
		lists.PUT("/:id/items/index/:index/toggle", handler.ToggleListItemByIndex)
		lists.DELETE("/:id/items/index/:index", handler.RemoveListItemByIndex)
	}

	// Price alerts
	r.GET("/alerts", handler.GetPriceAlerts)
	r.POST("/alerts", handler.CreatePriceAlert)
	r.DELETE("/alerts/:id", handler.DeletePriceAlert)

	// Settings
	r.GET("/settings", handler.GetSettings)
	r.PUT("/settings", handler.UpdateSettings)

	return handler
}

func (h *APIHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Prospekt Preisvergleich API", "version": "1.0.0"})
}

// ---------- Supermarkets ----------

type supermarketCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	LogoURL     *string `json:"logo_url"`
	WebsiteURL  string  `json:"website_url"`
	ProspektURL string  `json:"prospekt_url"`
}

func (h *APIHandler) GetSupermarkets(c *gin.Context) {
	var supermarkets []models.Supermarket
	if err := h.db.Limit(100).Find(&supermarkets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if len(supermarkets) == 0 {
		if err := database.SeedDefaultSupermarkets(h.db); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed supermarkets"})
			return
		}
		if err := h.db.Limit(100).Find(&supermarkets).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
	}
	c.JSON(http.StatusOK, supermarkets)
}

func (h *APIHandler) CreateSupermarket(c *gin.Context) {
	var req supermarketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sm := models.Supermarket{
		ID:          uuid.NewString(),
		Name:        req.Name,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		ProspektURL: req.ProspektURL,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.db.Create(&sm).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create supermarket"})
		return
	}
	c.JSON(http.StatusOK, sm)
}

func (h *APIHandler) ToggleSupermarket(c *gin.Context) {
	id := c.Param("id")
	var sm models.Supermarket
	if err := h.db.First(&sm, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supermarket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	sm.IsActive = !sm.IsActive
	if err := h.db.Model(&sm).Update("is_active", sm.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update supermarket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sm.ID, "is_active": sm.IsActive})
}

// ---------- Products ----------

func (h *APIHandler) GetProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	includeNextWeek := strings.ToLower(c.DefaultQuery("include_next_week", "false")) == "true"

	q := h.db.Model(&models.Offer{})
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if smID := c.Query("supermarket_id"); smID != "" {
		q = q.Where("supermarket_id = ?", smID)
	}
	if search := c.Query("search"); search != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if !includeNextWeek {
		now := time.Now().UTC()
		q = q.Where("valid_from <= ? AND valid_until >= ?", now, now)
	}

	var offers []models.Offer
	if err := q.Order("price ASC").Limit(limit).Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *APIHandler) GetProductsBySupermarket(c *gin.Context) {
	id := c.Param("id")
	includeNextWeek := strings.ToLower(c.DefaultQuery("include_next_week", "true")) == "true"
	var sm models.Supermarket
	if err := h.db.First(&sm, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supermarket not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	var offers []models.Offer
	if err := h.db.Where("supermarket_id = ?", id).
		Order("valid_from ASC, price ASC").
		Limit(200).
		Find(&offers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	cutoff := time.Now().UTC().Add(7 * 24 * time.Hour)
	thisWeek := []models.Offer{}
	nextWeek := []models.Offer{}
	for _, o := range offers {
		if o.ValidFrom != nil && o.ValidFrom.After(cutoff) {
			if includeNextWeek {
				nextWeek = append(nextWeek, o)
			}
			continue
		}
		thisWeek = append(thisWeek, o)
	}

	c.JSON(http.StatusOK, gin.H{
		"supermarket": gin.H{
			"id":           sm.ID,
			"name":         sm.Name,
			"logo_url":     sm.LogoURL,
			"prospekt_url": sm.ProspektURL,
		},
		"this_week":    thisWeek,
		"next_week":    nextWeek,
		"total_offers": len(thisWeek) + len(nextWeek),
	})
}

func (h *APIHandler) CompareProduct(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	if search == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search is required"})
		return
	}

	result, err := h.comparer.Compare(c.Request.Context(), search)
	if err != nil {
		log.Printf("[Compare] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *APIHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}
