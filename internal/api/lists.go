package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"prospekt-backend/internal/catalog"
	"prospekt-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type listCreateRequest struct {
	Name string  `json:"name" binding:"required"`
	PLZ  *string `json:"plz"`
}

type listItemAddRequest struct {
	ProductName string `json:"product_name" binding:"required"`
	Quantity    int    `json:"quantity"`
}

func (h *APIHandler) loadList(c *gin.Context, id string) (*models.ShoppingList, bool) {
	var list models.ShoppingList
	err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, created_at ASC")
	}).First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		}
		return nil, false
	}
	return &list, true
}

func (h *APIHandler) GetShoppingLists(c *gin.Context) {
	var lists []models.ShoppingList
	err := h.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, created_at ASC")
	}).Order("updated_at DESC").Limit(100).Find(&lists).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *APIHandler) CreateShoppingList(c *gin.Context) {
	var req listCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	list := models.ShoppingList{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Items:     []models.ShoppingListItem{},
		PLZ:       req.PLZ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.db.Create(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create list"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *APIHandler) GetShoppingList(c *gin.Context) {
	list, ok := h.loadList(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *APIHandler) DeleteShoppingList(c *gin.Context) {
	res := h.db.Delete(&models.ShoppingList{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shopping list not found"})
		return
	}
	if err := h.db.Delete(&models.ShoppingListItem{}, "list_id = ?", c.Param("id")).Error; err != nil {
		log.Printf("[Lists] Failed to delete items of list %s: %v", c.Param("id"), err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// AddListItem appends an item with the best price known right now. That
// snapshot is deliberately not refreshed later; the optimize endpoint is the
// live view.
func (h *APIHandler) AddListItem(c *gin.Context) {
	list, ok := h.loadList(c, c.Param("id"))
	if !ok {
		return
	}

	var req listItemAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	bestPrice, bestSupermarket, err := catalog.SnapshotBestPrice(c.Request.Context(), h.catalog, req.ProductName)
	if err != nil {
		log.Printf("[Lists] Best price lookup failed for %q: %v", req.ProductName, err)
	}

	item := models.ShoppingListItem{
		ID:              uuid.NewString(),
		ListID:          list.ID,
		ProductName:     req.ProductName,
		Quantity:        req.Quantity,
		BestPrice:       bestPrice,
		BestSupermarket: bestSupermarket,
		Position:        len(list.Items),
		CreatedAt:       time.Now().UTC(),
	}
	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add item"})
		return
	}
	h.touchList(list.ID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "item": item})
}

func (h *APIHandler) ToggleListItem(c *gin.Context) {
	h.toggleItem(c, c.Param("id"), c.Param("item_id"))
}

func (h *APIHandler) RemoveListItem(c *gin.Context) {
	h.removeItem(c, c.Param("id"), c.Param("item_id"))
}

// resolveIndex maps a positional index onto the item's stable id. Positions
// are ordered, so an index stays meaningful even after removals left gaps.
func (h *APIHandler) resolveIndex(c *gin.Context) (listID, itemID string, ok bool) {
	list, ok := h.loadList(c, c.Param("id"))
	if !ok {
		return "", "", false
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(list.Items) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return "", "", false
	}
	return list.ID, list.Items[index].ID, true
}

func (h *APIHandler) ToggleListItemByIndex(c *gin.Context) {
	listID, itemID, ok := h.resolveIndex(c)
	if !ok {
		return
	}
	h.toggleItem(c, listID, itemID)
}

func (h *APIHandler) RemoveListItemByIndex(c *gin.Context) {
	listID, itemID, ok := h.resolveIndex(c)
	if !ok {
		return
	}
	h.removeItem(c, listID, itemID)
}

func (h *APIHandler) toggleItem(c *gin.Context, listID, itemID string) {
	var item models.ShoppingListItem
	if err := h.db.First(&item, "id = ? AND list_id = ?", itemID, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	item.Checked = !item.Checked
	if err := h.db.Model(&item).Update("checked", item.Checked).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}
	h.touchList(listID)
	c.JSON(http.StatusOK, gin.H{"status": "success", "checked": item.Checked})
}

func (h *APIHandler) removeItem(c *gin.Context, listID, itemID string) {
	res := h.db.Delete(&models.ShoppingListItem{}, "id = ? AND list_id = ?", itemID, listID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	h.touchList(listID)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *APIHandler) touchList(listID string) {
	if err := h.db.Model(&models.ShoppingList{}).Where("id = ?", listID).
		Update("updated_at", time.Now().UTC()).Error; err != nil {
		log.Printf("[Lists] Failed to touch list %s: %v", listID, err)
	}
}

// OptimizeShoppingList recomputes live prices for the whole list and groups
// the items into per-supermarket baskets.
func (h *APIHandler) OptimizeShoppingList(c *gin.Context) {
	list, ok := h.loadList(c, c.Param("id"))
	if !ok {
		return
	}

	result, err := h.optimizer.Optimize(c.Request.Context(), *list)
	if err != nil {
		log.Printf("[Optimize] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, result)
}
