package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// ListItems -> GET /api/items
//
// Public menu browsing with pagination, case-insensitive title search,
// price ceiling, category filter and sorting.
func (ic *ItemController) ListItems(c *gin.Context) {
	page := utils.ParsePagination(c, 9)

	maxPrice := 50.0
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			maxPrice = v
		}
	}

	query := ic.DB.Model(&models.Item{}).Where("price <= ?", maxPrice)

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	if raw := c.Query("categories"); raw != "" {
		categories := strings.Split(raw, ",")
		query = query.Where("category IN ?", categories)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("count items failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to retrieve items"))
		return
	}

	switch c.DefaultQuery("sort", "latest") {
	case "priceLowHigh":
		query = query.Order("price ASC")
	case "priceHighLow":
		query = query.Order("price DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var items []models.Item
	if err := query.Offset(page.Offset()).Limit(page.Limit).Find(&items).Error; err != nil {
		utils.ErrorLogger.Printf("list items failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to retrieve items"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    "Items retrieved successfully",
		"data":       items,
		"totalPages": page.TotalPages(count),
		"totalCount": count,
		"page":       page.Page,
	})
}
