package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/services"
	"github.com/foodshop/backend/utils"
)

type AdminMenuController struct {
	DB       *gorm.DB
	Uploader *services.Uploader
}

func NewAdminMenuController(db *gorm.DB, uploader *services.Uploader) *AdminMenuController {
	return &AdminMenuController{DB: db, Uploader: uploader}
}

// ListItems -> GET /api/admin/menu
func (ac *AdminMenuController) ListItems(c *gin.Context) {
	page := utils.ParsePagination(c, 9)

	var count int64
	if err := ac.DB.Model(&models.Item{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("count items failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to retrieve items"))
		return
	}

	var items []models.Item
	if err := ac.DB.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&items).Error; err != nil {
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

// SaveItem -> POST /api/admin/menu/save
//
// Multipart form: title, description, price, optional category and a
// single optional image file stored through the uploader.
func (ac *AdminMenuController) SaveItem(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	priceRaw := c.PostForm("price")

	if title == "" || description == "" || priceRaw == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Title, description, and price are required"))
		return
	}

	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid price"))
		return
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err = ac.Uploader.Save(c, file)
		if err != nil {
			utils.ErrorLogger.Printf("save image failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to store image"))
			return
		}
	}

	item := models.Item{
		Title:       title,
		Description: description,
		Price:       price,
		Category:    c.PostForm("category"),
		ImageURL:    imageURL,
	}

	if err := ac.DB.Create(&item).Error; err != nil {
		utils.ErrorLogger.Printf("create item failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to create item"))
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (id=%d)", item.Title, item.ID)

	utils.RespondJSON(c, http.StatusCreated, "Item created successfully", item)
}

// UpdateItem -> PATCH /api/admin/menu/:id
//
// Partial update: absent fields keep their stored values, a new image
// replaces the old URL.
func (ac *AdminMenuController) UpdateItem(c *gin.Context) {
	var item models.Item
	if err := ac.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Item not found"))
		return
	}

	if title := c.PostForm("title"); title != "" {
		item.Title = title
	}
	if description := c.PostForm("description"); description != "" {
		item.Description = description
	}
	if priceRaw := c.PostForm("price"); priceRaw != "" {
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil || price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid price"))
			return
		}
		item.Price = price
	}
	if category := c.PostForm("category"); category != "" {
		item.Category = category
	}

	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := ac.Uploader.Save(c, file)
		if err != nil {
			utils.ErrorLogger.Printf("save image failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to store image"))
			return
		}
		item.ImageURL = imageURL
	}

	if err := ac.DB.Save(&item).Error; err != nil {
		utils.ErrorLogger.Printf("update item failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to update item"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item updated successfully", item)
}

// DeleteItem -> DELETE /api/admin/menu/:id
func (ac *AdminMenuController) DeleteItem(c *gin.Context) {
	var item models.Item
	if err := ac.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Item not found"))
		return
	}

	if err := ac.DB.Delete(&item).Error; err != nil {
		utils.ErrorLogger.Printf("delete item failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to delete item"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item deleted successfully", nil)
}
