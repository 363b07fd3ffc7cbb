package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

type cartItemRequest struct {
	MenuItemID uint    `json:"menuItemId" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	Quantity   int     `json:"quantity"`
	Image      string  `json:"image" binding:"required"`
}

// fetchOrCreate returns the principal's cart, lazily creating an empty
// one on first access.
func (cc *CartController) fetchOrCreate(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := cc.DB.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
		if err := cc.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// persistItems replaces the stored item rows and refreshes the cached
// totals. Concurrent updates race and the last write wins.
func (cc *CartController) persistItems(cart *models.Cart, items []models.CartItem) error {
	if err := cc.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].CartID = cart.ID
	}
	if len(items) > 0 {
		if err := cc.DB.Create(&items).Error; err != nil {
			return err
		}
	}

	cart.SetItems(items)
	return cc.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"total_items": cart.TotalItems,
		"total_price": cart.TotalPrice,
	}).Error
}

// GetCart -> GET /api/cart
func (cc *CartController) GetCart(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	cart, err := cc.fetchOrCreate(userID)
	if err != nil {
		utils.ErrorLogger.Printf("fetch cart failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart retrieved", cart)
}

// UpdateCart -> PUT /api/cart, replaces the whole item list.
func (cc *CartController) UpdateCart(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		Items []cartItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Items == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Items must be an array"))
		return
	}

	items := make([]models.CartItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity < 1 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Quantity must be at least 1"))
			return
		}
		items = append(items, models.CartItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Image:      it.Image,
		})
	}

	cart, err := cc.fetchOrCreate(userID)
	if err == nil {
		err = cc.persistItems(cart, items)
	}
	if err != nil {
		utils.ErrorLogger.Printf("update cart failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart updated", cart)
}

// AddToCart -> POST /api/cart/add, add-or-increment one line item.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Missing required fields"))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Quantity must be at least 1"))
		return
	}

	cart, err := cc.fetchOrCreate(userID)
	if err != nil {
		utils.ErrorLogger.Printf("fetch cart failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	items := cart.Items
	found := false
	for i := range items {
		if items[i].MenuItemID == req.MenuItemID {
			items[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{
			MenuItemID: req.MenuItemID,
			Name:       req.Name,
			Price:      req.Price,
			Quantity:   req.Quantity,
			Image:      req.Image,
		})
	}

	if err := cc.persistItems(cart, items); err != nil {
		utils.ErrorLogger.Printf("add to cart failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", cart)
}

// ClearCart -> DELETE /api/cart/clear
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	cart, err := cc.fetchOrCreate(userID)
	if err == nil {
		err = cc.persistItems(cart, []models.CartItem{})
	}
	if err != nil {
		utils.ErrorLogger.Printf("clear cart failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart cleared", cart)
}
