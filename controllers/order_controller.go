package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// PlaceOrder -> POST /api/orders/place
//
// Snapshots the principal's cart into an immutable order and then
// empties the cart. The two writes are issued in sequence without a
// wrapping transaction; a crash in between leaves an order placed and
// a cart still full.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var cart models.Cart
	err := oc.DB.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Cart is empty"))
		return
	}
	if err != nil {
		utils.ErrorLogger.Printf("fetch cart failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	order := models.Order{
		UserID:     userID,
		Items:      models.SnapshotCartItems(cart.Items),
		TotalPrice: cart.TotalPrice,
		TotalItems: cart.TotalItems,
		Status:     models.OrderPending,
	}

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.ErrorLogger.Printf("create order failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	// Clear the cart after the order exists.
	if err := oc.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.ErrorLogger.Printf("clear cart items failed after order %d: %v", order.ID, err)
	}
	if err := oc.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]interface{}{
		"total_items": 0,
		"total_price": 0,
	}).Error; err != nil {
		utils.ErrorLogger.Printf("reset cart totals failed after order %d: %v", order.ID, err)
	}

	utils.InfoLogger.Printf("Order %d placed by user %d (total=%.2f)", order.ID, userID, order.TotalPrice)

	utils.RespondJSON(c, http.StatusCreated, "Order placed successfully", order)
}

// GetOrderHistory -> GET /api/orders/history
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Items").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("fetch order history failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order history retrieved", orders)
}

var statusExplanations = map[models.OrderStatus]string{
	models.OrderPending:   "Your order has been received and is waiting for payment confirmation.",
	models.OrderPreparing: "Our chefs are currently preparing your food with fresh ingredients.",
	models.OrderCompleted: "Order completed successfully. Thank you for your purchase!",
	models.OrderCancelled: "This order has been cancelled.",
}

// ExplainStatus -> POST /api/orders/status/explain
func (oc *OrderController) ExplainStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Status is required"))
		return
	}

	status := models.OrderStatus(req.Status)
	explanation, ok := statusExplanations[status]
	if !ok {
		explanation = fmt.Sprintf("Your order is marked as %q and is progressing through processing.", req.Status)
	}

	utils.RespondJSON(c, http.StatusOK, "Status explanation", gin.H{
		"explanation": explanation,
	})
}
