package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

type AdminOrderController struct {
	DB *gorm.DB
}

func NewAdminOrderController(db *gorm.DB) *AdminOrderController {
	return &AdminOrderController{DB: db}
}

// GetAllOrders -> GET /api/admin/orders
func (ac *AdminOrderController) GetAllOrders(c *gin.Context) {
	page := utils.ParsePagination(c, 20)

	query := ac.DB.Model(&models.Order{})
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !status.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid status"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("count orders failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("User").
		Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("list orders failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	// Attach a sanitized user summary per order.
	data := make([]gin.H, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		data = append(data, gin.H{
			"id":         o.ID,
			"userId":     o.UserID,
			"user":       o.User.Sanitized(),
			"items":      o.Items,
			"totalPrice": o.TotalPrice,
			"totalItems": o.TotalItems,
			"status":     o.Status,
			"paymentId":  o.PaymentID,
			"createdAt":  o.CreatedAt,
			"updatedAt":  o.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    "Orders retrieved successfully",
		"data":       data,
		"totalPages": page.TotalPages(count),
		"totalCount": count,
		"page":       page.Page,
	})
}

// UpdateOrderStatus -> PATCH /api/admin/orders/:orderId/status
func (ac *AdminOrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Status is required"))
		return
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid status"))
		return
	}

	var order models.Order
	if err := ac.DB.Preload("Items").First(&order, c.Param("orderId")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Order not found"))
		return
	}

	order.Status = status
	if err := ac.DB.Model(&order).Update("status", status).Error; err != nil {
		utils.ErrorLogger.Printf("update order status failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, status)

	utils.RespondJSON(c, http.StatusOK, "Order status updated successfully", order)
}

// GetOrderStats -> GET /api/admin/orders/stats
//
// Dashboard counters plus today's revenue (cancelled orders excluded),
// rounded to two decimals.
func (ac *AdminOrderController) GetOrderStats(c *gin.Context) {
	var total, pending, preparing, completed int64

	ac.DB.Model(&models.Order{}).Count(&total)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderPreparing).Count(&preparing)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderCompleted).Count(&completed)

	startOfDay := time.Now().Truncate(24 * time.Hour)

	var todayOrders []models.Order
	ac.DB.Where("created_at >= ? AND status <> ?", startOfDay, models.OrderCancelled).
		Find(&todayOrders)

	revenue := 0.0
	for _, o := range todayOrders {
		revenue += o.TotalPrice
	}

	utils.RespondJSON(c, http.StatusOK, "Order stats retrieved", gin.H{
		"totalOrders":     total,
		"pendingOrders":   pending,
		"preparingOrders": preparing,
		"completedOrders": completed,
		"todayRevenue":    math.Round(revenue*100) / 100,
	})
}
