package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/services"
	"github.com/foodshop/backend/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Gateway services.PaymentGateway
}

func NewPaymentController(db *gorm.DB, gateway services.PaymentGateway) *PaymentController {
	return &PaymentController{DB: db, Gateway: gateway}
}

// InitiatePayment -> POST /api/payments/initiate
//
// Creates a pending payment at the order's total. Idempotent: an
// existing pending payment for the order is returned instead of a new
// one. The one-active-payment-per-order rule is best effort, not
// enforced atomically.
func (pc *PaymentController) InitiatePayment(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		OrderID uint   `json:"orderId" binding:"required"`
		Method  string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("orderId is required"))
		return
	}

	method := models.MethodCard
	if req.Method != "" {
		method = models.PaymentMethod(req.Method)
		if !method.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid payment method"))
			return
		}
	}

	var order models.Order
	if err := pc.DB.First(&order, req.OrderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Order not found"))
		return
	}

	if order.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("Not authorized to pay for this order"))
		return
	}

	if order.Status != models.OrderPending {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Order is already %s", order.Status))
		return
	}

	var existing models.Payment
	err := pc.DB.Where("order_id = ? AND status = ?", order.ID, models.PaymentPending).
		First(&existing).Error
	if err == nil {
		utils.RespondJSON(c, http.StatusOK, "Payment already initiated", gin.H{
			"paymentId":  existing.ID,
			"amount":     existing.Amount,
			"paymentUrl": fmt.Sprintf("/payment/%d", existing.ID),
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorLogger.Printf("lookup payment failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	payment := models.Payment{
		UserID:      userID,
		OrderID:     order.ID,
		Amount:      order.TotalPrice,
		Method:      method,
		Status:      models.PaymentPending,
		ReferenceID: uuid.NewString(),
	}

	if err := pc.DB.Create(&payment).Error; err != nil {
		utils.ErrorLogger.Printf("create payment failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.InfoLogger.Printf("Payment %d initiated for order %d (amount=%.2f)", payment.ID, order.ID, payment.Amount)

	utils.RespondJSON(c, http.StatusCreated, "Payment initiated successfully", gin.H{
		"paymentId":  payment.ID,
		"amount":     payment.Amount,
		"paymentUrl": fmt.Sprintf("/payment/%d", payment.ID),
	})
}

// CompletePayment -> GET /api/payments/complete/:paymentId
//
// Resolves a pending payment through the gateway. On success the order
// moves pending -> preparing and is stamped with the payment id; on
// failure only the payment flips. Re-completing a resolved payment is
// rejected and leaves the stored status and date untouched.
func (pc *PaymentController) CompletePayment(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var payment models.Payment
	if err := pc.DB.First(&payment, c.Param("paymentId")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Payment not found"))
		return
	}

	if payment.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("Not authorized to complete this payment"))
		return
	}

	if payment.Resolved() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("Payment already %s", payment.Status))
		return
	}

	result := pc.Gateway.Charge(payment.ReferenceID, payment.Amount)

	now := time.Now()
	payment.PaymentDate = &now
	if result.Succeeded {
		payment.Status = models.PaymentSuccess
	} else {
		payment.Status = models.PaymentFailed
	}

	if err := pc.DB.Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
		"status":       payment.Status,
		"payment_date": payment.PaymentDate,
	}).Error; err != nil {
		utils.ErrorLogger.Printf("update payment failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	orderStatus := models.OrderPending
	if result.Succeeded {
		if err := pc.DB.Model(&models.Order{}).Where("id = ?", payment.OrderID).Updates(map[string]interface{}{
			"status":     models.OrderPreparing,
			"payment_id": payment.ID,
		}).Error; err != nil {
			utils.ErrorLogger.Printf("update order %d after payment failed: %v", payment.OrderID, err)
		} else {
			orderStatus = models.OrderPreparing
		}
	} else {
		var order models.Order
		if err := pc.DB.First(&order, payment.OrderID).Error; err == nil {
			orderStatus = order.Status
		}
	}

	message := "Payment failed"
	if result.Succeeded {
		message = "Payment successful"
	}

	utils.InfoLogger.Printf("Payment %d resolved: %s", payment.ID, payment.Status)

	utils.RespondJSON(c, http.StatusOK, message, gin.H{
		"paymentStatus": payment.Status,
		"orderId":       payment.OrderID,
		"orderStatus":   orderStatus,
	})
}

// GetPaymentStatus -> GET /api/payments/status/:paymentId
//
// Visible to the payment's owner or an admin.
func (pc *PaymentController) GetPaymentStatus(c *gin.Context) {
	userID, role, ok := principal(c)
	if !ok {
		return
	}

	var payment models.Payment
	if err := pc.DB.First(&payment, c.Param("paymentId")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Payment not found"))
		return
	}

	if payment.UserID != userID && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("Not authorized to view this payment"))
		return
	}

	var order models.Order
	orderStatus := models.OrderPending
	if err := pc.DB.First(&order, payment.OrderID).Error; err == nil {
		orderStatus = order.Status
	}

	utils.RespondJSON(c, http.StatusOK, "Payment status retrieved", gin.H{
		"paymentId":   payment.ID,
		"amount":      payment.Amount,
		"status":      payment.Status,
		"method":      payment.Method,
		"orderId":     payment.OrderID,
		"orderStatus": orderStatus,
		"paymentDate": payment.PaymentDate,
		"createdAt":   payment.CreatedAt,
	})
}

// ListPayments -> GET /api/admin/payments
//
// Admin projection: card data is never stored, so the record is safe to
// return whole.
func (pc *PaymentController) ListPayments(c *gin.Context) {
	page := utils.ParsePagination(c, 20)

	query := pc.DB.Model(&models.Payment{})
	if status := c.Query("status"); status != "" {
		s := models.PaymentStatus(status)
		if !s.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid status"))
			return
		}
		query = query.Where("status = ?", s)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("count payments failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	var payments []models.Payment
	if err := query.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&payments).Error; err != nil {
		utils.ErrorLogger.Printf("list payments failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    "Payments retrieved successfully",
		"data":       payments,
		"totalPages": page.TotalPages(count),
		"totalCount": count,
		"page":       page.Page,
	})
}
