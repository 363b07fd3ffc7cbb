package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

type BookingController struct {
	DB *gorm.DB
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{DB: db}
}

var errSlotTaken = errors.New("This time slot is already booked! Please choose another.")

// CreateBooking -> POST /api/bookings
//
// First writer wins on a (date, time) slot. The pre-check catches the
// common case; the unique index catches the race, and both surface as
// the same conflict message.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone" binding:"required"`
		Date    string `json:"date" binding:"required"`
		Time    string `json:"time" binding:"required"`
		Guests  int    `json:"guests" binding:"required,min=1"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("All required fields must be filled"))
		return
	}

	var existing models.TableBooking
	if err := bc.DB.Where("date = ? AND time = ?", req.Date, req.Time).
		First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errSlotTaken)
		return
	}

	booking := models.TableBooking{
		UserID:    &userID,
		UserEmail: strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		Message:   req.Message,
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		if isDuplicateErr(err) {
			utils.RespondError(c, http.StatusBadRequest, errSlotTaken)
			return
		}
		utils.ErrorLogger.Printf("create booking failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.InfoLogger.Printf("Table booked: %s %s for %d guests (user %d)", booking.Date, booking.Time, booking.Guests, userID)

	utils.RespondJSON(c, http.StatusCreated, "Table booked successfully!", booking)
}

// GetMyBookings -> GET /api/bookings/my
//
// Matches by stored user id or by the booking email, so bookings made
// with the account's email before signup still show up.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var user models.User
	if err := bc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("User not found"))
		return
	}

	var bookings []models.TableBooking
	if err := bc.DB.Where("user_id = ? OR user_email = ?", userID, user.Email).
		Order("created_at DESC").Find(&bookings).Error; err != nil {
		utils.ErrorLogger.Printf("fetch bookings failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bookings retrieved", bookings)
}

// GetAllBookings -> GET /api/bookings/all (admin)
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	var bookings []models.TableBooking
	if err := bc.DB.Order("created_at DESC").Find(&bookings).Error; err != nil {
		utils.ErrorLogger.Printf("fetch all bookings failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All bookings retrieved", bookings)
}

// CancelBooking -> DELETE /api/bookings/:id
//
// Owner (by stored user id or email) or admin; everyone else gets 403.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, role, ok := principal(c)
	if !ok {
		return
	}

	var booking models.TableBooking
	if err := bc.DB.First(&booking, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Booking not found"))
		return
	}

	var user models.User
	email := ""
	if err := bc.DB.First(&user, userID).Error; err == nil {
		email = user.Email
	}

	if !booking.OwnedBy(userID, email) && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, errors.New("Not authorized to cancel this booking"))
		return
	}

	if err := bc.DB.Delete(&booking).Error; err != nil {
		utils.ErrorLogger.Printf("delete booking failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking cancelled successfully", nil)
}
