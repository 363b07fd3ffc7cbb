package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/foodshop/backend/controllers"
	"github.com/foodshop/backend/middlewares"
	"github.com/foodshop/backend/models"
)

func setupBookingRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	bookingCtrl := controllers.NewBookingController(db)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	bookings := router.Group("/api/bookings")
	bookings.Use(middlewares.Auth())
	{
		bookings.POST("", bookingCtrl.CreateBooking)
		bookings.GET("/my", bookingCtrl.GetMyBookings)
		bookings.GET("/all", adminOnly, bookingCtrl.GetAllBookings)
		bookings.DELETE("/:id", bookingCtrl.CancelBooking)
	}
	return router
}

func bookingPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":   "Guest",
		"email":  email,
		"phone":  "555-0101",
		"date":   "2026-09-01",
		"time":   "19:00",
		"guests": 4,
	}
}

func TestBookingSlotUniqueness(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db)
	_, token := seedUser(t, db, "book@test.com", models.RoleUser)
	_, otherToken := seedUser(t, db, "book2@test.com", models.RoleUser)

	w, resp := doJSON(t, router, "POST", "/api/bookings", token, bookingPayload("book@test.com"))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Table booked successfully!", resp["message"])

	// Second booking for the same (date, time) slot is rejected.
	w, resp = doJSON(t, router, "POST", "/api/bookings", otherToken, bookingPayload("book2@test.com"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "This time slot is already booked! Please choose another.", resp["message"])

	// Exactly one record exists for the slot.
	var count int64
	db.Model(&models.TableBooking{}).Where("date = ? AND time = ?", "2026-09-01", "19:00").Count(&count)
	assert.Equal(t, int64(1), count)

	// A different time on the same date is fine.
	payload := bookingPayload("book2@test.com")
	payload["time"] = "20:00"
	w, _ = doJSON(t, router, "POST", "/api/bookings", otherToken, payload)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookingValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db)
	_, token := seedUser(t, db, "bookval@test.com", models.RoleUser)

	payload := bookingPayload("bookval@test.com")
	delete(payload, "phone")

	w, resp := doJSON(t, router, "POST", "/api/bookings", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "All required fields must be filled", resp["message"])
}

func TestMyBookingsMatchesIDOrEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db)
	user, token := seedUser(t, db, "mine@test.com", models.RoleUser)

	// One booking linked by user id, one only by email, one foreign.
	byID := models.TableBooking{UserID: &user.ID, UserEmail: "elsewhere@test.com", Name: "A", Email: "elsewhere@test.com", Phone: "1", Date: "2026-09-02", Time: "18:00", Guests: 2}
	byEmail := models.TableBooking{UserEmail: "mine@test.com", Name: "B", Email: "mine@test.com", Phone: "2", Date: "2026-09-02", Time: "19:00", Guests: 2}
	foreign := models.TableBooking{UserEmail: "foreign@test.com", Name: "C", Email: "foreign@test.com", Phone: "3", Date: "2026-09-02", Time: "20:00", Guests: 2}
	assert.NoError(t, db.Create(&byID).Error)
	assert.NoError(t, db.Create(&byEmail).Error)
	assert.NoError(t, db.Create(&foreign).Error)

	w, resp := doJSON(t, router, "GET", "/api/bookings/my", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].([]interface{}), 2)
}

func TestCancelBookingOwnership(t *testing.T) {
	db := setupTestDB(t)
	router := setupBookingRouter(db)
	user, ownerToken := seedUser(t, db, "cancel@test.com", models.RoleUser)
	_, strangerToken := seedUser(t, db, "nosy@test.com", models.RoleUser)
	_, adminToken := seedUser(t, db, "bookadmin@test.com", models.RoleAdmin)

	booking := models.TableBooking{UserID: &user.ID, UserEmail: "cancel@test.com", Name: "D", Email: "cancel@test.com", Phone: "4", Date: "2026-09-03", Time: "18:00", Guests: 2}
	assert.NoError(t, db.Create(&booking).Error)

	url := fmt.Sprintf("/api/bookings/%d", booking.ID)

	// A stranger may not cancel.
	w, _ := doJSON(t, router, "DELETE", url, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner may.
	w, _ = doJSON(t, router, "DELETE", url, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Cancelled booking is gone.
	w, _ = doJSON(t, router, "DELETE", url, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Admin may cancel anyone's booking.
	other := models.TableBooking{UserEmail: "someone@test.com", Name: "E", Email: "someone@test.com", Phone: "5", Date: "2026-09-03", Time: "19:00", Guests: 2}
	assert.NoError(t, db.Create(&other).Error)
	w, _ = doJSON(t, router, "DELETE", fmt.Sprintf("/api/bookings/%d", other.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
