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

func setupReviewRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	reviewCtrl := controllers.NewReviewController(db)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	router.GET("/api/reviews/item/:id", reviewCtrl.GetItemReviews)

	reviews := router.Group("/api/reviews")
	reviews.Use(middlewares.Auth())
	{
		reviews.POST("", reviewCtrl.CreateReview)
		reviews.GET("", adminOnly, reviewCtrl.GetAllReviews)
		reviews.PATCH("/:id/status", adminOnly, reviewCtrl.UpdateReviewStatus)
		reviews.DELETE("/:id", adminOnly, reviewCtrl.DeleteReview)
	}
	return router
}

func seedItem(t *testing.T, db *gorm.DB, title string) models.Item {
	t.Helper()
	item := models.Item{Title: title, Description: "desc", Price: 9.99, Category: "pizza", ImageURL: "http://img/" + title}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestCreateReviewSnapshots(t *testing.T) {
	db := setupTestDB(t)
	router := setupReviewRouter(db)
	_, token := seedUser(t, db, "review@test.com", models.RoleUser)
	item := seedItem(t, db, "Calzone")

	w, resp := doJSON(t, router, "POST", "/api/reviews", token, map[string]interface{}{
		"menuItemId": item.ID,
		"rating":     5,
		"comment":    "great",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := dataOf(t, resp)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "Calzone", data["itemTitle"])
	assert.Equal(t, "Test User", data["userName"])

	// The snapshot survives later edits to the item.
	assert.NoError(t, db.Model(&item).Update("title", "Renamed").Error)
	var stored models.Review
	assert.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "Calzone", stored.ItemTitle)
}

func TestCreateReviewValidation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReviewRouter(db)
	_, token := seedUser(t, db, "badreview@test.com", models.RoleUser)
	item := seedItem(t, db, "Pasta")

	w, _ := doJSON(t, router, "POST", "/api/reviews", token, map[string]interface{}{
		"menuItemId": item.ID,
		"rating":     6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, router, "POST", "/api/reviews", token, map[string]interface{}{
		"rating": 3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestItemReviewAggregation(t *testing.T) {
	db := setupTestDB(t)
	router := setupReviewRouter(db)
	user, _ := seedUser(t, db, "agg@test.com", models.RoleUser)
	item := seedItem(t, db, "Risotto")

	for _, rating := range []int{5, 4, 5} {
		review := models.Review{UserID: user.ID, MenuItemID: item.ID, Rating: rating, Status: models.ReviewApproved}
		assert.NoError(t, db.Create(&review).Error)
	}
	// A pending review must not count toward the public aggregate.
	pending := models.Review{UserID: user.ID, MenuItemID: item.ID, Rating: 1, Status: models.ReviewPending}
	assert.NoError(t, db.Create(&pending).Error)

	w, resp := doJSON(t, router, "GET", fmt.Sprintf("/api/reviews/item/%d", item.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataOf(t, resp)
	assert.Equal(t, float64(3), data["totalReviews"])
	assert.Equal(t, 4.67, data["averageRating"])

	distribution := data["ratingDistribution"].(map[string]interface{})
	assert.Equal(t, float64(2), distribution["5"])
	assert.Equal(t, float64(1), distribution["4"])
	assert.Equal(t, float64(0), distribution["1"])

	// Unknown item -> 404.
	w, _ = doJSON(t, router, "GET", "/api/reviews/item/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemReviewsEmptyAverage(t *testing.T) {
	db := setupTestDB(t)
	router := setupReviewRouter(db)
	item := seedItem(t, db, "Tiramisu")

	w, resp := doJSON(t, router, "GET", fmt.Sprintf("/api/reviews/item/%d", item.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := dataOf(t, resp)
	assert.Equal(t, float64(0), data["totalReviews"])
	assert.Equal(t, float64(0), data["averageRating"])
}

func TestReviewModeration(t *testing.T) {
	db := setupTestDB(t)
	router := setupReviewRouter(db)
	user, userToken := seedUser(t, db, "mod-user@test.com", models.RoleUser)
	_, adminToken := seedUser(t, db, "mod-admin@test.com", models.RoleAdmin)
	item := seedItem(t, db, "Focaccia")

	review := models.Review{UserID: user.ID, MenuItemID: item.ID, Rating: 4, Status: models.ReviewPending}
	assert.NoError(t, db.Create(&review).Error)

	url := fmt.Sprintf("/api/reviews/%d/status", review.ID)

	// Non-admin cannot moderate.
	w, _ := doJSON(t, router, "PATCH", url, userToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin approves.
	w, resp := doJSON(t, router, "PATCH", url, adminToken, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", dataOf(t, resp)["status"])

	// Invalid status value.
	w, _ = doJSON(t, router, "PATCH", url, adminToken, map[string]string{"status": "published"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Admin list includes per-status stats.
	w, resp = doJSON(t, router, "GET", "/api/reviews", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	stats := resp["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["approved"])

	// Hard delete.
	w, _ = doJSON(t, router, "DELETE", fmt.Sprintf("/api/reviews/%d", review.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
