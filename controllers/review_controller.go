package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// CreateReview -> POST /api/reviews
//
// Snapshots the item's title/image and the author's display name at
// submission time so the review renders stably even if either changes
// later. New reviews always start in pending moderation.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	userID, _, ok := principal(c)
	if !ok {
		return
	}

	var req struct {
		MenuItemID uint   `json:"menuItemId" binding:"required"`
		Rating     int    `json:"rating" binding:"required,min=1,max=5"`
		Comment    string `json:"comment" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("menuItemId and rating (1-5) required"))
		return
	}

	var author models.User
	if err := rc.DB.First(&author, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("User not found"))
		return
	}

	review := models.Review{
		UserID:     userID,
		MenuItemID: req.MenuItemID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Status:     models.ReviewPending,
		UserName:   author.DisplayName(),
		UserEmail:  author.Email,
	}

	var item models.Item
	if err := rc.DB.First(&item, req.MenuItemID).Error; err == nil {
		review.ItemTitle = item.Title
		review.ItemImageURL = item.ImageURL
	}

	if err := rc.DB.Create(&review).Error; err != nil {
		utils.ErrorLogger.Printf("create review failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to submit review"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review submitted", review)
}

// GetItemReviews -> GET /api/reviews/item/:id
//
// Public view: approved reviews only unless ?status= selects another
// bucket explicitly. Returns the count, the mean rating rounded to two
// decimals and a five-bucket star histogram.
func (rc *ReviewController) GetItemReviews(c *gin.Context) {
	itemID := c.Param("id")

	var item models.Item
	if err := rc.DB.First(&item, itemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Item not found"))
		return
	}

	status := models.ReviewApproved
	if raw := c.Query("status"); raw != "" {
		status = models.ReviewStatus(raw)
		if !status.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid status"))
			return
		}
	}

	var reviews []models.Review
	if err := rc.DB.Where("menu_item_id = ? AND status = ?", item.ID, status).
		Order("created_at DESC").Limit(50).
		Find(&reviews).Error; err != nil {
		utils.ErrorLogger.Printf("fetch item reviews failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to fetch reviews"))
		return
	}

	total := len(reviews)
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		distribution[r.Rating]++
	}

	average := 0.0
	if total > 0 {
		average = math.Round(float64(sum)/float64(total)*100) / 100
	}

	utils.RespondJSON(c, http.StatusOK, "Reviews retrieved", gin.H{
		"reviews":            reviews,
		"totalReviews":       total,
		"averageRating":      average,
		"ratingDistribution": distribution,
	})
}

// GetAllReviews -> GET /api/reviews (admin)
func (rc *ReviewController) GetAllReviews(c *gin.Context) {
	page := utils.ParsePagination(c, 20)

	query := rc.DB.Model(&models.Review{})
	if raw := c.Query("status"); raw != "" {
		status := models.ReviewStatus(raw)
		if !status.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid status"))
			return
		}
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("count reviews failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to fetch reviews"))
		return
	}

	var reviews []models.Review
	if err := query.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&reviews).Error; err != nil {
		utils.ErrorLogger.Printf("list reviews failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to fetch reviews"))
		return
	}

	// Per-status counts for the moderation dashboard.
	type statusCount struct {
		Status models.ReviewStatus
		Count  int64
	}
	var rows []statusCount
	stats := map[models.ReviewStatus]int64{}
	if err := rc.DB.Model(&models.Review{}).
		Select("status, COUNT(*) as count").
		Group("status").Scan(&rows).Error; err == nil {
		for _, row := range rows {
			stats[row.Status] = row.Count
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    "Reviews retrieved successfully",
		"data":       reviews,
		"stats":      stats,
		"totalPages": page.TotalPages(count),
		"totalCount": count,
		"page":       page.Page,
	})
}

// UpdateReviewStatus -> PATCH /api/reviews/:id/status (admin)
func (rc *ReviewController) UpdateReviewStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Status is required"))
		return
	}

	status := models.ReviewStatus(req.Status)
	if !status.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid status"))
		return
	}

	var review models.Review
	if err := rc.DB.First(&review, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Review not found"))
		return
	}

	review.Status = status
	if err := rc.DB.Model(&review).Update("status", status).Error; err != nil {
		utils.ErrorLogger.Printf("update review status failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to update review status"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Status updated", review)
}

// DeleteReview -> DELETE /api/reviews/:id (admin)
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	var review models.Review
	if err := rc.DB.First(&review, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Review not found"))
		return
	}

	if err := rc.DB.Delete(&review).Error; err != nil {
		utils.ErrorLogger.Printf("delete review failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Failed to delete review"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Review deleted", nil)
}
