package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

// AdminUserController is the role-gated CRUD surface over users. Every
// projection goes through User.Sanitized or the json:"-" tags, so the
// password hash never reaches the wire.
type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db}
}

// GetAllUsers -> GET /api/admin/users
func (ac *AdminUserController) GetAllUsers(c *gin.Context) {
	page := utils.ParsePagination(c, 20)

	var count int64
	if err := ac.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("count users failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	var users []models.User
	if err := ac.DB.Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&users).Error; err != nil {
		utils.ErrorLogger.Printf("list users failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	sanitized := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitized())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     true,
		"message":    "Users retrieved successfully",
		"data":       sanitized,
		"totalPages": page.TotalPages(count),
		"totalCount": count,
		"page":       page.Page,
	})
}

// GetUserByID -> GET /api/admin/users/:userId
func (ac *AdminUserController) GetUserByID(c *gin.Context) {
	var user models.User
	if err := ac.DB.First(&user, c.Param("userId")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("User not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User retrieved", user.Sanitized())
}

// CreateUser -> POST /api/admin/users
func (ac *AdminUserController) CreateUser(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
		Role      string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("All fields are required"))
		return
	}

	if len(req.Password) < 6 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Password must be at least 6 characters"))
		return
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid role"))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := ac.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("bcrypt failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	user := models.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     email,
		Password:  string(hashed),
		Role:      role,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("Email already registered"))
			return
		}
		utils.ErrorLogger.Printf("create user failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User created successfully", user.Sanitized())
}

// UpdateUserRole -> PATCH /api/admin/users/:userId/role
func (ac *AdminUserController) UpdateUserRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Role is required"))
		return
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Invalid role"))
		return
	}

	var user models.User
	if err := ac.DB.First(&user, c.Param("userId")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("User not found"))
		return
	}

	user.Role = role
	if err := ac.DB.Model(&user).Update("role", role).Error; err != nil {
		utils.ErrorLogger.Printf("update user role failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User role updated successfully", user.Sanitized())
}

// DeleteUser -> DELETE /api/admin/users/:userId
func (ac *AdminUserController) DeleteUser(c *gin.Context) {
	var user models.User
	if err := ac.DB.First(&user, c.Param("userId")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("User not found"))
		return
	}

	if err := ac.DB.Delete(&user).Error; err != nil {
		utils.ErrorLogger.Printf("delete user failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Server error"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User deleted successfully", nil)
}

// GetUserStats -> GET /api/admin/users/stats
func (ac *AdminUserController) GetUserStats(c *gin.Context) {
	var total, admins, regulars, today int64

	ac.DB.Model(&models.User{}).Count(&total)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&regulars)

	startOfDay := time.Now().Truncate(24 * time.Hour)
	ac.DB.Model(&models.User{}).Where("created_at >= ?", startOfDay).Count(&today)

	utils.RespondJSON(c, http.StatusOK, "User stats retrieved", gin.H{
		"totalUsers":   total,
		"adminUsers":   admins,
		"regularUsers": regulars,
		"usersToday":   today,
	})
}
