package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/middlewares"
	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

// isDuplicateErr recognizes store-level unique constraint violations
// across the mysql and sqlite drivers.
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}

// principal pulls the authenticated identity from the context, writing
// a 401 when the auth middleware did not run.
func principal(c *gin.Context) (uint, models.Role, bool) {
	userID, role, ok := middlewares.Principal(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	return userID, role, ok
}
