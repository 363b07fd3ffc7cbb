package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/utils"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// Auth verifies the bearer token and attaches the principal (id + role)
// to the request context. No handler runs on a missing, malformed or
// expired token.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization header format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}

		if claims.UserID == 0 || !claims.Role.Valid() {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid principal in token"))
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// Principal reads the authenticated identity out of the context.
func Principal(c *gin.Context) (uint, models.Role, bool) {
	idVal, ok := c.Get(CtxUserID)
	if !ok {
		return 0, "", false
	}
	userID, ok := idVal.(uint)
	if !ok {
		return 0, "", false
	}
	roleVal, ok := c.Get(CtxRole)
	if !ok {
		return 0, "", false
	}
	role, ok := roleVal.(models.Role)
	if !ok {
		return 0, "", false
	}
	return userID, role, true
}
