package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
	"github.com/octa-services/plant-tracker/pkg/response"
)

// ContextStaffKey is the gin context key storing the staff claims.
const ContextStaffKey = "currentStaff"

type tokenValidator interface {
	ValidateToken(token string) (*models.StaffClaims, error)
}

// JWT protects routes by requiring a valid bearer access token.
func JWT(validator tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextStaffKey, claims)
		c.Next()
	}
}

// StaffFromContext returns the authenticated staff claims, if any.
func StaffFromContext(c *gin.Context) *models.StaffClaims {
	value, exists := c.Get(ContextStaffKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.StaffClaims)
	return claims
}
