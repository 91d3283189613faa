package middleware

import (
	"context"
	"log"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/domain/rental"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/models"
)

type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// RefreshPrincipal replaces the role and superuser claims of the token with
// the stored user's, so a demotion takes effect before the token expires.
// A token whose user no longer exists is treated as anonymous. It must run
// after RequireLogin.
func RefreshPrincipal(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(ContextUserID)

		u, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, rental.ErrNotFound) {
				c.Set(ContextUserID, uint(0))
				c.Set(ContextUserRole, "")
				c.Set(ContextSuperuser, false)
				redirectToLogin(c)
				return
			}
			log.Printf("refresh principal %d: %v", userID, err)
			httperr.Internal(c, "internal_error", "Something went wrong.")
			c.Abort()
			return
		}

		c.Set(ContextUserRole, u.Role)
		c.Set(ContextSuperuser, u.IsSuperuser)
		c.Next()
	}
}
