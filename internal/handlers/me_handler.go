package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/middleware"
	"github.com/BruksfildServices01/car-rental/internal/usecase/account"
)

type MeHandler struct {
	accounts *account.Service
}

func NewMeHandler(accounts *account.Service) *MeHandler {
	return &MeHandler{accounts: accounts}
}

// GET /me/
func (h *MeHandler) GetMe(c *gin.Context) {
	p := middleware.Principal(c)

	user, err := h.accounts.Profile(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": userPayload(user),
		"permissions": gin.H{
			"normal_user": access.IsNormalUser(p),
			"manager":     access.IsManager(p),
			"admin":       access.IsAdmin(p),
		},
	})
}
