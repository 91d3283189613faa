package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/car-rental/internal/domain/access"
	"github.com/BruksfildServices01/car-rental/internal/middleware"
)

// AppWebHandler serves the page payloads that carry no data of their own.
type AppWebHandler struct{}

func NewAppWebHandler() *AppWebHandler {
	return &AppWebHandler{}
}

// GET /
func (h *AppWebHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":          "home",
		"authenticated": middleware.Principal(c).Authenticated(),
	})
}

// GET /login/
func (h *AppWebHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":   "login",
		"fields": []string{"username", "password"},
		"next":   c.Query("next"),
	})
}

// GET /dashboard/
func (h *AppWebHandler) Dashboard(c *gin.Context) {
	p := middleware.Principal(c)
	c.JSON(http.StatusOK, gin.H{
		"page":       "dashboard",
		"is_manager": access.IsManager(p),
		"is_admin":   access.IsAdmin(p),
	})
}
