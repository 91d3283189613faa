package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/car-rental/internal/config"
	"github.com/BruksfildServices01/car-rental/internal/httperr"
	"github.com/BruksfildServices01/car-rental/internal/middleware"
	"github.com/BruksfildServices01/car-rental/internal/models"
	"github.com/BruksfildServices01/car-rental/internal/usecase/account"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	accounts *account.Service
	config   *config.Config
}

func NewAuthHandler(accounts *account.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username  string `form:"username" json:"username"`
	Email     string `form:"email" json:"email"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
	Role      string `form:"role" json:"role"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword  string `form:"old_password" json:"old_password" binding:"required"`
	NewPassword1 string `form:"new_password1" json:"new_password1" binding:"required"`
	NewPassword2 string `form:"new_password2" json:"new_password2" binding:"required"`
}

// --------- Handlers ---------

// POST /register/
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password1: req.Password1,
		Password2: req.Password2,
		Role:      req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  userPayload(user),
		"login": middleware.LoginPath,
	})
}

// POST /login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issueToken(c, http.StatusOK, user)
}

// POST /logout/
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

// POST /change_password/
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, err := h.accounts.ChangePassword(c.Request.Context(), account.ChangePasswordInput{
		UserID:       middleware.Principal(c).UserID,
		OldPassword:  req.OldPassword,
		NewPassword1: req.NewPassword1,
		NewPassword2: req.NewPassword2,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.issueToken(c, http.StatusOK, user)
}

func (h *AuthHandler) issueToken(c *gin.Context, status int, user *models.User) {
	token, err := h.generateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(tokenTTL.Seconds()), "/", "", false, true)

	c.JSON(status, gin.H{
		"user":  userPayload(user),
		"token": token,
	})
}

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"role":         user.Role,
		"is_superuser": user.IsSuperuser,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"su":   user.IsSuperuser,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
