package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/car-rental/internal/config"
	"github.com/BruksfildServices01/car-rental/internal/domain/access"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextSuperuser = "userSuperuser"

	// TokenCookie carries the JWT for browser clients.
	TokenCookie = "token"

	LoginPath     = "/login/"
	DashboardPath = "/dashboard/"
)

// Authenticate reads a JWT from the Authorization header or the token
// cookie and stores the caller in the context. It never rejects a request;
// RequireLogin and RequireRole do. Role claims are only as fresh as the
// token; RefreshPrincipal reloads them where access depends on them.
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok || userID <= 0 {
			c.Next()
			return
		}
		role, _ := claims["role"].(string)
		superuser, _ := claims["su"].(bool)

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)
		c.Set(ContextSuperuser, superuser)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// Principal returns the caller stored by Authenticate. The zero Principal
// means anonymous.
func Principal(c *gin.Context) access.Principal {
	userID := c.GetUint(ContextUserID)
	if userID == 0 {
		return access.Principal{}
	}
	role, _ := access.ParseRole(c.GetString(ContextUserRole))
	return access.Principal{
		UserID:    userID,
		Role:      role,
		Superuser: c.GetBool(ContextSuperuser),
	}
}

// RequireLogin redirects anonymous callers to the login page, keeping the
// requested path in ?next=.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Principal(c).Authenticated() {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := url.Values{"next": {c.Request.URL.RequestURI()}}
	c.Redirect(http.StatusFound, LoginPath+"?"+next.Encode())
	c.Abort()
}

// RequireRole sends authenticated callers without the role to the dashboard.
// It must run after RequireLogin.
func RequireRole(required access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !access.Authorize(Principal(c), required) {
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
