package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/models"
	"github.com/marcisebestyen/ExamManager-sub001/internal/domain/services"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/code"
	"github.com/marcisebestyen/ExamManager-sub001/internal/error/response"
	"github.com/marcisebestyen/ExamManager-sub001/internal/infrastructure/config"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware binds the middleware to a token validator
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// authenticate validates the bearer token and stores its claims on the
// context; the caller decides role requirements.
func authenticate(c *gin.Context) (*services.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c)
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		response.Unauthorized(c)
		c.Abort()
		return nil, false
	}

	claims, err := jwtService.ExtractClaims(parts[1])
	if err != nil {
		response.Unauthorized(c)
		c.Abort()
		return nil, false
	}

	c.Set("userID", claims.UserID)
	c.Set("userName", claims.UserName)
	c.Set("role", claims.Role)
	c.Set("claims", claims)
	return claims, true
}

// Authentication requires any valid operator token
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// AuthenticateAdmin requires a valid token carrying the admin role
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}
		if claims.Role != models.RoleAdmin {
			response.Fail(c, code.ErrForbidden, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentOperatorID reads the authenticated operator id from the context.
// Zero means the request was not authenticated.
func CurrentOperatorID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
