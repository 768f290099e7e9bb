package middleware

import (
	"strings"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/access"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/session"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the token query parameter (WebSocket clients cannot set
// headers).
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Query("token")
}

// AuthMiddleware rebuilds the request identity from the bearer token on every
// request. Nothing downstream caches it; a logout between navigations takes
// effect on the next request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Authentication required", "redirect": "/login"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "Invalid token", "redirect": "/login"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"error": "Invalid token claims", "redirect": "/login"})
			c.Abort()
			return
		}

		jti, _ := claims["jti"].(string)
		if jti != "" && services.IsTokenRevoked(c.Request.Context(), jti) {
			c.JSON(401, gin.H{"error": "Session expired", "redirect": "/login"})
			c.Abort()
			return
		}

		id, ok := claims["id"].(float64)
		if !ok {
			c.JSON(401, gin.H{"error": "Invalid token claims", "redirect": "/login"})
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)

		ident := &session.Identity{
			ID:    uint(id),
			Name:  name,
			Email: email,
			Role:  models.Role(role),
		}

		c.Set(access.IdentityKey, ident)
		c.Set("userId", ident.ID)
		c.Set("role", string(ident.Role))
		c.Next()
	}
}
