package handlers

import (
	"errors"
	"time"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/middleware"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/services"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/session"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=customer owner staff admin"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and logs it straight in
func Register(db *gorm.DB) gin.HandlerFunc {
	accounts := session.NewGormAccounts(db)

	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Each user agent starts its own anonymous session; signup installs
		// the new identity into it.
		sess := session.NewStore(accounts, accounts)
		ident, err := sess.Signup(c.Request.Context(), session.NewUser{
			Name:        input.Name,
			Email:       input.Email,
			Password:    input.Password,
			PhoneNumber: input.Phone,
			Role:        models.Role(input.Role),
		})
		if err != nil {
			switch {
			case errors.Is(err, session.ErrDuplicateEmail):
				c.JSON(409, gin.H{"error": "Email already registered"})
			case errors.Is(err, session.ErrInvalidInput):
				c.JSON(400, gin.H{"error": "Invalid signup details"})
			default:
				c.JSON(500, gin.H{"error": "Failed to create user"})
			}
			return
		}

		token, err := tokenForIdentity(db, ident)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(201, gin.H{
			"token": token,
			"user": gin.H{
				"id":          ident.ID,
				"email":       ident.Email,
				"name":        ident.Name,
				"phoneNumber": ident.PhoneNumber,
				"role":        ident.Role,
			},
		})
	}
}

// Login verifies credentials and issues a token
func Login(db *gorm.DB) gin.HandlerFunc {
	accounts := session.NewGormAccounts(db)

	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		sess := session.NewStore(accounts, accounts)
		ident, err := sess.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				c.JSON(401, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(500, gin.H{"error": "Login failed"})
			return
		}

		token, err := tokenForIdentity(db, ident)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"user": gin.H{
				"id":          ident.ID,
				"email":       ident.Email,
				"name":        ident.Name,
				"phoneNumber": ident.PhoneNumber,
				"role":        ident.Role,
			},
		})
	}
}

// Logout revokes the presented token. It deliberately sits outside the auth
// middleware: the second of two quick logout taps carries an already-revoked
// token, and the middleware would reject it before the handler could no-op.
// Logging out twice, or without a usable token at all, always answers 200.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := middleware.TokenFromRequest(c)
		if tokenString == "" {
			c.JSON(200, gin.H{"message": "Logged out"})
			return
		}

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			// An expired or mangled token cannot open a session anyway
			c.JSON(200, gin.H{"message": "Logged out"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(200, gin.H{"message": "Logged out"})
			return
		}

		jti, _ := claims["jti"].(string)
		if jti == "" {
			c.JSON(200, gin.H{"message": "Logged out"})
			return
		}

		ttl := time.Hour * 24 * 7
		if exp, ok := claims["exp"].(float64); ok {
			if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
				ttl = remaining
			}
		}

		if err := services.RevokeToken(c.Request.Context(), jti, ttl); err != nil {
			c.JSON(500, gin.H{"error": "Failed to log out"})
			return
		}

		c.JSON(200, gin.H{"message": "Logged out"})
	}
}

func tokenForIdentity(db *gorm.DB, ident *session.Identity) (string, error) {
	var user models.User
	if err := db.First(&user, ident.ID).Error; err != nil {
		return "", err
	}
	return utils.GenerateToken(&user)
}
