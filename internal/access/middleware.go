package access

import (
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/session"
	"github.com/gin-gonic/gin"
)

// IdentityKey is where the auth middleware stores the per-request identity.
const IdentityKey = "identity"

// IdentityFrom retrieves the authenticated identity for this request, if any.
func IdentityFrom(c *gin.Context) *session.Identity {
	val, ok := c.Get(IdentityKey)
	if !ok {
		return nil
	}
	ident, ok := val.(*session.Identity)
	if !ok {
		return nil
	}
	return ident
}

// RequireRoles re-evaluates Authorize on every request. Unauthenticated
// callers get 401 with a login redirect hint; wrongly-roled callers get a
// plain 404 so protected routes are indistinguishable from missing ones.
func RequireRoles(required ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := Authorize(required, IdentityFrom(c))
		if decision.Allowed {
			c.Next()
			return
		}

		switch decision.Reason {
		case DenyUnauthenticated:
			c.JSON(401, gin.H{"error": "Authentication required", "redirect": "/login"})
		default:
			c.JSON(404, gin.H{"error": "Not found"})
		}
		c.Abort()
	}
}
