package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/access"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/internal/models"
	"github.com/aadi-anilkumar-2005/vehicle-rental-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(required ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard", AuthMiddleware(), access.RequireRoles(required...), func(c *gin.Context) {
		ident := access.IdentityFrom(c)
		c.JSON(200, gin.H{"id": ident.ID, "role": ident.Role})
	})
	return r
}

func staffToken(t *testing.T) string {
	t.Helper()

	user := models.User{
		Name:  "Field Staff",
		Email: "staff@example.com",
		Role:  models.RoleStaff,
	}
	user.ID = 7

	token, err := utils.GenerateToken(&user)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(models.RoleStaff)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	assert.Contains(t, w.Body.String(), "staff")
}

func TestAuthMiddlewareTokenInQuery(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(models.RoleStaff)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard?token="+staffToken(t), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(models.RoleStaff)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	assert.Contains(t, w.Body.String(), "/login")
}

func TestAuthMiddlewareGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(models.RoleStaff)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	r.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
}

func TestAuthMiddlewareWrongRoleIsNotFound(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter(models.RoleAdmin)

	// Authenticated staff hitting an admin route gets 404, never a leak
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+staffToken(t))
	r.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}
