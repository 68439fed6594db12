package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{JwtMiddleware}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(ctx *fiber.Ctx) error {
		userId, _ := ctx.Locals("user_id").(string)
		role, _ := ctx.Locals("role").(string)
		return ctx.JSON(fiber.Map{"user_id": userId, "role": role})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := protectedApp()

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestJwtMiddlewareRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := protectedApp()

	token := signToken(t, "other_secret", jwt.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestJwtMiddlewarePopulatesLocals(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := protectedApp()

	userId := uuid.New().String()
	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id": userId,
		"role":    "dentist",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := protectedApp("staff", "admin")

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    "staff",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestRequireRoleBlocksOtherRoles(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	app := protectedApp("staff", "admin")

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id": uuid.New().String(),
		"role":    "patient",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
}
