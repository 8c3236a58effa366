package middleware

import (
	"errors"
	"strings"

	"foodnova/internal/models"
	"foodnova/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware that checks for a valid access
// token and stores the caller's identity in the request locals.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, userID, err := authenticate(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		storeIdentity(c, claims, userID)
		return c.Next()
	}
}

// AdminRequired additionally rejects callers whose role is not admin.
func AdminRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, userID, err := authenticate(c, authService)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		if claims["role"] != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access required",
			})
		}
		storeIdentity(c, claims, userID)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, authService *services.AuthService) (jwt.MapClaims, uint, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, 0, errors.New("Authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, 0, errors.New("Authorization header format must be 'Bearer <token>'")
	}

	claims, err := authService.ValidateAccessToken(parts[1])
	if err != nil {
		return nil, 0, errors.New("Invalid or expired token")
	}
	userID, err := services.SubjectID(claims)
	if err != nil {
		return nil, 0, errors.New("Invalid or expired token")
	}
	return claims, userID, nil
}

func storeIdentity(c *fiber.Ctx, claims jwt.MapClaims, userID uint) {
	c.Locals("user_id", userID)
	c.Locals("email", claims["email"])
	c.Locals("role", claims["role"])
}
