package middleware

import (
	"errors"
	"strings"

	"studybyte/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CheckPermissionMiddleware returns a middleware that lets ADMIN tokens
// through and otherwise requires a live permission grant for the user.
func CheckPermissionMiddleware(db *gorm.DB, requiredPermission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get user ID from context (set by JWTMiddleware)
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}
		if role, _ := c.Locals("role").(string); role == models.RoleAdmin {
			return c.Next()
		}

		var permission models.Permission
		err := db.WithContext(c.UserContext()).
			Where("user_id = ? AND permission = ? AND is_deleted = ?", userID, requiredPermission, false).
			First(&permission).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		return c.Next()
	}
}

// RequireRole rejects callers whose token role is not one of roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if !allowed[role] {
			return JsonResponse(c, fiber.StatusForbidden, false, "This route is restricted to "+strings.Join(roles, ", ")+" accounts!", nil)
		}
		return c.Next()
	}
}
