package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"mercato/internal/domain/entity"
	"mercato/internal/domain/repository"
)

// RoleMiddleware gates routes by the role stored on the user profile. It runs
// after Authenticate, which puts the uid into the context.
type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

func (m *RoleMiddleware) SellerOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireRole(entity.RoleSeller, "Seller privileges required", next)
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireRole(entity.RoleAdmin, "Admin privileges required", next)
}

func (m *RoleMiddleware) requireRole(role, message string, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify privileges")
		}

		if user.Status != "active" {
			return echo.NewHTTPError(http.StatusForbidden, "Account is suspended")
		}
		if user.Role != role {
			return echo.NewHTTPError(http.StatusForbidden, message)
		}

		return next(c)
	}
}
