package auth

import (
	"fmt"
	"strings"

	"foodcost-backend/internal/config"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey         = "user_id"
	CtxUserRoleKey       = "user_role"
	CtxOrganizationIDKey = "organization_id"
	CtxOutletIDKey       = "outlet_id"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header eksik")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization formatı 'Bearer <token>' olmalı")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("geçersiz imzalama yöntemi")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token çözümlenemedi")
		}
		// Kiracısız token hiçbir maliyet sorgusuna giremez
		if claims.OrganizationID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Token organizasyon bilgisi içermiyor")
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxOrganizationIDKey, claims.OrganizationID)
		c.Locals(CtxOutletIDKey, claims.OutletID)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "Bu işlem için yetkiniz yok")
	}
}

// OrganizationID: JWTMiddleware'in koyduğu kiracı
func OrganizationID(c *fiber.Ctx) (uint, error) {
	orgID, ok := c.Locals(CtxOrganizationIDKey).(uint)
	if !ok || orgID == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Organizasyon bilgisi alınamadı")
	}
	return orgID, nil
}
