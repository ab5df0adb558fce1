package auth

import (
	"strings"

	"foodcost-backend/internal/config"
	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		var user models.User
		if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email veya şifre hatalı")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":              user.ID,
				"name":            user.Name,
				"email":           user.Email,
				"role":            user.Role,
				"organization_id": user.OrganizationID,
				"outlet_id":       user.OutletID,
			},
		})
	}
}

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(uint)
		orgID, err := OrganizationID(c)
		if err != nil {
			return err
		}

		var user models.User
		err = database.DB.Preload("Outlet").
			Where("id = ? AND organization_id = ?", userID, orgID).
			First(&user).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		response := fiber.Map{
			"user_id":         user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"organization_id": user.OrganizationID,
			"outlet_id":       user.OutletID,
		}
		// Outlet yöneticisi ise outlet bilgisini de ekle
		if user.Outlet != nil {
			response["outlet"] = fiber.Map{
				"id":      user.Outlet.ID,
				"name":    user.Outlet.Name,
				"address": user.Outlet.Address,
			}
		}
		return c.JSON(response)
	}
}
