package cost

import (
	"strconv"

	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/costing"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/menus/:id/cost?guest_count=50
// Fiyatlar menünün bağlı olduğu outlet'ten okunur.
func (h *Handler) MenuCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := auth.OrganizationID(c)
		if err != nil {
			return err
		}
		menuID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		guestCount, err := strconv.Atoi(c.Query("guest_count"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "guest_count zorunlu ve sayı olmalı")
		}

		var mc *costing.MenuCost
		err = h.snapshot(c.UserContext(), func(e *costing.Engine) error {
			mc, err = e.CostMenu(c.UserContext(), orgID, menuID, guestCount)
			return err
		})
		if err != nil {
			return h.fail(c, err)
		}

		// outlet yöneticisi başka outlet'in menüsünü göremez
		if role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole); role == models.RoleOutletManager {
			pinned, _ := c.Locals(auth.CtxOutletIDKey).(*uint)
			if pinned == nil || *pinned != mc.OutletID {
				return h.fail(c, costing.ErrNotFound)
			}
		}
		return c.JSON(h.format.menu(mc))
	}
}
