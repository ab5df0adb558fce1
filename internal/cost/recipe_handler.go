package cost

import (
	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/costing"

	"github.com/gofiber/fiber/v2"
)

// GET /api/recipes/:id/cost?outlet_id=3
// Maliyet ve alerjen profili aynı okuma görüntüsünden hesaplanır.
func (h *Handler) RecipeCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := auth.OrganizationID(c)
		if err != nil {
			return err
		}
		recipeID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		outletID, err := resolveOutletIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var resp RecipeCostResponse
		err = h.snapshot(c.UserContext(), func(e *costing.Engine) error {
			rc, err := e.CostRecipe(c.UserContext(), orgID, recipeID, outletID)
			if err != nil {
				return err
			}
			profile, err := e.Aggregate(c.UserContext(), orgID, recipeID)
			if err != nil {
				return err
			}
			resp = h.format.recipe(rc)
			resp.Allergens = allergens(profile)
			return nil
		})
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(resp)
	}
}

// GET /api/recipes/:id/allergens
func (h *Handler) RecipeAllergensHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := auth.OrganizationID(c)
		if err != nil {
			return err
		}
		recipeID, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var resp *AllergenResponse
		err = h.snapshot(c.UserContext(), func(e *costing.Engine) error {
			profile, err := e.Aggregate(c.UserContext(), orgID, recipeID)
			if err != nil {
				return err
			}
			resp = allergens(profile)
			return nil
		})
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(resp)
	}
}
