package cost

import "github.com/gofiber/fiber/v2"

// Register: tüm uçlar JWTMiddleware arkasında, salt okunur
func (h *Handler) Register(api fiber.Router) {
	api.Get("/recipes/:id/cost", h.RecipeCostHandler())
	api.Get("/recipes/:id/cost/export", h.ExportRecipeCostHandler())
	api.Get("/recipes/:id/allergens", h.RecipeAllergensHandler())
	api.Get("/menus/:id/cost", h.MenuCostHandler())
	api.Get("/units/convert", h.ConvertUnitsHandler())
	api.Get("/products/:id/price", h.ProductPriceHandler())
}
