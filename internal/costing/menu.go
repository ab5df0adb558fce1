package costing

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

type MenuItemCost struct {
	ItemID        uint
	Name          string
	IsEnhancement bool

	PrepItems []LineCost
	PrepCost  decimal.Decimal

	// Recipe: menü kalemi bir tarife bağlıysa porsiyon maliyeti × misafir
	Recipe     *RecipeCost
	RecipeCost *decimal.Decimal

	EnhancementCost decimal.Decimal
	Cost            decimal.Decimal

	MissingPriceCount int
}

type MenuCost struct {
	MenuID     uint
	OutletID   uint
	Name       string
	GuestCount int

	MenuCost     decimal.Decimal
	MenuRevenue  decimal.Decimal
	Surcharge    decimal.Decimal
	CostPerGuest decimal.Decimal
	Variance

	MissingPriceCount int
	Items             []MenuItemCost
}

// CostMenu: fiyatlar menünün kendi outlet'inden okunur. Misafir sayısı saklanmaz,
// hesap anında çarpan olarak uygulanır.
func (e *Engine) CostMenu(ctx context.Context, orgID, menuID uint, guestCount int) (*MenuCost, error) {
	start := time.Now()
	mc, err := e.costMenu(ctx, orgID, menuID, guestCount)
	missing := 0
	if mc != nil {
		missing = mc.MissingPriceCount
	}
	e.opts.Metrics.observe("menu", start, err, missing)
	if err != nil {
		return nil, err
	}
	e.log.Debug("menü maliyeti hesaplandı",
		slog.Uint64("menu_id", uint64(menuID)),
		slog.Int("guest_count", guestCount),
		slog.String("menu_cost", mc.MenuCost.String()),
		slog.String("menu_revenue", mc.MenuRevenue.String()))
	return mc, nil
}

func (e *Engine) costMenu(ctx context.Context, orgID, menuID uint, guestCount int) (*MenuCost, error) {
	if guestCount <= 0 {
		return nil, ErrInvalidGuestCount
	}
	menu, err := e.store.BanquetMenu(ctx, orgID, menuID)
	if err != nil {
		return nil, err
	}
	if menu.OutletID == 0 {
		return nil, ErrMissingOutletContext
	}

	guests := decimal.NewFromInt(int64(guestCount))
	mc := &MenuCost{
		MenuID:     menu.ID,
		OutletID:   menu.OutletID,
		Name:       menu.Name,
		GuestCount: guestCount,
		MenuCost:   decimal.Zero,
		Surcharge:  decimal.Zero,
	}

	for _, item := range menu.Items {
		ic := MenuItemCost{
			ItemID:          item.ID,
			Name:            item.Name,
			IsEnhancement:   item.IsEnhancement,
			PrepCost:        decimal.Zero,
			EnhancementCost: decimal.Zero,
		}

		specs := make([]lineSpec, len(item.PrepItems))
		for i, p := range item.PrepItems {
			specs[i] = prepItemSpec(p, guestCount, e.opts.ApplyYieldToPrepItems)
		}
		lines, err := e.evaluateLines(ctx, orgID, menu.OutletID, nil, specs)
		if err != nil {
			return nil, err
		}
		ic.PrepItems = lines
		for _, l := range lines {
			switch {
			case l.HasPrice:
				ic.PrepCost = ic.PrepCost.Add(*l.Cost)
			case l.Issue != IssueUnlinked:
				ic.MissingPriceCount++
			}
		}

		if item.RecipeID != nil {
			rc, err := e.costRecipe(ctx, orgID, menu.OutletID, nil, *item.RecipeID)
			if err != nil {
				return nil, err
			}
			ic.Recipe = rc
			ic.MissingPriceCount += rc.MissingPriceCount
			if rc.CostPerServing != nil {
				cost := rc.CostPerServing.Mul(guests)
				ic.RecipeCost = &cost
			} else {
				ic.MissingPriceCount++
			}
		}

		if item.IsEnhancement {
			ic.EnhancementCost = item.AdditionalPrice.Mul(guests)
		}

		ic.Cost = ic.PrepCost.Add(ic.EnhancementCost)
		if ic.RecipeCost != nil {
			ic.Cost = ic.Cost.Add(*ic.RecipeCost)
		}
		mc.MenuCost = mc.MenuCost.Add(ic.Cost)
		mc.MissingPriceCount += ic.MissingPriceCount
		mc.Items = append(mc.Items, ic)
	}

	if guestCount < menu.MinGuestCount {
		mc.Surcharge = menu.UnderMinSurcharge.Mul(guests)
	}
	mc.MenuRevenue = menu.PricePerPerson.Mul(guests).Add(mc.Surcharge)
	mc.CostPerGuest = mc.MenuCost.Div(guests)
	mc.Variance = FoodCostVariance(mc.MenuCost, mc.MenuRevenue, menu.TargetFoodCostPct)
	return mc, nil
}
