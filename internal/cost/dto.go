package cost

import (
	"foodcost-backend/internal/costing"

	"github.com/shopspring/decimal"
)

type LineCostResponse struct {
	LineID            uint     `json:"line_id"`
	Position          int      `json:"position"`
	Kind              string   `json:"kind"` // product | sub_recipe | text
	Name              string   `json:"name"`
	ProductID         *uint    `json:"product_id,omitempty"`
	SubRecipeID       *uint    `json:"sub_recipe_id,omitempty"`
	Quantity          float64  `json:"quantity"`
	UnitID            *uint    `json:"unit_id,omitempty"`
	YieldPercentage   float64  `json:"yield_percentage"`
	PurchasedQuantity float64  `json:"purchased_quantity"`
	UnitPrice         *float64 `json:"unit_price"`
	Cost              *float64 `json:"cost"` // fiyat yoksa null, 0 değil
	HasPrice          bool     `json:"has_price"`
	CostPercentage    *float64 `json:"cost_percentage"`
	Issue             string   `json:"issue,omitempty"`
	PriceDate         *string  `json:"price_date,omitempty"`
	Incomplete        bool     `json:"incomplete,omitempty"`
}

type RecipeCostResponse struct {
	RecipeID           uint               `json:"recipe_id"`
	OutletID           uint               `json:"outlet_id"`
	Name               string             `json:"name"`
	TotalCost          float64            `json:"total_cost"`
	Servings           *float64           `json:"servings"`
	CostPerServing     *float64           `json:"cost_per_serving"` // hesaplanamıyorsa null
	ServingsCalculable bool               `json:"servings_calculable"`
	CostPerYieldUnit   *float64           `json:"cost_per_yield_unit,omitempty"`
	MissingPriceCount  int                `json:"missing_price_count"`
	UnlinkedCount      int                `json:"unlinked_count"`
	Complete           bool               `json:"complete"`
	Ingredients        []LineCostResponse `json:"ingredients"`
	Allergens          *AllergenResponse  `json:"allergens,omitempty"`
}

type UnverifiedLineResponse struct {
	RecipeID uint   `json:"recipe_id"`
	LineID   uint   `json:"line_id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

type AllergenResponse struct {
	RecipeID   uint                     `json:"recipe_id"`
	Contains   []string                 `json:"contains"`
	Vegan      bool                     `json:"vegan"`
	Vegetarian bool                     `json:"vegetarian"`
	Unverified []UnverifiedLineResponse `json:"unverified"`
}

type MenuItemCostResponse struct {
	ItemID            uint               `json:"item_id"`
	Name              string             `json:"name"`
	IsEnhancement     bool               `json:"is_enhancement"`
	PrepCost          float64            `json:"prep_cost"`
	RecipeCost        *float64           `json:"recipe_cost,omitempty"`
	EnhancementCost   float64            `json:"enhancement_cost"`
	Cost              float64            `json:"cost"`
	MissingPriceCount int                `json:"missing_price_count"`
	PrepItems         []LineCostResponse `json:"prep_items"`
}

type MenuCostResponse struct {
	MenuID            uint                   `json:"menu_id"`
	OutletID          uint                   `json:"outlet_id"`
	Name              string                 `json:"name"`
	GuestCount        int                    `json:"guest_count"`
	MenuCost          float64                `json:"menu_cost"`
	MenuRevenue       float64                `json:"menu_revenue"`
	Surcharge         float64                `json:"surcharge"`
	CostPerGuest      float64                `json:"cost_per_guest"`
	ActualFoodCostPct *float64               `json:"actual_fc_pct"`
	TargetFoodCostPct *float64               `json:"target_fc_pct"`
	Variance          *float64               `json:"variance"`
	MissingPriceCount int                    `json:"missing_price_count"`
	Items             []MenuItemCostResponse `json:"items"`
}

func (f Format) money(d decimal.Decimal) float64 {
	return d.Round(f.MoneyPlaces).InexactFloat64()
}

// unit price'lar küçük olabilir (ör: gram fiyatı), iki basamak fazla tutulur
func (f Format) unitPrice(d decimal.Decimal) float64 {
	return d.Round(f.MoneyPlaces + 2).InexactFloat64()
}

func (f Format) percent(d decimal.Decimal) float64 {
	return d.Round(f.PercentPlaces).InexactFloat64()
}

func optional(d *decimal.Decimal, round func(decimal.Decimal) float64) *float64 {
	if d == nil {
		return nil
	}
	v := round(*d)
	return &v
}

func (f Format) lines(lines []costing.LineCost) []LineCostResponse {
	out := make([]LineCostResponse, 0, len(lines))
	for _, l := range lines {
		r := LineCostResponse{
			LineID:            l.LineID,
			Position:          l.Position,
			Kind:              string(l.Kind),
			Name:              l.Name,
			ProductID:         l.ProductID,
			SubRecipeID:       l.SubRecipeID,
			Quantity:          l.Quantity.InexactFloat64(),
			UnitID:            l.UnitID,
			YieldPercentage:   l.YieldPercentage.InexactFloat64(),
			PurchasedQuantity: l.PurchasedQuantity.Round(4).InexactFloat64(),
			UnitPrice:         optional(l.UnitPrice, f.unitPrice),
			Cost:              optional(l.Cost, f.money),
			HasPrice:          l.HasPrice,
			CostPercentage:    optional(l.CostPercentage, f.percent),
			Issue:             string(l.Issue),
			Incomplete:        l.Incomplete,
		}
		if l.PriceDate != nil {
			d := l.PriceDate.Format("2006-01-02")
			r.PriceDate = &d
		}
		out = append(out, r)
	}
	return out
}

func (f Format) recipe(rc *costing.RecipeCost) RecipeCostResponse {
	return RecipeCostResponse{
		RecipeID:           rc.RecipeID,
		OutletID:           rc.OutletID,
		Name:               rc.Name,
		TotalCost:          f.money(rc.TotalCost),
		Servings:           optional(rc.Servings, func(d decimal.Decimal) float64 { return d.InexactFloat64() }),
		CostPerServing:     optional(rc.CostPerServing, f.money),
		ServingsCalculable: rc.ServingsCalculable,
		CostPerYieldUnit:   optional(rc.CostPerYieldUnit, f.money),
		MissingPriceCount:  rc.MissingPriceCount,
		UnlinkedCount:      rc.UnlinkedCount,
		Complete:           rc.Complete(),
		Ingredients:        f.lines(rc.Lines),
	}
}

func allergens(p *costing.AllergenProfile) *AllergenResponse {
	r := &AllergenResponse{
		RecipeID:   p.RecipeID,
		Contains:   make([]string, 0, len(p.Contains)),
		Vegan:      p.Vegan,
		Vegetarian: p.Vegetarian,
		Unverified: make([]UnverifiedLineResponse, 0, len(p.Unverified)),
	}
	for _, k := range p.Contains {
		r.Contains = append(r.Contains, string(k))
	}
	for _, u := range p.Unverified {
		r.Unverified = append(r.Unverified, UnverifiedLineResponse{
			RecipeID: u.RecipeID, LineID: u.LineID, Name: u.Name, Reason: string(u.Reason),
		})
	}
	return r
}

func (f Format) menu(mc *costing.MenuCost) MenuCostResponse {
	r := MenuCostResponse{
		MenuID:            mc.MenuID,
		OutletID:          mc.OutletID,
		Name:              mc.Name,
		GuestCount:        mc.GuestCount,
		MenuCost:          f.money(mc.MenuCost),
		MenuRevenue:       f.money(mc.MenuRevenue),
		Surcharge:         f.money(mc.Surcharge),
		CostPerGuest:      f.money(mc.CostPerGuest),
		ActualFoodCostPct: optional(mc.ActualFoodCostPct, f.percent),
		TargetFoodCostPct: optional(mc.TargetFoodCostPct, f.percent),
		Variance:          optional(mc.Variance.Variance, f.percent),
		MissingPriceCount: mc.MissingPriceCount,
		Items:             make([]MenuItemCostResponse, 0, len(mc.Items)),
	}
	for _, it := range mc.Items {
		r.Items = append(r.Items, MenuItemCostResponse{
			ItemID:            it.ItemID,
			Name:              it.Name,
			IsEnhancement:     it.IsEnhancement,
			PrepCost:          f.money(it.PrepCost),
			RecipeCost:        optional(it.RecipeCost, f.money),
			EnhancementCost:   f.money(it.EnhancementCost),
			Cost:              f.money(it.Cost),
			MissingPriceCount: it.MissingPriceCount,
			PrepItems:         f.lines(it.PrepItems),
		})
	}
	return r
}
