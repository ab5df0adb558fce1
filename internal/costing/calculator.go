package costing

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RecipeCost: bir tarifin outlet'e özel maliyet dökümü
type RecipeCost struct {
	RecipeID uint
	OutletID uint
	Name     string

	TotalCost          decimal.Decimal
	Servings           *decimal.Decimal
	CostPerServing     *decimal.Decimal
	ServingsCalculable bool

	YieldAmount      *decimal.Decimal
	YieldUnitID      *uint
	CostPerYieldUnit *decimal.Decimal

	// MissingPriceCount: fiyatlanamayan ürün/alt tarif satırları (serbest metin hariç)
	MissingPriceCount int
	UnlinkedCount     int

	Lines []LineCost
}

// Complete: tüm bağlı satırlar fiyatlandı
func (r *RecipeCost) Complete() bool {
	if r.MissingPriceCount > 0 {
		return false
	}
	for _, l := range r.Lines {
		if l.Incomplete {
			return false
		}
	}
	return true
}

// CostRecipe: outlet zorunludur; outlet yoksa traversal hiç başlamaz
func (e *Engine) CostRecipe(ctx context.Context, orgID, recipeID, outletID uint) (*RecipeCost, error) {
	start := time.Now()
	if outletID == 0 {
		e.opts.Metrics.observe("recipe", start, ErrMissingOutletContext, 0)
		return nil, ErrMissingOutletContext
	}
	if _, err := e.store.Outlet(ctx, orgID, outletID); err != nil {
		e.opts.Metrics.observe("recipe", start, err, 0)
		return nil, err
	}

	rc, err := e.costRecipe(ctx, orgID, outletID, nil, recipeID)
	missing := 0
	if rc != nil {
		missing = rc.MissingPriceCount
	}
	e.opts.Metrics.observe("recipe", start, err, missing)
	if err != nil {
		if IsFatal(err) {
			e.log.Warn("tarif maliyeti hesaplanamadı",
				slog.Uint64("recipe_id", uint64(recipeID)),
				slog.Uint64("outlet_id", uint64(outletID)),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	e.log.Debug("tarif maliyeti hesaplandı",
		slog.Uint64("recipe_id", uint64(recipeID)),
		slog.Uint64("outlet_id", uint64(outletID)),
		slog.String("total_cost", rc.TotalCost.String()),
		slog.Int("missing_prices", rc.MissingPriceCount))
	return rc, nil
}

func (e *Engine) costRecipe(ctx context.Context, orgID, outletID uint, path recipePath, recipeID uint) (*RecipeCost, error) {
	recipe, next, err := e.walker.enter(ctx, orgID, path, recipeID)
	if err != nil {
		return nil, err
	}

	specs := make([]lineSpec, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		specs[i] = ingredientSpec(ing)
	}
	lines, err := e.evaluateLines(ctx, orgID, outletID, next, specs)
	if err != nil {
		return nil, err
	}

	rc := &RecipeCost{
		RecipeID:    recipe.ID,
		OutletID:    outletID,
		Name:        recipe.Name,
		YieldUnitID: recipe.YieldUnitID,
		Lines:       lines,
	}
	rc.summarize()

	if recipe.Servings != nil && *recipe.Servings > 0 {
		servings := decimal.NewFromFloat(*recipe.Servings)
		perServing := rc.TotalCost.Div(servings)
		rc.Servings = &servings
		rc.CostPerServing = &perServing
		rc.ServingsCalculable = true
	}
	if recipe.YieldAmount != nil && *recipe.YieldAmount > 0 {
		amount := decimal.NewFromFloat(*recipe.YieldAmount)
		rc.YieldAmount = &amount
		if recipe.YieldUnitID != nil {
			perUnit := rc.TotalCost.Div(amount)
			rc.CostPerYieldUnit = &perUnit
		}
	}
	return rc, nil
}

// summarize: toplam, eksik sayıları ve satır yüzdeleri. Fiyatsız satır toplama 0 katar.
func (rc *RecipeCost) summarize() {
	total := decimal.Zero
	for _, l := range rc.Lines {
		switch {
		case l.HasPrice:
			total = total.Add(*l.Cost)
		case l.Issue == IssueUnlinked:
			rc.UnlinkedCount++
		default:
			rc.MissingPriceCount++
		}
	}
	rc.TotalCost = total

	if total.IsZero() {
		return
	}
	for i := range rc.Lines {
		if !rc.Lines[i].HasPrice {
			continue
		}
		pct := rc.Lines[i].Cost.Div(total).Mul(hundred)
		rc.Lines[i].CostPercentage = &pct
	}
}

// evaluateLines: kardeş satırlar paralel değerlendirilir, sonuçlar satır sırasıyla döner.
// Birden fazla satır hata verirse sıradaki ilk hata döner, böylece sonuç deterministik kalır.
func (e *Engine) evaluateLines(ctx context.Context, orgID, outletID uint, path recipePath, specs []lineSpec) ([]LineCost, error) {
	lines := make([]LineCost, len(specs))
	errs := make([]error, len(specs))

	var g errgroup.Group
	g.SetLimit(e.opts.Parallelism)
	for i, spec := range specs {
		g.Go(func() error {
			lines[i], errs[i] = e.evaluateLine(ctx, orgID, outletID, path, spec)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// Variance: hedef ve gerçekleşen yemek maliyeti yüzdesi farkı
type Variance struct {
	ActualFoodCostPct *decimal.Decimal
	TargetFoodCostPct *decimal.Decimal
	Variance          *decimal.Decimal
}

// FoodCostVariance: actual = cost / revenue × 100, variance = target − actual.
// Gelir 0 ise iki değer de hesaplanamaz.
func FoodCostVariance(cost, revenue decimal.Decimal, target *decimal.Decimal) Variance {
	v := Variance{TargetFoodCostPct: target}
	if revenue.IsZero() {
		return v
	}
	actual := cost.Div(revenue).Mul(hundred)
	v.ActualFoodCostPct = &actual
	if target != nil {
		diff := target.Sub(actual)
		v.Variance = &diff
	}
	return v
}
