package costing

import (
	"context"
	"errors"
	"time"

	"foodcost-backend/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type LineKind string

const (
	LineProduct   LineKind = "product"
	LineSubRecipe LineKind = "sub_recipe"
	LineText      LineKind = "text"
)

// lineSpec: tarif satırı ve prep item için ortak satır şekli
type lineSpec struct {
	ID          uint
	Position    int
	Name        string
	ProductID   *uint
	SubRecipeID *uint
	Quantity    decimal.Decimal
	UnitID      *uint
	Yield       *float64
	ApplyYield  bool
}

func ingredientSpec(ing models.RecipeIngredient) lineSpec {
	return lineSpec{
		ID:          ing.ID,
		Position:    ing.Position,
		Name:        ing.Description,
		ProductID:   ing.CommonProductID,
		SubRecipeID: ing.SubRecipeID,
		Quantity:    decimal.NewFromFloat(ing.Quantity),
		UnitID:      ing.UnitID,
		Yield:       ing.YieldPercentage,
		ApplyYield:  true,
	}
}

func prepItemSpec(p models.PrepItem, guests int, applyYield bool) lineSpec {
	return lineSpec{
		ID:          p.ID,
		Position:    p.Position,
		Name:        p.Name,
		ProductID:   p.CommonProductID,
		SubRecipeID: p.RecipeID,
		Quantity:    decimal.NewFromFloat(p.AmountPerGuest).Mul(decimal.NewFromInt(int64(guests))),
		UnitID:      p.UnitID,
		Yield:       p.YieldPercentage,
		ApplyYield:  applyYield,
	}
}

func (s lineSpec) kind() LineKind {
	switch {
	case s.SubRecipeID != nil:
		return LineSubRecipe
	case s.ProductID != nil:
		return LineProduct
	default:
		return LineText
	}
}

// LineCost: tek satırın maliyet sonucu. HasPrice=false olan satırın Cost'u nil'dir,
// 0 olarak gösterilmez.
type LineCost struct {
	LineID      uint
	Position    int
	Kind        LineKind
	Name        string
	ProductID   *uint
	SubRecipeID *uint

	Quantity          decimal.Decimal
	UnitID            *uint
	YieldPercentage   decimal.Decimal
	PurchasedQuantity decimal.Decimal

	// UnitPrice: satır biriminde ifade edilmiş birim fiyat
	UnitPrice      *decimal.Decimal
	Cost           *decimal.Decimal
	HasPrice       bool
	Issue          Issue
	PriceDate      *time.Time
	CostPercentage *decimal.Decimal

	// Incomplete: alt tarifin kendi içinde fiyatsız satırları var
	Incomplete bool
	SubRecipe  *RecipeCost
}

// effectiveYield: nil ya da 0 -> 100 (kayıp yok). 0-100 dışı değerler geçersiz.
func effectiveYield(y *float64) (decimal.Decimal, bool) {
	if y == nil || *y == 0 {
		return hundred, true
	}
	v := decimal.NewFromFloat(*y)
	if v.IsNegative() || v.GreaterThan(hundred) {
		return decimal.Zero, false
	}
	return v, true
}

// purchasedQuantity: net miktarı elde etmek için alınması gereken brüt miktar
func purchasedQuantity(qty, yield decimal.Decimal) decimal.Decimal {
	return qty.Mul(hundred).Div(yield)
}

func (e *Engine) evaluateLine(ctx context.Context, orgID, outletID uint, path recipePath, spec lineSpec) (LineCost, error) {
	line := LineCost{
		LineID:      spec.ID,
		Position:    spec.Position,
		Kind:        spec.kind(),
		Name:        spec.Name,
		ProductID:   spec.ProductID,
		SubRecipeID: spec.SubRecipeID,
		Quantity:    spec.Quantity,
		UnitID:      spec.UnitID,
	}

	yield := hundred
	validYield := true
	if spec.ApplyYield {
		yield, validYield = effectiveYield(spec.Yield)
	}
	line.YieldPercentage = yield

	switch line.Kind {
	case LineSubRecipe:
		return e.evaluateSubRecipeLine(ctx, orgID, outletID, path, spec, line, yield, validYield)
	case LineProduct:
		return e.evaluateProductLine(ctx, orgID, outletID, spec, line, yield, validYield)
	default:
		line.Issue = IssueUnlinked
		return line, nil
	}
}

func (e *Engine) evaluateProductLine(ctx context.Context, orgID, outletID uint, spec lineSpec, line LineCost, yield decimal.Decimal, validYield bool) (LineCost, error) {
	productID := *spec.ProductID
	if line.Name == "" {
		p, err := e.store.CommonProduct(ctx, orgID, productID)
		switch {
		case err == nil:
			line.Name = p.Name
		case !errors.Is(err, ErrNotFound):
			return line, err
		}
	}

	quote, err := e.prices.LatestPrice(ctx, orgID, productID, outletID)
	if err != nil {
		return line, err
	}
	if !quote.Found {
		line.Issue = IssueNoPrice
		return line, nil
	}

	// birimsiz satır fiyat biriminde kabul edilir
	lineUnit := quote.PurchaseUnitID
	if spec.UnitID != nil {
		lineUnit = *spec.UnitID
	}
	res, err := e.conversions.Resolve(ctx, lineUnit, quote.PurchaseUnitID, ConversionContext{
		OrganizationID: orgID,
		OutletID:       outletID,
		ProductID:      productID,
	})
	if err != nil {
		return line, err
	}
	if !res.Convertible {
		line.Issue = IssueNotConvertible
		return line, nil
	}
	if !validYield {
		line.Issue = IssueInvalidYield
		return line, nil
	}

	unitPrice := res.Convert(quote.UnitPrice)
	purchased := purchasedQuantity(spec.Quantity, yield)
	cost := purchased.Mul(unitPrice)
	date := quote.SourceDate

	line.PurchasedQuantity = purchased
	line.UnitPrice = &unitPrice
	line.Cost = &cost
	line.HasPrice = true
	line.PriceDate = &date
	return line, nil
}

// evaluateSubRecipeLine: birimsiz satır porsiyon maliyeti, birimli satır verim birimi
// maliyeti üzerinden hesaplanır
func (e *Engine) evaluateSubRecipeLine(ctx context.Context, orgID, outletID uint, path recipePath, spec lineSpec, line LineCost, yield decimal.Decimal, validYield bool) (LineCost, error) {
	sub, err := e.costRecipe(ctx, orgID, outletID, path, *spec.SubRecipeID)
	if errors.Is(err, ErrNotFound) {
		line.Issue = IssueSubRecipeMissing
		return line, nil
	}
	if err != nil {
		return line, err
	}
	line.SubRecipe = sub
	if line.Name == "" {
		line.Name = sub.Name
	}

	var unitPrice decimal.Decimal
	if spec.UnitID == nil {
		if sub.CostPerServing == nil {
			line.Issue = IssueSubRecipeUnit
			return line, nil
		}
		unitPrice = *sub.CostPerServing
	} else {
		if sub.CostPerYieldUnit == nil || sub.YieldUnitID == nil {
			line.Issue = IssueSubRecipeUnit
			return line, nil
		}
		res, err := e.conversions.Resolve(ctx, *spec.UnitID, *sub.YieldUnitID, ConversionContext{
			OrganizationID: orgID,
			OutletID:       outletID,
		})
		if err != nil {
			return line, err
		}
		if !res.Convertible {
			line.Issue = IssueSubRecipeUnit
			return line, nil
		}
		unitPrice = res.Convert(*sub.CostPerYieldUnit)
	}
	if !validYield {
		line.Issue = IssueInvalidYield
		return line, nil
	}

	purchased := purchasedQuantity(spec.Quantity, yield)
	cost := purchased.Mul(unitPrice)
	line.PurchasedQuantity = purchased
	line.UnitPrice = &unitPrice
	line.Cost = &cost
	line.HasPrice = true
	line.Incomplete = !sub.Complete()
	return line, nil
}
