package costing

import (
	"context"
	"testing"
	"time"

	"foodcost-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testOrg uint = 1

type fixture struct {
	t     *testing.T
	store *MemStore

	outlet1, outlet2 models.Outlet
	kg, g, each, lt  models.Unit
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := NewMemStore()
	f := &fixture{t: t, store: s}
	f.outlet1 = s.AddOutlet(models.Outlet{OrganizationID: testOrg, Name: "Merkez"})
	f.outlet2 = s.AddOutlet(models.Outlet{OrganizationID: testOrg, Name: "Sahil"})
	f.kg = s.AddUnit(models.Unit{Name: "Kilogram", Abbreviation: "kg", UnitType: models.UnitTypeWeight})
	f.g = s.AddUnit(models.Unit{Name: "Gram", Abbreviation: "g", UnitType: models.UnitTypeWeight})
	f.each = s.AddUnit(models.Unit{Name: "Adet", Abbreviation: "adet", UnitType: models.UnitTypeCount})
	f.lt = s.AddUnit(models.Unit{Name: "Litre", Abbreviation: "lt", UnitType: models.UnitTypeVolume})
	s.AddConversion(models.UnitConversion{
		FromUnitID: f.kg.ID, ToUnitID: f.g.ID,
		Factor: decimal.NewFromInt(1000), Scope: models.ScopeSystem,
	})
	return f
}

func (f *fixture) engine(opts ...func(*Options)) *Engine {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return NewEngine(f.store, o)
}

func (f *fixture) product(name string, set ...func(*models.CommonProduct)) models.CommonProduct {
	p := models.CommonProduct{OrganizationID: testOrg, Name: name}
	for _, fn := range set {
		fn(&p)
	}
	return f.store.AddCommonProduct(p)
}

// price: ürün için distribütör kaydı ve fiyat satırı açar
func (f *fixture) price(productID, outletID, unitID uint, unitPrice string, date time.Time) models.ProductPrice {
	f.t.Helper()
	pp := f.store.AddPurchasable(models.PurchasableProduct{
		OrganizationID:  testOrg,
		CommonProductID: &productID,
		Distributor:     "Metro",
		PriceUnitID:     unitID,
	})
	return f.priceFor(pp.ID, outletID, unitPrice, date)
}

func (f *fixture) priceFor(purchasableID, outletID uint, unitPrice string, date time.Time) models.ProductPrice {
	f.t.Helper()
	p, err := f.store.AddPrice(models.ProductPrice{
		OrganizationID:       testOrg,
		PurchasableProductID: purchasableID,
		OutletID:             outletID,
		EffectiveDate:        date,
		UnitPrice:            decimal.RequireFromString(unitPrice),
		CasePrice:            decimal.RequireFromString(unitPrice),
	})
	require.NoError(f.t, err)
	return p
}

func (f *fixture) recipe(name string, servings *float64, lines ...models.RecipeIngredient) models.Recipe {
	for i := range lines {
		lines[i].Position = i + 1
	}
	return f.store.AddRecipe(models.Recipe{
		OrganizationID: testOrg,
		OutletID:       f.outlet1.ID,
		Name:           name,
		Servings:       servings,
		Ingredients:    lines,
	})
}

func productLine(productID uint, qty float64, unitID uint) models.RecipeIngredient {
	return models.RecipeIngredient{CommonProductID: &productID, Quantity: qty, UnitID: &unitID}
}

func subRecipeLine(recipeID uint, qty float64) models.RecipeIngredient {
	return models.RecipeIngredient{SubRecipeID: &recipeID, Quantity: qty}
}

func textLine(desc string) models.RecipeIngredient {
	return models.RecipeIngredient{Description: desc, Quantity: 1}
}

func ptr[T any](v T) *T { return &v }

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "beklenen %s, gelen %s", want, got)
}

var bg = context.Background()
