package costing

import (
	"testing"

	"foodcost-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) menu(price string, minGuests int, items ...models.BanquetMenuItem) models.BanquetMenu {
	for i := range items {
		items[i].Position = i + 1
	}
	target := dec("28.0")
	return f.store.AddMenu(models.BanquetMenu{
		OrganizationID:    testOrg,
		OutletID:          f.outlet1.ID,
		Name:              "Düğün Menüsü",
		PricePerPerson:    dec(price),
		MinGuestCount:     minGuests,
		UnderMinSurcharge: dec("5"),
		TargetFoodCostPct: &target,
		Items:             items,
	})
}

func prep(productID uint, perGuest float64, unitID uint) models.PrepItem {
	return models.PrepItem{Name: "hazırlık", CommonProductID: &productID, AmountPerGuest: perGuest, UnitID: &unitID}
}

func TestMenuVarianceExample(t *testing.T) {
	f := newFixture(t)
	beef := f.product("Dana")
	f.price(beef.ID, f.outlet1.ID, f.kg.ID, "49", day(1))
	m := f.menu("80", 50, models.BanquetMenuItem{
		Name:      "Ana Yemek",
		PrepItems: []models.PrepItem{prep(beef.ID, 0.5, f.kg.ID)},
	})

	mc, err := f.engine().CostMenu(bg, testOrg, m.ID, 50)
	require.NoError(t, err)
	requireDecimal(t, "4000", mc.MenuRevenue)
	requireDecimal(t, "1225", mc.MenuCost)
	requireDecimal(t, "24.5", mc.CostPerGuest)
	assert.True(t, mc.Surcharge.IsZero())
	assert.Equal(t, "30.6", mc.ActualFoodCostPct.Round(1).String())
	assert.Equal(t, "-2.6", mc.Variance.Variance.Round(1).String())
	assert.Equal(t, f.outlet1.ID, mc.OutletID)
}

func TestMenuSurchargeBelowMinimum(t *testing.T) {
	f := newFixture(t)
	m := f.menu("80", 50)

	mc, err := f.engine().CostMenu(bg, testOrg, m.ID, 40)
	require.NoError(t, err)
	requireDecimal(t, "200", mc.Surcharge)
	requireDecimal(t, "3400", mc.MenuRevenue)
	requireDecimal(t, "0", mc.MenuCost)
}

func TestMenuEnhancementAndRecipe(t *testing.T) {
	f := newFixture(t)
	rice := f.product("Pirinç")
	f.price(rice.ID, f.outlet1.ID, f.kg.ID, "4", day(1))
	pilaf := f.recipe("Pilav", ptr(10.0), productLine(rice.ID, 1, f.kg.ID))

	m := f.menu("60", 0,
		models.BanquetMenuItem{Name: "Pilav", RecipeID: &pilaf.ID},
		models.BanquetMenuItem{Name: "Istakoz", IsEnhancement: true, AdditionalPrice: decimal.NewFromInt(12)},
	)

	mc, err := f.engine().CostMenu(bg, testOrg, m.ID, 10)
	require.NoError(t, err)
	requireDecimal(t, "4", mc.Items[0].Cost)
	requireDecimal(t, "120", mc.Items[1].Cost)
	requireDecimal(t, "124", mc.MenuCost)
	assert.Equal(t, 0, mc.MissingPriceCount)
}

// prep item yield davranışı ayarlanabilir; iki yön de test edilir
func TestPrepItemYieldIsConfigurable(t *testing.T) {
	f := newFixture(t)
	fish := f.product("Levrek")
	f.price(fish.ID, f.outlet1.ID, f.kg.ID, "20", day(1))
	item := prep(fish.ID, 0.25, f.kg.ID)
	item.YieldPercentage = ptr(50.0)
	m := f.menu("100", 0, models.BanquetMenuItem{Name: "Balık", PrepItems: []models.PrepItem{item}})

	plain, err := f.engine().CostMenu(bg, testOrg, m.ID, 4)
	require.NoError(t, err)
	requireDecimal(t, "20", plain.MenuCost)

	withYield, err := f.engine(func(o *Options) { o.ApplyYieldToPrepItems = true }).CostMenu(bg, testOrg, m.ID, 4)
	require.NoError(t, err)
	requireDecimal(t, "40", withYield.MenuCost)
}

func TestMenuGuards(t *testing.T) {
	f := newFixture(t)
	unpriced := f.product("Trüf")
	m := f.menu("50", 0, models.BanquetMenuItem{Name: "Trüflü", PrepItems: []models.PrepItem{prep(unpriced.ID, 0.01, f.kg.ID)}})
	e := f.engine()

	_, err := e.CostMenu(bg, testOrg, m.ID, 0)
	require.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = e.CostMenu(bg, 2, m.ID, 10)
	require.ErrorIs(t, err, ErrNotFound)

	mc, err := e.CostMenu(bg, testOrg, m.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, mc.MissingPriceCount)
	assert.Equal(t, IssueNoPrice, mc.Items[0].PrepItems[0].Issue)
}
