package costing

import (
	"testing"

	"foodcost-backend/internal/database"
	"foodcost-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqlFixture struct {
	db               *gorm.DB
	org, otherOrg    models.Organization
	outlet1, outlet2 models.Outlet
	kg, g            models.Unit
}

func newSQLFixture(t *testing.T) *sqlFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	f := &sqlFixture{db: db}
	f.org = models.Organization{Name: "Lokanta"}
	f.otherOrg = models.Organization{Name: "Rakip"}
	f.create(t, &f.org)
	f.create(t, &f.otherOrg)
	f.outlet1 = models.Outlet{OrganizationID: f.org.ID, Name: "Merkez"}
	f.outlet2 = models.Outlet{OrganizationID: f.org.ID, Name: "Sahil"}
	f.create(t, &f.outlet1)
	f.create(t, &f.outlet2)
	f.kg = models.Unit{Name: "Kilogram", Abbreviation: "kg", UnitType: models.UnitTypeWeight}
	f.g = models.Unit{Name: "Gram", Abbreviation: "g", UnitType: models.UnitTypeWeight}
	f.create(t, &f.kg)
	f.create(t, &f.g)
	f.create(t, &models.UnitConversion{FromUnitID: f.kg.ID, ToUnitID: f.g.ID, Factor: decimal.NewFromInt(1000), Scope: models.ScopeSystem})
	return f
}

func (f *sqlFixture) create(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, f.db.Omit(clause.Associations).Create(v).Error)
}

func (f *sqlFixture) priced(t *testing.T, orgID uint, name string, outletID uint, price string) (models.CommonProduct, models.PurchasableProduct) {
	t.Helper()
	cp := models.CommonProduct{OrganizationID: orgID, Name: name}
	f.create(t, &cp)
	pp := models.PurchasableProduct{OrganizationID: orgID, CommonProductID: &cp.ID, Distributor: "Metro", SKU: "SKU-" + name, PriceUnitID: f.kg.ID}
	f.create(t, &pp)
	if price != "" {
		f.create(t, &models.ProductPrice{
			OrganizationID: orgID, PurchasableProductID: pp.ID, OutletID: outletID,
			EffectiveDate: day(1), UnitPrice: dec(price), CasePrice: dec(price),
		})
	}
	return cp, pp
}

func TestGormStorePriceUniquePerOutlet(t *testing.T) {
	f := newSQLFixture(t)
	_, pp := f.priced(t, f.org.ID, "Soğan", f.outlet1.ID, "2.50")

	// aynı SKU diğer outlet'e aynı tarihte yazılabilir
	f.create(t, &models.ProductPrice{
		OrganizationID: f.org.ID, PurchasableProductID: pp.ID, OutletID: f.outlet2.ID,
		EffectiveDate: day(1), UnitPrice: dec("3.50"), CasePrice: dec("35"),
	})
	// aynı outlet + tarih ikinci kez yazılamaz
	err := f.db.Omit(clause.Associations).Create(&models.ProductPrice{
		OrganizationID: f.org.ID, PurchasableProductID: pp.ID, OutletID: f.outlet1.ID,
		EffectiveDate: day(1), UnitPrice: dec("9"), CasePrice: dec("90"),
	}).Error
	require.Error(t, err)

	s := NewGormStore(f.db)
	p1, err := s.LatestPurchasablePrice(bg, f.org.ID, pp.ID, f.outlet1.ID)
	require.NoError(t, err)
	p2, err := s.LatestPurchasablePrice(bg, f.org.ID, pp.ID, f.outlet2.ID)
	require.NoError(t, err)
	requireDecimal(t, "2.5", p1.UnitPrice)
	requireDecimal(t, "3.5", p2.UnitPrice)
}

func TestGormStoreLatestPriceAndTenantFilter(t *testing.T) {
	f := newSQLFixture(t)
	cp, pp := f.priced(t, f.org.ID, "Soğan", f.outlet1.ID, "2.10")
	f.create(t, &models.ProductPrice{
		OrganizationID: f.org.ID, PurchasableProductID: pp.ID, OutletID: f.outlet1.ID,
		EffectiveDate: day(9), UnitPrice: dec("2.40"), CasePrice: dec("24"),
	})

	s := NewGormStore(f.db)
	p, err := s.LatestPrice(bg, f.org.ID, cp.ID, f.outlet1.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	requireDecimal(t, "2.4", p.UnitPrice)
	assert.Equal(t, f.kg.ID, p.PurchasableProduct.PriceUnitID)

	p, err = s.LatestPrice(bg, f.otherOrg.ID, cp.ID, f.outlet1.ID)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = s.Outlet(bg, f.otherOrg.ID, f.outlet1.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreConversionCandidates(t *testing.T) {
	f := newSQLFixture(t)
	other := f.otherOrg.ID
	f.create(t, &models.UnitConversion{FromUnitID: f.g.ID, ToUnitID: f.kg.ID, Factor: dec("0.002"), Scope: models.ScopeOrganization, OrganizationID: &other})

	rows, err := NewGormStore(f.db).ConversionCandidates(bg, f.org.ID, f.g.ID, f.kg.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ScopeSystem, rows[0].Scope)
	requireDecimal(t, "1000", rows[0].Factor)
}

func TestGormStoreSoftDeletedProductAndRecipeOrder(t *testing.T) {
	f := newSQLFixture(t)
	cp := models.CommonProduct{OrganizationID: f.org.ID, Name: "Fındık", ContainsTreeNuts: true}
	f.create(t, &cp)
	require.NoError(t, f.db.Delete(&cp).Error)

	s := NewGormStore(f.db)
	got, err := s.CommonProduct(bg, f.org.ID, cp.ID)
	require.NoError(t, err)
	assert.True(t, got.ContainsTreeNuts)
	assert.True(t, got.DeletedAt.Valid)

	r := models.Recipe{OrganizationID: f.org.ID, OutletID: f.outlet1.ID, Name: "Tatlı"}
	f.create(t, &r)
	f.create(t, &models.RecipeIngredient{RecipeID: r.ID, Position: 2, Description: "ikinci", Quantity: 1})
	f.create(t, &models.RecipeIngredient{RecipeID: r.ID, Position: 1, CommonProductID: &cp.ID, Quantity: 1})

	loaded, err := s.Recipe(bg, f.org.ID, r.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Ingredients, 2)
	assert.Equal(t, 1, loaded.Ingredients[0].Position)

	_, err = s.Recipe(bg, f.otherOrg.ID, r.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormSnapshotCostsRecipe(t *testing.T) {
	f := newSQLFixture(t)
	onion, _ := f.priced(t, f.org.ID, "Soğan", f.outlet1.ID, "2.50")
	servings := 2.0
	r := models.Recipe{OrganizationID: f.org.ID, OutletID: f.outlet1.ID, Name: "Çorba", Servings: &servings}
	f.create(t, &r)
	f.create(t, &models.RecipeIngredient{RecipeID: r.ID, Position: 1, CommonProductID: &onion.ID, Quantity: 500, UnitID: &f.g.ID})

	menu := models.BanquetMenu{OrganizationID: f.org.ID, OutletID: f.outlet1.ID, ServiceTypeID: 1, Name: "Kokteyl", PricePerPerson: dec("10")}
	f.create(t, &menu)
	item := models.BanquetMenuItem{MenuID: menu.ID, Position: 1, Name: "Çorba", RecipeID: &r.ID}
	f.create(t, &item)

	snapshot := GormSnapshot(f.db, DefaultOptions())
	err := snapshot(bg, func(e *Engine) error {
		rc, err := e.CostRecipe(bg, f.org.ID, r.ID, f.outlet1.ID)
		require.NoError(t, err)
		requireDecimal(t, "1.25", rc.TotalCost)
		requireDecimal(t, "0.625", *rc.CostPerServing)

		mc, err := e.CostMenu(bg, f.org.ID, menu.ID, 8)
		require.NoError(t, err)
		requireDecimal(t, "5", mc.MenuCost)
		requireDecimal(t, "80", mc.MenuRevenue)
		return nil
	})
	require.NoError(t, err)
}
