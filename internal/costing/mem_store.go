package costing

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"foodcost-backend/internal/models"
)

// MemStore: testler ve veritabanısız çalıştırmalar için bellek içi Store.
// Kiracı filtreleri ve fiyat tekilliği GormStore ile aynı kurallara uyar.
type MemStore struct {
	mu sync.RWMutex

	outlets      map[uint]models.Outlet
	units        map[uint]models.Unit
	conversions  []models.UnitConversion
	products     map[uint]models.CommonProduct
	purchasables map[uint]models.PurchasableProduct
	prices       []models.ProductPrice
	recipes      map[uint]models.Recipe
	menus        map[uint]models.BanquetMenu

	nextID uint
	reads  int
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		outlets:      map[uint]models.Outlet{},
		units:        map[uint]models.Unit{},
		products:     map[uint]models.CommonProduct{},
		purchasables: map[uint]models.PurchasableProduct{},
		recipes:      map[uint]models.Recipe{},
		menus:        map[uint]models.BanquetMenu{},
		nextID:       1000,
	}
}

func (s *MemStore) id(cur uint) uint {
	if cur != 0 {
		return cur
	}
	s.nextID++
	return s.nextID
}

// Reads: store'a yapılan okuma sayısı
func (s *MemStore) Reads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads
}

func (s *MemStore) touch() {
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
}

func (s *MemStore) AddOutlet(o models.Outlet) models.Outlet {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.id(o.ID)
	s.outlets[o.ID] = o
	return o
}

func (s *MemStore) AddUnit(u models.Unit) models.Unit {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.id(u.ID)
	s.units[u.ID] = u
	return u
}

func (s *MemStore) AddConversion(c models.UnitConversion) models.UnitConversion {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id(c.ID)
	s.conversions = append(s.conversions, c)
	return c
}

func (s *MemStore) AddCommonProduct(p models.CommonProduct) models.CommonProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id(p.ID)
	s.products[p.ID] = p
	return p
}

func (s *MemStore) AddPurchasable(p models.PurchasableProduct) models.PurchasableProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id(p.ID)
	s.purchasables[p.ID] = p
	return p
}

// AddPrice: (ürün, outlet, tarih) zaten varsa hata döner, mevcut satır ezilmez
func (s *MemStore) AddPrice(p models.ProductPrice) (models.ProductPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.prices {
		if existing.PurchasableProductID == p.PurchasableProductID &&
			existing.OutletID == p.OutletID &&
			existing.EffectiveDate.Equal(p.EffectiveDate) {
			return models.ProductPrice{}, fmt.Errorf("fiyat zaten var (ürün %d, outlet %d, %s)",
				p.PurchasableProductID, p.OutletID, p.EffectiveDate.Format("2006-01-02"))
		}
	}
	p.ID = s.id(p.ID)
	s.prices = append(s.prices, p)
	return p, nil
}

func (s *MemStore) AddRecipe(r models.Recipe) models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id(r.ID)
	for i := range r.Ingredients {
		r.Ingredients[i].ID = s.id(r.Ingredients[i].ID)
		r.Ingredients[i].RecipeID = r.ID
	}
	s.recipes[r.ID] = r
	return r
}

func (s *MemStore) AddMenu(m models.BanquetMenu) models.BanquetMenu {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.id(m.ID)
	for i := range m.Items {
		m.Items[i].ID = s.id(m.Items[i].ID)
		m.Items[i].MenuID = m.ID
		for j := range m.Items[i].PrepItems {
			m.Items[i].PrepItems[j].ID = s.id(m.Items[i].PrepItems[j].ID)
			m.Items[i].PrepItems[j].MenuItemID = m.Items[i].ID
		}
	}
	s.menus[m.ID] = m
	return m
}

func (s *MemStore) Outlet(ctx context.Context, orgID, outletID uint) (*models.Outlet, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.outlets[outletID]
	if !ok || o.OrganizationID != orgID {
		return nil, fmt.Errorf("outlet: %w", ErrNotFound)
	}
	return &o, nil
}

func (s *MemStore) Unit(ctx context.Context, unitID uint) (*models.Unit, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.units[unitID]
	if !ok {
		return nil, fmt.Errorf("birim: %w", ErrNotFound)
	}
	return &u, nil
}

func (s *MemStore) ConversionCandidates(ctx context.Context, orgID, fromUnitID, toUnitID uint) ([]models.UnitConversion, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.UnitConversion
	for _, c := range s.conversions {
		pair := (c.FromUnitID == fromUnitID && c.ToUnitID == toUnitID) ||
			(c.FromUnitID == toUnitID && c.ToUnitID == fromUnitID)
		if !pair {
			continue
		}
		system := c.Scope == models.ScopeSystem && c.OrganizationID == nil
		tenant := c.OrganizationID != nil && *c.OrganizationID == orgID
		if system || tenant {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) latest(match func(p models.ProductPrice, pp models.PurchasableProduct) bool) *models.ProductPrice {
	var best *models.ProductPrice
	for _, p := range s.prices {
		pp, ok := s.purchasables[p.PurchasableProductID]
		if !ok || !match(p, pp) {
			continue
		}
		if best == nil || p.EffectiveDate.After(best.EffectiveDate) ||
			(p.EffectiveDate.Equal(best.EffectiveDate) && p.ID > best.ID) {
			row := p
			row.PurchasableProduct = pp
			best = &row
		}
	}
	return best
}

func (s *MemStore) LatestPrice(ctx context.Context, orgID, commonProductID, outletID uint) (*models.ProductPrice, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest(func(p models.ProductPrice, pp models.PurchasableProduct) bool {
		return p.OrganizationID == orgID && p.OutletID == outletID &&
			pp.OrganizationID == orgID &&
			pp.CommonProductID != nil && *pp.CommonProductID == commonProductID
	}), nil
}

func (s *MemStore) LatestPurchasablePrice(ctx context.Context, orgID, purchasableID, outletID uint) (*models.ProductPrice, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest(func(p models.ProductPrice, pp models.PurchasableProduct) bool {
		return p.OrganizationID == orgID && p.OutletID == outletID && pp.ID == purchasableID
	}), nil
}

func (s *MemStore) CommonProduct(ctx context.Context, orgID, productID uint) (*models.CommonProduct, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok || p.OrganizationID != orgID {
		return nil, fmt.Errorf("ürün: %w", ErrNotFound)
	}
	return &p, nil
}

func (s *MemStore) Recipe(ctx context.Context, orgID, recipeID uint) (*models.Recipe, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[recipeID]
	if !ok || r.OrganizationID != orgID {
		return nil, fmt.Errorf("tarif #%d: %w", recipeID, ErrNotFound)
	}
	lines := make([]models.RecipeIngredient, len(r.Ingredients))
	copy(lines, r.Ingredients)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	r.Ingredients = lines
	return &r, nil
}

func (s *MemStore) BanquetMenu(ctx context.Context, orgID, menuID uint) (*models.BanquetMenu, error) {
	s.touch()
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menus[menuID]
	if !ok || m.OrganizationID != orgID {
		return nil, fmt.Errorf("menü: %w", ErrNotFound)
	}
	return &m, nil
}
