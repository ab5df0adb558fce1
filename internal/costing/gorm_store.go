package costing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"foodcost-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore: Store'un gorm uygulaması. Genelde read-only bir transaction üzerinde kurulur.
// Aynı bağlantı paralel satır değerlendirmesinde eşzamanlı kullanılmasın diye sorgular sıralanır.
type GormStore struct {
	mu sync.Mutex
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s okunamadı: %w", what, err)
}

func (s *GormStore) Outlet(ctx context.Context, orgID, outletID uint) (*models.Outlet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var o models.Outlet
	err := s.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", outletID, orgID).
		Take(&o).Error
	if err != nil {
		return nil, notFound(err, "outlet")
	}
	return &o, nil
}

func (s *GormStore) Unit(ctx context.Context, unitID uint) (*models.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u models.Unit
	if err := s.db.WithContext(ctx).Where("id = ?", unitID).Take(&u).Error; err != nil {
		return nil, notFound(err, "birim")
	}
	return &u, nil
}

func (s *GormStore) ConversionCandidates(ctx context.Context, orgID, fromUnitID, toUnitID uint) ([]models.UnitConversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []models.UnitConversion
	err := s.db.WithContext(ctx).
		Where("(from_unit_id = ? AND to_unit_id = ?) OR (from_unit_id = ? AND to_unit_id = ?)",
			fromUnitID, toUnitID, toUnitID, fromUnitID).
		Where("(scope = ? AND organization_id IS NULL) OR organization_id = ?", models.ScopeSystem, orgID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("birim dönüşümleri okunamadı: %w", err)
	}
	return rows, nil
}

func (s *GormStore) LatestPrice(ctx context.Context, orgID, commonProductID, outletID uint) (*models.ProductPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mapped := s.db.Model(&models.PurchasableProduct{}).
		Select("id").
		Where("organization_id = ? AND common_product_id = ?", orgID, commonProductID)

	var p models.ProductPrice
	err := s.db.WithContext(ctx).
		Preload("PurchasableProduct").
		Where("organization_id = ? AND outlet_id = ?", orgID, outletID).
		Where("purchasable_product_id IN (?)", mapped).
		Order("effective_date desc, id desc").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fiyat geçmişi okunamadı: %w", err)
	}
	return &p, nil
}

func (s *GormStore) LatestPurchasablePrice(ctx context.Context, orgID, purchasableID, outletID uint) (*models.ProductPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p models.ProductPrice
	err := s.db.WithContext(ctx).
		Preload("PurchasableProduct").
		Where("organization_id = ? AND outlet_id = ? AND purchasable_product_id = ?", orgID, outletID, purchasableID).
		Order("effective_date desc, id desc").
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fiyat geçmişi okunamadı: %w", err)
	}
	return &p, nil
}

func (s *GormStore) CommonProduct(ctx context.Context, orgID, productID uint) (*models.CommonProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Tarihsel satırlar silinmiş ürünlere de bakar
	var p models.CommonProduct
	err := s.db.WithContext(ctx).Unscoped().
		Where("id = ? AND organization_id = ?", productID, orgID).
		Take(&p).Error
	if err != nil {
		return nil, notFound(err, "ürün")
	}
	return &p, nil
}

func (s *GormStore) Recipe(ctx context.Context, orgID, recipeID uint) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var r models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc, id asc")
		}).
		Where("id = ? AND organization_id = ?", recipeID, orgID).
		Take(&r).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("tarif #%d", recipeID))
	}
	return &r, nil
}

func (s *GormStore) BanquetMenu(ctx context.Context, orgID, menuID uint) (*models.BanquetMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc, id asc")
	}

	var m models.BanquetMenu
	err := s.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("Items.PrepItems", byPosition).
		Where("id = ? AND organization_id = ?", menuID, orgID).
		Take(&m).Error
	if err != nil {
		return nil, notFound(err, "menü")
	}
	return &m, nil
}
