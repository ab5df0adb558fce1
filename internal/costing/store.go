package costing

import (
	"context"

	"foodcost-backend/internal/models"
)

// Store: motorun okuduğu ilişkisel veri. Units ve system dönüşümleri hariç her çağrı
// organizasyon filtresi uygular; bulunamayan ya da başka kiracıya ait kayıt ErrNotFound döner.
type Store interface {
	Outlet(ctx context.Context, orgID, outletID uint) (*models.Outlet, error)
	Unit(ctx context.Context, unitID uint) (*models.Unit, error)
	// ConversionCandidates: (from,to) ya da (to,from) yönündeki, system veya orgID'ye ait satırlar
	ConversionCandidates(ctx context.Context, orgID, fromUnitID, toUnitID uint) ([]models.UnitConversion, error)
	// LatestPrice: common product'a eşli ürünlerin o outlet'teki en güncel fiyatı; yoksa nil, nil
	LatestPrice(ctx context.Context, orgID, commonProductID, outletID uint) (*models.ProductPrice, error)
	LatestPurchasablePrice(ctx context.Context, orgID, purchasableID, outletID uint) (*models.ProductPrice, error)
	// CommonProduct: soft-delete edilmiş kayıtları da döndürür
	CommonProduct(ctx context.Context, orgID, productID uint) (*models.CommonProduct, error)
	// Recipe: satırlar Position sırasıyla yüklenir
	Recipe(ctx context.Context, orgID, recipeID uint) (*models.Recipe, error)
	BanquetMenu(ctx context.Context, orgID, menuID uint) (*models.BanquetMenu, error)
}
