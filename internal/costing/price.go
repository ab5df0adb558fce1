package costing

import (
	"context"
	"time"

	"foodcost-backend/internal/models"

	"github.com/shopspring/decimal"
)

// PriceQuote: outlet'e özel en güncel fiyat. Found=false NoPrice sonucudur.
type PriceQuote struct {
	Found                bool
	UnitPrice            decimal.Decimal
	CasePrice            decimal.Decimal
	PurchaseUnitID       uint
	SourceDate           time.Time
	PurchasableProductID uint
	PriceID              uint
}

// NoPrice: ürün+outlet için fiyat geçmişi yok
var NoPrice = PriceQuote{}

func quoteFromRow(p *models.ProductPrice) PriceQuote {
	if p == nil {
		return NoPrice
	}
	return PriceQuote{
		Found:                true,
		UnitPrice:            p.UnitPrice,
		CasePrice:            p.CasePrice,
		PurchaseUnitID:       p.PurchasableProduct.PriceUnitID,
		SourceDate:           p.EffectiveDate,
		PurchasableProductID: p.PurchasableProductID,
		PriceID:              p.ID,
	}
}

// PriceResolver: fiyatlar outlet bazında tamamen bağımsızdır; outlet'ler arası ortalama alınmaz.
type PriceResolver struct {
	store Store
}

func NewPriceResolver(store Store) *PriceResolver {
	return &PriceResolver{store: store}
}

// LatestPrice: common product'a eşlenmiş tüm distribütör ürünleri içinde o outlet'teki
// en yeni effective_date satırı. Organizasyon geneli sorgu desteklenmez.
func (r *PriceResolver) LatestPrice(ctx context.Context, orgID, commonProductID, outletID uint) (PriceQuote, error) {
	if outletID == 0 {
		return NoPrice, ErrMissingOutletContext
	}
	row, err := r.store.LatestPrice(ctx, orgID, commonProductID, outletID)
	if err != nil {
		return NoPrice, err
	}
	return quoteFromRow(row), nil
}

// LatestPurchasablePrice: tek bir (distribütör ürünü, outlet) çifti için en güncel fiyat
func (r *PriceResolver) LatestPurchasablePrice(ctx context.Context, orgID, purchasableID, outletID uint) (PriceQuote, error) {
	if outletID == 0 {
		return NoPrice, ErrMissingOutletContext
	}
	row, err := r.store.LatestPurchasablePrice(ctx, orgID, purchasableID, outletID)
	if err != nil {
		return NoPrice, err
	}
	return quoteFromRow(row), nil
}
