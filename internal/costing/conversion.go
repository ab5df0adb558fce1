package costing

import (
	"context"
	"errors"
	"sort"

	"foodcost-backend/internal/models"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ConversionContext: dönüşümü isteyen bağlam. ProductID bir CommonProduct ID'sidir.
type ConversionContext struct {
	OrganizationID uint
	OutletID       uint
	ProductID      uint
}

// Resolution: "1 from = Factor × to". Convertible=false NotConvertible sonucudur, hata değildir.
type Resolution struct {
	Convertible bool
	Factor      decimal.Decimal
	Scope       models.ConversionScope // aynı birimde boş
	Inverted    bool                   // ters yöndeki satırdan 1/factor ile çözüldü
	SourceID    uint
}

// NotConvertible: birim çifti bu bağlamda hiçbir yönde çözülemedi
var NotConvertible = Resolution{}

// Convert: miktarı hedef birime çevirir
func (r Resolution) Convert(qty decimal.Decimal) decimal.Decimal {
	return qty.Mul(r.Factor)
}

type scopeStrategy struct {
	scope models.ConversionScope
	match func(c models.UnitConversion, cc ConversionContext) bool
}

func sameID(p *uint, id uint) bool {
	return p != nil && id != 0 && *p == id
}

// En dar kapsamdan en genişe. İlk eşleşen kazanır, kapsamlar toplanmaz.
var conversionPrecedence = []scopeStrategy{
	{
		scope: models.ScopeProduct,
		match: func(c models.UnitConversion, cc ConversionContext) bool {
			return sameID(c.OrganizationID, cc.OrganizationID) && sameID(c.CommonProductID, cc.ProductID)
		},
	},
	{
		scope: models.ScopeOutlet,
		match: func(c models.UnitConversion, cc ConversionContext) bool {
			return sameID(c.OrganizationID, cc.OrganizationID) && sameID(c.OutletID, cc.OutletID)
		},
	},
	{
		scope: models.ScopeOrganization,
		match: func(c models.UnitConversion, cc ConversionContext) bool {
			return sameID(c.OrganizationID, cc.OrganizationID)
		},
	},
	{
		scope: models.ScopeSystem,
		match: func(c models.UnitConversion, cc ConversionContext) bool {
			return c.OrganizationID == nil
		},
	},
}

// ConversionResolver: precedence zinciriyle tek adımlı (ve tersi) birim dönüşümü
type ConversionResolver struct {
	store Store
}

func NewConversionResolver(store Store) *ConversionResolver {
	return &ConversionResolver{store: store}
}

func (r *ConversionResolver) Resolve(ctx context.Context, fromUnitID, toUnitID uint, cc ConversionContext) (Resolution, error) {
	if fromUnitID == toUnitID {
		return Resolution{Convertible: true, Factor: one}, nil
	}

	from, err := r.store.Unit(ctx, fromUnitID)
	if errors.Is(err, ErrNotFound) {
		return NotConvertible, nil
	}
	if err != nil {
		return NotConvertible, err
	}
	to, err := r.store.Unit(ctx, toUnitID)
	if errors.Is(err, ErrNotFound) {
		return NotConvertible, nil
	}
	if err != nil {
		return NotConvertible, err
	}

	rows, err := r.store.ConversionCandidates(ctx, cc.OrganizationID, fromUnitID, toUnitID)
	if err != nil {
		return NotConvertible, err
	}

	return resolveCandidates(rows, fromUnitID, toUnitID, from.UnitType == to.UnitType, cc), nil
}

// resolveCandidates: her kapsamda önce ileri yön, sonra ters yönün tersi denenir.
// Farklı ölçü türleri (ör: adet -> kg) sadece ürün kapsamında çözülebilir.
func resolveCandidates(rows []models.UnitConversion, fromUnitID, toUnitID uint, sameKind bool, cc ConversionContext) Resolution {
	sorted := make([]models.UnitConversion, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, strategy := range conversionPrecedence {
		if !sameKind && strategy.scope != models.ScopeProduct {
			break
		}
		if c, ok := pickConversion(sorted, strategy, fromUnitID, toUnitID, cc); ok {
			return Resolution{Convertible: true, Factor: c.Factor, Scope: strategy.scope, SourceID: c.ID}
		}
		if c, ok := pickConversion(sorted, strategy, toUnitID, fromUnitID, cc); ok {
			return Resolution{
				Convertible: true,
				Factor:      one.Div(c.Factor),
				Scope:       strategy.scope,
				Inverted:    true,
				SourceID:    c.ID,
			}
		}
	}
	return NotConvertible
}

func pickConversion(rows []models.UnitConversion, strategy scopeStrategy, fromUnitID, toUnitID uint, cc ConversionContext) (models.UnitConversion, bool) {
	for _, c := range rows {
		if c.Scope != strategy.scope || c.FromUnitID != fromUnitID || c.ToUnitID != toUnitID {
			continue
		}
		// sıfır/negatif katsayı bozuk veri
		if !c.Factor.IsPositive() {
			continue
		}
		if strategy.match(c, cc) {
			return c, true
		}
	}
	return models.UnitConversion{}, false
}
