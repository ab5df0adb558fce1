package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommonProduct: organizasyon seviyesinde normalize edilmiş malzeme (ör: "Kırmızı Soğan").
// Tarihsel tarif satırları referans verdiği için sadece soft-delete yapılır.
type CommonProduct struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"index;not null"`
	Name           string `gorm:"size:150;not null"`

	// 14 alerjen
	ContainsGluten      bool `gorm:"not null;default:false"`
	ContainsCrustaceans bool `gorm:"not null;default:false"`
	ContainsEggs        bool `gorm:"not null;default:false"`
	ContainsFish        bool `gorm:"not null;default:false"`
	ContainsPeanuts     bool `gorm:"not null;default:false"`
	ContainsSoybeans    bool `gorm:"not null;default:false"`
	ContainsMilk        bool `gorm:"not null;default:false"`
	ContainsTreeNuts    bool `gorm:"not null;default:false"`
	ContainsCelery      bool `gorm:"not null;default:false"`
	ContainsMustard     bool `gorm:"not null;default:false"`
	ContainsSesame      bool `gorm:"not null;default:false"`
	ContainsSulphites   bool `gorm:"not null;default:false"`
	ContainsLupin       bool `gorm:"not null;default:false"`
	ContainsMolluscs    bool `gorm:"not null;default:false"`

	// Diyet bayrakları
	IsVegan      bool `gorm:"not null;default:false"`
	IsVegetarian bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PurchasableProduct: distribütöre özel ürün, bir CommonProduct'a eşlenir
type PurchasableProduct struct {
	ID              uint  `gorm:"primaryKey"`
	OrganizationID  uint  `gorm:"index;not null"`
	CommonProductID *uint `gorm:"index"`
	CommonProduct   *CommonProduct
	Distributor     string  `gorm:"size:100;not null"`
	SKU             string  `gorm:"size:50;index"`
	Description     string  `gorm:"size:255"`
	PriceUnitID     uint    `gorm:"not null"` // hesaplanan birim fiyatın ifade edildiği birim
	PriceUnit       Unit    `gorm:"foreignKey:PriceUnitID"`
	PackSize        float64 // koli içindeki PriceUnit miktarı
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductPrice: fiyat geçmişi. (ürün, outlet, tarih) tekildir; iki outlet aynı SKU'yu
// farklı fiyatla içe aktarabilir ve birbirinin satırını ezmez.
type ProductPrice struct {
	ID                   uint `gorm:"primaryKey"`
	OrganizationID       uint `gorm:"index;not null"`
	PurchasableProductID uint `gorm:"not null;uniqueIndex:idx_price_product_outlet_date,priority:1"`
	PurchasableProduct   PurchasableProduct
	OutletID             uint      `gorm:"not null;uniqueIndex:idx_price_product_outlet_date,priority:2"`
	EffectiveDate        time.Time `gorm:"not null;uniqueIndex:idx_price_product_outlet_date,priority:3"`
	CasePrice            decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	UnitPrice            decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
