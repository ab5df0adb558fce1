package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UnitType string

const (
	UnitTypeWeight UnitType = "weight"
	UnitTypeVolume UnitType = "volume"
	UnitTypeCount  UnitType = "count"
)

// Unit: sistem genelinde ortak ölçü birimi (organizasyona bağlı değil, değişmez referans verisi)
type Unit struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:50;not null"`
	Abbreviation string   `gorm:"size:20;not null;unique"` // kg, lb, oz, l, ea ...
	UnitType     UnitType `gorm:"size:10;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ConversionScope string

const (
	ScopeSystem       ConversionScope = "system"
	ScopeOrganization ConversionScope = "organization"
	ScopeOutlet       ConversionScope = "outlet"
	ScopeProduct      ConversionScope = "product"
)

// UnitConversion: "1 FromUnit = Factor × ToUnit" yönlü kenarı.
// Scope'a göre OrganizationID / OutletID / CommonProductID dolu olur; system satırlarında hepsi boş.
type UnitConversion struct {
	ID              uint            `gorm:"primaryKey"`
	FromUnitID      uint            `gorm:"index:idx_conversion_pair,priority:1;not null"`
	FromUnit        Unit            `gorm:"foreignKey:FromUnitID"`
	ToUnitID        uint            `gorm:"index:idx_conversion_pair,priority:2;not null"`
	ToUnit          Unit            `gorm:"foreignKey:ToUnitID"`
	Factor          decimal.Decimal `gorm:"type:decimal(18,8);not null"`
	Scope           ConversionScope `gorm:"size:20;not null;index"`
	OrganizationID  *uint           `gorm:"index"`
	OutletID        *uint           `gorm:"index"`
	CommonProductID *uint           `gorm:"index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
