package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ziyafet hiyerarşisi: MealPeriod -> ServiceType -> BanquetMenu -> BanquetMenuItem -> PrepItem

type MealPeriod struct {
	ID             uint   `gorm:"primaryKey"`
	OrganizationID uint   `gorm:"index;not null"`
	OutletID       uint   `gorm:"index;not null"`
	Name           string `gorm:"size:100;not null"` // Kahvaltı, Öğle, Akşam
	CreatedAt      time.Time
	UpdatedAt      time.Time

	ServiceTypes []ServiceType `gorm:"foreignKey:MealPeriodID;constraint:OnDelete:CASCADE"`
}

type ServiceType struct {
	ID           uint   `gorm:"primaryKey"`
	MealPeriodID uint   `gorm:"index;not null"`
	Name         string `gorm:"size:100;not null"` // Büfe, Servis ...
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Menus []BanquetMenu `gorm:"foreignKey:ServiceTypeID;constraint:OnDelete:CASCADE"`
}

type BanquetMenu struct {
	ID                uint             `gorm:"primaryKey"`
	OrganizationID    uint             `gorm:"index;not null"`
	OutletID          uint             `gorm:"index;not null"`
	ServiceTypeID     uint             `gorm:"index;not null"`
	Name              string           `gorm:"size:150;not null"`
	PricePerPerson    decimal.Decimal  `gorm:"type:decimal(12,4);not null"`
	MinGuestCount     int              `gorm:"not null;default:0"`
	UnderMinSurcharge decimal.Decimal  `gorm:"type:decimal(12,4);not null;default:0"` // kişi başı ek ücret
	TargetFoodCostPct *decimal.Decimal `gorm:"type:decimal(6,2)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Items []BanquetMenuItem `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

type BanquetMenuItem struct {
	ID              uint            `gorm:"primaryKey"`
	MenuID          uint            `gorm:"index;not null"`
	Position        int             `gorm:"not null;default:0"`
	Name            string          `gorm:"size:150;not null"`
	IsEnhancement   bool            `gorm:"not null;default:false"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	RecipeID        *uint           `gorm:"index"` // opsiyonel: tarif maliyetine bağlanır
	CreatedAt       time.Time
	UpdatedAt       time.Time

	PrepItems []PrepItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
}

// PrepItem: tarif satırı ile aynı maliyet şekli, ama sabit miktar yerine misafir başı miktar
type PrepItem struct {
	ID              uint    `gorm:"primaryKey"`
	MenuItemID      uint    `gorm:"index;not null"`
	Position        int     `gorm:"not null;default:0"`
	Name            string  `gorm:"size:150"`
	CommonProductID *uint   `gorm:"index"`
	RecipeID        *uint   `gorm:"index"`
	AmountPerGuest  float64 `gorm:"not null"`
	UnitID          *uint
	YieldPercentage *float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
