package models

import "time"

// Organization: kiracı sınırı. Birim ve sistem dönüşümleri dışındaki her kayıt buna bağlı.
type Organization struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:150;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Outlets []Outlet `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// Outlet: organizasyona ait satış/üretim noktası. Fiyatlar outlet bazında tutulur.
type Outlet struct {
	ID             uint `gorm:"primaryKey"`
	OrganizationID uint `gorm:"index;not null"`
	Organization   Organization
	Name           string `gorm:"size:100;not null"`
	Address        string `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
