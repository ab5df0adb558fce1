package models

import "time"

// Recipe: organizasyon ve outlet bazlı tarif. Başka tariflerde alt tarif olarak kullanılabilir.
type Recipe struct {
	ID             uint     `gorm:"primaryKey"`
	OrganizationID uint     `gorm:"index;not null"`
	OutletID       uint     `gorm:"index;not null"`
	Name           string   `gorm:"size:150;not null"`
	YieldAmount    *float64 // toplam verim (ör: 4 lt)
	YieldUnitID    *uint
	Servings       *float64 // porsiyon sayısı
	ServingUnit    string   `gorm:"size:30"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient: CommonProduct, alt tarif ya da sadece serbest metin satırı.
// CommonProductID ve SubRecipeID aynı anda dolu olamaz.
type RecipeIngredient struct {
	ID              uint    `gorm:"primaryKey"`
	RecipeID        uint    `gorm:"index;not null"`
	Position        int     `gorm:"not null;default:0"`
	CommonProductID *uint   `gorm:"index"`
	SubRecipeID     *uint   `gorm:"index"`
	Description     string  `gorm:"size:255"`
	Quantity        float64 `gorm:"not null"`
	UnitID          *uint
	YieldPercentage *float64 // 0-100, 100 = kayıp yok
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
