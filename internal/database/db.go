package database

import (
	"fmt"
	"log"

	"foodcost-backend/internal/config"
	"foodcost-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	gormCfg := &gorm.Config{}
	if cfg.LogLevel != "debug" {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), gormCfg)
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate: tüm tabloları ve ek index'leri oluşturur. Postgres ve sqlite ile çalışır.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Organization{},
		&models.Outlet{},
		&models.User{},
		&models.Unit{},
		&models.UnitConversion{},
		&models.CommonProduct{},
		&models.PurchasableProduct{},
		&models.ProductPrice{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		// Ziyafet
		&models.MealPeriod{},
		&models.ServiceType{},
		&models.BanquetMenu{},
		&models.BanquetMenuItem{},
		&models.PrepItem{},
	)
	if err != nil {
		return err
	}

	// En güncel fiyat sorgusu (outlet, tarih desc) üzerinden gider
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_product_prices_outlet_date ON product_prices(outlet_id, effective_date)",
		"CREATE INDEX IF NOT EXISTS idx_unit_conversions_scope ON unit_conversions(scope, organization_id)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index oluşturulamadı: %w", err)
		}
	}
	return nil
}
