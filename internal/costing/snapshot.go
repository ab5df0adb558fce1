package costing

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Snapshot: her istek için tutarlı bir okuma görüntüsü üzerinde Engine kurar
type Snapshot func(ctx context.Context, fn func(*Engine) error) error

// GormSnapshot: fiyatlar, dönüşümler ve tarif grafı tek bir read-only transaction'dan okunur
func GormSnapshot(db *gorm.DB, opts Options) Snapshot {
	return func(ctx context.Context, fn func(*Engine) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewEngine(NewGormStore(tx), opts))
		}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
}

// StoreSnapshot: zaten tutarlı olan bir Store için (MemStore, testler)
func StoreSnapshot(store Store, opts Options) Snapshot {
	return func(ctx context.Context, fn func(*Engine) error) error {
		return fn(NewEngine(store, opts))
	}
}
