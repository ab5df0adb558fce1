package models

import "time"

type UserRole string

const (
	RoleOrgAdmin      UserRole = "org_admin"
	RoleOutletManager UserRole = "outlet_manager"
)

type User struct {
	ID             uint `gorm:"primaryKey"`
	OrganizationID uint `gorm:"index;not null"`
	Organization   Organization
	OutletID       *uint // outlet_manager için zorunlu
	Outlet         *Outlet
	Name           string   `gorm:"size:100;not null"`
	Email          string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash   string   `gorm:"size:255;not null"`
	Role           UserRole `gorm:"size:20;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
