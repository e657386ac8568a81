package models

import (
	"time"
)

// Catalog entities grow organically: free-text submissions that match no
// existing row are stored upper-cased as new rows.

type DeviceType struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Brand struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeviceModel names are unique within a brand, not globally.
type DeviceModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BrandID   uint      `json:"brand_id" gorm:"uniqueIndex:idx_brand_model;not null"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_brand_model;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CatalogKind string

const (
	KindDeviceType CatalogKind = "device_type"
	KindBrand      CatalogKind = "brand"
	KindModel      CatalogKind = "model"
)
