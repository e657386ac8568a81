package models

import (
	"time"

	"gorm.io/gorm"
)

const warrantyDays = 365

type Device struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	SerialIMEI    string       `json:"serial_imei" gorm:"uniqueIndex;not null"`
	TypeID        *uint        `json:"type_id"`
	Type          *DeviceType  `json:"type,omitempty"`
	BrandID       *uint        `json:"brand_id"`
	Brand         *Brand       `json:"brand,omitempty"`
	ModelID       *uint        `json:"model_id"`
	Model         *DeviceModel `json:"model,omitempty"`
	Accessories   string       `json:"accessories" gorm:"type:text"`
	Condition     string       `json:"condition" gorm:"type:text"`
	PurchaseDate  *time.Time   `json:"purchase_date" gorm:"type:date"`
	UnderWarranty bool         `json:"under_warranty" gorm:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// InWarranty reports whether the purchase date is within the one-year
// warranty window. Devices without a purchase date are never in warranty.
func (d *Device) InWarranty() bool {
	if d.PurchaseDate == nil {
		return false
	}
	return !d.PurchaseDate.AddDate(0, 0, warrantyDays).Before(time.Now().Truncate(24 * time.Hour))
}

func (d *Device) AfterFind(tx *gorm.DB) error {
	d.UnderWarranty = d.InWarranty()
	return nil
}
