package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Part struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Description   string          `json:"description" gorm:"not null"`
	Code          *string         `json:"code" gorm:"uniqueIndex"` // internal code, optional
	Stock         int             `json:"stock" gorm:"default:0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" gorm:"type:numeric(10,2)"`
	SalePrice     decimal.Decimal `json:"sale_price" gorm:"type:numeric(10,2)"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PartUsage is a line item on a service order. One row per (order, part):
// adding the same part again increments the quantity instead of inserting
// a duplicate.
type PartUsage struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"uniqueIndex:idx_order_part;not null"`
	PartID    uint            `json:"part_id" gorm:"uniqueIndex:idx_order_part;not null"`
	Part      Part            `json:"part"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(10,2)"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
