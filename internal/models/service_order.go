package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusReceived      OrderStatus = "RECEIVED"
	StatusQuoted        OrderStatus = "QUOTED"
	StatusAwaitingParts OrderStatus = "AWAITING_PARTS"
	StatusInRepair      OrderStatus = "IN_REPAIR"
	StatusDone          OrderStatus = "DONE"
	StatusUnrepairable  OrderStatus = "UNREPAIRABLE"
	StatusDelivered     OrderStatus = "DELIVERED"
)

func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusReceived,
		StatusQuoted,
		StatusAwaitingParts,
		StatusInRepair,
		StatusDone,
		StatusUnrepairable,
		StatusDelivered,
	}
}

func (s OrderStatus) Valid() bool {
	for _, st := range AllStatuses() {
		if s == st {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are defined from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered
}

// ReadyForDelivery reports whether an order may be closed and handed back
// to the customer.
func (s OrderStatus) ReadyForDelivery() bool {
	return s == StatusDone || s == StatusUnrepairable
}

// Listing partitions. The three sets are disjoint and together cover every
// status exactly once.
func InShopStatuses() []OrderStatus {
	return []OrderStatus{StatusReceived, StatusQuoted, StatusAwaitingParts, StatusInRepair}
}

func FinishedStatuses() []OrderStatus {
	return []OrderStatus{StatusDone, StatusUnrepairable}
}

func DeliveredStatuses() []OrderStatus {
	return []OrderStatus{StatusDelivered}
}

type ServiceOrder struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID      uint            `json:"customer_id" gorm:"not null"`
	Customer        Customer        `json:"customer"`
	DeviceID        uint            `json:"device_id" gorm:"not null"`
	Device          Device          `json:"device"`
	TechnicianID    *uint           `json:"technician_id"`
	Technician      *Technician     `json:"technician,omitempty"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'RECEIVED'"`
	ReceivedAt      time.Time       `json:"received_at" gorm:"not null"`
	DeliveredAt     *time.Time      `json:"delivered_at"`
	ReportedFault   string          `json:"reported_fault" gorm:"type:text;not null"`
	TechnicalReport string          `json:"technical_report" gorm:"type:text"`
	LaborCost       decimal.Decimal `json:"labor_cost" gorm:"type:numeric(10,2)"`
	FinalBalance    decimal.Decimal `json:"final_balance" gorm:"type:numeric(10,2)"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
