package services

import (
	"time"

	"github.com/shopspring/decimal"

	"repair_shop/internal/models"
)

type CustomerInput struct {
	Key     string
	Name    string
	Address string
	Phone   string
	Mobile  string
	Email   string
}

// DeviceInput carries the submitted device attributes. TypeRef, BrandRef
// and ModelRef are raw values: either a numeric catalog identifier or free
// text to be found-or-created.
type DeviceInput struct {
	SerialIMEI   string
	TypeRef      string
	BrandRef     string
	ModelRef     string
	Accessories  string
	Condition    string
	PurchaseDate *time.Time
}

type OrderInput struct {
	TechnicianID  *uint
	ReportedFault string
}

type IntakeInput struct {
	Customer CustomerInput
	Device   DeviceInput
	Order    OrderInput
}

// TransitionInput carries a requested status change together with the
// field updates submitted alongside it. The whole update is accepted or
// rejected as a unit.
type TransitionInput struct {
	Status          models.OrderStatus
	TechnicianID    *uint
	TechnicalReport *string
	LaborCost       *decimal.Decimal
	FinalBalance    *decimal.Decimal
}
