package repository

import (
	"errors"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(order *models.ServiceOrder) error
	GetByID(id uint) (*models.ServiceOrder, error)
	Update(order *models.ServiceOrder) error
	ListByStatuses(statuses []models.OrderStatus) ([]models.ServiceOrder, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order row only. Customer, device and technician rows
// are reconciled beforehand; their structs may be attached for the caller
// but must not be written again here.
func (r *orderRepository) Create(order *models.ServiceOrder) error {
	return r.db.Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.ServiceOrder, error) {
	var order models.ServiceOrder
	err := r.db.
		Preload("Customer").
		Preload("Device").
		Preload("Device.Type").
		Preload("Device.Brand").
		Preload("Device.Model").
		Preload("Technician").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(order *models.ServiceOrder) error {
	return r.db.Omit(clause.Associations).Save(order).Error
}

func (r *orderRepository) ListByStatuses(statuses []models.OrderStatus) ([]models.ServiceOrder, error) {
	var orders []models.ServiceOrder
	err := r.db.
		Preload("Customer").
		Preload("Device").
		Preload("Technician").
		Where("status IN ?", statuses).
		Order("received_at DESC").
		Find(&orders).Error
	return orders, err
}
