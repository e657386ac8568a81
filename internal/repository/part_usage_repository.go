package repository

import (
	"repair_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartUsageRepository interface {
	// Upsert inserts the usage line, or when the (order, part) pair already
	// exists, adds the submitted quantity to the stored one and refreshes
	// the unit price.
	Upsert(usage *models.PartUsage) error
	GetByOrderID(orderID uint) ([]models.PartUsage, error)
}

type partUsageRepository struct {
	db *gorm.DB
}

func NewPartUsageRepository(db *gorm.DB) PartUsageRepository {
	return &partUsageRepository{db: db}
}

func (r *partUsageRepository) Upsert(usage *models.PartUsage) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_id"}, {Name: "part_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("part_usages.quantity + excluded.quantity"),
			"unit_price": gorm.Expr("excluded.unit_price"),
		}),
	}).Create(usage).Error
}

func (r *partUsageRepository) GetByOrderID(orderID uint) ([]models.PartUsage, error) {
	var usages []models.PartUsage
	err := r.db.Preload("Part").Where("order_id = ?", orderID).Find(&usages).Error
	return usages, err
}
