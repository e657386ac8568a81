package repository

import (
	"errors"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartRepository interface {
	Create(part *models.Part) error
	GetByID(id uint) (*models.Part, error)
	GetAll() ([]models.Part, error)
}

type partRepository struct {
	db *gorm.DB
}

func NewPartRepository(db *gorm.DB) PartRepository {
	return &partRepository{db: db}
}

func (r *partRepository) Create(part *models.Part) error {
	if part.Code == nil {
		return r.db.Create(part).Error
	}
	// Internal codes are unique when present.
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(part)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &apperrors.ConflictError{Entity: "part", Value: *part.Code}
	}
	return nil
}

func (r *partRepository) GetByID(id uint) (*models.Part, error) {
	var part models.Part
	err := r.db.First(&part, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *partRepository) GetAll() ([]models.Part, error) {
	var parts []models.Part
	err := r.db.Order("description").Find(&parts).Error
	return parts, err
}
