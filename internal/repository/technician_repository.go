package repository

import (
	"errors"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"

	"gorm.io/gorm"
)

type TechnicianRepository interface {
	Create(technician *models.Technician) error
	GetByID(id uint) (*models.Technician, error)
	GetAll() ([]models.Technician, error)
}

type technicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) TechnicianRepository {
	return &technicianRepository{db: db}
}

func (r *technicianRepository) Create(technician *models.Technician) error {
	return r.db.Create(technician).Error
}

func (r *technicianRepository) GetByID(id uint) (*models.Technician, error) {
	var technician models.Technician
	err := r.db.First(&technician, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) GetAll() ([]models.Technician, error) {
	var technicians []models.Technician
	err := r.db.Order("name").Find(&technicians).Error
	return technicians, err
}
