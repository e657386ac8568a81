package repository

import (
	"errors"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DeviceRepository interface {
	GetByID(id uint) (*models.Device, error)
	GetBySerial(serial string) (*models.Device, error)
	// CreateIfAbsent inserts the device unless its serial already exists.
	// When the insert loses a race the existing row is loaded into device
	// and created=false is returned.
	CreateIfAbsent(device *models.Device) (created bool, err error)
	Update(device *models.Device) error
	SearchSerials(term string, limit int) ([]string, error)
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) GetByID(id uint) (*models.Device, error) {
	var device models.Device
	err := r.db.Preload("Type").Preload("Brand").Preload("Model").First(&device, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) GetBySerial(serial string) (*models.Device, error) {
	var device models.Device
	err := r.db.Preload("Type").Preload("Brand").Preload("Model").
		Where("serial_imei = ?", serial).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) CreateIfAbsent(device *models.Device) (bool, error) {
	res := r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "serial_imei"}},
		DoNothing: true,
	}).Create(device)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := r.GetBySerial(device.SerialIMEI)
		if err != nil {
			return false, err
		}
		*device = *existing
		return false, nil
	}
	return true, nil
}

func (r *deviceRepository) Update(device *models.Device) error {
	return r.db.Omit(clause.Associations).Save(device).Error
}

func (r *deviceRepository) SearchSerials(term string, limit int) ([]string, error) {
	var serials []string
	err := r.db.Model(&models.Device{}).
		Where("serial_imei ILIKE ?", "%"+term+"%").
		Limit(limit).
		Pluck("serial_imei", &serials).Error
	return serials, err
}
