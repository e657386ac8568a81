package repository

import (
	"errors"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	GetTypeByID(id uint) (*models.DeviceType, error)
	FindOrCreateType(name string) (*models.DeviceType, error)
	SearchTypes(term string, limit int) ([]models.DeviceType, error)

	GetBrandByID(id uint) (*models.Brand, error)
	FindOrCreateBrand(name string) (*models.Brand, error)
	SearchBrands(term string, limit int) ([]models.Brand, error)

	GetModelByID(id uint) (*models.DeviceModel, error)
	FindOrCreateModel(brandID uint, name string) (*models.DeviceModel, error)
	SearchModels(term string, limit int) ([]models.DeviceModel, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetTypeByID(id uint) (*models.DeviceType, error) {
	var t models.DeviceType
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &t, nil
}

// FindOrCreateType resolves a normalized (trimmed, upper-cased) name to a
// device type row. The name match is case-insensitive so rows created with
// any casing are reused. A lost creation race is retried as a lookup: the
// desired end state, a resolved reference, is still reachable.
func (r *catalogRepository) FindOrCreateType(name string) (*models.DeviceType, error) {
	var t models.DeviceType
	err := r.db.Where("UPPER(name) = ?", name).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	t = models.DeviceType{Name: name}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&t)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.db.Where("UPPER(name) = ?", name).First(&t).Error; err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (r *catalogRepository) SearchTypes(term string, limit int) ([]models.DeviceType, error) {
	var types []models.DeviceType
	err := r.db.Where("name ILIKE ?", "%"+term+"%").Limit(limit).Find(&types).Error
	return types, err
}

func (r *catalogRepository) GetBrandByID(id uint) (*models.Brand, error) {
	var b models.Brand
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &b, nil
}

func (r *catalogRepository) FindOrCreateBrand(name string) (*models.Brand, error) {
	var b models.Brand
	err := r.db.Where("UPPER(name) = ?", name).First(&b).Error
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	b = models.Brand{Name: name}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&b)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.db.Where("UPPER(name) = ?", name).First(&b).Error; err != nil {
			return nil, err
		}
	}
	return &b, nil
}

func (r *catalogRepository) SearchBrands(term string, limit int) ([]models.Brand, error) {
	var brands []models.Brand
	err := r.db.Where("name ILIKE ?", "%"+term+"%").Limit(limit).Find(&brands).Error
	return brands, err
}

func (r *catalogRepository) GetModelByID(id uint) (*models.DeviceModel, error) {
	var m models.DeviceModel
	if err := r.db.First(&m, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &m, nil
}

// FindOrCreateModel is scoped to a brand: model names are only unique
// within their brand.
func (r *catalogRepository) FindOrCreateModel(brandID uint, name string) (*models.DeviceModel, error) {
	var m models.DeviceModel
	err := r.db.Where("brand_id = ? AND UPPER(name) = ?", brandID, name).First(&m).Error
	if err == nil {
		return &m, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	m = models.DeviceModel{BrandID: brandID, Name: name}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "brand_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if err := r.db.Where("brand_id = ? AND UPPER(name) = ?", brandID, name).First(&m).Error; err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func (r *catalogRepository) SearchModels(term string, limit int) ([]models.DeviceModel, error) {
	var modelRows []models.DeviceModel
	err := r.db.Where("name ILIKE ?", "%"+term+"%").Limit(limit).Find(&modelRows).Error
	return modelRows, err
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
