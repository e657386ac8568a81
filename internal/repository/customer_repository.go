package repository

import (
	"errors"
	"strings"

	"repair_shop/internal/apperrors"
	"repair_shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository interface {
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByKey(key string) (*models.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts the customer, relying on the unique index on key. A
// concurrent insert of the same key surfaces as a ConflictError instead of
// a driver error: the existence check callers run beforehand is advisory
// only.
func (r *customerRepository) Create(customer *models.Customer) error {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(customer)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &apperrors.ConflictError{Entity: "customer", Value: customer.Key}
	}
	return nil
}

func (r *customerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) GetByKey(key string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.Where("UPPER(key) = ?", strings.ToUpper(key)).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
