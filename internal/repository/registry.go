package repository

import (
	"gorm.io/gorm"
)

// Registry bundles one repository per entity, all bound to the same
// database handle (or to the same transaction when built inside a unit of
// work).
type Registry struct {
	Customers   CustomerRepository
	Catalog     CatalogRepository
	Devices     DeviceRepository
	Technicians TechnicianRepository
	Orders      OrderRepository
	Parts       PartRepository
	PartUsages  PartUsageRepository
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{
		Customers:   NewCustomerRepository(db),
		Catalog:     NewCatalogRepository(db),
		Devices:     NewDeviceRepository(db),
		Technicians: NewTechnicianRepository(db),
		Orders:      NewOrderRepository(db),
		Parts:       NewPartRepository(db),
		PartUsages:  NewPartUsageRepository(db),
	}
}

// UnitOfWork runs a function against transaction-bound repositories. All
// writes made inside the function commit or roll back as one unit.
type UnitOfWork interface {
	Do(fn func(r *Registry) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(fn func(r *Registry) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewRegistry(tx))
	})
}
